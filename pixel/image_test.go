package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoVerticalLSBImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalLSBImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoVerticalLSBImageColumn(t *testing.T) {
	i := NewMonoVerticalLSBImage(4, 8)
	i.SetColumn(1, 0x81)
	if v := i.Column(1); v != 0x81 {
		t.Fatalf("expected column 1 to be %#02x, got %#02x", 0x81, v)
	}
	if i.At(1, 0) != On || i.At(1, 7) != On {
		t.Errorf("expected top and bottom pixel of column 1 to be on")
	}
	for y := 1; y < 7; y++ {
		if i.At(1, y) != Off {
			t.Errorf("expected pixel (1,%d) to be off", y)
		}
	}

	i.Set(2, 6, On)
	if v := i.Column(2); v != 0x40 {
		t.Errorf("expected column 2 to be %#02x, got %#02x", 0x40, v)
	}

	// Out of bounds access is ignored.
	i.SetColumn(-1, 0xff)
	i.SetColumn(4, 0xff)
	if v := i.Column(4); v != 0 {
		t.Errorf("expected out of bounds column to be 0, got %#02x", v)
	}
}

func TestMonoVerticalLSBImageShortColumn(t *testing.T) {
	i := NewMonoVerticalLSBImage(2, 4)
	i.SetColumn(0, 0xff)
	if v := i.Column(0); v != 0x0f {
		t.Errorf("expected column to be masked to %#02x, got %#02x", 0x0f, v)
	}
	i.Fill(On)
	if v := i.Column(1); v != 0x0f {
		t.Errorf("expected filled column to be masked to %#02x, got %#02x", 0x0f, v)
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(8, 8),
		image.Pt(40, 8),
		image.Pt(16, 16),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				i.Fill(On)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.At(x, y); v != On {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected on", x, y, v)
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not off", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
