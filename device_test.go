package sevenseg

import (
	"github.com/fryntiz/sevenseg/pixel"
	"github.com/fryntiz/sevenseg/segment"
)

// testDevice records every refreshed frame and contrast change.
type testDevice struct {
	*pixel.MonoVerticalLSBImage
	frames   [][]byte
	contrast []uint8
	shown    bool
	closed   bool
}

func newTestDevice(cascaded int) *testDevice {
	return &testDevice{
		MonoVerticalLSBImage: pixel.NewMonoVerticalLSBImage(cascaded*DigitsPerUnit, 8),
		shown:                true,
	}
}

func (d *testDevice) Width() int {
	return d.Rect.Dx()
}

func (d *testDevice) Refresh() error {
	d.frames = append(d.frames, append([]byte(nil), d.Pix...))
	return nil
}

func (d *testDevice) Close() error {
	d.closed = true
	return nil
}

func (d *testDevice) Show(show bool) error {
	d.shown = show
	return nil
}

func (d *testDevice) SetContrast(level uint8) error {
	d.contrast = append(d.contrast, level)
	return nil
}

func (d *testDevice) last() []byte {
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// cells returns the framebuffer expected for text on a width cell display.
func cells(text string, width int) []byte {
	out := make([]byte, width)
	copy(out, segment.Encode(text))
	return out
}
