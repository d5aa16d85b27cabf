package pixel

import (
	"image"
	"image/color"

	"github.com/fryntiz/sevenseg/draw"
)

// Image is a framebuffer that can be cleared and filled.
type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent bands.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	for i := range p.Pix {
		p.Pix[i] = 0x00
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image, stored in
// vertical bands of 8 pixels with the top pixel in the least significant bit.
//
// For an image 8 pixels high every column is a single byte, which is how LED
// matrix and seven-segment drivers address their digit registers.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	bands := ((h + 7) & ^7) / 8 // round up to whole bytes
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, bands*w),
	}
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}

	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	return Mono{
		On: p.Pix[pos]&bit != 0,
	}
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}

	var (
		pos = y/8*p.Stride + x
		bit = byte(1) << uint(y&7)
	)
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= bit
	} else {
		p.Pix[pos] &^= bit
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
	p.maskLastBand()
}

// Column returns the byte of the first band at column x, 0 if out of bounds.
func (p *MonoVerticalLSBImage) Column(x int) byte {
	if x < 0 || x >= p.Rect.Dx() || len(p.Pix) == 0 {
		return 0
	}
	return p.Pix[x]
}

// SetColumn replaces the byte of the first band at column x.
func (p *MonoVerticalLSBImage) SetColumn(x int, b byte) {
	if x < 0 || x >= p.Rect.Dx() || len(p.Pix) == 0 {
		return
	}
	p.Pix[x] = b
	if p.Rect.Dy() < 8 {
		p.Pix[x] &= byte(1)<<uint(p.Rect.Dy()) - 1
	}
}

// maskLastBand clears the bits that fall below the image in the last band.
func (p *MonoVerticalLSBImage) maskLastBand() {
	rem := p.Rect.Dy() & 7
	if rem == 0 || len(p.Pix) == 0 {
		return
	}
	var (
		mask = byte(1)<<uint(rem) - 1
		off  = (p.Rect.Dy() / 8) * p.Stride
	)
	for x := 0; x < p.Stride; x++ {
		p.Pix[off+x] &= mask
	}
}
