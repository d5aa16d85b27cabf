package sevenseg

import (
	"image"

	"github.com/fryntiz/sevenseg/draw"
	"github.com/fryntiz/sevenseg/pixel"
)

// Viewport is a virtual canvas larger than the device. The device shows the
// window of the device's size that starts at the current position.
type Viewport struct {
	*pixel.MonoVerticalLSBImage
	device Device
	pos    image.Point
}

// NewViewport returns a width by height virtual canvas in front of device.
func NewViewport(device Device, width, height int) *Viewport {
	return &Viewport{
		MonoVerticalLSBImage: pixel.NewMonoVerticalLSBImage(width, height),
		device:               device,
	}
}

// Width of the virtual canvas in digit cells.
func (v *Viewport) Width() int {
	return v.Rect.Dx()
}

// Position returns the top left corner of the visible window.
func (v *Viewport) Position() image.Point {
	return v.pos
}

// SetPosition moves the visible window to (x, y) and refreshes the device.
// The window is kept inside the virtual canvas.
func (v *Viewport) SetPosition(x, y int) error {
	v.pos = v.clamp(image.Pt(x, y))
	return v.Refresh()
}

func (v *Viewport) clamp(p image.Point) image.Point {
	var (
		size = v.device.Bounds().Size()
		maxX = v.Rect.Dx() - size.X
		maxY = v.Rect.Dy() - size.Y
	)
	if p.X > maxX {
		p.X = maxX
	}
	if p.Y > maxY {
		p.Y = maxY
	}
	if p.X < 0 {
		p.X = 0
	}
	if p.Y < 0 {
		p.Y = 0
	}
	return p
}

// Refresh copies the visible window to the device and refreshes it.
func (v *Viewport) Refresh() error {
	v.device.Clear()
	draw.Window(v.device, v, v.pos)
	return v.device.Refresh()
}
