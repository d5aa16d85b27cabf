// Package pixel implements the framebuffer used by seven-segment LED drivers.
//
// A seven-segment cell is modelled as one image column, 8 pixels high, where
// each pixel is one segment. The column byte therefore is exactly the value
// written to a digit register of a no-decode LED driver. The images are
// compatible with Go's native [color.Color] and [image.Image] / [draw.Image]
// interfaces, so the regular draw routines can blit between them.
package pixel
