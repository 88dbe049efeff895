// Package thumb loads post thumbnails and renders them with Unicode half
// blocks so they can be drawn inside a feed row.
package thumb

import (
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/disintegration/imaging"
	"github.com/zeebo/xxh3"
)

const upperHalfBlock = "▀"

// Default thumbnail size in cells, matching the height of a feed row.
const (
	DefaultCols = 6
	DefaultRows = 3
)

// Image is a thumbnail scaled to a fixed size in terminal cells.
type Image struct {
	id         uint64
	img        image.Image
	cols, rows int // in terminal cells

	rendered string
}

// New scales img to fill cols×rows cells. Each cell shows two vertical
// pixels, so the image is resampled to cols×(2*rows) pixels.
func New(id string, img image.Image, cols, rows int) *Image {
	i := &Image{
		id:   xxh3.HashString(id),
		cols: max(cols, 1),
		rows: max(rows, 1),
	}
	i.img = imaging.Fill(img, i.cols, i.rows*2, imaging.Center, imaging.Lanczos)
	return i
}

// ID returns a hash of the identifier the image was created with.
func (i *Image) ID() uint64 {
	return i.id
}

// Size returns the size of the image in cells.
func (i *Image) Size() (cols, rows int) {
	return i.cols, i.rows
}

// Render returns the image as rows of styled half blocks. The result is
// computed once.
func (i *Image) Render() string {
	if i == nil {
		return ""
	}
	if i.rendered != "" {
		return i.rendered
	}

	var sb strings.Builder
	b := i.img.Bounds()
	for y := 0; y < i.rows; y++ {
		for x := 0; x < i.cols; x++ {
			top := opaque(i.img.At(b.Min.X+x, b.Min.Y+2*y))
			bottom := opaque(i.img.At(b.Min.X+x, b.Min.Y+2*y+1))
			sb.WriteString(ansi.NewStyle().ForegroundColor(top).BackgroundColor(bottom).String())
			sb.WriteString(upperHalfBlock)
		}
		sb.WriteString(ansi.ResetStyle)
		if y < i.rows-1 {
			sb.WriteByte('\n')
		}
	}
	i.rendered = sb.String()
	return i.rendered
}

// Placeholder returns a cols×rows block of shading used while a thumbnail
// is loading or when a post has none.
func Placeholder(cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	line := strings.Repeat("╱", cols)
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// opaque flattens c onto black so terminals without alpha support draw it
// correctly.
func opaque(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff} //nolint:gosec
}
