// Package ppm implements the P3 ASCII PPM encoder used for final image
// output: linear float RGB clamped to [0,1], scaled to [0,255] and
// truncated toward zero.
package ppm

import (
	"bufio"
	"fmt"
	"io"

	gmath "grinder/pkg/math"
)

// Image is a row-major, top-left-origin raster of linear-space RGB
// triples, one per pixel.
type Image struct {
	Width, Height int
	Pixels        []gmath.Vector3
}

// NewImage allocates a black image of the given dimensions.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]gmath.Vector3, width*height)}
}

// Set writes the color at (x, y). Safe to call from a single goroutine per
// row; distinct rows never alias the same slice elements.
func (img *Image) Set(x, y int, c gmath.Vector3) {
	img.Pixels[y*img.Width+x] = c
}

func (img *Image) At(x, y int) gmath.Vector3 {
	return img.Pixels[y*img.Width+x]
}

// Encode writes img as a P3 ASCII PPM with maxval 255.
func Encode(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return fmt.Errorf("ppm: write header: %w", err)
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			c := img.At(x, y)
			r := toByte(c.X)
			g := toByte(c.Y)
			b := toByte(c.Z)
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", r, g, b); err != nil {
				return fmt.Errorf("ppm: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return bw.Flush()
}

func toByte(v float64) int {
	v = gmath.Clamp(v, 0, 1)
	return int(v * 255)
}
