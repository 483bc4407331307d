package models

import (
	"fmt"
	"image"

	"github.com/google/uuid"
)

// SourceLoader decodes the pixels behind a frame source
type SourceLoader interface {
	Load(path string) (image.Image, error)
}

// Renderer produces the bordered, print-shaped presentation of a source
// for a frame with the given physical dimensions
type Renderer interface {
	Render(src image.Image, frame Dimensions) image.Image
}

// Point is a position on the wall in canvas pixels
type Point struct {
	X float64
	Y float64
}

// Frame is one photograph placed on the wall
type Frame struct {
	id           string
	source       string
	pixels       image.Image
	size         SizeClass
	orientation  Orientation
	dimensions   Dimensions
	presentation image.Image
	position     Point
	renderer     Renderer
}

// NewFrame loads the source and builds its presentation for the given size class
func NewFrame(source string, size SizeClass, loader SourceLoader, renderer Renderer) (*Frame, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("invalid size class %d for %s", int(size), source)
	}

	pixels, err := loader.Load(source)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load %s: %w", ErrResource, source, err)
	}
	if pixels == nil || pixels.Bounds().Empty() {
		return nil, fmt.Errorf("%w: %s has no pixels", ErrResource, source)
	}

	frame := &Frame{
		id:       uuid.NewString(),
		source:   source,
		pixels:   pixels,
		size:     size,
		renderer: renderer,
	}
	frame.refresh()

	return frame, nil
}

// refresh recomputes orientation and presentation from the current size class
func (f *Frame) refresh() {
	f.orientation, f.dimensions = Orient(f.SourceAspect(), f.size.Dimensions())
	f.presentation = f.renderer.Render(f.pixels, f.dimensions)
}

func (f *Frame) ID() string {
	return f.id
}

func (f *Frame) Source() string {
	return f.source
}

func (f *Frame) Size() SizeClass {
	return f.size
}

func (f *Frame) Orientation() Orientation {
	return f.orientation
}

// Dimensions returns the effective print dimensions after the orientation swap
func (f *Frame) Dimensions() Dimensions {
	return f.dimensions
}

// SourceAspect returns width/height of the source pixels
func (f *Frame) SourceAspect() float64 {
	b := f.pixels.Bounds()
	return float64(b.Dx()) / float64(b.Dy())
}

// Presentation returns the cached cropped, scaled and bordered image
func (f *Frame) Presentation() image.Image {
	return f.presentation
}

// CycleSize advances L -> M -> S -> L and rebuilds the presentation
func (f *Frame) CycleSize() {
	f.size = f.size.Next()
	f.refresh()
}

// SetPosition moves the frame's top-left anchor. No bounds checks.
func (f *Frame) SetPosition(p Point) {
	f.position = p
}

func (f *Frame) Position() Point {
	return f.position
}

// RenderedSize returns the pixel size of the current presentation
func (f *Frame) RenderedSize() (width, height int) {
	if f.presentation == nil {
		return 0, 0
	}
	b := f.presentation.Bounds()
	return b.Dx(), b.Dy()
}

// Contains reports whether p lies inside the frame's box, edges included
func (f *Frame) Contains(p Point) bool {
	w, h := f.RenderedSize()
	return p.X >= f.position.X && p.X <= f.position.X+float64(w) &&
		p.Y >= f.position.Y && p.Y <= f.position.Y+float64(h)
}

// Center returns the midpoint of the frame's box
func (f *Frame) Center() Point {
	w, h := f.RenderedSize()
	return Point{
		X: f.position.X + float64(w)/2,
		Y: f.position.Y + float64(h)/2,
	}
}
