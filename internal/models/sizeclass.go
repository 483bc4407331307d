package models

import (
	"fmt"
	"strings"
)

// SizeClass is one of the fixed print sizes a frame can take
type SizeClass int

const (
	SizeLarge SizeClass = iota
	SizeMedium
	SizeSmall
)

// Physical print sizes; units do not matter, only the ratios do
var sizeDimensions = [...]Dimensions{
	SizeLarge:  {Width: 21, Height: 29.7},
	SizeMedium: {Width: 15, Height: 20},
	SizeSmall:  {Width: 13, Height: 18},
}

var sizeLabels = [...]string{
	SizeLarge:  "L",
	SizeMedium: "M",
	SizeSmall:  "S",
}

// SizeClasses lists every size class in cycle order
func SizeClasses() []SizeClass {
	return []SizeClass{SizeLarge, SizeMedium, SizeSmall}
}

func (s SizeClass) Valid() bool {
	return s >= 0 && int(s) < len(sizeDimensions)
}

// Next returns the following size class, wrapping from Small back to Large
func (s SizeClass) Next() SizeClass {
	return (s + 1) % SizeClass(len(sizeDimensions))
}

// Dimensions returns the base (portrait) print dimensions of the size class
func (s SizeClass) Dimensions() Dimensions {
	if !s.Valid() {
		return Dimensions{}
	}
	return sizeDimensions[s]
}

func (s SizeClass) String() string {
	if !s.Valid() {
		return fmt.Sprintf("SizeClass(%d)", int(s))
	}
	return sizeLabels[s]
}

// SizeClassFromIndex converts a persisted size index into a SizeClass
func SizeClassFromIndex(index int) (SizeClass, error) {
	s := SizeClass(index)
	if !s.Valid() {
		return 0, fmt.Errorf("size index %d out of range [0,%d)", index, len(sizeDimensions))
	}
	return s, nil
}

// ParseSizeClass accepts a short label ("L") or a full name ("large")
func ParseSizeClass(name string) (SizeClass, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "l", "large":
		return SizeLarge, nil
	case "m", "medium":
		return SizeMedium, nil
	case "s", "small":
		return SizeSmall, nil
	default:
		return 0, fmt.Errorf("unknown size class %q", name)
	}
}

// Dimensions is a width/height pair in physical print units
type Dimensions struct {
	Width  float64
	Height float64
}

func (d Dimensions) Aspect() float64 {
	if d.Height == 0 {
		return 0
	}
	return d.Width / d.Height
}

func (d Dimensions) Swapped() Dimensions {
	return Dimensions{Width: d.Height, Height: d.Width}
}

// Orientation of a frame relative to its size class
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Orient classifies a source against a size class's base dimensions and
// returns the dimensions the frame should actually use. A source strictly
// wider than the base aspect is landscape; equal aspects stay portrait.
func Orient(sourceAspect float64, base Dimensions) (Orientation, Dimensions) {
	orientation := Portrait
	if sourceAspect > base.Aspect() {
		orientation = Landscape
	}

	effective := base
	switch {
	case orientation == Landscape && base.Width < base.Height:
		effective = base.Swapped()
	case orientation == Portrait && base.Width > base.Height:
		effective = base.Swapped()
	}
	return orientation, effective
}
