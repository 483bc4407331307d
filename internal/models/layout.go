package models

// LayoutOptions control the initial flow placement of a freshly loaded directory
type LayoutOptions struct {
	Margin     float64
	Padding    float64
	WrapFactor float64
}

func DefaultLayoutOptions() LayoutOptions {
	return LayoutOptions{
		Margin:     10,
		Padding:    20,
		WrapFactor: 1.5,
	}
}

// Size is a rendered width/height in canvas pixels
type Size struct {
	Width  float64
	Height float64
}

// FlowLayout places boxes left to right, top to bottom. After each box the
// cursor advances by its width plus padding; once the cursor passes
// canvasWidth - WrapFactor*width the next box starts a new row below the
// tallest box of the current one.
func FlowLayout(sizes []Size, canvasWidth float64, opts LayoutOptions) []Point {
	positions := make([]Point, len(sizes))

	x, y := opts.Margin, opts.Margin
	rowHeight := 0.0

	for i, size := range sizes {
		positions[i] = Point{X: x, Y: y}
		if size.Height > rowHeight {
			rowHeight = size.Height
		}

		x += size.Width + opts.Padding
		if x > canvasWidth-opts.WrapFactor*size.Width {
			x = opts.Margin
			y += rowHeight + opts.Padding
			rowHeight = 0
		}
	}

	return positions
}
