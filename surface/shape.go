package surface

// Rect is a filled, axis aligned rectangle. Max is exclusive.
type Rect struct {
	Min, Max Coordinate
	Color    Color
}

func (r Rect) Empty() bool { return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y }

// Shape expands r row by row.
func (r Rect) Shape() Shape {
	if r.Empty() {
		return Shape{}
	}
	pixels := make([]Pixel, 0, (r.Max.X-r.Min.X)*(r.Max.Y-r.Min.Y))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			pixels = append(pixels, Pixel{Coordinate: Coordinate{X: x, Y: y}, Color: r.Color})
		}
	}
	return Shape{Pixels: pixels}
}

// Add appends the pixels of other, later pixels win on overlap.
func (s Shape) Add(other Shape) Shape {
	pixels := make([]Pixel, 0, len(s.Pixels)+len(other.Pixels))
	pixels = append(pixels, s.Pixels...)
	pixels = append(pixels, other.Pixels...)
	return Shape{Pixels: pixels}
}
