package shapes

import "fmt"

// Shape is anything with an area.
type Shape interface {
	Area() float64
	Scale(factor float64) Shape
}

type Point struct {
	X, Y int
}

type Polygon struct {
	Point
	Vertices []Point
	name     string
}

func (p *Polygon) Area() float64 {
	total := 0.0
	each := func(i int, q Point) {
		total += float64(q.X*q.Y + i)
	}

	for i, v := range p.Vertices {
		each(i, v)
	}

	return total
}

func (p *Polygon) Scale(factor float64) Shape {
	for i := range p.Vertices {
		p.Vertices[i].X = int(float64(p.Vertices[i].X) * factor)
	}

	return p
}

func (p *Polygon) Describe(prefix string, tags ...string) string {
	return fmt.Sprint(prefix, tags, func() string {
		return func() string { return p.name }()
	}())
}

func NewPolygon(points ...Point) *Polygon {
	return &Polygon{Vertices: points}
}
