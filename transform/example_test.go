package transform_test

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"

	"github.com/tidop/geomath/transform"
)

func ExampleCompose() {
	rot := transform.NewRotation2D(math.Pi / 2)
	shift := transform.NewTranslation2D(10, 0)

	// rotate first, then shift
	a, _ := transform.Compose(shift, rot)
	p, _ := transform.Point2(a, r2.Point{X: 1, Y: 0})
	fmt.Printf("%.1f %.1f\n", p.X, p.Y)
	// Output: 10.0 1.0
}

func ExampleHelmert_Inverse() {
	h, _ := transform.NewHelmert2D(2, 5, 5, math.Pi)
	inv, _ := h.Inverse()
	p, _ := transform.Point2(h, r2.Point{X: 1, Y: 2})
	q, _ := transform.Point2(inv, p)
	fmt.Printf("(%.1f, %.1f) -> (%.1f, %.1f)\n", p.X, p.Y, q.X, q.Y)
	// Output: (3.0, 1.0) -> (1.0, 2.0)
}
