// Package scale fits a glTF model into a target size by scaling its root
// node.
package scale

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/glbpack/pkg/gltf"
)

// Scale errors.
var (
	ErrNoRootNode       = errors.New("document has no nodes")
	ErrNoBounds         = errors.New("no accessor defines min and max")
	ErrDegenerateBounds = errors.New("bounding box has non-positive extent")
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Extent returns the size of the box along each axis.
func (b Bounds) Extent() mgl64.Vec3 {
	return b.Max.Sub(b.Min)
}

// DocumentBounds merges the min/max of every accessor that defines both
// with at least three components. Only the first three components are
// used.
func DocumentBounds(doc *gltf.Document) (Bounds, error) {
	b := Bounds{
		Min: mgl64.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: mgl64.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}

	found := false
	for _, acc := range doc.Accessors {
		if acc == nil || len(acc.Min) < 3 || len(acc.Max) < 3 {
			continue
		}
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], acc.Min[i])
			b.Max[i] = math.Max(b.Max[i], acc.Max[i])
		}
		found = true
	}

	if !found {
		return Bounds{}, ErrNoBounds
	}
	return b, nil
}

// Compute returns the per-axis scale that maps the document's bounding
// box onto target.
func Compute(doc *gltf.Document, target mgl64.Vec3) (mgl64.Vec3, error) {
	b, err := DocumentBounds(doc)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	extent := b.Extent()
	var s mgl64.Vec3
	for i := 0; i < 3; i++ {
		if extent[i] <= 0 {
			return mgl64.Vec3{}, fmt.Errorf("%w: axis %d", ErrDegenerateBounds, i)
		}
		s[i] = target[i] / extent[i]
	}
	return s, nil
}

// Apply computes the scale for target and stores it in nodes[0].scale.
func Apply(doc *gltf.Document, target mgl64.Vec3) (mgl64.Vec3, error) {
	if len(doc.Nodes) == 0 || doc.Nodes[0] == nil {
		return mgl64.Vec3{}, ErrNoRootNode
	}

	s, err := Compute(doc, target)
	if err != nil {
		return mgl64.Vec3{}, err
	}

	doc.Nodes[0].Scale = []float64{s[0], s[1], s[2]}
	return s, nil
}
