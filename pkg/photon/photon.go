// Package photon stores photons deposited on diffuse surfaces and estimates
// indirect illumination from their local density.
package photon

import (
	"errors"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// ErrBuilt is returned when storing into a map that has been built
var ErrBuilt = errors.New("photon: map already built")

// R-tree node fan-out
const (
	minChildren = 25
	maxChildren = 50
	pointSize   = 1e-9
)

// Photon is a packet of light energy resting on a surface
type Photon struct {
	Position  core.Vec3
	Direction core.Vec3 // Travel direction on arrival
	Normal    core.Vec3 // Surface normal where the photon landed
	Power     core.Vec3
}

// Bounds implements rtreego.Spatial
func (p *Photon) Bounds() rtreego.Rect {
	return rtreego.Point{p.Position.X, p.Position.Y, p.Position.Z}.ToRect(pointSize)
}

// Neighbor is a photon returned by a proximity query
type Neighbor struct {
	Photon *Photon
	DistSq float64
}

// Map collects photons during emission and answers proximity queries once
// built. A built map is read-only and safe for concurrent queries.
type Map struct {
	photons []*Photon
	tree    *rtreego.Rtree
}

// NewMap returns an empty map ready for storing
func NewMap() *Map {
	return &Map{}
}

// Store adds a photon. It fails once the map is built.
func (m *Map) Store(p Photon) error {
	if m.tree != nil {
		return ErrBuilt
	}
	m.photons = append(m.photons, &p)
	return nil
}

// Build bulk-loads the spatial index. Calling it again is a no-op.
func (m *Map) Build() {
	if m.tree != nil {
		return
	}
	spatials := make([]rtreego.Spatial, len(m.photons))
	for i, p := range m.photons {
		spatials[i] = p
	}
	m.tree = rtreego.NewTree(3, minChildren, maxChildren, spatials...)
}

// Built reports whether Build has been called
func (m *Map) Built() bool {
	return m.tree != nil
}

// Len returns the number of stored photons
func (m *Map) Len() int {
	return len(m.photons)
}

// Photons returns the stored photons
func (m *Map) Photons() []*Photon {
	return m.photons
}

// NearestN returns up to n photons within radius of point, nearest first.
// Photons that landed on a surface facing away from normal are skipped so
// light does not bleed through thin geometry. An unbuilt map returns nothing.
func (m *Map) NearestN(point, normal core.Vec3, n int, radius float64) []Neighbor {
	if m.tree == nil || n <= 0 || radius <= 0 {
		return nil
	}

	corner := rtreego.Point{point.X - radius, point.Y - radius, point.Z - radius}
	box, err := rtreego.NewRect(corner, []float64{2 * radius, 2 * radius, 2 * radius})
	if err != nil {
		return nil
	}

	radiusSq := radius * radius
	within := func(results []rtreego.Spatial, object rtreego.Spatial) (bool, bool) {
		p := object.(*Photon)
		refuse := p.Position.Subtract(point).LengthSquared() > radiusSq || p.Normal.Dot(normal) <= 0
		return refuse, false
	}

	found := m.tree.SearchIntersect(box, within)
	neighbors := make([]Neighbor, len(found))
	for i, s := range found {
		p := s.(*Photon)
		neighbors[i] = Neighbor{Photon: p, DistSq: p.Position.Subtract(point).LengthSquared()}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].DistSq < neighbors[j].DistSq
	})
	if len(neighbors) > n {
		neighbors = neighbors[:n]
	}
	return neighbors
}

// minDiscSq is the squared disc radius below which the estimate falls back
// to the search radius
const minDiscSq = 1e-12

// Estimate returns the reflected indirect radiance at point: the Lambertian
// response to each nearby photon divided by the area of the gathering disc.
// The disc radius is the distance to the farthest photon used, however many
// were found. When that distance is (near) zero the search radius is used.
func (m *Map) Estimate(point, normal, diffuse core.Vec3, diffuseFactor float64, n int, radius float64) core.Vec3 {
	neighbors := m.NearestN(point, normal, n, radius)
	if len(neighbors) == 0 {
		return core.Vec3{}
	}

	discSq := neighbors[len(neighbors)-1].DistSq
	if discSq <= minDiscSq {
		discSq = radius * radius
	}

	var flux core.Vec3
	for _, nb := range neighbors {
		cos := math.Max(0, nb.Photon.Direction.Negate().Dot(normal))
		flux = flux.Add(nb.Photon.Power.Multiply(cos))
	}

	brdf := diffuse.Multiply(diffuseFactor / math.Pi)
	return flux.MultiplyVec(brdf).Multiply(1 / (math.Pi * discSq))
}
