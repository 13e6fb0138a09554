package geometry

import (
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// Octree defaults
const (
	DefaultMaxTrianglesPerNode = 10
	DefaultMaxDepth            = 8
)

// OctreeNode is a region of an Octree. Leaves hold triangle references;
// internal nodes hold exactly eight children produced by a midpoint split.
type OctreeNode struct {
	Bounds    core.AABB
	Parent    *OctreeNode
	Children  []*OctreeNode
	Triangles []*Triangle
	Depth     int
}

// IsLeaf reports whether the node has no children
func (n *OctreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}

// OctreeStats summarizes the shape of a built octree
type OctreeStats struct {
	Nodes        int
	Leaves       int
	Depth        int
	Triangles    int
	TriangleRefs int // references across all leaves, counting duplicates
	LargestLeaf  int
}

// Octree accelerates ray queries against a fixed triangle set. It is built
// once and is read-only afterwards, so concurrent queries are safe.
type Octree struct {
	Root                *OctreeNode
	MaxTrianglesPerNode int
	MaxDepth            int
	stats               OctreeStats
}

// NewOctree builds an octree over triangles. Non-positive limits fall back to
// the defaults.
func NewOctree(triangles []*Triangle, maxTrianglesPerNode, maxDepth int) *Octree {
	if maxTrianglesPerNode <= 0 {
		maxTrianglesPerNode = DefaultMaxTrianglesPerNode
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	o := &Octree{
		MaxTrianglesPerNode: maxTrianglesPerNode,
		MaxDepth:            maxDepth,
	}

	var bounds core.AABB
	for i, tri := range triangles {
		if i == 0 {
			bounds = tri.BoundingBox()
		} else {
			bounds = bounds.Union(tri.BoundingBox())
		}
	}

	o.Root = &OctreeNode{Bounds: bounds.Expand(core.Epsilon), Triangles: triangles}
	o.stats.Triangles = len(triangles)
	o.build(o.Root)
	return o
}

func (o *Octree) build(node *OctreeNode) {
	o.stats.Nodes++
	if node.Depth > o.stats.Depth {
		o.stats.Depth = node.Depth
	}

	if len(node.Triangles) <= o.MaxTrianglesPerNode || node.Depth >= o.MaxDepth {
		o.stats.Leaves++
		o.stats.TriangleRefs += len(node.Triangles)
		if len(node.Triangles) > o.stats.LargestLeaf {
			o.stats.LargestLeaf = len(node.Triangles)
		}
		return
	}

	node.Children = make([]*OctreeNode, 8)
	for i := range node.Children {
		child := &OctreeNode{
			Bounds: node.Bounds.Octant(i),
			Parent: node,
			Depth:  node.Depth + 1,
		}
		for _, tri := range node.Triangles {
			if TriangleOverlapsAABB(tri, child.Bounds) {
				child.Triangles = append(child.Triangles, tri)
			}
		}
		node.Children[i] = child
	}
	node.Triangles = nil

	for _, child := range node.Children {
		o.build(child)
	}
}

// Stats returns the counts gathered while building
func (o *Octree) Stats() OctreeStats {
	return o.stats
}

// Walk calls fn for every node in depth-first order
func (o *Octree) Walk(fn func(*OctreeNode)) {
	var walk func(*OctreeNode)
	walk = func(n *OctreeNode) {
		fn(n)
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(o.Root)
}

// Intersect finds the nearest triangle hit along ray
func (o *Octree) Intersect(ray core.Ray, hit *HitRecord) bool {
	if o.Root == nil {
		return false
	}
	if _, _, ok := o.Root.Bounds.Intersect(ray, 0, math.Inf(1)); !ok {
		return false
	}
	return o.intersectNode(o.Root, ray, math.Inf(1), hit)
}

type childEntry struct {
	node  *OctreeNode
	entry float64
}

func (o *Octree) intersectNode(node *OctreeNode, ray core.Ray, tMax float64, hit *HitRecord) bool {
	if node.IsLeaf() {
		found := false
		var candidate HitRecord
		for _, tri := range node.Triangles {
			if tri.Intersect(ray, &candidate) && candidate.T < tMax {
				tMax = candidate.T
				*hit = candidate
				found = true
			}
		}
		return found
	}

	// Order the children the ray passes through by entry distance
	var order [8]childEntry
	count := 0
	for _, child := range node.Children {
		t0, _, ok := child.Bounds.Intersect(ray, 0, tMax)
		if !ok {
			continue
		}
		i := count
		for i > 0 && order[i-1].entry > t0 {
			order[i] = order[i-1]
			i--
		}
		order[i] = childEntry{node: child, entry: t0}
		count++
	}

	found := false
	for _, c := range order[:count] {
		// Every remaining child starts beyond the closest hit
		if found && c.entry > tMax {
			break
		}
		if o.intersectNode(c.node, ray, tMax, hit) {
			found = true
			tMax = hit.T
		}
	}
	return found
}

// TriangleOverlapsAABB reports whether the triangle intersects the box using
// the separating axis test: the three box axes, the triangle normal and the
// nine cross products of box axes with triangle edges.
func TriangleOverlapsAABB(tri *Triangle, box core.AABB) bool {
	verts := [3]core.Vec3{tri.V0, tri.V1, tri.V2}
	boxAxes := [3]core.Vec3{{X: 1}, {Y: 1}, {Z: 1}}

	// Box face normals
	for axis := 0; axis < 3; axis++ {
		triMin, triMax := projectTriangle(verts, boxAxes[axis])
		if !core.IntervalsOverlap(triMin, triMax, box.Min.Axis(axis), box.Max.Axis(axis)) {
			return false
		}
	}

	// Triangle normal
	normal := tri.V1.Subtract(tri.V0).Cross(tri.V2.Subtract(tri.V0))
	if separatedOn(verts, box, normal) {
		return false
	}

	// Edge cross products
	edges := [3]core.Vec3{
		tri.V1.Subtract(tri.V0),
		tri.V2.Subtract(tri.V1),
		tri.V0.Subtract(tri.V2),
	}
	for _, e := range edges {
		for _, a := range boxAxes {
			if separatedOn(verts, box, e.Cross(a)) {
				return false
			}
		}
	}
	return true
}

func separatedOn(verts [3]core.Vec3, box core.AABB, axis core.Vec3) bool {
	if axis.LengthSquared() < 1e-20 {
		return false
	}
	triMin, triMax := projectTriangle(verts, axis)
	boxMin, boxMax := projectAABB(box, axis)
	return !core.IntervalsOverlap(triMin, triMax, boxMin, boxMax)
}

func projectTriangle(verts [3]core.Vec3, axis core.Vec3) (float64, float64) {
	min := verts[0].Dot(axis)
	max := min
	for _, v := range verts[1:] {
		p := v.Dot(axis)
		min = math.Min(min, p)
		max = math.Max(max, p)
	}
	return min, max
}

func projectAABB(box core.AABB, axis core.Vec3) (float64, float64) {
	center := box.Center().Dot(axis)
	half := box.Size().Multiply(0.5)
	radius := half.X*math.Abs(axis.X) + half.Y*math.Abs(axis.Y) + half.Z*math.Abs(axis.Z)
	return center - radius, center + radius
}
