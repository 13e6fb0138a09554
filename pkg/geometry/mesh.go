package geometry

import (
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// TriangleMesh is a collection of triangles intersected through an internal
// octree. The mesh is one primitive: the object's material and transform
// apply to every triangle, and the ray cache records which triangle was hit.
type TriangleMesh struct {
	triangles []*Triangle
	octree    *Octree
	bbox      core.AABB
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Normals             []core.Vec3 // Optional per-vertex normals
	UVs                 []core.Vec2 // Optional per-vertex texture coordinates
	MaxTrianglesPerNode int         // Octree leaf capacity (0 for default)
	MaxDepth            int         // Octree depth limit (0 for default)
}

// NewTriangleMesh creates a mesh from vertices and face indices, where each
// group of three indices forms a triangle. options may be nil.
func NewTriangleMesh(vertices []core.Vec3, faces []int, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("face indices must be a multiple of 3, got %d", len(faces))
	}
	if options == nil {
		options = &TriangleMeshOptions{}
	}
	if options.Normals != nil && len(options.Normals) != len(vertices) {
		return nil, fmt.Errorf("got %d normals for %d vertices", len(options.Normals), len(vertices))
	}
	if options.UVs != nil && len(options.UVs) != len(vertices) {
		return nil, fmt.Errorf("got %d texture coordinates for %d vertices", len(options.UVs), len(vertices))
	}

	triangles := make([]*Triangle, 0, len(faces)/3)
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		for _, idx := range []int{i0, i1, i2} {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face %d: vertex index %d out of range", i/3, idx)
			}
		}

		tri := NewTriangle(vertices[i0], vertices[i1], vertices[i2])
		if options.Normals != nil {
			tri.Normals = &[3]core.Vec3{options.Normals[i0], options.Normals[i1], options.Normals[i2]}
		}
		if options.UVs != nil {
			tri.UVs = &[3]core.Vec2{options.UVs[i0], options.UVs[i1], options.UVs[i2]}
		}
		triangles = append(triangles, tri)
	}

	return NewTriangleMeshFromTriangles(triangles, options.MaxTrianglesPerNode, options.MaxDepth), nil
}

// NewTriangleMeshFromTriangles builds a mesh over existing triangles
func NewTriangleMeshFromTriangles(triangles []*Triangle, maxTrianglesPerNode, maxDepth int) *TriangleMesh {
	mesh := &TriangleMesh{
		triangles: triangles,
		octree:    NewOctree(triangles, maxTrianglesPerNode, maxDepth),
	}
	if len(triangles) > 0 {
		mesh.bbox = triangles[0].BoundingBox()
		for _, tri := range triangles[1:] {
			mesh.bbox = mesh.bbox.Union(tri.BoundingBox())
		}
	}
	return mesh
}

// NewBoxMesh creates an axis-aligned box of twelve outward-facing triangles
// centred at center. halfSize holds the half-extents along each axis.
func NewBoxMesh(center, halfSize core.Vec3) *TriangleMesh {
	corner := func(x, y, z float64) core.Vec3 {
		return center.Add(core.NewVec3(x*halfSize.X, y*halfSize.Y, z*halfSize.Z))
	}
	vertices := []core.Vec3{
		corner(-1, -1, -1), // 0: left-bottom-back
		corner(1, -1, -1),  // 1: right-bottom-back
		corner(1, 1, -1),   // 2: right-top-back
		corner(-1, 1, -1),  // 3: left-top-back
		corner(-1, -1, 1),  // 4: left-bottom-front
		corner(1, -1, 1),   // 5: right-bottom-front
		corner(1, 1, 1),    // 6: right-top-front
		corner(-1, 1, 1),   // 7: left-top-front
	}
	faces := []int{
		4, 5, 6, 4, 6, 7, // +Z
		1, 0, 3, 1, 3, 2, // -Z
		5, 1, 2, 5, 2, 6, // +X
		0, 4, 7, 0, 7, 3, // -X
		7, 6, 2, 7, 2, 3, // +Y
		0, 1, 5, 0, 5, 4, // -Y
	}

	triangles := make([]*Triangle, 0, 12)
	for i := 0; i < len(faces); i += 3 {
		triangles = append(triangles, NewTriangle(vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]]))
	}
	return NewTriangleMeshFromTriangles(triangles, 0, 0)
}

// Intersect delegates to the octree
func (tm *TriangleMesh) Intersect(ray core.Ray, hit *HitRecord) bool {
	return tm.octree.Intersect(ray, hit)
}

// Normal returns the normal of the triangle recorded in hit
func (tm *TriangleMesh) Normal(point core.Vec3, hit *HitRecord) core.Vec3 {
	if hit.Shape == nil || hit.Shape == Shape(tm) {
		return core.NewVec3(0, 1, 0)
	}
	return hit.Shape.Normal(point, hit)
}

// UV returns the texture coordinates of the triangle recorded in hit
func (tm *TriangleMesh) UV(point core.Vec3, hit *HitRecord) core.Vec2 {
	if hit.Shape == nil || hit.Shape == Shape(tm) {
		return core.Vec2{}
	}
	return hit.Shape.UV(point, hit)
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// Triangles returns the individual triangles
func (tm *TriangleMesh) Triangles() []*Triangle {
	return tm.triangles
}

// Octree returns the mesh's acceleration structure
func (tm *TriangleMesh) Octree() *Octree {
	return tm.octree
}
