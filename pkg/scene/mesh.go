package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/camera"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/loaders"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// NewMeshScene creates octree-backed triangle meshes on a ground plane. When
// params.MeshPath is set the PLY model replaces the tessellated sphere and is
// scaled to fit a two unit box.
func NewMeshScene(params Params) (*Scene, error) {
	config := DefaultConfig()
	config.Width = 400
	config.Height = 300
	config.Ambient = 0.08
	config.Background = core.NewVec3(0.15, 0.15, 0.2)
	config.MaxDepth = 2
	config.Camera = camera.NewLookAt(core.NewVec3(0, 2.5, -6), core.NewVec3(0, 0.8, 0), core.NewVec3(0, 1, 0), 45)

	s := New(config)

	bronze := material.NewDiffuse(core.NewVec3(0.7, 0.45, 0.2))
	bronze.SpecularFactor = 0.6
	bronze.Shininess = 60
	bronze.Reflectivity = 0.2
	bronze.ReflectColor = core.NewVec3(0.9, 0.6, 0.3)

	var model *geometry.Object
	if params.MeshPath != "" {
		mesh, err := loadPLYMesh(params.MeshPath)
		if err != nil {
			return nil, err
		}
		model = fitToUnitBox(geometry.NewObject(mesh, bronze), mesh.BoundingBox())
		model.Translate(core.NewVec3(0.9, 1, 0))
	} else {
		mesh, err := NewSphereMesh(1, 48, 96)
		if err != nil {
			return nil, err
		}
		model = geometry.NewObject(mesh, bronze).Translate(core.NewVec3(0.9, 1, 0))
	}

	blue := material.NewDiffuse(core.NewVec3(0.2, 0.3, 0.8))
	blue.SpecularFactor = 0.3

	floor := material.NewDiffuse(core.NewVec3(1, 1, 1))
	floor.Texture = material.NewChecker(core.NewVec3(0.8, 0.8, 0.8), core.NewVec3(0.35, 0.35, 0.35), 1)

	err := s.Add(
		model,
		geometry.NewObject(geometry.NewBoxMesh(core.Vec3{}, core.NewVec3(0.6, 0.6, 0.6)), blue).
			Rotate(core.NewVec3(0, 35, 0)).
			Translate(core.NewVec3(-1.4, 0.6, 0.5)),
		geometry.NewObject(geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0)), floor),
	)
	if err != nil {
		return nil, err
	}

	err = s.AddLight(
		lights.NewPointLight(core.NewVec3(-3, 6, -4), core.NewVec3(1, 1, 1), 0.8),
		lights.NewDirectionalLight(core.NewVec3(1, -1, 0.5), core.NewVec3(0.9, 0.9, 1), 0.3),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func loadPLYMesh(path string) (*geometry.TriangleMesh, error) {
	data, err := loaders.LoadPLY(path)
	if err != nil {
		return nil, fmt.Errorf("loading mesh: %w", err)
	}

	options := &geometry.TriangleMeshOptions{}
	if len(data.Normals) == len(data.Vertices) {
		options.Normals = data.Normals
	}
	if len(data.TexCoords) == len(data.Vertices) {
		options.UVs = data.TexCoords
	}
	return geometry.NewTriangleMesh(data.Vertices, data.Faces, options)
}

// fitToUnitBox centres obj on the origin and scales its largest extent to 2
func fitToUnitBox(obj *geometry.Object, box core.AABB) *geometry.Object {
	size := box.Size()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))
	if extent <= 0 {
		return obj
	}
	scale := 2 / extent
	return obj.Translate(box.Center().Negate()).Scale(core.NewVec3(scale, scale, scale))
}

// NewSphereMesh tessellates an origin-centred sphere into latitude rings and
// longitude segments with smooth vertex normals and spherical UVs
func NewSphereMesh(radius float64, rings, segments int) (*geometry.TriangleMesh, error) {
	if rings < 2 || segments < 3 {
		return nil, fmt.Errorf("sphere mesh needs at least 2 rings and 3 segments, got %d and %d", rings, segments)
	}

	vertices := make([]core.Vec3, 0, (rings+1)*(segments+1))
	normals := make([]core.Vec3, 0, cap(vertices))
	uvs := make([]core.Vec2, 0, cap(vertices))
	for i := 0; i <= rings; i++ {
		v := float64(i) / float64(rings)
		theta := v * math.Pi
		for j := 0; j <= segments; j++ {
			u := float64(j) / float64(segments)
			phi := u * 2 * math.Pi

			n := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
			vertices = append(vertices, n.Multiply(radius))
			normals = append(normals, n)
			uvs = append(uvs, core.NewVec2(u, 1-v))
		}
	}

	faces := make([]int, 0, rings*segments*6)
	stride := segments + 1
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			a := i*stride + j
			b := a + stride
			// Skip the degenerate triangles at the poles
			if i != 0 {
				faces = append(faces, a, a+1, b)
			}
			if i != rings-1 {
				faces = append(faces, a+1, b+1, b)
			}
		}
	}

	return geometry.NewTriangleMesh(vertices, faces, &geometry.TriangleMeshOptions{Normals: normals, UVs: uvs})
}
