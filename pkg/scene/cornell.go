package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/camera"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// cornellSize is the edge length of the box
const cornellSize = 5.0

// NewCornellPhotonScene creates a Cornell box with a glass sphere and a
// mirrored block, lit by a point light below the ceiling. Indirect light and
// caustics come from the photon map.
func NewCornellPhotonScene(params Params) (*Scene, error) {
	config := DefaultConfig()
	config.Mode = ModePhoton
	config.Width = 300
	config.Height = 300
	config.MaxDepth = 4
	config.PhotonCount = 200000
	config.PhotonBounces = 4
	config.PhotonSearchRadius = 0.4
	config.MaxPhotonSamples = 150
	config.Gamma = 2.2
	config.Camera = camera.NewLookAt(
		core.NewVec3(cornellSize/2, cornellSize/2, -6.5), // Outside the open side of the box
		core.NewVec3(cornellSize/2, cornellSize/2, 0),
		core.NewVec3(0, 1, 0),
		42,
	)

	s := New(config)

	// Create materials
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))

	glass := material.NewDielectric(1.5)
	glass.SpecularFactor = 1
	glass.Shininess = 200

	mirror := material.NewDiffuse(core.NewVec3(0.05, 0.05, 0.05))
	mirror.DiffuseFactor = 0.1
	mirror.Reflectivity = 0.9

	size := cornellSize
	err := s.Add(
		// Floor, ceiling and back wall
		geometry.NewObject(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(size, 0, 0)), white),
		geometry.NewObject(geometry.NewQuad(core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size)), white.Clone()),
		geometry.NewObject(geometry.NewQuad(core.NewVec3(0, 0, size), core.NewVec3(0, size, 0), core.NewVec3(size, 0, 0)), white.Clone()),

		// Left (red) and right (green) walls
		geometry.NewObject(geometry.NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, size, 0), core.NewVec3(0, 0, size)), red),
		geometry.NewObject(geometry.NewQuad(core.NewVec3(size, 0, 0), core.NewVec3(0, 0, size), core.NewVec3(0, size, 0)), green),

		// Contents
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), glass).Translate(core.NewVec3(3.4, 1, 1.8)),
		geometry.NewObject(geometry.NewBoxMesh(core.Vec3{}, core.NewVec3(0.75, 1.5, 0.75)), mirror).
			Rotate(core.NewVec3(0, 20, 0)).
			Translate(core.NewVec3(1.5, 1.5, 3.3)),

		// Visible lamp
		geometry.NewObject(geometry.NewSphere(core.NewVec3(size/2, size-0.05, size/2), 0.2), material.NewEmissive(core.NewVec3(1, 1, 1))),
	)
	if err != nil {
		return nil, err
	}

	lamp := lights.NewPointLight(core.NewVec3(size/2, size-0.5, size/2), core.NewVec3(1, 0.95, 0.85), 12)
	lamp.Falloff = true
	if err := s.AddLight(lamp); err != nil {
		return nil, err
	}
	return s, nil
}
