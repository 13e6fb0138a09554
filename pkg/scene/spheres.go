package scene

import (
	"github.com/df07/go-photon-raytracer/pkg/camera"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/material"
)

// NewSpheresScene creates a diffuse sphere in front of a visible emitter, a
// mirror sphere and a checkered floor, lit by one point light
func NewSpheresScene(params Params) (*Scene, error) {
	config := DefaultConfig()
	config.Width = 400
	config.Height = 300
	config.Ambient = 0.1
	config.Background = core.NewVec3(0.05, 0.05, 0.1)
	config.MaxDepth = 3
	config.Camera = camera.NewLookAt(core.NewVec3(0, 1, -4), core.NewVec3(0, 0.5, 5), core.NewVec3(0, 1, 0), 50)

	s := New(config)

	// Create materials
	red := material.NewDiffuse(core.NewVec3(0.8, 0.2, 0.15))
	red.SpecularFactor = 0.4
	red.Shininess = 40

	mirror := material.NewDiffuse(core.NewVec3(0.1, 0.1, 0.1))
	mirror.Reflectivity = 0.8
	mirror.ReflectColor = core.NewVec3(0.9, 0.9, 1.0)

	floor := material.NewDiffuse(core.NewVec3(1, 1, 1))
	floor.Texture = material.NewChecker(core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2), 1)
	floor.Reflectivity = 0.1

	// Create objects
	err := s.Add(
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), red).Translate(core.NewVec3(0, 0, 5)),
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 0.5), material.NewEmissive(core.NewVec3(1, 1, 1))).
			Translate(core.NewVec3(0.8, 1.2, 8)),
		geometry.NewObject(geometry.NewSphere(core.NewVec3(-2.2, 0, 6), 1), mirror),
		geometry.NewObject(geometry.NewPlane(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), floor),
	)
	if err != nil {
		return nil, err
	}

	if err := s.AddLight(lights.NewPointLight(core.NewVec3(4, 5, 0), core.NewVec3(1, 1, 1), 1.0)); err != nil {
		return nil, err
	}
	return s, nil
}
