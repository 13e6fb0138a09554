package scene

import (
	"fmt"

	"github.com/df07/go-photon-raytracer/pkg/camera"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/loaders"
	"github.com/df07/go-photon-raytracer/pkg/material"
	"github.com/df07/go-photon-raytracer/pkg/sampling"
)

// NewGlassScene creates clear and frosted glass spheres next to a brushed
// metal sphere, with glossy sampling enabled on the first bounce
func NewGlassScene(params Params) (*Scene, error) {
	config := DefaultConfig()
	config.Width = 400
	config.Height = 300
	config.Ambient = 0.05
	config.Background = core.NewVec3(0.6, 0.7, 0.9)
	config.MaxDepth = 5
	config.GlossyReflectSamples = 4
	config.GlossyRefractSamples = 4
	config.Gamma = 2.2
	config.Camera = camera.NewLookAt(core.NewVec3(0, 2, -6), core.NewVec3(0, 0.5, 2), core.NewVec3(0, 1, 0), 45)
	config.Sampler = sampling.NewStratifiedSampler(2)

	s := New(config)

	// Create materials
	glass := material.NewDielectric(1.5)
	glass.Refraction = 0.95

	frosted := glass.Clone()
	frosted.Glossiness = 0.15

	brushed := material.NewMetal(core.NewVec3(0.95, 0.8, 0.5), 0.2)
	brushed.Reflectivity = 0.7
	brushed.DiffuseColor = core.NewVec3(0.3, 0.25, 0.2)
	brushed.DiffuseFactor = 1

	ground := material.NewDiffuse(core.NewVec3(1, 1, 1))
	ground.Texture = material.NewCheckerboardImage(64, 64, 8, core.NewVec3(0.8, 0.3, 0.3), core.NewVec3(0.9, 0.9, 0.9))
	if params.TexturePath != "" {
		texture, err := loaders.LoadImageTexture(params.TexturePath)
		if err != nil {
			return nil, fmt.Errorf("loading ground texture: %w", err)
		}
		ground.Texture = texture
	}

	// Create objects
	err := s.Add(
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), glass).Translate(core.NewVec3(-2.1, 0, 2)),
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), frosted).Translate(core.NewVec3(0, 0, 2.5)),
		geometry.NewObject(geometry.NewSphere(core.NewVec3(0, 0, 0), 1), brushed).
			Scale(core.NewVec3(1, 1.3, 1)).
			Translate(core.NewVec3(2.1, 0.3, 2)),
		geometry.NewObject(geometry.NewQuad(core.NewVec3(-10, -1, -5), core.NewVec3(0, 0, 20), core.NewVec3(20, 0, 0)), ground),
	)
	if err != nil {
		return nil, err
	}

	err = s.AddLight(
		lights.NewSpotLight(core.NewVec3(0, 8, -2), core.NewVec3(0, 0, 2), core.NewVec3(1, 0.95, 0.9), 1.2, 35, 10),
		lights.NewDirectionalLight(core.NewVec3(-1, -1, 1), core.NewVec3(0.6, 0.7, 1.0), 0.3),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}
