package scene

import (
	"fmt"
	"math"
	"time"

	"github.com/df07/go-photon-raytracer/pkg/camera"
	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/geometry"
	"github.com/df07/go-photon-raytracer/pkg/lights"
	"github.com/df07/go-photon-raytracer/pkg/log"
	"github.com/df07/go-photon-raytracer/pkg/photon"
	"github.com/df07/go-photon-raytracer/pkg/sampling"
)

// Scene contains everything needed for tracing. Objects and lights are added
// while building; Setup freezes the scene, after which it is read-only and
// safe to share between workers.
type Scene struct {
	Config  Config
	Objects []*geometry.Object
	Lights  []lights.Light
	Photons *photon.Map // nil unless Mode is ModePhoton

	bounds core.AABB
	frozen bool
	logger log.Logger
}

// New creates an empty scene with the given configuration
func New(config Config) *Scene {
	return &Scene{
		Config:  config,
		Objects: make([]*geometry.Object, 0),
		Lights:  make([]lights.Light, 0),
		logger:  log.New("scene"),
	}
}

// Add appends objects to the scene, assigning each its ID
func (s *Scene) Add(objects ...*geometry.Object) error {
	if s.frozen {
		return ErrFrozen
	}
	for _, obj := range objects {
		obj.ID = len(s.Objects)
		obj.Material.OwnerID = obj.ID
		s.Objects = append(s.Objects, obj)
	}
	return nil
}

// AddLight appends lights to the scene
func (s *Scene) AddLight(ls ...lights.Light) error {
	if s.frozen {
		return ErrFrozen
	}
	s.Lights = append(s.Lights, ls...)
	return nil
}

// Setup validates the configuration, substitutes a default camera and pixel
// sampler when none is set, emits photons in photon mode and freezes the
// scene. It runs once; later calls fail with ErrFrozen.
func (s *Scene) Setup() error {
	if s.frozen {
		return ErrFrozen
	}
	if err := s.Config.Validate(); err != nil {
		return err
	}

	if s.Config.Camera == nil {
		s.Config.Camera = camera.Default()
	}
	if s.Config.Sampler == nil {
		s.Config.Sampler = sampling.Default()
	}

	s.bounds = s.computeBounds()

	if s.Config.Mode == ModePhoton {
		start := time.Now()
		stored, err := s.emitPhotons()
		if err != nil {
			return fmt.Errorf("emitting photons: %w", err)
		}
		s.logger.Infof("Stored %d photons in %v", stored, time.Since(start))
	}

	s.frozen = true
	s.logger.Infof("Scene ready: %d objects (%d primitives), %d lights, mode %s",
		len(s.Objects), s.PrimitiveCount(), len(s.Lights), s.Config.Mode)
	return nil
}

// Frozen reports whether Setup has completed
func (s *Scene) Frozen() bool {
	return s.frozen
}

// Bounds returns the bounding box of all bounded objects. It is computed
// during Setup.
func (s *Scene) Bounds() core.AABB {
	return s.bounds
}

func (s *Scene) computeBounds() core.AABB {
	var bounds core.AABB
	found := false
	for _, obj := range s.Objects {
		box, ok := obj.BoundingBox()
		if !ok {
			continue
		}
		if !found {
			bounds = box
			found = true
			continue
		}
		bounds = bounds.Union(box)
	}

	if !found {
		// Only unbounded geometry; use a unit box around the origin
		return core.NewAABB(core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1))
	}
	return bounds
}

// Intersect finds the nearest object hit by ray and records it in the ray's
// cache. It reports whether anything was hit.
func (s *Scene) Intersect(ray *geometry.Ray) bool {
	ray.Reset()

	closest := math.Inf(1)
	var hit geometry.HitRecord
	for _, obj := range s.Objects {
		if !obj.Intersect(ray.Ray, &hit) || hit.T >= closest {
			continue
		}
		closest = hit.T
		ray.Record(obj, hit)
	}
	return ray.Hit()
}

// Visibility implements lights.Occluder. It stops at the first non-emissive
// object hit before maxDistance rather than searching for the nearest one.
func (s *Scene) Visibility(ray core.Ray, maxDistance float64) float64 {
	var hit geometry.HitRecord
	for _, obj := range s.Objects {
		if obj.Emissive() {
			continue
		}
		if obj.Intersect(ray, &hit) && hit.T <= maxDistance {
			return 0
		}
	}
	return 1
}

// PrimitiveCount returns the total number of primitives, counting every
// triangle of a mesh
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, obj := range s.Objects {
		switch shape := obj.Shape.(type) {
		case *geometry.TriangleMesh:
			count += len(shape.Triangles())
		default:
			count++
		}
	}
	return count
}
