package scene

import (
	"fmt"
	"sort"
)

// Params adjust a built-in scene when it is loaded. Zero values and nil
// pointers keep the scene's own settings; MaxDepth and Seed are pointers so
// that zero can be requested.
type Params struct {
	Width       int
	Height      int
	Mode        string // "standard" or "photon"
	PhotonCount int
	MaxDepth    *int
	Seed        *int64 // Photon emission seed
	Gamma       float64
	MeshPath    string // PLY file used by the mesh scene
	TexturePath string // Image used as the ground texture of the glass scene
}

// Builder creates an unfrozen scene
type Builder func(params Params) (*Scene, error)

// Info describes a registered scene
type Info struct {
	Name        string
	Description string
}

type entry struct {
	info  Info
	build Builder
}

var registry = map[string]entry{}

// Register adds a named scene builder, replacing any previous one
func Register(name, description string, build Builder) {
	registry[name] = entry{info: Info{Name: name, Description: description}, build: build}
}

func init() {
	Register("spheres", "Diffuse, reflective and emissive spheres over a checkered floor", NewSpheresScene)
	Register("glass", "Glossy and refractive spheres lit by a spot light", NewGlassScene)
	Register("cornell-photon", "Cornell box with a glass sphere, rendered with photon mapping", NewCornellPhotonScene)
	Register("mesh", "Octree-accelerated triangle meshes, optionally loaded from a PLY file", NewMeshScene)
}

// List returns the registered scenes sorted by name
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, e := range registry {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Load builds the named scene, applies params and runs Setup. The returned
// scene is frozen and ready to trace.
func Load(name string, params Params) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}

	s, err := e.build(params)
	if err != nil {
		return nil, fmt.Errorf("building scene %q: %w", name, err)
	}
	if err := params.apply(&s.Config); err != nil {
		return nil, err
	}
	if err := s.Setup(); err != nil {
		return nil, fmt.Errorf("setting up scene %q: %w", name, err)
	}
	return s, nil
}

func (p Params) apply(c *Config) error {
	if p.Width > 0 {
		c.Width = p.Width
	}
	if p.Height > 0 {
		c.Height = p.Height
	}
	if p.Mode != "" {
		mode, err := ParseMode(p.Mode)
		if err != nil {
			return err
		}
		c.Mode = mode
	}
	if p.PhotonCount > 0 {
		c.PhotonCount = p.PhotonCount
	}
	if p.MaxDepth != nil {
		c.MaxDepth = *p.MaxDepth
	}
	if p.Seed != nil {
		c.Seed = *p.Seed
	}
	if p.Gamma > 0 {
		c.Gamma = p.Gamma
	}
	return nil
}
