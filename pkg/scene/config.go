package scene

import (
	"fmt"
	"strings"

	"github.com/df07/go-photon-raytracer/pkg/core"
	"github.com/df07/go-photon-raytracer/pkg/sampling"
)

// Mode selects the lighting algorithm
type Mode int

const (
	// ModeStandard is direct lighting plus specular reflection and refraction
	ModeStandard Mode = iota
	// ModePhoton adds an indirect term estimated from the photon map
	ModePhoton
)

func (m Mode) String() string {
	switch m {
	case ModeStandard:
		return "standard"
	case ModePhoton:
		return "photon"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name into a Mode
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "standard", "":
		return ModeStandard, nil
	case "photon":
		return ModePhoton, nil
	default:
		return ModeStandard, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfig, name)
	}
}

// Config contains the render configuration of a scene
type Config struct {
	Mode   Mode
	Width  int // Image width
	Height int // Image height

	// Camera and Sampler are replaced by defaults during Setup when nil
	Camera  sampling.Camera
	Sampler sampling.PixelSampler

	Ambient    float64   // Ambient intensity applied to the diffuse color
	Background core.Vec3 // Color seen by rays that hit nothing

	MaxDepth           int     // Maximum reflection/refraction recursion depth
	RecursionThreshold float64 // Contribution factor below which recursion stops

	GlossyReflectSamples int // Glossy reflection grid is N x N
	GlossyRefractSamples int // Glossy refraction grid is N x N

	PhotonCount        int     // Photons emitted across all lights
	PhotonBounces      int     // Maximum bounces per photon
	PhotonSearchRadius float64 // Radius of the density estimate
	MaxPhotonSamples   int     // Photons gathered per estimate

	Gamma float64
	Seed  int64 // Seed for photon emission
}

// DefaultConfig returns the configuration used when a scene leaves a value
// unset.
func DefaultConfig() Config {
	return Config{
		Mode:                 ModeStandard,
		Width:                100,
		Height:               100,
		Ambient:              0.0,
		Background:           core.NewVec3(0, 0, 0),
		MaxDepth:             1,
		RecursionThreshold:   1.0 / 256.0,
		GlossyReflectSamples: 1,
		GlossyRefractSamples: 1,
		PhotonCount:          0,
		PhotonBounces:        4,
		PhotonSearchRadius:   1.0,
		MaxPhotonSamples:     100,
		Gamma:                1.0,
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Gamma <= 0:
		return fmt.Errorf("%w: gamma %g must be positive", ErrInvalidConfig, c.Gamma)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: max depth %d is negative", ErrInvalidConfig, c.MaxDepth)
	case c.RecursionThreshold < 0:
		return fmt.Errorf("%w: recursion threshold %g is negative", ErrInvalidConfig, c.RecursionThreshold)
	case c.GlossyReflectSamples < 1 || c.GlossyRefractSamples < 1:
		return fmt.Errorf("%w: glossy samples must be at least 1", ErrInvalidConfig)
	case c.Mode != ModeStandard && c.Mode != ModePhoton:
		return fmt.Errorf("%w: %s", ErrInvalidConfig, c.Mode)
	}

	if c.Mode == ModePhoton {
		switch {
		case c.PhotonCount < 0:
			return fmt.Errorf("%w: photon count %d is negative", ErrInvalidConfig, c.PhotonCount)
		case c.PhotonBounces < 1:
			return fmt.Errorf("%w: photon bounces must be at least 1", ErrInvalidConfig)
		case c.PhotonSearchRadius <= 0:
			return fmt.Errorf("%w: photon search radius must be positive", ErrInvalidConfig)
		case c.MaxPhotonSamples < 1:
			return fmt.Errorf("%w: max photon samples must be at least 1", ErrInvalidConfig)
		}
	}
	return nil
}
