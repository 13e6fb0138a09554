package lights

import (
	"fmt"
	"strings"
)

// PhotonBudget splits a photon count between lights in proportion to their
// power.
type PhotonBudget struct {
	lights  []Light
	weights []float64
	counts  []int
	total   float64
}

// NewPhotonBudget allocates photonCount photons across lights. When the
// lights carry no power at all every count is zero; the caller decides
// whether that is worth reporting.
func NewPhotonBudget(lights []Light, photonCount int) *PhotonBudget {
	b := &PhotonBudget{
		lights:  lights,
		weights: make([]float64, len(lights)),
		counts:  make([]int, len(lights)),
	}

	for _, light := range lights {
		if p := light.Power(); p > 0 {
			b.total += p
		}
	}
	if b.total <= 0 || photonCount <= 0 {
		return b
	}

	for i, light := range lights {
		if p := light.Power(); p > 0 {
			b.weights[i] = p / b.total
			b.counts[i] = int(b.weights[i] * float64(photonCount))
		}
	}
	return b
}

// TotalPower is the summed power of all lights
func (b *PhotonBudget) TotalPower() float64 {
	return b.total
}

// Count returns the number of photons light i should emit
func (b *PhotonBudget) Count(i int) int {
	if i < 0 || i >= len(b.counts) {
		return 0
	}
	return b.counts[i]
}

// Weight returns light i's share of the total power
func (b *PhotonBudget) Weight(i int) float64 {
	if i < 0 || i >= len(b.weights) {
		return 0
	}
	return b.weights[i]
}

// Total returns the number of photons allocated across all lights
func (b *PhotonBudget) Total() int {
	n := 0
	for _, c := range b.counts {
		n += c
	}
	return n
}

// String returns a string representation for debugging
func (b *PhotonBudget) String() string {
	if len(b.lights) == 0 {
		return "PhotonBudget{no lights}"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "PhotonBudget{%d lights, %d photons:\n", len(b.lights), b.Total())
	for i, light := range b.lights {
		fmt.Fprintf(&sb, "  [%d] %s: %.1f%% (%d)\n", i, light.Type(), b.weights[i]*100, b.counts[i])
	}
	sb.WriteString("}")
	return sb.String()
}
