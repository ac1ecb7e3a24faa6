package layout

import (
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"

	"github.com/nfrund/ytu/internal/geometry"
)

// Circle is one decorative blob behind a stats card. Top and Left are
// percentages of the card size.
type Circle struct {
	Color string  `json:"color"`
	Size  float64 `json:"size"`
	Top   float64 `json:"top"`
	Left  float64 `json:"left"`
}

// SeedFor derives a stable decoration seed from a card key.
func SeedFor(key string) uint64 {
	return xxhash.Sum64String(key)
}

// Circles sizes one circle per color from the card's measured dimension.
// Each circle spans between half and all of the card's larger side and is
// offset up to 50% from the top-left corner. The same seed always yields the
// same offsets and scale factors.
func Circles(d geometry.Dimension, colors []string, seed uint64) []Circle {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	base := d.Max()
	out := make([]Circle, len(colors))
	for i, color := range colors {
		out[i] = Circle{
			Color: color,
			Size:  base * (rng.Float64()*0.5 + 0.5),
			Top:   rng.Float64() * 50,
			Left:  rng.Float64() * 50,
		}
	}
	return out
}
