package beam

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Style holds the presentational attributes of a beam.
type Style struct {
	PathWidth     float64       `yaml:"pathWidth" json:"pathWidth" validate:"gte=0"`
	GradientStart string        `yaml:"gradientStart" json:"gradientStart" validate:"omitempty,hexcolor"`
	GradientStop  string        `yaml:"gradientStop" json:"gradientStop" validate:"omitempty,hexcolor"`
	Duration      time.Duration `yaml:"duration" json:"duration" validate:"gte=0"`
}

// DefaultStyle is used for beams that configure nothing.
func DefaultStyle() Style {
	return Style{
		PathWidth:     2,
		GradientStart: "#ff0080",
		GradientStop:  "#7928ca",
		Duration:      2 * time.Second,
	}
}

// Merge fills the zero fields of s from base.
func (s Style) Merge(base Style) Style {
	if s.PathWidth == 0 {
		s.PathWidth = base.PathWidth
	}
	if s.GradientStart == "" {
		s.GradientStart = base.GradientStart
	}
	if s.GradientStop == "" {
		s.GradientStop = base.GradientStop
	}
	if s.Duration == 0 {
		s.Duration = base.Duration
	}
	return s
}

// IDGenerator produces document-unique ids for beam gradients.
type IDGenerator func() string

// UUIDs generates random gradient ids.
func UUIDs() IDGenerator {
	return func() string {
		return "gradient-" + uuid.NewString()
	}
}

// Sequence generates prefix-1, prefix-2, ... and is safe for concurrent use.
// Server-rendered documents use it so ids are stable across renders.
func Sequence(prefix string) IDGenerator {
	var n atomic.Uint64
	return func() string {
		return fmt.Sprintf("%s-%d", prefix, n.Add(1))
	}
}
