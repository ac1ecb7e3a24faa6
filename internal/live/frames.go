// Package live runs the measurement channel between a browser tab and the
// server. The browser reports element boxes and viewport resizes; each
// session recomputes beams and stat-card decorations on its own event loop
// and pushes the results back.
package live

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/diagram"
	"github.com/nfrund/ytu/internal/geometry"
	"github.com/nfrund/ytu/internal/layout"
)

var (
	// ErrUnknownFrame is returned for frames whose type is not understood.
	ErrUnknownFrame = errors.New("unknown frame")
	// ErrInvalidFrame wraps validation failures of inbound frames.
	ErrInvalidFrame = errors.New("invalid frame")
)

// Client frame types.
const (
	FrameMount   = "mount"
	FrameResize  = "resize"
	FrameObserve = "observe"
	FrameUnmount = "unmount"
)

// Server frame types.
const (
	FrameBeams      = "beams"
	FrameDimensions = "dimensions"
	FrameCommand    = "command"
	FrameError      = "error"
)

// Views a client can mount.
const (
	ViewPath      = "path"
	ViewDashboard = "dashboard"
)

// CommandReload asks the browser to reload the page.
const CommandReload = "reload"

// ClientFrame is any frame sent by the browser. Boxes are in viewport
// coordinates, keyed by node id (path view) or card target (dashboard).
type ClientFrame struct {
	Type      string                   `json:"type" validate:"required"`
	View      string                   `json:"view,omitempty" validate:"omitempty,oneof=path dashboard"`
	Path      string                   `json:"path,omitempty" validate:"omitempty,max=64"`
	Viewport  float64                  `json:"viewport,omitempty" validate:"gte=0,lte=100000"`
	Container *geometry.Rect           `json:"container,omitempty"`
	Boxes     map[string]geometry.Rect `json:"boxes,omitempty" validate:"max=64,dive"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeClientFrame parses and validates a browser frame.
func DecodeClientFrame(data []byte) (ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	switch f.Type {
	case FrameMount, FrameResize, FrameObserve, FrameUnmount:
	default:
		return f, fmt.Errorf("%w: %q", ErrUnknownFrame, f.Type)
	}
	if f.Type == FrameMount && f.View == "" {
		return f, fmt.Errorf("%w: mount needs a view", ErrInvalidFrame)
	}
	if err := validate.Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return f, fmt.Errorf("%w: %s failed %q", ErrInvalidFrame, verrs[0].Namespace(), verrs[0].Tag())
		}
		return f, fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	return f, nil
}

// BeamFrame is one beam as sent to the browser.
type BeamFrame struct {
	Key    string         `json:"key"`
	ID     string         `json:"id"`
	D      string         `json:"d"`
	Start  geometry.Point `json:"start"`
	End    geometry.Point `json:"end"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
}

// BeamsFrame carries every computed beam of the mounted path.
type BeamsFrame struct {
	Type  string      `json:"type"`
	Path  string      `json:"path"`
	Style beam.Style  `json:"style"`
	Beams []BeamFrame `json:"beams"`
}

// NewBeamsFrame converts scene beams to their wire form.
func NewBeamsFrame(path string, style beam.Style, beams []diagram.Beam) BeamsFrame {
	f := BeamsFrame{Type: FrameBeams, Path: path, Style: style, Beams: make([]BeamFrame, len(beams))}
	for i, b := range beams {
		f.Beams[i] = BeamFrame{
			Key:    b.Key,
			ID:     b.ID,
			D:      b.Geometry.Path,
			Start:  b.Geometry.Start,
			End:    b.Geometry.End,
			Width:  b.Geometry.ContainerSize.Width,
			Height: b.Geometry.ContainerSize.Height,
		}
	}
	return f
}

// DimensionsFrame reports a debounced size change of an observed card.
type DimensionsFrame struct {
	Type    string          `json:"type"`
	Target  string          `json:"target"`
	Width   float64         `json:"width"`
	Height  float64         `json:"height"`
	Circles []layout.Circle `json:"circles,omitempty"`
}

// CommandFrame instructs the browser to do something.
type CommandFrame struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// ErrorFrame reports a rejected client frame.
type ErrorFrame struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
