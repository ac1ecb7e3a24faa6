// Package catalog holds the site's hard-coded content: the course catalog,
// the dashboard mock data and the learning-path diagrams.
package catalog

import (
	"errors"
	"fmt"

	"github.com/nfrund/ytu/internal/beam"
)

var (
	// ErrPathNotFound is returned when a learning path id is unknown.
	ErrPathNotFound = errors.New("learning path not found")
	// ErrInvalid wraps every validation failure of a catalog document.
	ErrInvalid = errors.New("invalid catalog")
)

// Course is an entry of the public course grid.
type Course struct {
	ID         int    `yaml:"id" json:"id" validate:"required,gt=0"`
	Title      string `yaml:"title" json:"title" validate:"required"`
	Instructor string `yaml:"instructor" json:"instructor" validate:"required"`
	Category   string `yaml:"category" json:"category" validate:"required"`
	Progress   int    `yaml:"progress" json:"progress" validate:"gte=0,lte=100"`
	Thumbnail  string `yaml:"thumbnail" json:"thumbnail" validate:"required,url"`
	Duration   string `yaml:"duration" json:"duration" validate:"required"`
}

// Profile is the signed-in student shown in the dashboard sidebar.
type Profile struct {
	Name          string `yaml:"name" validate:"required"`
	Rank          string `yaml:"rank" validate:"required"`
	Avatar        string `yaml:"avatar" validate:"required,url"`
	Level         int    `yaml:"level" validate:"gte=0"`
	LevelProgress int    `yaml:"levelProgress" validate:"gte=0,lte=100"`
}

// Link is a sidebar navigation entry.
type Link struct {
	Label string `yaml:"label" validate:"required"`
	Href  string `yaml:"href" validate:"required"`
	Icon  string `yaml:"icon"`
}

// Stat is a dashboard statistics card. Colors drive the decorative circles.
type Stat struct {
	Title    string   `yaml:"title" validate:"required"`
	Value    string   `yaml:"value" validate:"required"`
	Subtitle string   `yaml:"subtitle"`
	Icon     string   `yaml:"icon"`
	Colors   []string `yaml:"colors" validate:"min=1,dive,hexcolor"`
}

// DashboardCourse is a course card on the dashboard.
type DashboardCourse struct {
	Title      string `yaml:"title" validate:"required"`
	Instructor string `yaml:"instructor" validate:"required"`
	Progress   int    `yaml:"progress" validate:"gte=0,lte=100"`
	Thumbnail  string `yaml:"thumbnail" validate:"required,url"`
}

// Dashboard is the mock student dashboard.
type Dashboard struct {
	Profile     Profile           `yaml:"profile"`
	Links       []Link            `yaml:"links" validate:"dive"`
	Stats       []Stat            `yaml:"stats" validate:"dive"`
	InProgress  []DashboardCourse `yaml:"inProgress" validate:"dive"`
	Completed   []DashboardCourse `yaml:"completed" validate:"dive"`
	Recommended []DashboardCourse `yaml:"recommended" validate:"dive"`
}

// Node is one course card of a learning path.
type Node struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Title       string `yaml:"title" json:"title" validate:"required"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
	Color       string `yaml:"color" json:"color"`
}

// Connection is a beam between two nodes of the same path.
type Connection struct {
	From      string  `yaml:"from" json:"from" validate:"required"`
	To        string  `yaml:"to" json:"to" validate:"required"`
	Curvature float64 `yaml:"curvature" json:"curvature"`
	Reverse   bool    `yaml:"reverse" json:"reverse"`
}

// Key identifies the connection within its path.
func (c Connection) Key() string {
	return c.From + "->" + c.To
}

// Path is a learning-path diagram.
type Path struct {
	ID          string       `yaml:"id" json:"id" validate:"required"`
	Title       string       `yaml:"title" json:"title" validate:"required"`
	Description string       `yaml:"description" json:"description"`
	Curve       string       `yaml:"curve" json:"curve" validate:"omitempty,oneof=vertical perpendicular"`
	Style       beam.Style   `yaml:"style" json:"style"`
	Nodes       []Node       `yaml:"nodes" json:"nodes" validate:"min=1,dive"`
	Connections []Connection `yaml:"connections" json:"connections" validate:"dive"`
}

// NodeIndex returns the position of the node with the given id, or -1.
func (p *Path) NodeIndex(id string) int {
	for i, n := range p.Nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

// BeamOptions returns the beam options for a connection of p.
func (p *Path) BeamOptions(c Connection) beam.Options {
	curve, err := beam.ParseCurve(p.Curve)
	if err != nil {
		curve = beam.CurveVertical
	}
	return beam.Options{Curvature: c.Curvature, Reverse: c.Reverse, Curve: curve}
}

// BeamStyle returns the path's beam style with defaults filled in.
func (p *Path) BeamStyle() beam.Style {
	return p.Style.Merge(beam.DefaultStyle())
}

// Catalog is the complete content document.
type Catalog struct {
	Courses   []Course   `yaml:"courses" validate:"dive"`
	Dashboard *Dashboard `yaml:"dashboard" validate:"omitempty"`
	Paths     []Path     `yaml:"paths" validate:"min=1,dive"`
}

// Path looks up a learning path by id.
func (c *Catalog) Path(id string) (*Path, error) {
	for i := range c.Paths {
		if c.Paths[i].ID == id {
			return &c.Paths[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrPathNotFound, id)
}

// DefaultPath returns the first learning path.
func (c *Catalog) DefaultPath() *Path {
	if len(c.Paths) == 0 {
		return nil
	}
	return &c.Paths[0]
}

// PathIDs lists the learning path ids in document order.
func (c *Catalog) PathIDs() []string {
	ids := make([]string, len(c.Paths))
	for i, p := range c.Paths {
		ids[i] = p.ID
	}
	return ids
}
