// Package output formats ytu-cli listings as tables or JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nfrund/ytu/internal/beam"
	"github.com/nfrund/ytu/internal/catalog"
	"github.com/nfrund/ytu/internal/pubsub"
)

// PathDisplay represents a learning path for display purposes
type PathDisplay struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Curve       string `json:"curve"`
	Nodes       int    `json:"nodes"`
	Connections int    `json:"connections"`
	Duration    string `json:"duration"`
}

// EventDisplay represents a bus event for display purposes
type EventDisplay struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func pathDisplay(p catalog.Path) PathDisplay {
	curve := p.Curve
	if curve == "" {
		curve = string(beam.CurveVertical)
	}
	return PathDisplay{
		ID:          p.ID,
		Title:       p.Title,
		Curve:       curve,
		Nodes:       len(p.Nodes),
		Connections: len(p.Connections),
		Duration:    p.BeamStyle().Duration.String(),
	}
}

// PathsTable writes paths as an aligned table.
func PathsTable(w io.Writer, paths []catalog.Path) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tTITLE\tCURVE\tNODES\tBEAMS\tDURATION")
	fmt.Fprintln(tw, "--\t-----\t-----\t-----\t-----\t--------")
	if len(paths) == 0 {
		fmt.Fprintln(tw, "No learning paths found")
		return
	}
	for _, p := range paths {
		d := pathDisplay(p)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			d.ID, Truncate(d.Title, 40), d.Curve, d.Nodes, d.Connections, d.Duration)
	}
}

// PathsJSON writes paths as indented JSON with a count.
func PathsJSON(w io.Writer, paths []catalog.Path) error {
	displays := make([]PathDisplay, len(paths))
	for i, p := range paths {
		displays[i] = pathDisplay(p)
	}
	return writeJSON(w, struct {
		Paths []PathDisplay `json:"paths"`
		Count int           `json:"count"`
	}{displays, len(displays)})
}

// EventsTable writes the declared bus events as an aligned table.
func EventsTable(w io.Writer, topics []pubsub.Topic) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "NAME\tDESCRIPTION")
	fmt.Fprintln(tw, "----\t-----------")
	for _, t := range topics {
		fmt.Fprintf(tw, "%s\t%s\n", t.Name, Truncate(t.Description, 60))
	}
}

// EventsJSON writes the declared bus events as indented JSON.
func EventsJSON(w io.Writer, topics []pubsub.Topic) error {
	displays := make([]EventDisplay, len(topics))
	for i, t := range topics {
		displays[i] = EventDisplay{Name: t.Name, Description: t.Description}
	}
	return writeJSON(w, struct {
		Events []EventDisplay `json:"events"`
		Count  int            `json:"count"`
	}{displays, len(displays)})
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// Truncate truncates a string to maxLen runes, adding "..." if truncated
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(r[:maxLen-3]) + "..."
}
