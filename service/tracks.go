package service

import (
	"errors"
	"path/filepath"
)

// ErrUnknownTrack is returned when a selector isn't registered in the
// catalog. The callback routing already filters these, so hitting it
// outside of tests means a stale or hand-crafted payload.
var ErrUnknownTrack = errors.New("unknown backing track")

type track struct {
	Title    string
	Filename string
}

// TrackCatalog maps short selector names to backing track files inside a
// fixed directory. Adding a track means registering one more entry here.
type TrackCatalog struct {
	dir     string
	entries map[string]track
	order   []string
}

// DefaultTrack is the selector every new audio starts with.
const DefaultTrack = "krovo"

// NewTrackCatalog returns the built-in catalog rooted at dir.
func NewTrackCatalog(dir string) *TrackCatalog {
	return &TrackCatalog{
		dir: dir,
		entries: map[string]track{
			"krovo":     {Title: "Кровосток", Filename: "krovominus.mp3"},
			"govno":     {Title: "Говно", Filename: "govnominus.mp3"},
			"biografia": {Title: "Биография", Filename: "biografiaminus.mp3"},
		},
		order: []string{"krovo", "govno", "biografia"},
	}
}

// Has reports whether selector is registered
func (c *TrackCatalog) Has(selector string) bool {
	_, ok := c.entries[selector]
	return ok
}

// Resolve returns the file path for a selector
func (c *TrackCatalog) Resolve(selector string) (string, error) {
	t, ok := c.entries[selector]
	if !ok {
		return "", ErrUnknownTrack
	}

	return filepath.Join(c.dir, t.Filename), nil
}

// Title returns the display name for a selector, or the selector itself
// if it's not registered
func (c *TrackCatalog) Title(selector string) string {
	t, ok := c.entries[selector]
	if !ok {
		return selector
	}

	return t.Title
}

// Selectors returns all registered selectors in menu order
func (c *TrackCatalog) Selectors() []string {
	return c.order
}
