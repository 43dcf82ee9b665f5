package changelog

import (
	"strings"
	"time"
)

const (
	// DefaultTitle is used when a document has no top-level heading.
	DefaultTitle = "Changelog"

	// UnreleasedLabel is the canonical label of the placeholder section that
	// accumulates changes not yet tied to a release. Matched
	// case-insensitively on read, always written in this form.
	UnreleasedLabel = "Unreleased"
)

// Change is a single categorized description, together with the commits it
// was derived from. Commits are full hashes; shortening happens at render
// time.
type Change struct {
	Description string
	Commits     []string
}

// ChangeSet maps each category to its ordered list of changes. A missing key
// and an empty list both mean "no entries for that category".
type ChangeSet map[Category][]Change

// Entry is one bullet of a parsed version section.
type Entry struct {
	Category    Category
	Description string
	Commits     []string
}

// Version is one second-level section of a changelog document.
type Version struct {
	Label   string
	Date    *time.Time // nil for Unreleased or undated sections
	Entries []Entry
}

// IsUnreleased reports whether the section is the Unreleased placeholder.
func (v *Version) IsUnreleased() bool {
	return strings.EqualFold(v.Label, UnreleasedLabel)
}

// EntriesByCategory groups the flat entry list by category, preserving the
// order entries had inside each category.
func (v *Version) EntriesByCategory() ChangeSet {
	changes := ChangeSet{}
	for _, e := range v.Entries {
		changes[e.Category] = append(changes[e.Category], Change{
			Description: e.Description,
			Commits:     e.Commits,
		})
	}
	return changes
}

// Document is the structured representation of a changelog file. It is used
// to locate insertion points and read metadata; Merge operates on the raw
// lines themselves so unmodeled content survives untouched.
type Document struct {
	Title    string
	Preamble string
	Versions []Version
}

// FindVersion returns the first section whose label matches, ignoring case,
// or nil when the document has no such section.
func (d *Document) FindVersion(label string) *Version {
	for i := range d.Versions {
		if strings.EqualFold(d.Versions[i].Label, label) {
			return &d.Versions[i]
		}
	}
	return nil
}

// Unreleased returns the Unreleased section, or nil.
func (d *Document) Unreleased() *Version {
	return d.FindVersion(UnreleasedLabel)
}
