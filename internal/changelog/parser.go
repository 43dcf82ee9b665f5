package changelog

import (
	"strings"
	"time"

	"github.com/tomasalvarez/cronista/internal/regex"
)

// parserState tracks where the line scanner is inside the document.
type parserState int

const (
	statePreamble parserState = iota
	stateVersion
)

// Parse converts raw changelog text into its structured form. It is total
// over any input: lines that match no rule are dropped, never rejected, so
// hand-edited documents parse on a best-effort basis. Empty input yields a
// document with the default title and no versions.
func Parse(raw string) *Document {
	doc := &Document{Title: DefaultTitle}

	var (
		state       = statePreamble
		titleSet    bool
		preamble    []string
		current     *Version
		category    Category
		hasCategory bool
	)

	flush := func() {
		if current != nil {
			doc.Versions = append(doc.Versions, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := regex.VersionHeader.FindStringSubmatch(line); m != nil {
			flush()
			current = &Version{Label: strings.TrimSpace(m[1])}
			if current.IsUnreleased() {
				current.Label = UnreleasedLabel
			}
			if m[2] != "" {
				if d, err := time.Parse("2006-01-02", m[2]); err == nil {
					current.Date = &d
				}
			}
			if state == statePreamble {
				doc.Preamble = strings.TrimSpace(strings.Join(preamble, "\n"))
				state = stateVersion
			}
			hasCategory = false
			continue
		}

		if state == statePreamble {
			if m := regex.TitleHeader.FindStringSubmatch(line); m != nil && !titleSet {
				doc.Title = m[1]
				titleSet = true
				continue
			}
			// keep interior blank lines so paragraphs survive the trim below
			if strings.TrimSpace(line) != "" || len(preamble) > 0 {
				preamble = append(preamble, line)
			}
			continue
		}

		if m := regex.CategoryHeader.FindStringSubmatch(line); m != nil {
			// an unrecognized heading clears the category: bullets under it
			// are dropped until a known category heading shows up again
			category, hasCategory = ParseCategory(m[1])
			continue
		}

		if m := regex.BulletLine.FindStringSubmatch(line); m != nil && current != nil && hasCategory {
			current.Entries = append(current.Entries, Entry{
				Category:    category,
				Description: strings.TrimSpace(m[1]),
			})
			continue
		}
	}

	flush()
	if state == statePreamble {
		doc.Preamble = strings.TrimSpace(strings.Join(preamble, "\n"))
	}
	return doc
}
