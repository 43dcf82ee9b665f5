package changelog

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/tomasalvarez/cronista/internal/errors"
	"github.com/tomasalvarez/cronista/internal/regex"
)

// Merge splices a freshly rendered version block into the existing raw text
// and returns the complete replacement document. A nil existing slice means
// the changelog file does not exist yet, in which case a new document is
// rendered from scratch.
//
// The splice works on raw lines: the structured parse is consulted only to
// detect duplicate labels, so reference links, comments and any other
// unmodeled content before and after the insertion point survive unchanged,
// along with the file's original line-break convention.
func Merge(existing []byte, label string, date *time.Time, changes ChangeSet, repoURL string) ([]byte, error) {
	if existing == nil {
		return []byte(FormatNewDocument(label, date, changes, repoURL)), nil
	}

	if Parse(string(existing)).FindVersion(label) != nil {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrDuplicateVersion, label)
	}

	newline := detectNewline(existing)
	lines := strings.Split(string(existing), newline)

	block := FormatVersion(label, date, changes, repoURL)
	blockLines := strings.Split(strings.TrimRight(block, "\n"), "\n")
	blockLines = append(blockLines, "") // one blank line after the new section

	idx := insertionIndex(lines)

	merged := make([]string, 0, len(lines)+len(blockLines))
	merged = append(merged, lines[:idx]...)
	merged = append(merged, blockLines...)
	merged = append(merged, lines[idx:]...)

	return []byte(strings.Join(merged, newline)), nil
}

// RefreshUnreleased replaces only the body of the Unreleased section, leaving
// the header line and the rest of the document untouched. Documents without
// an Unreleased header are returned as-is.
func RefreshUnreleased(existing []byte, changes ChangeSet, repoURL string) []byte {
	newline := detectNewline(existing)
	lines := strings.Split(string(existing), newline)

	start := -1
	for i, line := range lines {
		if regex.UnreleasedHeader.MatchString(strings.TrimRight(line, "\r")) {
			start = i
			break
		}
	}
	if start < 0 {
		return existing
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if regex.VersionHeader.MatchString(strings.TrimRight(lines[i], "\r")) {
			end = i
			break
		}
	}

	block := FormatVersion(UnreleasedLabel, nil, changes, repoURL)
	body := strings.Split(strings.TrimRight(block, "\n"), "\n")[1:] // drop the header line

	refreshed := make([]string, 0, len(lines)+len(body)+1)
	refreshed = append(refreshed, lines[:start+1]...)
	refreshed = append(refreshed, body...)
	refreshed = append(refreshed, "")
	refreshed = append(refreshed, lines[end:]...)

	return []byte(strings.Join(refreshed, newline))
}

// ExtractVersionBlock returns the raw lines of one version section, header
// included, exactly as they appear in the document.
func ExtractVersionBlock(raw []byte, label string) (string, bool) {
	newline := detectNewline(raw)
	lines := strings.Split(string(raw), newline)

	start := -1
	for i, line := range lines {
		m := regex.VersionHeader.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m != nil && strings.EqualFold(strings.TrimSpace(m[1]), label) {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	end := len(lines)
	for i := start + 1; i < len(lines); i++ {
		if regex.VersionHeader.MatchString(strings.TrimRight(lines[i], "\r")) {
			end = i
			break
		}
	}

	return strings.TrimSpace(strings.Join(lines[start:end], "\n")), true
}

// insertionIndex picks the line where a new version block goes, in order of
// precedence: right after the Unreleased section (before the next version
// header), else before the first version header, else end of document.
func insertionIndex(lines []string) int {
	unreleasedAt := -1
	for i, line := range lines {
		if regex.UnreleasedHeader.MatchString(strings.TrimRight(line, "\r")) {
			unreleasedAt = i
			break
		}
	}

	if unreleasedAt >= 0 {
		for i := unreleasedAt + 1; i < len(lines); i++ {
			if regex.VersionHeader.MatchString(strings.TrimRight(lines[i], "\r")) {
				return i
			}
		}
		// Unreleased with nothing after it: append at end of file
		return len(lines)
	}

	for i, line := range lines {
		if regex.VersionHeader.MatchString(strings.TrimRight(line, "\r")) {
			return i
		}
	}

	return len(lines)
}

func detectNewline(raw []byte) string {
	if bytes.Contains(raw, []byte("\r\n")) {
		return "\r\n"
	}
	return "\n"
}
