package changelog

import (
	"fmt"
	"strings"
	"time"
)

const boilerplate = "All notable changes to this project will be documented in this file.\n" +
	"\n" +
	"The format is based on [Keep a Changelog](https://keepachangelog.com/en/1.1.0/),\n" +
	"and this project adheres to [Semantic Versioning](https://semver.org/spec/v2.0.0.html).\n"

// FormatVersion renders the canonical markdown block for one version: the
// header line, then one heading per non-empty category in the fixed order,
// each followed by its bullets. Pure and deterministic; dates render as UTC
// calendar dates regardless of the local timezone.
func FormatVersion(label string, date *time.Time, changes ChangeSet, repoURL string) string {
	var sb strings.Builder

	sb.WriteString("## [" + label + "]")
	if date != nil {
		sb.WriteString(" - " + date.UTC().Format("2006-01-02"))
	}
	sb.WriteString("\n")

	for _, cat := range Categories() {
		items := changes[cat]
		if len(items) == 0 {
			continue
		}
		sb.WriteString("\n### " + cat.String() + "\n")
		for _, change := range items {
			sb.WriteString("- " + change.Description + formatCommitLinks(change.Commits, repoURL) + "\n")
		}
	}

	return sb.String()
}

// FormatNewDocument renders a complete changelog from scratch: title,
// boilerplate, an empty Unreleased placeholder, then the version block.
func FormatNewDocument(label string, date *time.Time, changes ChangeSet, repoURL string) string {
	return FormatEmptyDocument() + "\n" + FormatVersion(label, date, changes, repoURL)
}

// FormatEmptyDocument renders a changelog skeleton holding only the title,
// the boilerplate and an empty Unreleased section.
func FormatEmptyDocument() string {
	return "# " + DefaultTitle + "\n\n" + boilerplate + "\n## [" + UnreleasedLabel + "]\n"
}

// formatCommitLinks renders the parenthesized link suffix for one bullet.
// Both commits and a repository URL are required; otherwise the suffix is
// omitted entirely.
func formatCommitLinks(commits []string, repoURL string) string {
	if len(commits) == 0 || repoURL == "" {
		return ""
	}

	base := strings.TrimRight(repoURL, "/")
	links := make([]string, 0, len(commits))
	for _, hash := range commits {
		short := hash
		if len(short) > 7 {
			short = short[:7]
		}
		links = append(links, fmt.Sprintf("[%s](%s/commit/%s)", short, base, hash))
	}

	return " (" + strings.Join(links, ", ") + ")"
}
