package regex

import "regexp"

var (
	// Changelog document patterns
	TitleHeader      = regexp.MustCompile(`^#\s+(.+?)\s*$`)
	VersionHeader    = regexp.MustCompile(`^##\s+\[?([^\]]+?)\]?(?:\s+-)?\s*(\d{4}-\d{2}-\d{2})?\s*$`)
	UnreleasedHeader = regexp.MustCompile(`(?i)^##\s+\[?unreleased\]?\s*$`)
	CategoryHeader   = regexp.MustCompile(`^###\s+(.+?)\s*$`)
	BulletLine       = regexp.MustCompile(`^[-*]\s+(.+)$`)

	// Commit and version patterns
	ConventionalCommit = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\(([^)]+)\))?(!)?:\s*(.+)`)
	SemVer             = regexp.MustCompile(`^(v?)(\d+)\.(\d+)\.(\d+)$`)

	// Git and Repo patterns
	SSHRepo   = regexp.MustCompile(`git@([^:]+):([^/]+)/(.+)\.git$`)
	HTTPSRepo = regexp.MustCompile(`https://([^/]+)/([^/]+)/(.+?)(?:\.git)?$`)

	// AI and JSON parsing
	MarkdownJSONBlock = regexp.MustCompile("(?s)```(?:json)?\n?(.*?)```")
)
