package models

import "fmt"

// RepoInfo identifies the repository behind the origin remote.
type RepoInfo struct {
	Owner    string
	Name     string
	Provider string // "github", "gitlab" or "unknown"
	Host     string
}

// URL returns the https base URL of the repository, or an empty string when
// the host could not be determined. Commit links are built on top of it.
func (r RepoInfo) URL() string {
	if r.Host == "" || r.Owner == "" || r.Name == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}
