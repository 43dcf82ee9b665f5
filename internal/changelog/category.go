package changelog

import "strings"

// Category is one of the six Keep a Changelog change kinds. The set is
// closed: parsing drops anything outside it, and formatting always considers
// all six in the same order.
type Category int

const (
	Added Category = iota
	Changed
	Deprecated
	Removed
	Fixed
	Security
)

var categoryNames = [...]string{"Added", "Changed", "Deprecated", "Removed", "Fixed", "Security"}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// Categories returns the six categories in their fixed emission order.
func Categories() []Category {
	return []Category{Added, Changed, Deprecated, Removed, Fixed, Security}
}

// ParseCategory matches a heading text against the six categories,
// case-insensitively. ok is false for anything outside the closed set.
func ParseCategory(text string) (Category, bool) {
	text = strings.TrimSpace(text)
	for i, name := range categoryNames {
		if strings.EqualFold(text, name) {
			return Category(i), true
		}
	}
	return 0, false
}
