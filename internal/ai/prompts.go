package ai

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/tomasalvarez/cronista/internal/models"
)

const categorizePromptTemplate = `# Task
Act as a release engineer preparing a changelog. Classify every commit below
into the Keep a Changelog categories.

# Commits
{{range .Commits}}{{.Hash}} {{.Subject}}
{{end}}
# Golden Rules (Constraints)
1. **No Hallucinations:** describe only what the commit messages say.
2. **One entry per user-facing change.** Merge commits that describe the same
   change into a single entry and list all of their hashes.
3. **Verb-first descriptions**, capitalized, no trailing period
   (e.g. "Add dark mode support").
4. Ignore pure noise (version bumps, merge chores) rather than forcing it
   into a category.

# STRICT OUTPUT FORMAT
Return ONLY valid JSON. No markdown fences, no text before or after.

{
  "added": [{"description": "...", "commits": ["<full hash>"]}],
  "changed": [],
  "deprecated": [],
  "removed": [],
  "fixed": [],
  "security": []
}

All six keys are mandatory, each an array (use [] when empty). "commits"
always holds the full 40-character hashes from the list above.`

// promptData holds the parameters for template rendering
type promptData struct {
	Commits []models.Commit
}

// BuildCategorizePrompt renders the categorization prompt for a commit range.
func BuildCategorizePrompt(commits []models.Commit) (string, error) {
	return renderPrompt("categorize", categorizePromptTemplate, promptData{Commits: commits})
}

// renderPrompt renders a prompt template with the provided data
func renderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
