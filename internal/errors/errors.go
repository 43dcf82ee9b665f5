package errors

import "fmt"

// ErrorType defines the category of the error
type ErrorType string

const (
	TypeConfiguration ErrorType = "CONFIGURATION"
	TypeAI            ErrorType = "AI"
	TypeGit           ErrorType = "GIT"
	TypeChangelog     ErrorType = "CHANGELOG"
	TypeVCS           ErrorType = "VCS"
	TypeInternal      ErrorType = "INTERNAL"
)

// AppError represents a domain-level error with a type and an underlying error
type AppError struct {
	Type       ErrorType
	Message    string
	Context    map[string]interface{}
	Err        error
	Suggestion string
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by type and message, so copies derived with WithError
// or WithContext still compare equal to their sentinel under errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Message == t.Message
}

// WithError creates a new AppError with an underlying error
func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        err,
		Suggestion: e.Suggestion,
	}
}

// WithContext creates a new AppError with additional context
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	ctx := make(map[string]interface{})
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    ctx,
		Err:        e.Err,
		Suggestion: e.Suggestion,
	}
}

func (e *AppError) WithSuggestion(suggestion string) *AppError {
	return &AppError{
		Type:       e.Type,
		Message:    e.Message,
		Context:    e.Context,
		Err:        e.Err,
		Suggestion: suggestion,
	}
}

// NewAppError creates a new AppError
func NewAppError(t ErrorType, msg string, err error) *AppError {
	return &AppError{
		Type:    t,
		Message: msg,
		Err:     err,
	}
}

// Git errors
var (
	ErrGetCommits = NewAppError(TypeGit, "Failed to get commits", nil).
			WithSuggestion("Make sure you have commits in your repository: git log")

	ErrNoCommits = NewAppError(TypeGit, "No commits found in the selected range", nil).
			WithSuggestion("Check the range: git log <from>..<to> --oneline")

	ErrGetRepoURL = NewAppError(TypeGit, "Failed to get repository URL", nil).
			WithSuggestion("Add a remote: git remote add origin <url>")

	ErrExtractRepoInfo = NewAppError(TypeGit, "Failed to extract repository info", nil)

	ErrNoChanges = NewAppError(TypeGit, "No staged changes detected", nil).
			WithSuggestion("Stage your changes first with: git add <files>")

	ErrAddFile = NewAppError(TypeGit, "Failed to add file to staging", nil).
			WithSuggestion("Check if the file exists and you have write permissions")

	ErrCreateCommit = NewAppError(TypeGit, "Failed to create commit", nil).
			WithSuggestion("Ensure git user is configured:\n   git config --global user.name \"Your Name\"\n   git config --global user.email \"your@email.com\"")
)

// Changelog errors
var (
	ErrDuplicateVersion = NewAppError(TypeChangelog, "Version already exists in the changelog", nil).
				WithSuggestion("Pick a new version label or remove the existing section first")

	ErrReadChangelog = NewAppError(TypeChangelog, "Failed to read changelog file", nil)

	ErrWriteChangelog = NewAppError(TypeChangelog, "Failed to write changelog file", nil).
				WithSuggestion("Check write permissions on the changelog path")
)

// Configuration and AI errors
var (
	ErrMissingAPIKey = NewAppError(TypeConfiguration, "Gemini API key is not configured", nil).
				WithSuggestion("Set it with: cronista config set-api-key <key>")

	ErrMissingToken = NewAppError(TypeConfiguration, "GitHub token is not configured", nil).
			WithSuggestion("Set it with: cronista config set-token <token>")

	ErrInvalidVersion = NewAppError(TypeConfiguration, "Version label is not valid semver", nil).
				WithSuggestion("Use a label like 1.2.3 or v1.2.3")

	ErrAIResponse = NewAppError(TypeAI, "AI returned a response that could not be parsed", nil).
			WithSuggestion("Run again; if it persists, try a different model with: cronista config set-model")
)
