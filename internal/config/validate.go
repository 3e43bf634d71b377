package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/autorelease/internal/commits"
	clierrors "github.com/ariel-frischer/autorelease/internal/errors"
)

// Mode selects which requirements Validate enforces.
type Mode int

const (
	// ModeRelease needs everything required to publish.
	ModeRelease Mode = iota
	// ModePreview needs only what rendering a changelog needs.
	ModePreview
	// ModePreviewLocal reads a local clone, so no repository or token is needed.
	ModePreviewLocal
)

// ValidationError represents a configuration validation error with context
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	Message  string
	Field    string
}

func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line, e.Column, e.Message)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field '%s': %s", e.FilePath, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.FilePath, e.Message)
}

// ValidateYAMLSyntax checks if the YAML file has valid syntax.
// Returns nil if valid, or a ValidationError with line/column information if invalid.
func ValidateYAMLSyntax(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsPermission(err) {
			return &ValidationError{FilePath: filePath, Message: "permission denied"}
		}
		return &ValidationError{FilePath: filePath, Message: err.Error()}
	}
	return ValidateYAMLSyntaxFromBytes(data, filePath)
}

// ValidateYAMLSyntaxFromBytes checks if YAML data has valid syntax.
// Returns nil if valid, or a ValidationError if invalid.
func ValidateYAMLSyntaxFromBytes(data []byte, filePath string) error {
	// Empty data is valid - will use defaults
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		var typeError *yaml.TypeError
		if errors.As(err, &typeError) {
			return &ValidationError{
				FilePath: filePath,
				Message:  strings.Join(typeError.Errors, "; "),
			}
		}
		line, column := extractLineColumn(err.Error())
		return &ValidationError{
			FilePath: filePath,
			Line:     line,
			Column:   column,
			Message:  cleanYAMLError(err.Error()),
		}
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("koanf"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	if err := v.RegisterValidation("repository", isRepositorySlug); err != nil {
		panic(err)
	}
	return v
}

// isRepositorySlug accepts owner/repo.
func isRepositorySlug(fl validator.FieldLevel) bool {
	owner, repo, ok := strings.Cut(fl.Field().String(), "/")
	return ok && owner != "" && repo != "" && !strings.Contains(repo, "/")
}

// Validate checks cfg for the given mode. Missing required inputs are
// Configuration errors; an unparsable filter is an InvalidInput error.
func Validate(cfg *Configuration, mode Mode) error {
	if err := validate.Struct(cfg); err != nil {
		return toConfigError(err)
	}

	if mode == ModeRelease {
		if err := validate.Var(cfg.RepoToken, "required"); err != nil {
			return clierrors.MissingInput("repo_token")
		}
		// The release is published against this exact commit, so nothing
		// may fall back to a guess.
		if err := validate.Var(cfg.GitHub.Ref, "required"); err != nil {
			return clierrors.MissingTriggerContext("github.ref", KnownKeys["github.ref"].Env, "ref")
		}
		if err := validate.Var(cfg.GitHub.SHA, "required"); err != nil {
			return clierrors.MissingTriggerContext("github.sha", KnownKeys["github.sha"].Env, "sha")
		}
	}
	if mode != ModePreviewLocal {
		if err := validate.Var(cfg.GitHub.Repository, "required"); err != nil {
			return clierrors.NewConfigError(
				"repository is not set",
				"Run inside GitHub Actions, or export GITHUB_REPOSITORY=owner/repo",
				"Or pass --repository owner/repo",
			)
		}
	}

	if _, err := commits.CompileFilter(cfg.Filter); err != nil {
		return err
	}
	return nil
}

// toConfigError turns the first validator failure into a CLIError.
func toConfigError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fieldErr := validationErrors[0]
		vErr := &ValidationError{
			FilePath: "config",
			Field:    fieldPath(fieldErr.Namespace()),
			Message:  formatValidationError(fieldErr),
		}
		return clierrors.WrapWithMessage(vErr, clierrors.Configuration, "invalid configuration",
			"Run 'autorelease config show' to see the effective values")
	}
	return clierrors.Wrap(err, clierrors.Configuration)
}

// fieldPath drops the struct name from a validator namespace:
// "Configuration.github.repository" -> "github.repository".
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

// extractLineColumn attempts to extract line and column numbers from a YAML error message.
// Returns 0, 0 if unable to extract.
func extractLineColumn(errMsg string) (line, column int) {
	// yaml.v3 errors look like: "yaml: line 5: could not find expected ':'"
	var l, c int
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d: column %d:", &l, &c); n == 2 {
		return l, c
	}
	if n, _ := fmt.Sscanf(errMsg, "yaml: line %d:", &l); n == 1 {
		return l, 1
	}
	return 0, 0
}

// cleanYAMLError removes the "yaml: line X:" prefix from error messages for cleaner output.
func cleanYAMLError(errMsg string) string {
	if idx := strings.LastIndex(errMsg, ": "); idx > 0 {
		if strings.HasPrefix(errMsg, "yaml:") {
			return errMsg[idx+2:]
		}
	}
	return errMsg
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "gte":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "url":
		return fmt.Sprintf("must be an absolute URL (got %q)", fieldErr.Value())
	case "repository":
		return fmt.Sprintf("must be owner/repo (got %q)", fieldErr.Value())
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
