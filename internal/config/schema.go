package config

import "sort"

// ConfigValueType defines the expected type for a configuration value.
type ConfigValueType int

const (
	TypeBool ConfigValueType = iota
	TypeDuration
	TypeString
	TypeRegexp
)

// String returns the string representation of ConfigValueType.
func (t ConfigValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeDuration:
		return "duration"
	case TypeString:
		return "string"
	case TypeRegexp:
		return "regexp"
	default:
		return "unknown"
	}
}

// ConfigKeySchema defines a known configuration key with its expected type.
type ConfigKeySchema struct {
	Path        string          // Dotted key path (e.g., "github.ref")
	Type        ConfigValueType // Expected value type
	Description string          // Human-readable description for help text
	Default     interface{}     // Default value
	Env         string          // Environment variable that sets the key
	Required    bool            // Required by the release command
}

// KnownKeys is the registry of all known configuration keys with their schemas.
var KnownKeys = map[string]ConfigKeySchema{
	"repo_token": {
		Path:        "repo_token",
		Type:        TypeString,
		Description: "GitHub token used to read the repository and create the release",
		Default:     "",
		Env:         "INPUT_REPO_TOKEN",
		Required:    true,
	},
	"draft": {
		Path:        "draft",
		Type:        TypeBool,
		Description: "Create the release as a draft",
		Default:     false,
		Env:         "INPUT_DRAFT",
	},
	"prerelease": {
		Path:        "prerelease",
		Type:        TypeBool,
		Description: "Mark the release as a prerelease",
		Default:     false,
		Env:         "INPUT_PRERELEASE",
	},
	"filter": {
		Path:        "filter",
		Type:        TypeRegexp,
		Description: "Only list commits whose message matches (case-insensitive, multiline)",
		Default:     "",
		Env:         "INPUT_FILTER",
	},
	"strict": {
		Path:        "strict",
		Type:        TypeBool,
		Description: "Leave commits without a conventional type out of the changelog",
		Default:     false,
		Env:         "INPUT_STRICT",
	},
	"title": {
		Path:        "title",
		Type:        TypeString,
		Description: "Release display name (defaults to the tag name)",
		Default:     "",
		Env:         "INPUT_TITLE",
	},
	"timeout": {
		Path:        "timeout",
		Type:        TypeDuration,
		Description: "Deadline for the whole run, e.g. 2m (0 = none)",
		Default:     "0s",
		Env:         "INPUT_TIMEOUT",
	},
	"github.ref": {
		Path:        "github.ref",
		Type:        TypeString,
		Description: "Ref that triggered the run (refs/tags/<name>)",
		Default:     "",
		Env:         "GITHUB_REF",
		Required:    true,
	},
	"github.sha": {
		Path:        "github.sha",
		Type:        TypeString,
		Description: "Commit the release points at",
		Default:     "",
		Env:         "GITHUB_SHA",
		Required:    true,
	},
	"github.repository": {
		Path:        "github.repository",
		Type:        TypeString,
		Description: "Repository slug (owner/repo)",
		Default:     "",
		Env:         "GITHUB_REPOSITORY",
		Required:    true,
	},
	"github.api_url": {
		Path:        "github.api_url",
		Type:        TypeString,
		Description: "GitHub REST API base URL",
		Default:     "https://api.github.com",
		Env:         "GITHUB_API_URL",
	},
	"github.server_url": {
		Path:        "github.server_url",
		Type:        TypeString,
		Description: "GitHub web URL used for commit links",
		Default:     "https://github.com",
		Env:         "GITHUB_SERVER_URL",
	},
}

// SortedKeys returns all known configuration key paths sorted alphabetically.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
