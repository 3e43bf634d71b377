package config

// GetDefaults returns the default configuration values, keyed by dotted path.
func GetDefaults() map[string]interface{} {
	defaults := make(map[string]interface{}, len(KnownKeys))
	for path, schema := range KnownKeys {
		defaults[path] = schema.Default
	}
	return defaults
}
