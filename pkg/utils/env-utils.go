package utils

import (
	"regexp"
	"strings"
)

// GenerateEnvVarName generates a standardized environment variable name from a given string.
// It converts the input to uppercase and replaces any non-alphanumeric characters with underscores.
// Leading and trailing underscores are removed.
func GenerateEnvVarName(input string) string {
	normalized := strings.ToUpper(input)

	reg := regexp.MustCompile(`[^A-Z0-9]+`)
	normalized = reg.ReplaceAllString(normalized, "_")

	normalized = strings.Trim(normalized, "_")

	return normalized
}

// GenerateInstanceAPIKeyEnvVarName generates the environment variable name
// used to override an instance's API key from the environment.
// Format: INSTANCE_API_KEY_FOR_{NORMALIZED_INSTANCE_ID}
func GenerateInstanceAPIKeyEnvVarName(instanceID string) string {
	normalizedName := GenerateEnvVarName(instanceID)
	return "INSTANCE_API_KEY_FOR_" + normalizedName
}
