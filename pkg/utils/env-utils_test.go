package utils

import "testing"

func TestGenerateEnvVarName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"instance one", "INSTANCE_ONE"},
		{"esg-prod", "ESG_PROD"},
		{"  padded  ", "PADDED"},
		{"Mixed.Case/Name", "MIXED_CASE_NAME"},
		{"already_ok", "ALREADY_OK"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := GenerateEnvVarName(tt.input); got != tt.expected {
				t.Errorf("GenerateEnvVarName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGenerateInstanceAPIKeyEnvVarName(t *testing.T) {
	got := GenerateInstanceAPIKeyEnvVarName("esg-prod")
	if got != "INSTANCE_API_KEY_FOR_ESG_PROD" {
		t.Errorf("unexpected env var name: %s", got)
	}
}
