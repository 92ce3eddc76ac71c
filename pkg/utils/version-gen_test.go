package utils

import (
	"testing"
	"time"
)

func TestGenerateQuestionnaireVersionID(t *testing.T) {
	prefix := time.Now().Format("06-01")

	t.Run("first version of the month", func(t *testing.T) {
		got := GenerateQuestionnaireVersionID(nil)
		if got != prefix+"-1" {
			t.Errorf("unexpected version id: %s", got)
		}
	})

	t.Run("skips used ids", func(t *testing.T) {
		used := []string{prefix + "-1", prefix + "-2"}
		got := GenerateQuestionnaireVersionID(used)
		if got != prefix+"-3" {
			t.Errorf("unexpected version id: %s", got)
		}
	})
}
