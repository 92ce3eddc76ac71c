package utils

import (
	"fmt"
	"time"
)

// GenerateQuestionnaireVersionID produces a date-based version id that does
// not collide with any of the already used ids.
func GenerateQuestionnaireVersionID(usedVersionIDs []string) string {
	t := time.Now()

	date := t.Format("06-01")

	counter := 1
	newID := fmt.Sprintf("%s-%d", date, counter)
	for ContainsString(usedVersionIDs, newID) {
		counter += 1
		newID = fmt.Sprintf("%s-%d", date, counter)
	}

	return newID
}
