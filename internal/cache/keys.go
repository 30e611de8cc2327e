package cache

import "fmt"

const keyPrefix = "auravo"

// SessionAnswersKey is the cache key holding a submission's in-progress
// answer sheet.
func SessionAnswersKey(submissionID string) string {
	return fmt.Sprintf("%s:session:%s:answers", keyPrefix, submissionID)
}
