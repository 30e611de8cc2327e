// Package catalog holds the versioned, immutable question catalog for the
// voice archetype quiz. Historical submissions record the version they were
// scored against, so published versions are never edited in place; changes
// ship as a new version.
package catalog

import "auravo-quiz/internal/domain"

// DefaultVersion is the fallback when an unknown version is requested.
const DefaultVersion = "v1"

// Option is one of the four choices for a question, tagged with the
// archetype it scores toward.
type Option struct {
	Text      string           `json:"text"`
	Archetype domain.Archetype `json:"archetype"`
}

// Question is a single quiz question. Every question carries exactly four
// options, one per archetype.
type Question struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

var quizzes = map[string][]Question{
	"v1": quizV1,
}

// QuizByVersion resolves a version string to its question list, falling back
// to the default version when the pointer is unrecognized.
func QuizByVersion(version string) []Question {
	if quiz, ok := quizzes[version]; ok {
		return quiz
	}
	return quizzes[DefaultVersion]
}

// ActiveQuiz resolves the configured current version.
func ActiveQuiz(activeVersion string) []Question {
	return QuizByVersion(activeVersion)
}

// Versions lists the known catalog versions.
func Versions() []string {
	versions := make([]string, 0, len(quizzes))
	for v := range quizzes {
		versions = append(versions, v)
	}
	return versions
}
