package domain

import (
	"math"
	"sort"
)

// recencyBonusStep is the per-position increment added to each answer's base
// score. Later answers weigh marginally more, which breaks near-ties
// deterministically without materially shifting the dominant archetype.
const recencyBonusStep = 0.01

// tieBand is the score distance from the winner within which an archetype
// still counts as tied.
const tieBand = 1.0

// Answer is one selected quiz option. A nil *Answer in a sequence means the
// question was left unanswered.
type Answer struct {
	QuestionID  int       `json:"question_id"`
	OptionIndex int       `json:"option_index"`
	Archetype   Archetype `json:"archetype"`
}

// ScoreVector maps each archetype to its accumulated score.
type ScoreVector map[Archetype]float64

// ScoringResult is the full output of the scoring engine.
type ScoringResult struct {
	Archetype      Archetype         `json:"archetype"`
	Scores         ScoreVector       `json:"scores"`
	Percentages    map[Archetype]int `json:"percentages"`
	AllArchetypes  []Archetype       `json:"allArchetypes"`
	IsTied         bool              `json:"isTied"`
	TiedArchetypes []Archetype       `json:"tiedArchetypes"`
	TotalAnswers   int               `json:"totalAnswers"`
}

// CalculateArchetypeScores converts an ordered sequence of answers into a
// deterministic archetype ranking. Each non-nil answer contributes a base
// score of 1.0 plus a recency bonus of 0.01 per zero-based position.
//
// Percentages divide by the full sequence length, unanswered slots included,
// so they only approximate a 100 total; that matches the stored historical
// results and must not be "corrected".
//
// The function is pure: identical input yields identical output.
func CalculateArchetypeScores(answers []*Answer) ScoringResult {
	scores := ScoreVector{}
	for _, a := range AllArchetypes() {
		scores[a] = 0
	}

	answered := 0
	for i, ans := range answers {
		if ans == nil || !ans.Archetype.IsValid() {
			continue
		}
		scores[ans.Archetype] += 1.0 + recencyBonusStep*float64(i)
		answered++
	}

	// Stable sort over enumeration order: equal scores, including the
	// all-zero case, resolve to the first archetype in enumeration order.
	ranked := AllArchetypes()
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})

	primary := ranked[0]
	primaryScore := scores[primary]

	var tied []Archetype
	for _, a := range ranked {
		if math.Abs(scores[a]-primaryScore) < tieBand {
			tied = append(tied, a)
		}
	}

	percentages := make(map[Archetype]int, len(ranked))
	total := len(answers)
	for _, a := range AllArchetypes() {
		if total == 0 {
			percentages[a] = 0
			continue
		}
		percentages[a] = int(math.Round(scores[a] / float64(total) * 100))
	}

	return ScoringResult{
		Archetype:      primary,
		Scores:         scores,
		Percentages:    percentages,
		AllArchetypes:  ranked,
		IsTied:         len(tied) > 1,
		TiedArchetypes: tied,
		TotalAnswers:   answered,
	}
}
