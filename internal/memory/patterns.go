package memory

import (
	"fmt"
	"strings"
	"time"
)

var positiveWords = []string{
	"happy", "excited", "great", "awesome", "good", "wonderful", "amazing",
	"grateful", "accomplished", "successful", "motivated", "confident", "proud",
}

var negativeWords = []string{
	"sad", "depressed", "anxious", "worried", "stressed", "difficult", "hard",
	"frustrated", "overwhelmed", "disappointed", "tired", "discouraged",
}

var careerKeywords = map[string][]string{
	"growth":      {"promotion", "raise", "advancement", "leadership", "management"},
	"learning":    {"course", "training", "certification", "skill", "education"},
	"challenges":  {"stress", "conflict", "difficulty", "struggle", "problem"},
	"networking":  {"meeting", "conference", "connection", "mentor", "colleague"},
	"transitions": {"interview", "application", "job search", "career change"},
}

const (
	moodTrendWindow = 30 // scores retained in mood_trends
	warningStreak   = 5  // consecutive negative scores before a warning
	consistencyDays = 7  // lookback for the consistency score
)

// MoodScore counts positive minus negative keyword hits in free text
func MoodScore(text string) int {
	lower := strings.ToLower(text)
	score := 0
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			score++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			score--
		}
	}
	return score
}

// recomputePatterns derives all patterns from the full event sequence.
// Called with the write lock held after every event append. Deterministic
// over store contents except for the LastUpdated stamps, and defined for
// an empty store.
func (m *Manager) recomputePatterns() {
	now := m.now()

	scores := make([]int, 0, len(m.store.LifeEvents))
	dates := make([]string, 0, len(m.store.LifeEvents))
	for _, ev := range m.store.LifeEvents {
		scores = append(scores, MoodScore(ev.Entry))
		dates = append(dates, ev.Date)
	}
	if len(scores) > moodTrendWindow {
		scores = scores[len(scores)-moodTrendWindow:]
		dates = dates[len(dates)-moodTrendWindow:]
	}
	m.store.Patterns[PatternMoodTrends] = Pattern{
		Data:        PatternData{Scores: scores, Dates: dates},
		LastUpdated: now,
	}

	m.store.Patterns[PatternCareerFocus] = Pattern{
		Data:        PatternData{Counts: careerFocusCounts(m.store.LifeEvents)},
		LastUpdated: now,
	}

	rate := goalCompletionRate(m.store.Goals)
	m.store.Patterns[PatternGoalCompletion] = Pattern{
		Data:        PatternData{Rate: &rate},
		LastUpdated: now,
	}

	cons := consistencyScore(m.store.LifeEvents, now)
	m.store.Patterns[PatternConsistency] = Pattern{
		Data:        PatternData{Score: &cons},
		LastUpdated: now,
	}

	m.detectWarnings(scores, now)
}

// careerFocusCounts tallies career keyword categories over the last five
// career-typed events
func careerFocusCounts(events []LifeEvent) map[string]int {
	var career []string
	for _, ev := range events {
		if ev.Type == EventCareer {
			career = append(career, strings.ToLower(ev.Entry))
		}
	}
	if len(career) > 5 {
		career = career[len(career)-5:]
	}
	text := strings.Join(career, " ")

	counts := make(map[string]int, len(careerKeywords))
	for category, words := range careerKeywords {
		n := 0
		for _, w := range words {
			if strings.Contains(text, w) {
				n++
			}
		}
		counts[category] = n
	}
	return counts
}

func goalCompletionRate(goals []Goal) float64 {
	if len(goals) == 0 {
		return 0
	}
	completed := 0
	for _, g := range goals {
		if g.Status == GoalCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(goals)) * 100
}

// consistencyScore is the fraction of the last seven days with at least
// one entry, scaled to 0-100
func consistencyScore(events []LifeEvent, now time.Time) float64 {
	if len(events) == 0 {
		return 0
	}
	cutoff := now.AddDate(0, 0, -(consistencyDays - 1)).Format("2006-01-02")
	days := map[string]struct{}{}
	for _, ev := range events {
		if ev.Date >= cutoff {
			days[ev.Date] = struct{}{}
		}
	}
	return float64(len(days)) / float64(consistencyDays) * 100
}

// detectWarnings appends a deduplicated warning when the most recent mood
// scores are all negative
func (m *Manager) detectWarnings(scores []int, now time.Time) {
	if len(scores) < warningStreak {
		return
	}
	for _, s := range scores[len(scores)-warningStreak:] {
		if s >= 0 {
			return
		}
	}
	warning := fmt.Sprintf("Pattern detected: multiple negative mood indicators in recent entries (%s)",
		now.Format("2006-01-02"))
	for _, w := range m.store.Warnings {
		if w == warning {
			return
		}
	}
	m.store.Warnings = append(m.store.Warnings, warning)
}
