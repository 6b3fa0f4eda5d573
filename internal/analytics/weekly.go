package analytics

import (
	"fmt"
	"strings"

	"lifecoach/internal/memory"
)

var (
	weeklyPositive  = []string{"happy", "excited", "accomplished", "grateful", "successful"}
	weeklyNegative  = []string{"stressed", "frustrated", "tired", "overwhelmed", "disappointed"}
	weeklyAchieved  = []string{"achieved", "completed", "finished", "accomplished", "succeeded"}
	weeklyChallenge = []string{"difficult", "challenging", "struggle", "problem", "obstacle"}
)

// WeeklyReport is the focused seven-day progress view
type WeeklyReport struct {
	Period          string   `json:"period"`
	DateRange       string   `json:"date_range"`
	EntriesThisWeek int      `json:"entries_this_week"`
	MoodSummary     string   `json:"mood_summary"`
	Achievements    []string `json:"achievements"`
	Challenges      []string `json:"challenges"`
	GoalsWorkedOn   []string `json:"goals_worked_on"`
	NextWeekFocus   []string `json:"next_week_focus"`
}

// Weekly builds the report over events from the last seven days
func (r *Reporter) Weekly() *WeeklyReport {
	store := r.mem.Export()
	today := r.now().Format("2006-01-02")
	weekAgo := r.now().AddDate(0, 0, -7).Format("2006-01-02")

	var recent []memory.LifeEvent
	for _, ev := range store.LifeEvents {
		if ev.Date >= weekAgo {
			recent = append(recent, ev)
		}
	}

	mentioned := goalsMentioned(recent, store.Goals)
	return &WeeklyReport{
		Period:          "Weekly Report",
		DateRange:       fmt.Sprintf("%s to %s", weekAgo, today),
		EntriesThisWeek: len(recent),
		MoodSummary:     weeklyMood(recent),
		Achievements:    extractMatching(recent, weeklyAchieved, 5),
		Challenges:      extractMatching(recent, weeklyChallenge, 3),
		GoalsWorkedOn:   mentioned,
		NextWeekFocus:   nextWeekFocus(recent, store.Goals, mentioned),
	}
}

func weeklyMood(recent []memory.LifeEvent) string {
	if len(recent) == 0 {
		return "No entries this week"
	}
	pos, neg := 0, 0
	for _, ev := range recent {
		text := strings.ToLower(ev.Entry)
		pos += countHits(text, weeklyPositive)
		neg += countHits(text, weeklyNegative)
	}
	switch {
	case pos > neg:
		return "Predominantly positive"
	case neg > pos:
		return "Some challenges noted"
	default:
		return "Balanced week"
	}
}

func extractMatching(events []memory.LifeEvent, words []string, max int) []string {
	out := []string{}
	for _, ev := range events {
		if countHits(strings.ToLower(ev.Entry), words) > 0 {
			out = append(out, ev.Entry)
			if len(out) == max {
				break
			}
		}
	}
	return out
}

// goalsMentioned matches goals against recent entries by their leading
// keywords
func goalsMentioned(recent []memory.LifeEvent, goals []memory.Goal) []string {
	mentioned := []string{}
	for _, g := range goals {
		keywords := strings.Fields(strings.ToLower(g.Goal))
		if len(keywords) > 3 {
			keywords = keywords[:3]
		}
		for _, ev := range recent {
			text := strings.ToLower(ev.Entry)
			if containsAny(text, keywords...) {
				mentioned = append(mentioned, g.Goal)
				break
			}
		}
	}
	return mentioned
}

func nextWeekFocus(recent []memory.LifeEvent, goals []memory.Goal, mentioned []string) []string {
	var suggestions []string

	if len(recent) < 3 {
		suggestions = append(suggestions, "Increase daily reflection consistency")
	}

	mentionedSet := map[string]struct{}{}
	for _, g := range mentioned {
		mentionedSet[g] = struct{}{}
	}
	for _, g := range goals {
		if g.Status != memory.GoalActive {
			continue
		}
		if _, ok := mentionedSet[g.Goal]; !ok {
			suggestions = append(suggestions, "Work on neglected goal: "+g.Goal)
			break
		}
	}

	challenges := 0
	for _, ev := range recent {
		if countHits(strings.ToLower(ev.Entry), weeklyChallenge) > 0 {
			challenges++
		}
	}
	if challenges > 2 {
		suggestions = append(suggestions, "Address recurring challenges with specific action plans")
	}

	if len(suggestions) == 0 {
		return []string{"Continue current positive momentum"}
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
