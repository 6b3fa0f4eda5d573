package analytics

import (
	"testing"

	"github.com/m-mizutani/gt"

	"lifecoach/internal/memory"
)

func TestWeekly_EmptyStore(t *testing.T) {
	report := newTestReporter(t, memory.NewMemoryStore()).Weekly()

	gt.Equal(t, report.Period, "Weekly Report")
	gt.Equal(t, report.DateRange, "2026-08-24 to 2026-08-31")
	gt.Equal(t, report.EntriesThisWeek, 0)
	gt.Equal(t, report.MoodSummary, "No entries this week")
	gt.Equal(t, len(report.Achievements), 0)
	gt.Equal(t, report.NextWeekFocus, []string{"Increase daily reflection consistency"})
}

func TestWeekly_FiltersToLastSevenDays(t *testing.T) {
	store := memory.NewMemoryStore()
	store.LifeEvents = []memory.LifeEvent{
		eventAt(20, "ancient history", memory.EventGeneral),
		eventAt(6, "felt happy this morning", memory.EventGeneral),
		eventAt(3, "completed the house move", memory.EventGeneral),
		eventAt(1, "good marathon training session", memory.EventGeneral),
	}
	store.Goals = []memory.Goal{
		{ID: "a", Goal: "marathon training", Status: memory.GoalActive},
		{ID: "b", Goal: "novel writing", Status: memory.GoalActive},
	}
	report := newTestReporter(t, store).Weekly()

	gt.Equal(t, report.EntriesThisWeek, 3)
	gt.Equal(t, report.MoodSummary, "Predominantly positive")
	gt.Equal(t, report.Achievements, []string{"completed the house move"})
	gt.Equal(t, report.GoalsWorkedOn, []string{"marathon training"})
	// The untouched active goal surfaces as next week focus
	gt.Equal(t, report.NextWeekFocus, []string{"Work on neglected goal: novel writing"})
}

func TestWeekly_ChallengesAndMomentum(t *testing.T) {
	store := memory.NewMemoryStore()
	store.LifeEvents = []memory.LifeEvent{
		eventAt(5, "a difficult conversation", memory.EventGeneral),
		eventAt(4, "another problem with the car", memory.EventGeneral),
		eventAt(3, "the obstacle keeps coming back", memory.EventGeneral),
		eventAt(2, "felt stressed", memory.EventGeneral),
	}
	report := newTestReporter(t, store).Weekly()

	gt.Equal(t, report.MoodSummary, "Some challenges noted")
	gt.Equal(t, len(report.Challenges), 3)
	gt.Equal(t, report.NextWeekFocus, []string{"Address recurring challenges with specific action plans"})
}

func TestWeekly_PositiveMomentumDefault(t *testing.T) {
	store := memory.NewMemoryStore()
	store.LifeEvents = []memory.LifeEvent{
		eventAt(3, "happy morning run", memory.EventGeneral),
		eventAt(2, "excited about the weekend", memory.EventGeneral),
		eventAt(1, "grateful for good friends", memory.EventGeneral),
	}
	report := newTestReporter(t, store).Weekly()

	gt.Equal(t, report.MoodSummary, "Predominantly positive")
	gt.Equal(t, report.NextWeekFocus, []string{"Continue current positive momentum"})
}
