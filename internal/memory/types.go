package memory

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"lifecoach/internal/errs"
)

// EventType categorizes a journal entry
type EventType string

const (
	EventGeneral EventType = "general"
	EventCareer  EventType = "career"
)

// LifeEvent is one journaled entry. Events are append-only: never edited,
// never reordered after insertion.
type LifeEvent struct {
	Date      string    `json:"date"` // YYYY-MM-DD, entry day
	Timestamp time.Time `json:"timestamp"`
	Entry     string    `json:"entry"`
	Type      EventType `json:"type"`
	Mood      string    `json:"mood,omitempty"` // "positive", "negative", "neutral"
}

// GoalStatus is the lifecycle state of a goal
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalAbandoned GoalStatus = "abandoned"
)

// ParseGoalStatus validates a user-supplied status string
func ParseGoalStatus(s string) (GoalStatus, error) {
	switch GoalStatus(s) {
	case GoalActive, GoalCompleted, GoalAbandoned:
		return GoalStatus(s), nil
	default:
		return "", goerr.Wrap(errs.ErrValidation, "invalid goal status", goerr.V("status", s))
	}
}

// Terminal reports whether the status accepts no further transitions
func (s GoalStatus) Terminal() bool {
	return s == GoalCompleted || s == GoalAbandoned
}

// Goal is a user-declared objective. Goals are never deleted; terminal
// statuses (completed, abandoned) are sticky.
type Goal struct {
	ID            string     `json:"id"`
	Goal          string     `json:"goal"`
	Status        GoalStatus `json:"status"`
	CreatedDate   string     `json:"created_date"`
	TargetDate    string     `json:"target_date,omitempty"`
	CompletedDate string     `json:"completed_date,omitempty"`
	Progress      int        `json:"progress"`
}

// Known pattern keys. Each key has a fixed payload shape in PatternData.
const (
	PatternMoodTrends     = "mood_trends"
	PatternCareerFocus    = "career_focus"
	PatternGoalCompletion = "goal_completion"
	PatternConsistency    = "consistency"
)

// PatternData is the payload of one derived pattern. Only the fields for
// the pattern's key are set:
//
//	mood_trends:     Scores + Dates (parallel, capped at 30)
//	career_focus:    Counts (keyword category -> hits)
//	goal_completion: Rate (completed / total, percent)
//	consistency:     Score (0-100, entry regularity over the last week)
type PatternData struct {
	Scores []int          `json:"scores,omitempty"`
	Dates  []string       `json:"dates,omitempty"`
	Counts map[string]int `json:"counts,omitempty"`
	Rate   *float64       `json:"rate,omitempty"`
	Score  *float64       `json:"score,omitempty"`
}

// Pattern is a derived summary statistic. Patterns are recomputed from the
// full event sequence after every mutation and overwritten in place.
type Pattern struct {
	Data        PatternData `json:"data"`
	LastUpdated time.Time   `json:"last_updated"`
}

// CareerPlan is a stored development plan produced by the career coach
type CareerPlan struct {
	Plan        string `json:"plan"`
	CreatedDate string `json:"created_date"`
	Timeframe   string `json:"timeframe"`
	Status      string `json:"status"`
}

// MemoryStore is the aggregate of everything persisted for the single
// user. Goals keep insertion order; ids are unique.
type MemoryStore struct {
	LifeEvents  []LifeEvent        `json:"life_events"`
	Goals       []Goal             `json:"goals"`
	Patterns    map[string]Pattern `json:"patterns"`
	Warnings    []string           `json:"warnings"`
	CareerPlans []CareerPlan       `json:"career_plans,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	LastUpdated time.Time          `json:"last_updated"`
}

// NewMemoryStore returns an empty store with all collections initialized
func NewMemoryStore() *MemoryStore {
	now := time.Now()
	return &MemoryStore{
		LifeEvents:  []LifeEvent{},
		Goals:       []Goal{},
		Patterns:    map[string]Pattern{},
		Warnings:    []string{},
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// normalize fills collections left nil by hand-edited or older memory files
func (m *MemoryStore) normalize() {
	if m.LifeEvents == nil {
		m.LifeEvents = []LifeEvent{}
	}
	if m.Goals == nil {
		m.Goals = []Goal{}
	}
	if m.Patterns == nil {
		m.Patterns = map[string]Pattern{}
	}
	if m.Warnings == nil {
		m.Warnings = []string{}
	}
}

// Clone returns a deep copy so readers never alias manager-owned state
func (m *MemoryStore) Clone() *MemoryStore {
	out := &MemoryStore{
		LifeEvents:  append([]LifeEvent{}, m.LifeEvents...),
		Goals:       append([]Goal{}, m.Goals...),
		Patterns:    make(map[string]Pattern, len(m.Patterns)),
		Warnings:    append([]string{}, m.Warnings...),
		CreatedAt:   m.CreatedAt,
		LastUpdated: m.LastUpdated,
	}
	if m.CareerPlans != nil {
		out.CareerPlans = append([]CareerPlan{}, m.CareerPlans...)
	}
	for k, p := range m.Patterns {
		out.Patterns[k] = p.clone()
	}
	return out
}

func (p Pattern) clone() Pattern {
	out := Pattern{LastUpdated: p.LastUpdated}
	out.Data.Scores = append([]int(nil), p.Data.Scores...)
	out.Data.Dates = append([]string(nil), p.Data.Dates...)
	if p.Data.Counts != nil {
		out.Data.Counts = make(map[string]int, len(p.Data.Counts))
		for k, v := range p.Data.Counts {
			out.Data.Counts[k] = v
		}
	}
	if p.Data.Rate != nil {
		r := *p.Data.Rate
		out.Data.Rate = &r
	}
	if p.Data.Score != nil {
		s := *p.Data.Score
		out.Data.Score = &s
	}
	return out
}

// Summary is the read-only view served by GET /memory
type Summary struct {
	TotalEvents  int                `json:"total_events"`
	TotalGoals   int                `json:"total_goals"`
	ActiveGoals  []Goal             `json:"active_goals"`
	RecentEvents []LifeEvent        `json:"recent_events"`
	Patterns     map[string]Pattern `json:"patterns"`
	Warnings     []string           `json:"warnings"`
}
