package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"lifecoach/internal/errs"
)

// DefaultRecentEvents is how many events Summarize returns when no limit
// is configured
const DefaultRecentEvents = 5

// Manager owns the in-memory MemoryStore and is the single source of
// truth for reads and mutations. Mutations are serialized behind a write
// lock and the whole store is persisted after each one; reads take a read
// lock and return copies, so they always see a consistent snapshot.
type Manager struct {
	mu           sync.RWMutex
	store        *MemoryStore
	file         *FileStore
	recentEvents int
	now          func() time.Time
}

// NewManager loads the store from file and wraps it. A missing or corrupt
// file starts empty per the cold-start policy.
func NewManager(file *FileStore, recentEvents int) (*Manager, error) {
	store, err := file.Load()
	if err != nil {
		return nil, err
	}
	if recentEvents <= 0 {
		recentEvents = DefaultRecentEvents
	}
	return &Manager{
		store:        store,
		file:         file,
		recentEvents: recentEvents,
		now:          time.Now,
	}, nil
}

// AppendEvent creates a LifeEvent dated now, appends it, recomputes the
// derived patterns, and persists. The event stays in memory even if the
// save fails, so a later successful mutation persists it.
func (m *Manager) AppendEvent(entry string, eventType EventType, mood string) (LifeEvent, error) {
	if eventType == "" {
		eventType = EventGeneral
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	event := LifeEvent{
		Date:      now.Format("2006-01-02"),
		Timestamp: now,
		Entry:     entry,
		Type:      eventType,
		Mood:      mood,
	}
	m.store.LifeEvents = append(m.store.LifeEvents, event)
	m.recomputePatterns()

	if err := m.persist(); err != nil {
		return event, err
	}
	return event, nil
}

// AddGoal validates and stores a new active goal
func (m *Manager) AddGoal(text, targetDate string) (Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Goal{}, goerr.Wrap(errs.ErrValidation, "goal text is empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	goal := Goal{
		ID:          uuid.NewString(),
		Goal:        text,
		Status:      GoalActive,
		CreatedDate: m.now().Format("2006-01-02"),
		TargetDate:  targetDate,
	}
	m.store.Goals = append(m.store.Goals, goal)
	m.recomputePatterns()

	if err := m.persist(); err != nil {
		return goal, err
	}
	return goal, nil
}

// UpdateGoalStatus transitions a goal along active -> {completed,
// abandoned}. Terminal states are sticky.
func (m *Manager) UpdateGoalStatus(id string, status GoalStatus) (Goal, error) {
	if _, err := ParseGoalStatus(string(status)); err != nil {
		return Goal{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i := range m.store.Goals {
		if m.store.Goals[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Goal{}, goerr.Wrap(errs.ErrNotFound, "unknown goal id", goerr.V("id", id))
	}

	goal := &m.store.Goals[idx]
	if goal.Status.Terminal() {
		return Goal{}, goerr.Wrap(errs.ErrValidation, "goal status is terminal",
			goerr.V("id", id), goerr.V("status", goal.Status))
	}
	if !status.Terminal() {
		return Goal{}, goerr.Wrap(errs.ErrValidation, "goal is already active", goerr.V("id", id))
	}

	goal.Status = status
	if status == GoalCompleted {
		goal.CompletedDate = m.now().Format("2006-01-02")
	}
	m.recomputePatterns()

	if err := m.persist(); err != nil {
		return *goal, err
	}
	return *goal, nil
}

// Summarize returns the read-only view: counts, active goals, the most
// recent events, patterns, and the last three warnings
func (m *Manager) Summarize() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summarizeLocked()
}

// summarizeLocked builds the summary. Caller holds at least a read lock.
func (m *Manager) summarizeLocked() Summary {
	active := []Goal{}
	for _, g := range m.store.Goals {
		if g.Status == GoalActive {
			active = append(active, g)
		}
	}

	recent := m.store.LifeEvents
	if len(recent) > m.recentEvents {
		recent = recent[len(recent)-m.recentEvents:]
	}

	warnings := m.store.Warnings
	if len(warnings) > 3 {
		warnings = warnings[len(warnings)-3:]
	}

	patterns := make(map[string]Pattern, len(m.store.Patterns))
	for k, p := range m.store.Patterns {
		patterns[k] = p.clone()
	}

	return Summary{
		TotalEvents:  len(m.store.LifeEvents),
		TotalGoals:   len(m.store.Goals),
		ActiveGoals:  active,
		RecentEvents: append([]LifeEvent{}, recent...),
		Patterns:     patterns,
		Warnings:     append([]string{}, warnings...),
	}
}

// RecomputePatterns rebuilds all derived patterns from the stored events
// and persists the result
func (m *Manager) RecomputePatterns() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recomputePatterns()
	return m.persist()
}

// Export returns a deep copy of the full store for data export
func (m *Manager) Export() *MemoryStore {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.store.Clone()
}

// CareerEvents returns all career-typed events in append order
func (m *Manager) CareerEvents() []LifeEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.careerEventsLocked()
}

func (m *Manager) careerEventsLocked() []LifeEvent {
	var out []LifeEvent
	for _, ev := range m.store.LifeEvents {
		if ev.Type == EventCareer {
			out = append(out, ev)
		}
	}
	return out
}

// ProfessionalGoals returns goals whose text mentions career or job
func (m *Manager) ProfessionalGoals() []Goal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.professionalGoalsLocked()
}

func (m *Manager) professionalGoalsLocked() []Goal {
	var out []Goal
	for _, g := range m.store.Goals {
		lower := strings.ToLower(g.Goal)
		if strings.Contains(lower, "career") || strings.Contains(lower, "job") {
			out = append(out, g)
		}
	}
	return out
}

// CareerView returns the summary together with career events and
// professional goals from one read of the store, so a concurrent
// mutation cannot interleave between the three views
func (m *Manager) CareerView() (Summary, []LifeEvent, []Goal) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summarizeLocked(), m.careerEventsLocked(), m.professionalGoalsLocked()
}

// AddCareerPlan stores a generated career development plan and returns
// its 1-based position
func (m *Manager) AddCareerPlan(plan, timeframe string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.store.CareerPlans = append(m.store.CareerPlans, CareerPlan{
		Plan:        plan,
		CreatedDate: m.now().Format("2006-01-02"),
		Timeframe:   timeframe,
		Status:      "active",
	})
	if err := m.persist(); err != nil {
		return len(m.store.CareerPlans), err
	}
	return len(m.store.CareerPlans), nil
}

// Healthy reports whether the backing file is currently readable
func (m *Manager) Healthy() bool {
	_, err := m.file.Load()
	return err == nil
}

// persist writes the whole store. Caller holds the write lock.
func (m *Manager) persist() error {
	m.store.LastUpdated = m.now()
	return m.file.Save(m.store)
}
