package coach

import (
	"context"
	"log/slog"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"lifecoach/internal/errs"
	"lifecoach/internal/llm"
	"lifecoach/internal/memory"
)

// Reply is the outcome of one coaching turn. The structured signal fields
// are best-effort extras; Text is always set on success.
type Reply struct {
	Text                 string
	Mood                 string
	ContextEvents        []memory.LifeEvent
	CareerInsights       []string
	SkillRecommendations []string
	NextSteps            []string
	Fallback             bool
}

// Engine mediates between user messages and the completion provider. A
// nil completer means no provider is configured; chat then falls back to
// canned keyword responses instead of failing.
type Engine struct {
	mem       *memory.Manager
	completer llm.Completer
	now       func() time.Time
}

func NewEngine(mem *memory.Manager, completer llm.Completer) *Engine {
	return &Engine{mem: mem, completer: completer, now: time.Now}
}

// Respond runs one coaching turn: snapshot memory, build the prompt, call
// the provider, then record the message as a LifeEvent. The event is
// recorded only after the provider call succeeds, so a failed turn leaves
// the store untouched. No memory lock is held during the provider call.
func (e *Engine) Respond(ctx context.Context, message string, mode Mode) (*Reply, error) {
	pc := e.snapshot(mode)

	var text string
	fallback := false
	if e.completer == nil {
		text = fallbackResponse(message)
		fallback = true
	} else {
		var err error
		text, err = e.completer.Chat(ctx, BuildMessages(pc, message, mode))
		if err != nil {
			slog.Error("completion call failed", "mode", mode, "error", err)
			return nil, goerr.Wrap(errs.ErrCoaching, "completion call failed")
		}
	}

	mood := MoodLabel(message)
	if _, err := e.mem.AppendEvent(message, mode.EventType(), mood); err != nil {
		return nil, err
	}

	reply := &Reply{
		Text:          text,
		Mood:          mood,
		ContextEvents: pc.Summary.RecentEvents,
		Fallback:      fallback,
	}
	if mode == ModeCareer {
		reply.CareerInsights = CareerInsights(pc.CareerEvents)
		counts := map[string]int{}
		if p, ok := pc.Summary.Patterns[memory.PatternCareerFocus]; ok {
			counts = p.Data.Counts
		}
		reply.SkillRecommendations = RecommendSkills(counts)
		reply.NextSteps = NextSteps()
	}
	return reply, nil
}

// snapshot captures everything the prompt needs under one read lock,
// and nothing during the provider call
func (e *Engine) snapshot(mode Mode) Context {
	pc := Context{Today: e.now().Format("2006-01-02")}
	if mode == ModeCareer {
		pc.Summary, pc.CareerEvents, pc.ProfessionalGoals = e.mem.CareerView()
	} else {
		pc.Summary = e.mem.Summarize()
	}
	return pc
}
