package coach

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"lifecoach/internal/errs"
	"lifecoach/internal/llm"
)

// DefaultPlanTimeframe is used when the request does not name one
const DefaultPlanTimeframe = "6months"

// CareerPlan generates a structured development plan from the career
// history and stores it. Unlike chat, there is no fallback: a plan needs
// the provider.
func (e *Engine) CareerPlan(ctx context.Context, timeframe string) (string, int, error) {
	if timeframe == "" {
		timeframe = DefaultPlanTimeframe
	}
	if e.completer == nil {
		return "", 0, goerr.Wrap(errs.ErrCoaching, "no completion provider configured")
	}

	pc := e.snapshot(ModeCareer)
	messages := []llm.Message{
		{Role: "system", Content: "You are creating a professional career development plan. Be specific and actionable."},
		{Role: "user", Content: planPrompt(pc, timeframe)},
	}

	plan, err := e.completer.Chat(ctx, messages)
	if err != nil {
		slog.Error("career plan generation failed", "timeframe", timeframe, "error", err)
		return "", 0, goerr.Wrap(errs.ErrCoaching, "career plan generation failed")
	}

	id, err := e.mem.AddCareerPlan(plan, timeframe)
	if err != nil {
		return "", 0, err
	}
	return plan, id, nil
}

func planPrompt(pc Context, timeframe string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on the user's career history and goals, create a detailed %s career development plan.\n\n", timeframe)

	events := boundEvents(pc.CareerEvents, 5, promptCharBudget)
	if len(events) > 0 {
		b.WriteString("Career History:\n")
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s: %s\n", ev.Date, ev.Entry)
		}
		b.WriteString("\n")
	}
	if len(pc.ProfessionalGoals) > 0 {
		b.WriteString("Current Goals:\n")
		for _, g := range pc.ProfessionalGoals {
			fmt.Fprintf(&b, "- %s (%s)\n", g.Goal, g.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("Create a structured plan with:\n")
	b.WriteString("1. Immediate actions (next 30 days)\n")
	b.WriteString("2. Short-term goals (1-3 months)\n")
	b.WriteString("3. Medium-term objectives (3-6 months)\n")
	b.WriteString("4. Skill development priorities\n")
	b.WriteString("5. Networking targets\n")
	b.WriteString("6. Measurement criteria\n\n")
	b.WriteString("Format as actionable steps with specific timelines.")
	return b.String()
}
