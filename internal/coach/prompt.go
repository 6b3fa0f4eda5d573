package coach

import (
	"fmt"
	"sort"
	"strings"

	"lifecoach/internal/llm"
	"lifecoach/internal/memory"
)

// Mode selects the coaching persona
type Mode string

const (
	ModeLife   Mode = "life"
	ModeCareer Mode = "career"
)

// EventType maps the mode to the journal category it records under
func (m Mode) EventType() memory.EventType {
	if m == ModeCareer {
		return memory.EventCareer
	}
	return memory.EventGeneral
}

// promptCharBudget bounds how much journal text gets embedded in a
// prompt, independent of the per-mode event caps
const promptCharBudget = 4000

// Context is the snapshot of memory state a prompt is built from. It is
// captured before the provider call so no lock is held while waiting.
type Context struct {
	Summary           memory.Summary
	CareerEvents      []memory.LifeEvent
	ProfessionalGoals []memory.Goal
	Today             string // YYYY-MM-DD
}

// BuildMessages assembles the chat payload for one coaching turn. Pure:
// same context, message and mode always yield the same payload.
func BuildMessages(pc Context, userMessage string, mode Mode) []llm.Message {
	var system string
	if mode == ModeCareer {
		system = careerSystemPrompt(pc)
	} else {
		system = lifeSystemPrompt(pc)
	}
	return []llm.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: userMessage},
	}
}

func lifeSystemPrompt(pc Context) string {
	var b strings.Builder
	b.WriteString("You are an AI life coach providing personalized guidance.\n\n")
	b.WriteString("Context about the user:\n")
	b.WriteString(lifeContext(pc))
	b.WriteString("\n\nGuidelines:\n")
	b.WriteString("- Be empathetic, supportive, and constructive\n")
	b.WriteString("- Provide actionable advice\n")
	b.WriteString("- Reference their goals and past experiences when relevant\n")
	b.WriteString("- Ask thoughtful follow-up questions\n")
	b.WriteString("- Help them recognize patterns and growth opportunities\n")
	b.WriteString("- Keep responses conversational and encouraging\n")
	return b.String()
}

func lifeContext(pc Context) string {
	var parts []string

	events := boundEvents(pc.Summary.RecentEvents, 5, promptCharBudget)
	if len(events) > 0 {
		lines := []string{"Recent life updates:"}
		for _, ev := range events {
			lines = append(lines, fmt.Sprintf("- %s: %s", ev.Date, ev.Entry))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	goals := pc.Summary.ActiveGoals
	if len(goals) > 3 {
		goals = goals[:3]
	}
	if len(goals) > 0 {
		lines := []string{"Current goals:"}
		for _, g := range goals {
			lines = append(lines, "- "+g.Goal)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}

	if len(pc.Summary.Patterns) > 0 {
		parts = append(parts, fmt.Sprintf("Recognized patterns: %d tracked", len(pc.Summary.Patterns)))
	}

	if len(parts) == 0 {
		return "No previous context available."
	}
	return strings.Join(parts, "\n\n")
}

func careerSystemPrompt(pc Context) string {
	var b strings.Builder
	b.WriteString("You are an expert career coach and professional development advisor ")
	b.WriteString("helping professionals advance their careers.\n\n")
	b.WriteString(careerContext(pc))
	b.WriteString("\nGuidelines for career coaching:\n")
	b.WriteString("1. Provide specific, actionable career advice\n")
	b.WriteString("2. Identify skill gaps and recommend development paths\n")
	b.WriteString("3. Suggest concrete next steps for career advancement\n")
	b.WriteString("4. Address both short-term tactics and long-term strategy\n")
	b.WriteString("5. Help with professional goal setting and achievement\n")
	b.WriteString("6. Balance ambition with realistic expectations\n\n")
	b.WriteString("Focus on practical guidance that leads to measurable career progress.")
	return b.String()
}

func careerContext(pc Context) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Career Analysis Date: %s\n\n", pc.Today)

	events := boundEvents(pc.CareerEvents, 10, promptCharBudget)
	if len(events) > 0 {
		b.WriteString("Career History:\n")
		for _, ev := range events {
			fmt.Fprintf(&b, "- %s: %s\n", ev.Date, ev.Entry)
		}
		b.WriteString("\n")
	}

	if len(pc.ProfessionalGoals) > 0 {
		b.WriteString("Professional Goals:\n")
		for _, g := range pc.ProfessionalGoals {
			target := g.TargetDate
			if target == "" {
				target = "Not set"
			}
			fmt.Fprintf(&b, "- %s (Target: %s)\n", g.Goal, target)
		}
		b.WriteString("\n")
	}

	if p, ok := pc.Summary.Patterns[memory.PatternCareerFocus]; ok && len(p.Data.Counts) > 0 {
		b.WriteString("Career focus signals:\n")
		categories := make([]string, 0, len(p.Data.Counts))
		for category := range p.Data.Counts {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		for _, category := range categories {
			if n := p.Data.Counts[category]; n > 0 {
				fmt.Fprintf(&b, "- %s: %d\n", category, n)
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// boundEvents keeps the newest events that fit both the count cap and the
// character budget, preserving chronological order
func boundEvents(events []memory.LifeEvent, maxEvents, maxChars int) []memory.LifeEvent {
	if len(events) > maxEvents {
		events = events[len(events)-maxEvents:]
	}
	var window []memory.LifeEvent
	total := 0
	for i := len(events) - 1; i >= 0; i-- {
		n := len(events[i].Entry)
		if total+n > maxChars {
			break
		}
		window = append([]memory.LifeEvent{events[i]}, window...)
		total += n
	}
	return window
}
