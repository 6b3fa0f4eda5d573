package coach

import (
	"strings"

	"lifecoach/internal/memory"
)

// MoodLabel tags a message as positive, negative, or neutral from its
// keyword balance. Best-effort: it never fails, it just says neutral.
func MoodLabel(text string) string {
	score := memory.MoodScore(text)
	switch {
	case score > 0:
		return "positive"
	case score < 0:
		return "negative"
	default:
		return "neutral"
	}
}

var growthWords = []string{"promotion", "raise", "new role", "leadership"}

// CareerInsights derives observations from the career event history
func CareerInsights(events []memory.LifeEvent) []string {
	if len(events) < 3 {
		return []string{"Build more career history to generate insights"}
	}

	recent := events
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	var insights []string
	if len(recent) >= 3 {
		insights = append(insights, "Active career development - regular professional updates")
	}
	for _, ev := range recent {
		lower := strings.ToLower(ev.Entry)
		found := false
		for _, w := range growthWords {
			if strings.Contains(lower, w) {
				insights = append(insights, "Positive career trajectory detected")
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	return insights
}

// RecommendSkills turns career_focus pattern counts into skill
// development suggestions
func RecommendSkills(counts map[string]int) []string {
	var out []string
	if counts["growth"] > 0 {
		out = append(out, "Leadership and team management skills")
	}
	if counts["learning"] > 2 {
		out = append(out, "Continuous learning mindset - consider advanced certifications")
	}
	if counts["networking"] < 1 {
		out = append(out, "Professional networking and relationship building")
	}
	if len(out) == 0 {
		out = append(out, "Focus on core technical skills in your field")
	}
	return out
}

// NextSteps is the standing list of concrete career actions
func NextSteps() []string {
	return []string{
		"Update your resume with recent achievements",
		"Set up informational interviews in your target field",
		"Identify 2-3 key skills to develop this quarter",
		"Establish regular career check-ins with your manager",
	}
}

// fallbackResponse answers a chat turn with keyword heuristics when no
// completion provider is configured
func fallbackResponse(message string) string {
	lower := strings.ToLower(message)

	switch {
	case containsAny(lower, "goal", "achieve", "accomplish"):
		return "That's a great goal! Breaking it down into smaller, manageable steps can help you make steady progress. What's the first small step you could take today?"
	case containsAny(lower, "stress", "worried", "anxious"):
		return "I understand you're feeling stressed. Remember that it's normal to feel this way sometimes. Consider taking some deep breaths, and think about what aspects of the situation you can control."
	case containsAny(lower, "happy", "excited", "great", "awesome"):
		return "That's wonderful to hear! It's important to celebrate these positive moments. What do you think contributed to feeling this way?"
	case containsAny(lower, "tired", "exhausted", "busy"):
		return "It sounds like you've been working hard. Remember that rest and self-care are just as important as productivity. How can you create some space for yourself today?"
	default:
		return "Thank you for sharing that with me. Can you tell me more about how this is affecting you? I'm here to listen and help you work through your thoughts."
	}
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
