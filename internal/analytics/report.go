// Package analytics computes coaching reports from the memory store:
// mood trends, goal progress, activity rhythms, and growth metrics. All
// computations are defined for an empty store.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"lifecoach/internal/memory"
)

var (
	positiveWords = []string{"happy", "excited", "grateful", "accomplished", "successful", "motivated", "confident", "proud", "satisfied", "optimistic"}
	negativeWords = []string{"sad", "frustrated", "angry", "stressed", "overwhelmed", "disappointed", "worried", "anxious", "tired", "discouraged"}

	growthWords    = []string{"learned", "improved", "developed", "achieved", "mastered", "overcame", "progress", "growth", "success"}
	challengeWords = []string{"challenge", "difficult", "struggle", "problem", "obstacle", "setback"}
	recoveryWords  = []string{"solved", "overcame", "better", "improved", "learned"}
	learningWords  = []string{"learned", "discovered", "realized", "understood", "insight", "knowledge"}

	achievementWords = []string{"achieved", "accomplished", "completed", "finished", "succeeded", "won", "graduated", "promoted"}

	skillWords = map[string][]string{
		"technical":     {"programming", "coding", "software", "computer", "technical", "digital"},
		"communication": {"presentation", "speaking", "writing", "communication", "meeting"},
		"leadership":    {"leadership", "management", "team", "leading", "mentoring"},
		"creative":      {"design", "creative", "art", "writing", "innovation"},
		"analytical":    {"analysis", "data", "research", "problem-solving", "critical thinking"},
	}
)

// Reporter builds analytics reports from Manager snapshots
type Reporter struct {
	mem *memory.Manager
	now func() time.Time
}

func NewReporter(mem *memory.Manager) *Reporter {
	return &Reporter{mem: mem, now: time.Now}
}

// Report is the comprehensive analytics payload for GET /analytics
type Report struct {
	Summary             SummaryStats        `json:"summary"`
	MoodAnalysis        MoodAnalysis        `json:"mood_analysis"`
	GoalProgress        GoalProgress        `json:"goal_progress"`
	ActivityPatterns    ActivityPatterns    `json:"activity_patterns"`
	GrowthMetrics       GrowthMetrics       `json:"growth_metrics"`
	Recommendations     []Recommendation    `json:"recommendations"`
	AchievementTracking AchievementTracking `json:"achievement_tracking"`
}

type SummaryStats struct {
	TotalEntries          int     `json:"total_entries"`
	TotalGoals            int     `json:"total_goals"`
	ActiveGoals           int     `json:"active_goals"`
	DaysTracked           int     `json:"days_tracked"`
	AverageEntriesPerWeek float64 `json:"average_entries_per_week"`
	ConsistencyScore      float64 `json:"consistency_score"`
}

type MoodPoint struct {
	Date               string `json:"date"`
	MoodScore          int    `json:"mood_score"`
	PositiveIndicators int    `json:"positive_indicators"`
	NegativeIndicators int    `json:"negative_indicators"`
}

type MoodAnalysis struct {
	DailyMood      []MoodPoint        `json:"daily_mood"`      // last 30 entries
	WeeklyAverages map[string]float64 `json:"weekly_averages"` // last 12 weeks
	OverallTrend   string             `json:"overall_trend"`   // improving / declining / stable
	MoodVolatility float64            `json:"mood_volatility"`
}

type OverdueGoal struct {
	Goal        string `json:"goal"`
	TargetDate  string `json:"target_date"`
	DaysOverdue int    `json:"days_overdue"`
}

type GoalProgress struct {
	TotalGoals            int            `json:"total_goals"`
	CompletedGoals        int            `json:"completed_goals"`
	ActiveGoals           int            `json:"active_goals"`
	CompletionRate        float64        `json:"completion_rate"`
	AverageCompletionTime float64        `json:"average_completion_time"` // days
	GoalsByCategory       map[string]int `json:"goals_by_category"`
	OverdueGoals          []OverdueGoal  `json:"overdue_goals"`
}

type EntryFrequency struct {
	DaysSinceLast  int     `json:"days_since_last"`
	AverageGap     float64 `json:"average_gap"`
	FrequencyScore float64 `json:"frequency_score"`
}

type ActivityPatterns struct {
	ActivityByDay  map[string]int `json:"activity_by_day"`
	ActivityByHour map[int]int    `json:"activity_by_hour"`
	MostActiveDay  string         `json:"most_active_day,omitempty"`
	PeakHour       *int           `json:"peak_hour,omitempty"`
	EntryFrequency EntryFrequency `json:"entry_frequency"`
}

type GrowthMetrics struct {
	GrowthIndicators       int            `json:"growth_indicators"`
	ChallengeMentions      int            `json:"challenge_mentions"`
	GrowthToChallengeRatio float64        `json:"growth_to_challenge_ratio"`
	ResilienceScore        float64        `json:"resilience_score"`
	LearningFrequency      float64        `json:"learning_frequency"`
	SkillDevelopmentAreas  map[string]int `json:"skill_development_areas"`
}

type Recommendation struct {
	Type           string `json:"type"`
	Priority       string `json:"priority"`
	Recommendation string `json:"recommendation"`
}

type Achievement struct {
	Date        string           `json:"date"`
	Achievement string           `json:"achievement"`
	Type        memory.EventType `json:"type"`
}

type AchievementTracking struct {
	TotalAchievements  int            `json:"total_achievements"`
	RecentAchievements []Achievement  `json:"recent_achievements"`
	MonthlyCounts      map[string]int `json:"monthly_counts"`
	AchievementRate    float64        `json:"achievement_rate"`
}

// Comprehensive builds the full report from the current store snapshot
func (r *Reporter) Comprehensive() *Report {
	store := r.mem.Export()
	mood := r.analyzeMood(store.LifeEvents)
	goals := r.analyzeGoals(store.Goals)
	activity := r.analyzeActivity(store.LifeEvents)

	return &Report{
		Summary:             r.summaryStats(store),
		MoodAnalysis:        mood,
		GoalProgress:        goals,
		ActivityPatterns:    activity,
		GrowthMetrics:       r.growthMetrics(store.LifeEvents),
		Recommendations:     r.recommendations(mood, goals, activity),
		AchievementTracking: r.trackAchievements(store.LifeEvents),
	}
}

func (r *Reporter) summaryStats(store *memory.MemoryStore) SummaryStats {
	active := 0
	for _, g := range store.Goals {
		if g.Status == memory.GoalActive {
			active++
		}
	}
	return SummaryStats{
		TotalEntries:          len(store.LifeEvents),
		TotalGoals:            len(store.Goals),
		ActiveGoals:           active,
		DaysTracked:           daysTracked(store.LifeEvents),
		AverageEntriesPerWeek: weeklyAverage(store.LifeEvents),
		ConsistencyScore:      gapConsistency(store.LifeEvents),
	}
}

func (r *Reporter) analyzeMood(events []memory.LifeEvent) MoodAnalysis {
	var daily []MoodPoint
	weekly := map[string][]float64{}
	var weekOrder []string

	for _, ev := range events {
		text := strings.ToLower(ev.Entry)
		pos := countHits(text, positiveWords)
		neg := countHits(text, negativeWords)
		score := pos - neg

		daily = append(daily, MoodPoint{
			Date:               ev.Date,
			MoodScore:          score,
			PositiveIndicators: pos,
			NegativeIndicators: neg,
		})

		week := weekKey(ev.Timestamp)
		if _, seen := weekly[week]; !seen {
			weekOrder = append(weekOrder, week)
		}
		weekly[week] = append(weekly[week], float64(score))
	}

	if len(daily) > 30 {
		daily = daily[len(daily)-30:]
	}
	if len(weekOrder) > 12 {
		weekOrder = weekOrder[len(weekOrder)-12:]
	}

	averages := make(map[string]float64, len(weekOrder))
	var series []float64
	for _, week := range weekOrder {
		avg := mean(weekly[week])
		averages[week] = avg
		series = append(series, avg)
	}

	return MoodAnalysis{
		DailyMood:      daily,
		WeeklyAverages: averages,
		OverallTrend:   trendLabel(series),
		MoodVolatility: stddev(series),
	}
}

func (r *Reporter) analyzeGoals(goals []memory.Goal) GoalProgress {
	var completed, active int
	var completionDays []float64
	for _, g := range goals {
		switch g.Status {
		case memory.GoalCompleted:
			completed++
			if g.CreatedDate != "" && g.CompletedDate != "" {
				if d, ok := daysBetween(g.CreatedDate, g.CompletedDate); ok {
					completionDays = append(completionDays, d)
				}
			}
		case memory.GoalActive:
			active++
		}
	}

	rate := 0.0
	if len(goals) > 0 {
		rate = float64(completed) / float64(len(goals)) * 100
	}

	return GoalProgress{
		TotalGoals:            len(goals),
		CompletedGoals:        completed,
		ActiveGoals:           active,
		CompletionRate:        rate,
		AverageCompletionTime: mean(completionDays),
		GoalsByCategory:       categorizeGoals(goals),
		OverdueGoals:          r.overdueGoals(goals),
	}
}

func (r *Reporter) analyzeActivity(events []memory.LifeEvent) ActivityPatterns {
	byDay := map[string]int{}
	byHour := map[int]int{}
	for _, ev := range events {
		byDay[ev.Timestamp.Weekday().String()]++
		byHour[ev.Timestamp.Hour()]++
	}

	out := ActivityPatterns{
		ActivityByDay:  byDay,
		ActivityByHour: byHour,
		EntryFrequency: r.entryFrequency(events),
	}

	best := 0
	for day, n := range byDay {
		if n > best || (n == best && day < out.MostActiveDay) {
			best = n
			out.MostActiveDay = day
		}
	}
	peakCount := 0
	for hour, n := range byHour {
		if n > peakCount || (n == peakCount && out.PeakHour != nil && hour < *out.PeakHour) {
			peakCount = n
			h := hour
			out.PeakHour = &h
		}
	}
	return out
}

func (r *Reporter) entryFrequency(events []memory.LifeEvent) EntryFrequency {
	if len(events) == 0 {
		return EntryFrequency{}
	}

	last := events[len(events)-1].Timestamp
	daysSince := int(r.now().Sub(last).Hours() / 24)
	if daysSince < 0 {
		daysSince = 0
	}

	avgGap := averageGapDays(events)
	score := 100 - avgGap*5
	if score < 0 {
		score = 0
	}
	return EntryFrequency{
		DaysSinceLast:  daysSince,
		AverageGap:     avgGap,
		FrequencyScore: score,
	}
}

func (r *Reporter) growthMetrics(events []memory.LifeEvent) GrowthMetrics {
	recent := events
	if len(recent) > 30 {
		recent = recent[len(recent)-30:]
	}

	growth, challenge := 0, 0
	for _, ev := range recent {
		text := strings.ToLower(ev.Entry)
		growth += countHits(text, growthWords)
		challenge += countHits(text, challengeWords)
	}

	ratio := float64(growth)
	if challenge > 0 {
		ratio = float64(growth) / float64(challenge)
	}

	return GrowthMetrics{
		GrowthIndicators:       growth,
		ChallengeMentions:      challenge,
		GrowthToChallengeRatio: ratio,
		ResilienceScore:        resilienceScore(events),
		LearningFrequency:      learningFrequency(events),
		SkillDevelopmentAreas:  skillAreas(events),
	}
}

func (r *Reporter) recommendations(mood MoodAnalysis, goals GoalProgress, activity ActivityPatterns) []Recommendation {
	out := []Recommendation{}

	if mood.OverallTrend == "declining" {
		out = append(out, Recommendation{
			Type:           "mood",
			Priority:       "high",
			Recommendation: "Your mood trend shows decline. Consider scheduling activities that typically boost your mood.",
		})
	}
	if goals.TotalGoals > 0 && goals.CompletionRate < 50 {
		out = append(out, Recommendation{
			Type:           "goals",
			Priority:       "medium",
			Recommendation: "Your goal completion rate is low. Consider breaking goals into smaller, more manageable tasks.",
		})
	}
	if activity.EntryFrequency.DaysSinceLast > 7 {
		out = append(out, Recommendation{
			Type:           "engagement",
			Priority:       "medium",
			Recommendation: "You haven't logged an entry in a while. Regular reflection helps maintain progress.",
		})
	}
	return out
}

func (r *Reporter) trackAchievements(events []memory.LifeEvent) AchievementTracking {
	var achievements []Achievement
	monthly := map[string]int{}
	for _, ev := range events {
		if countHits(strings.ToLower(ev.Entry), achievementWords) > 0 {
			achievements = append(achievements, Achievement{
				Date:        ev.Date,
				Achievement: ev.Entry,
				Type:        ev.Type,
			})
			monthly[ev.Timestamp.Format("2006-01")]++
		}
	}

	recent := achievements
	if len(recent) > 10 {
		recent = recent[len(recent)-10:]
	}

	rate := 0.0
	if len(events) > 0 {
		rate = float64(len(achievements)) / float64(len(events)) * 100
	}
	return AchievementTracking{
		TotalAchievements:  len(achievements),
		RecentAchievements: recent,
		MonthlyCounts:      monthly,
		AchievementRate:    rate,
	}
}

func (r *Reporter) overdueGoals(goals []memory.Goal) []OverdueGoal {
	today := r.now().Format("2006-01-02")
	out := []OverdueGoal{}
	for _, g := range goals {
		if g.Status != memory.GoalActive || g.TargetDate == "" {
			continue
		}
		if g.TargetDate < today {
			days := 0
			if d, ok := daysBetween(g.TargetDate, today); ok {
				days = int(d)
			}
			out = append(out, OverdueGoal{Goal: g.Goal, TargetDate: g.TargetDate, DaysOverdue: days})
		}
	}
	return out
}

// --- shared helpers ---

func countHits(lowerText string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(lowerText, w) {
			n++
		}
	}
	return n
}

func daysTracked(events []memory.LifeEvent) int {
	days := map[string]struct{}{}
	for _, ev := range events {
		days[ev.Date] = struct{}{}
	}
	return len(days)
}

func weeklyAverage(events []memory.LifeEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	first := events[0].Timestamp
	last := events[len(events)-1].Timestamp
	weeks := last.Sub(first).Hours() / 24 / 7
	if weeks < 1 {
		weeks = 1
	}
	return float64(len(events)) / weeks
}

// gapConsistency scores entry regularity: 100 minus ten points per day of
// average gap, floored at zero. Needs a week of history to say anything.
func gapConsistency(events []memory.LifeEvent) float64 {
	if len(events) < 7 {
		return 0
	}
	avgGap := averageGapDays(events)
	score := 100 - avgGap*10
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func averageGapDays(events []memory.LifeEvent) float64 {
	if len(events) < 2 {
		return 0
	}
	times := make([]time.Time, len(events))
	for i, ev := range events {
		times[i] = ev.Timestamp
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })

	var gaps []float64
	for i := 1; i < len(times); i++ {
		gaps = append(gaps, times[i].Sub(times[i-1]).Hours()/24)
	}
	return mean(gaps)
}

func daysBetween(from, to string) (float64, bool) {
	a, err1 := time.Parse("2006-01-02", from)
	b, err2 := time.Parse("2006-01-02", to)
	if err1 != nil || err2 != nil {
		return 0, false
	}
	return b.Sub(a).Hours() / 24, true
}

func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// trendLabel fits a simple least-squares slope over the series
func trendLabel(values []float64) string {
	if len(values) < 2 {
		return "insufficient_data"
	}
	n := float64(len(values))
	var sumX, sumY, sumXY, sumX2 float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumX2 += x * x
	}
	slope := (n*sumXY - sumX*sumY) / (n*sumX2 - sumX*sumX)
	switch {
	case slope > 0.1:
		return "improving"
	case slope < -0.1:
		return "declining"
	default:
		return "stable"
	}
}

func categorizeGoals(goals []memory.Goal) map[string]int {
	categories := map[string]int{}
	for _, g := range goals {
		text := strings.ToLower(g.Goal)
		switch {
		case containsAny(text, "career", "job", "work", "professional"):
			categories["career"]++
		case containsAny(text, "health", "fitness", "exercise", "diet"):
			categories["health"]++
		case containsAny(text, "relationship", "family", "friend", "social"):
			categories["relationships"]++
		case containsAny(text, "learn", "skill", "education", "course"):
			categories["learning"]++
		default:
			categories["personal"]++
		}
	}
	return categories
}

// resilienceScore measures recovery language within three entries of a
// challenge mention
func resilienceScore(events []memory.LifeEvent) float64 {
	if len(events) < 5 {
		return 50
	}

	challenges, recovered := 0, 0
	for i, ev := range events {
		if countHits(strings.ToLower(ev.Entry), challengeWords) == 0 {
			continue
		}
		challenges++
		for j := i + 1; j < len(events) && j <= i+3; j++ {
			if countHits(strings.ToLower(events[j].Entry), recoveryWords) > 0 {
				recovered++
				break
			}
		}
	}
	if challenges == 0 {
		return 75
	}
	return float64(recovered) / float64(challenges) * 100
}

func learningFrequency(events []memory.LifeEvent) float64 {
	if len(events) == 0 {
		return 0
	}
	recent := events
	if len(recent) > 30 {
		recent = recent[len(recent)-30:]
	}
	n := 0
	for _, ev := range recent {
		if countHits(strings.ToLower(ev.Entry), learningWords) > 0 {
			n++
		}
	}
	return float64(n) / float64(len(recent)) * 100
}

func skillAreas(events []memory.LifeEvent) map[string]int {
	recent := events
	if len(recent) > 50 {
		recent = recent[len(recent)-50:]
	}
	mentions := map[string]int{}
	for _, ev := range recent {
		text := strings.ToLower(ev.Entry)
		for category, words := range skillWords {
			if countHits(text, words) > 0 {
				mentions[category]++
			}
		}
	}
	return mentions
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	return math.Sqrt(sq / float64(len(values)-1))
}
