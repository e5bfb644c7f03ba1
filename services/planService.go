package services

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"studybuddy/db"
	"studybuddy/models"
)

const defaultTimelineDays = 14

type PlanService struct {
	store db.StudyStore
}

func NewPlanService(store db.StudyStore) *PlanService {
	return &PlanService{store: store}
}

// CreateFromRequest parses a "Subject: X, Goal: Y" request, generates a
// topic schedule and persists it as the user's new current plan.
func (s *PlanService) CreateFromRequest(request, username string) (string, error) {
	log.Printf("[INFO] Creating study plan for user %q from request %q", username, request)

	subject, goal := parsePlanRequest(request)
	if subject == "" {
		return "", fmt.Errorf("could not determine a subject from %q, expected 'Subject: X, Goal: Y'", request)
	}

	timelineDays := extractTimelineDays(goal)
	topics := topicsForSubject(subject)

	// Spread topics over the timeline, one slot every few days.
	daysPerTopic := timelineDays / len(topics)
	if daysPerTopic < 1 {
		daysPerTopic = 1
	}

	var schedule []models.TopicInput
	currentDay := 1
	for _, topic := range topics {
		if currentDay > timelineDays {
			break
		}
		schedule = append(schedule, models.TopicInput{Day: currentDay, Topic: topic})
		currentDay += daysPerTopic
	}

	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}

	if _, err := s.store.CreateStudyPlan(userID, subject, goal, schedule); err != nil {
		return "", fmt.Errorf("failed to create study plan: %w", err)
	}

	log.Printf("[INFO] Created study plan for %q: %d topics over %d days", subject, len(schedule), timelineDays)
	return fmt.Sprintf("Created a personalized study plan for %s with %d key topics spread over %d days.", subject, len(schedule), timelineDays), nil
}

func (s *PlanService) GetCurrentPlan(username string) (*models.StudyPlan, error) {
	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	plan, err := s.store.GetCurrentStudyPlan(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get current plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) MarkTopicComplete(topic, username string) (string, error) {
	log.Printf("[INFO] Marking topic %q complete for user %q", topic, username)

	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}

	updated, err := s.store.MarkTopicComplete(userID, topic)
	if err != nil {
		return "", fmt.Errorf("failed to mark topic complete: %w", err)
	}

	if !updated {
		return fmt.Sprintf("Topic '%s' not found in your study plan.", topic), nil
	}
	return fmt.Sprintf("Marked '%s' as completed! Well done!", topic), nil
}

func parsePlanRequest(request string) (subject, goal string) {
	parts := strings.SplitN(request, ", Goal: ", 2)
	subject = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "Subject:"))
	goal = "Master the subject"
	if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
		goal = strings.TrimSpace(parts[1])
	}
	return subject, goal
}

// extractTimelineDays reads a "N week(s)" phrase out of the goal. Anything
// else falls back to two weeks.
func extractTimelineDays(goal string) int {
	if !strings.Contains(strings.ToLower(goal), "week") {
		return defaultTimelineDays
	}

	for _, field := range strings.Fields(goal) {
		if weeks, err := strconv.Atoi(field); err == nil {
			return weeks * 7
		}
	}
	return defaultTimelineDays
}

func topicsForSubject(subject string) []string {
	lower := strings.ToLower(subject)

	switch {
	case strings.Contains(lower, "math") || strings.Contains(lower, "algebra"):
		return []string{
			"Linear Equations", "Quadratic Equations", "Inequalities",
			"Functions and Graphs", "Exponents and Radicals", "Polynomials",
			"Factoring", "Rational Expressions", "Systems of Equations",
		}
	case strings.Contains(lower, "history"):
		return []string{
			"Ancient Civilizations", "Middle Ages", "Renaissance",
			"Industrial Revolution", "World War I", "World War II",
			"Cold War", "Modern Era", "Historical Analysis Methods",
		}
	case strings.Contains(lower, "science") || strings.Contains(lower, "physics"):
		return []string{
			"Mechanics", "Thermodynamics", "Waves", "Electricity",
			"Magnetism", "Optics", "Modern Physics", "Quantum Mechanics",
			"Relativity",
		}
	default:
		return []string{
			subject + " Fundamentals", subject + " Intermediate Concepts",
			subject + " Advanced Topics", subject + " Practical Applications",
			subject + " Problem Solving", subject + " Review",
		}
	}
}
