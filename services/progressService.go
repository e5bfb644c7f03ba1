package services

import (
	"fmt"
	"log"

	"studybuddy/db"
	"studybuddy/models"
)

type ProgressService struct {
	store db.StudyStore
}

func NewProgressService(store db.StudyStore) *ProgressService {
	return &ProgressService{store: store}
}

// Track reports progress for one topic, or overall progress across the
// user's current plan when topic is empty.
func (s *ProgressService) Track(topic, username string) (string, error) {
	log.Printf("[INFO] Tracking progress for user %q, topic %q", username, topic)

	view, err := s.GetProgress(username, topic)
	if err != nil {
		return "", err
	}

	if topic != "" {
		if view == nil {
			return fmt.Sprintf("No progress data available for %s.", topic), nil
		}
		return fmt.Sprintf("Your progress on %s: %d%%", topic, view.Progress), nil
	}

	if view == nil {
		return "No progress data available. Please create a study plan first.", nil
	}
	return fmt.Sprintf("You're %d%% done with %s.", view.OverallProgress, view.Subject), nil
}

// UpdateTopic sets a topic's progress in the current plan and reports
// whether the topic existed.
func (s *ProgressService) UpdateTopic(topic string, progress int, username string) (bool, error) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return false, fmt.Errorf("failed to resolve user: %w", err)
	}

	updated, err := s.store.UpdateTopicProgress(userID, topic, progress)
	if err != nil {
		return false, fmt.Errorf("failed to update topic progress: %w", err)
	}
	return updated, nil
}

func (s *ProgressService) GetProgress(username, topic string) (*models.ProgressView, error) {
	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	view, err := s.store.GetProgress(userID, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return view, nil
}
