package db

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/jmoiron/sqlx"

	"studybuddy/models"
)

func (s *SQLStore) GetOrCreateUser(username string) (int64, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	var id int64
	err := s.db.QueryRow(s.db.Rebind("SELECT id FROM users WHERE username = ?"), username).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("failed to look up user: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err = s.insertID(tx, "INSERT INTO users (username) VALUES (?)", username)
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit user: %w", err)
	}

	return id, nil
}

func (s *SQLStore) CreateStudyPlan(userID int64, subject, goal string, topics []models.TopicInput) (int64, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	planID, err := s.insertID(tx, "INSERT INTO study_plans (user_id, subject, goal) VALUES (?, ?, ?)", userID, subject, goal)
	if err != nil {
		return 0, fmt.Errorf("failed to create study plan: %w", err)
	}

	// Topics always start at zero progress, even when submitted as completed.
	insertTopic := s.db.Rebind("INSERT INTO topics (plan_id, day, topic, completed, progress) VALUES (?, ?, ?, ?, 0)")
	for _, topic := range topics {
		if _, err := tx.Exec(insertTopic, planID, topic.Day, topic.Topic, topic.Completed); err != nil {
			return 0, fmt.Errorf("failed to insert topic %q: %w", topic.Topic, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit study plan: %w", err)
	}

	return planID, nil
}

func (s *SQLStore) GetCurrentStudyPlan(userID int64) (*models.StudyPlan, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	plan, err := s.currentPlan(tx, userID)
	if err != nil || plan == nil {
		return plan, err
	}

	rows, err := tx.Queryx(s.db.Rebind(`
		SELECT id, plan_id, day, topic, completed, progress
		FROM topics
		WHERE plan_id = ?
		ORDER BY day ASC, id ASC`), plan.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var topic models.Topic
		if err := rows.StructScan(&topic); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		plan.Topics = append(plan.Topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over topics: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit plan read: %w", err)
	}

	return plan, nil
}

func (s *SQLStore) UpdateTopicProgress(userID int64, topicName string, progress int) (bool, error) {
	return s.updateCurrentPlanTopic(userID, topicName,
		"UPDATE topics SET progress = ? WHERE plan_id = ? AND topic = ?",
		func(planID int64) []any { return []any{progress, planID, topicName} })
}

func (s *SQLStore) MarkTopicComplete(userID int64, topicName string) (bool, error) {
	return s.updateCurrentPlanTopic(userID, topicName,
		"UPDATE topics SET completed = TRUE, progress = 100 WHERE plan_id = ? AND topic = ?",
		func(planID int64) []any { return []any{planID, topicName} })
}

// updateCurrentPlanTopic resolves the user's most recent plan and applies a
// topic update against it in the same transaction, under the user's lock.
// Topics are matched by exact name.
func (s *SQLStore) updateCurrentPlanTopic(userID int64, topicName, query string, args func(planID int64) []any) (bool, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	tx, err := s.db.Beginx()
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	plan, err := s.currentPlan(tx, userID)
	if err != nil {
		return false, err
	}
	if plan == nil {
		return false, nil
	}

	result, err := tx.Exec(s.db.Rebind(query), args(plan.ID)...)
	if err != nil {
		return false, fmt.Errorf("failed to update topic %q: %w", topicName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit topic update: %w", err)
	}

	return affected > 0, nil
}

func (s *SQLStore) GetProgress(userID int64, topic string) (*models.ProgressView, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	plan, err := s.currentPlan(tx, userID)
	if err != nil || plan == nil {
		return nil, err
	}

	if topic != "" {
		var progress int
		err := tx.QueryRow(s.db.Rebind("SELECT progress FROM topics WHERE plan_id = ? AND topic = ?"), plan.ID, topic).Scan(&progress)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query topic progress: %w", err)
		}
		return &models.ProgressView{Topic: topic, Progress: progress}, nil
	}

	var average sql.NullFloat64
	err = tx.QueryRow(s.db.Rebind("SELECT AVG(progress) FROM topics WHERE plan_id = ?"), plan.ID).Scan(&average)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall progress: %w", err)
	}

	overall := 0
	if average.Valid {
		overall = int(math.Round(average.Float64))
	}

	return &models.ProgressView{Subject: plan.Subject, OverallProgress: overall}, nil
}

// currentPlan returns the most recently created plan for a user, without
// topics, or nil when the user has no plan yet.
func (s *SQLStore) currentPlan(tx *sqlx.Tx, userID int64) (*models.StudyPlan, error) {
	plan := &models.StudyPlan{}
	err := tx.QueryRowx(s.db.Rebind(`
		SELECT id, user_id, subject, goal, created_at
		FROM study_plans
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`), userID).StructScan(plan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query current plan: %w", err)
	}
	return plan, nil
}
