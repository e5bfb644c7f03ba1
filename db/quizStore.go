package db

import (
	"encoding/json"
	"fmt"

	"studybuddy/models"
)

func (s *SQLStore) SaveQuiz(userID int64, topic string, questions []models.Question) (int64, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	questionsJSON, err := json.Marshal(questions)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal questions: %w", err)
	}

	tx, err := s.db.Beginx()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quizID, err := s.insertID(tx, "INSERT INTO quizzes (user_id, topic, questions) VALUES (?, ?, ?)", userID, topic, string(questionsJSON))
	if err != nil {
		return 0, fmt.Errorf("failed to save quiz: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit quiz: %w", err)
	}

	return quizID, nil
}

func (s *SQLStore) GetQuizzes(userID int64, topic string) ([]*models.Quiz, error) {
	query := `
		SELECT id, user_id, topic, questions, created_at
		FROM quizzes
		WHERE user_id = ?`
	args := []any{userID}

	if topic != "" {
		query += " AND topic = ?"
		args = append(args, topic)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := s.db.Queryx(s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		quiz := &models.Quiz{}
		var questionsJSON string
		err := rows.Scan(&quiz.ID, &quiz.UserID, &quiz.Topic, &questionsJSON, &quiz.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}

		if err := json.Unmarshal([]byte(questionsJSON), &quiz.Questions); err != nil {
			return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
		}

		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quizzes: %w", err)
	}

	return quizzes, nil
}
