package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"studybuddy/db"
	"studybuddy/models"
)

// correctAnswerProgress is the topic progress awarded for a correct quiz
// answer (capped at 100 by the store's mark-complete path).
const correctAnswerProgress = 50

type QuizService struct {
	store db.StudyStore
}

func NewQuizService(store db.StudyStore) *QuizService {
	return &QuizService{store: store}
}

var quizBank = map[string][]models.Question{
	"linear equations": {
		{
			Question: "Solve for x: 3x + 5 = 14",
			Options:  []string{"x = 3", "x = 4", "x = 5", "x = 6"},
			Answer:   "x = 3",
		},
		{
			Question: "Solve for y: 2y - 8 = 12",
			Options:  []string{"y = 4", "y = 8", "y = 10", "y = 12"},
			Answer:   "y = 10",
		},
	},
	"quadratic equations": {
		{
			Question: "Solve for x: x² - 5x + 6 = 0",
			Options:  []string{"x = 2, x = 3", "x = -2, x = -3", "x = 1, x = 6", "x = -1, x = -6"},
			Answer:   "x = 2, x = 3",
		},
		{
			Question: "What is the discriminant of x² + 4x + 4 = 0?",
			Options:  []string{"0", "4", "8", "16"},
			Answer:   "0",
		},
	},
}

// Generate builds a quiz for a topic, stores it, and returns it formatted
// for the conversation.
func (s *QuizService) Generate(topic, username string) (string, error) {
	log.Printf("[INFO] Generating quiz on %q for user %q", topic, username)

	questions := questionsForTopic(topic)

	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}

	if _, err := s.store.SaveQuiz(userID, topic, questions); err != nil {
		return "", fmt.Errorf("failed to save quiz: %w", err)
	}

	return formatQuiz(topic, questions), nil
}

// CheckAnswer parses a "Question: ..., Answer: ..." submission, finds the
// question in the user's quiz history and grades the answer. A correct
// answer bumps the quiz topic's progress.
func (s *QuizService) CheckAnswer(submission, username string) (string, error) {
	log.Printf("[INFO] Checking quiz answer for user %q", username)

	parts := strings.SplitN(submission, ", Answer: ", 2)
	if len(parts) != 2 {
		return "Invalid format. Please submit in format 'Question: [question text], Answer: [your answer]'", nil
	}

	questionText := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "Question:"))
	userAnswer := strings.TrimSpace(parts[1])

	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return "", fmt.Errorf("failed to resolve user: %w", err)
	}

	quizzes, err := s.store.GetQuizzes(userID, "")
	if err != nil {
		return "", fmt.Errorf("failed to load quiz history: %w", err)
	}

	question, topic, found := findQuestion(quizzes, questionText)
	if !found {
		return "Question not found in quiz history.", nil
	}

	if !strings.EqualFold(userAnswer, question.Answer) {
		return fmt.Sprintf("Not quite. The correct answer is '%s'. Keep practicing!", question.Answer), nil
	}

	if topic != "" {
		if _, err := s.store.UpdateTopicProgress(userID, topic, correctAnswerProgress); err != nil {
			log.Printf("[ERROR] Failed to bump progress for topic %q: %v", topic, err)
		}
	}

	return fmt.Sprintf("Great job! '%s' is correct!", userAnswer), nil
}

func (s *QuizService) GetQuizzes(username, topic string) ([]*models.Quiz, error) {
	userID, err := s.store.GetOrCreateUser(username)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	quizzes, err := s.store.GetQuizzes(userID, topic)
	if err != nil {
		return nil, fmt.Errorf("failed to get quizzes: %w", err)
	}
	return quizzes, nil
}

// findQuestion locates a question by text across quiz history, newest quiz
// first. Exact substring match wins; fuzzy matching covers typos in the
// resubmitted question text.
func findQuestion(quizzes []*models.Quiz, questionText string) (models.Question, string, bool) {
	for _, quiz := range quizzes {
		for _, question := range quiz.Questions {
			if strings.Contains(question.Question, questionText) {
				return question, quiz.Topic, true
			}
		}
	}

	for _, quiz := range quizzes {
		for _, question := range quiz.Questions {
			if fuzzy.MatchNormalizedFold(questionText, question.Question) {
				return question, quiz.Topic, true
			}
		}
	}

	return models.Question{}, "", false
}

func questionsForTopic(topic string) []models.Question {
	topicLower := strings.ToLower(topic)

	keys := lo.Keys(quizBank)
	matched, found := lo.Find(keys, func(key string) bool {
		return strings.Contains(topicLower, key) || strings.Contains(key, topicLower)
	})
	if found {
		return quizBank[matched]
	}

	return []models.Question{
		{
			Question: fmt.Sprintf("Sample question about %s?", topic),
			Options:  []string{"Option A", "Option B", "Option C", "Option D"},
			Answer:   "Option B",
		},
		{
			Question: fmt.Sprintf("Another question related to %s?", topic),
			Options:  []string{"First choice", "Second choice", "Third choice", "Fourth choice"},
			Answer:   "Third choice",
		},
	}
}

func formatQuiz(topic string, questions []models.Question) string {
	var formatted strings.Builder
	formatted.WriteString(fmt.Sprintf("Quiz on %s:\n\n", topic))

	for i, question := range questions {
		formatted.WriteString(fmt.Sprintf("%d. %s\n", i+1, question.Question))
		for j, option := range question.Options {
			formatted.WriteString(fmt.Sprintf("   %c) %s\n", 'a'+j, option))
		}
		formatted.WriteString("\n")
	}

	return formatted.String()
}
