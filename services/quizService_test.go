package services

import (
	"strings"
	"testing"

	"studybuddy/models"
)

func TestQuestionsForTopic(t *testing.T) {
	tests := []struct {
		name          string
		topic         string
		wantFirst     string
		wantGenerated bool
	}{
		{"exact bank key", "linear equations", "Solve for x: 3x + 5 = 14", false},
		{"cased and padded", "Linear Equations", "Solve for x: 3x + 5 = 14", false},
		{"topic contains key", "advanced linear equations practice", "Solve for x: 3x + 5 = 14", false},
		{"key contains topic", "quadratic", "Solve for x: x² - 5x + 6 = 0", false},
		{"unknown topic", "French Revolution", "Sample question about French Revolution?", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			questions := questionsForTopic(tt.topic)
			if len(questions) != 2 {
				t.Fatalf("expected 2 questions, got %d", len(questions))
			}
			if questions[0].Question != tt.wantFirst {
				t.Errorf("expected first question %q, got %q", tt.wantFirst, questions[0].Question)
			}
			if tt.wantGenerated && len(questions[0].Options) != 4 {
				t.Errorf("generated questions must carry 4 options, got %d", len(questions[0].Options))
			}
		})
	}
}

func TestFormatQuiz(t *testing.T) {
	questions := []models.Question{
		{
			Question: "Solve for x: 3x + 5 = 14",
			Options:  []string{"x = 3", "x = 4", "x = 5", "x = 6"},
			Answer:   "x = 3",
		},
	}

	formatted := formatQuiz("Linear Equations", questions)

	for _, want := range []string{
		"Quiz on Linear Equations:",
		"1. Solve for x: 3x + 5 = 14",
		"a) x = 3",
		"b) x = 4",
		"c) x = 5",
		"d) x = 6",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("formatted quiz is missing %q:\n%s", want, formatted)
		}
	}

	// The answer key stays out of the rendered quiz body.
	if strings.Contains(formatted, "Answer") {
		t.Errorf("formatted quiz must not reveal the answer:\n%s", formatted)
	}
}

func TestFindQuestion(t *testing.T) {
	quizzes := []*models.Quiz{
		{
			Topic: "Linear Equations",
			Questions: []models.Question{
				{Question: "Solve for x: 3x + 5 = 14", Answer: "x = 3"},
				{Question: "Solve for y: 2y - 8 = 12", Answer: "y = 10"},
			},
		},
	}

	tests := []struct {
		name       string
		text       string
		wantAnswer string
		wantFound  bool
	}{
		{"exact text", "Solve for x: 3x + 5 = 14", "x = 3", true},
		{"substring", "3x + 5 = 14", "x = 3", true},
		{"fuzzy with typo", "Solve for x 3x + 5 = 14", "x = 3", true},
		{"unrelated", "What year did WWII end?", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, topic, found := findQuestion(quizzes, tt.text)
			if found != tt.wantFound {
				t.Fatalf("expected found=%v, got %v", tt.wantFound, found)
			}
			if !found {
				return
			}
			if question.Answer != tt.wantAnswer {
				t.Errorf("expected answer %q, got %q", tt.wantAnswer, question.Answer)
			}
			if topic != "Linear Equations" {
				t.Errorf("expected topic 'Linear Equations', got %q", topic)
			}
		})
	}
}

func TestGenerateStoresQuiz(t *testing.T) {
	store := newTestStore(t)
	service := NewQuizService(store)

	formatted, err := service.Generate("Linear Equations", "alice")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(formatted, "Quiz on Linear Equations:") {
		t.Errorf("unexpected quiz rendering: %q", formatted)
	}

	quizzes, err := service.GetQuizzes("alice", "Linear Equations")
	if err != nil {
		t.Fatalf("GetQuizzes failed: %v", err)
	}
	if len(quizzes) != 1 {
		t.Fatalf("expected 1 stored quiz, got %d", len(quizzes))
	}
	if len(quizzes[0].Questions) != 2 {
		t.Errorf("expected 2 stored questions, got %d", len(quizzes[0].Questions))
	}
}

func TestCheckAnswer(t *testing.T) {
	store := newTestStore(t)
	planService := NewPlanService(store)
	quizService := NewQuizService(store)

	if _, err := planService.CreateFromRequest("Subject: Math, Goal: Master Algebra in 2 weeks", "alice"); err != nil {
		t.Fatalf("CreateFromRequest failed: %v", err)
	}
	if _, err := quizService.Generate("Linear Equations", "alice"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name       string
		submission string
		want       string
	}{
		{
			name:       "correct answer",
			submission: "Question: Solve for x: 3x + 5 = 14, Answer: x = 3",
			want:       "Great job! 'x = 3' is correct!",
		},
		{
			name:       "correct ignores case",
			submission: "Question: Solve for x: 3x + 5 = 14, Answer: X = 3",
			want:       "Great job! 'X = 3' is correct!",
		},
		{
			name:       "wrong answer",
			submission: "Question: Solve for x: 3x + 5 = 14, Answer: x = 4",
			want:       "Not quite. The correct answer is 'x = 3'. Keep practicing!",
		},
		{
			name:       "unknown question",
			submission: "Question: What is the capital of France?, Answer: Paris",
			want:       "Question not found in quiz history.",
		},
		{
			name:       "invalid format",
			submission: "x = 3",
			want:       "Invalid format. Please submit in format 'Question: [question text], Answer: [your answer]'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := quizService.CheckAnswer(tt.submission, "alice")
			if err != nil {
				t.Fatalf("CheckAnswer failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCheckAnswerBumpsTopicProgress(t *testing.T) {
	store := newTestStore(t)
	planService := NewPlanService(store)
	quizService := NewQuizService(store)
	progressService := NewProgressService(store)

	planService.CreateFromRequest("Subject: Math, Goal: Master Algebra in 2 weeks", "alice")
	quizService.Generate("Linear Equations", "alice")

	if _, err := quizService.CheckAnswer("Question: Solve for x: 3x + 5 = 14, Answer: x = 3", "alice"); err != nil {
		t.Fatalf("CheckAnswer failed: %v", err)
	}

	view, err := progressService.GetProgress("alice", "Linear Equations")
	if err != nil {
		t.Fatalf("GetProgress failed: %v", err)
	}
	if view == nil || view.Progress != correctAnswerProgress {
		t.Errorf("expected progress %d after a correct answer, got %+v", correctAnswerProgress, view)
	}
}
