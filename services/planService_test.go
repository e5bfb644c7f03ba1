package services

import (
	"strings"
	"testing"

	"studybuddy/db"
)

func newTestStore(t *testing.T) db.StudyStore {
	t.Helper()

	store, err := db.NewSQLStore("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestParsePlanRequest(t *testing.T) {
	tests := []struct {
		name        string
		request     string
		wantSubject string
		wantGoal    string
	}{
		{
			name:        "full format",
			request:     "Subject: Math, Goal: Master Algebra in 2 weeks",
			wantSubject: "Math",
			wantGoal:    "Master Algebra in 2 weeks",
		},
		{
			name:        "subject only",
			request:     "Subject: History",
			wantSubject: "History",
			wantGoal:    "Master the subject",
		},
		{
			name:        "bare subject without prefix",
			request:     "Chemistry",
			wantSubject: "Chemistry",
			wantGoal:    "Master the subject",
		},
		{
			name:        "empty goal",
			request:     "Subject: Math, Goal: ",
			wantSubject: "Math",
			wantGoal:    "Master the subject",
		},
		{
			name:        "extra whitespace",
			request:     "  Subject:  Physics , Goal: Pass the exam in 3 weeks",
			wantSubject: "Physics",
			wantGoal:    "Pass the exam in 3 weeks",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject, goal := parsePlanRequest(tt.request)
			if subject != tt.wantSubject {
				t.Errorf("expected subject %q, got %q", tt.wantSubject, subject)
			}
			if goal != tt.wantGoal {
				t.Errorf("expected goal %q, got %q", tt.wantGoal, goal)
			}
		})
	}
}

func TestExtractTimelineDays(t *testing.T) {
	tests := []struct {
		name string
		goal string
		want int
	}{
		{"two weeks", "Master Algebra in 2 weeks", 14},
		{"one week", "Cram for the test in 1 week", 7},
		{"six weeks", "Learn everything in 6 weeks", 42},
		{"no timeline", "Master the subject", 14},
		{"week without a number", "study for a week", 14},
		{"number without week", "Pass exam 101", 14},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractTimelineDays(tt.goal); got != tt.want {
				t.Errorf("extractTimelineDays(%q): expected %d, got %d", tt.goal, tt.want, got)
			}
		})
	}
}

func TestTopicsForSubject(t *testing.T) {
	tests := []struct {
		name      string
		subject   string
		wantFirst string
		wantCount int
	}{
		{"math", "Math", "Linear Equations", 9},
		{"algebra maps to math", "Algebra", "Linear Equations", 9},
		{"history", "World History", "Ancient Civilizations", 9},
		{"physics maps to science", "Physics", "Mechanics", 9},
		{"unknown subject", "Chemistry", "Chemistry Fundamentals", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics := topicsForSubject(tt.subject)
			if len(topics) != tt.wantCount {
				t.Fatalf("expected %d topics, got %d", tt.wantCount, len(topics))
			}
			if topics[0] != tt.wantFirst {
				t.Errorf("expected first topic %q, got %q", tt.wantFirst, topics[0])
			}
		})
	}
}

func TestCreateFromRequest(t *testing.T) {
	store := newTestStore(t)
	service := NewPlanService(store)

	message, err := service.CreateFromRequest("Subject: Math, Goal: Master Algebra in 2 weeks", "alice")
	if err != nil {
		t.Fatalf("CreateFromRequest failed: %v", err)
	}

	if message != "Created a personalized study plan for Math with 9 key topics spread over 14 days." {
		t.Errorf("unexpected confirmation message: %q", message)
	}

	plan, err := service.GetCurrentPlan("alice")
	if err != nil {
		t.Fatalf("GetCurrentPlan failed: %v", err)
	}
	if plan == nil {
		t.Fatal("expected the plan to be persisted")
	}
	if plan.Subject != "Math" || plan.Goal != "Master Algebra in 2 weeks" {
		t.Errorf("unexpected plan header: %q / %q", plan.Subject, plan.Goal)
	}
	if len(plan.Topics) != 9 {
		t.Fatalf("expected 9 scheduled topics, got %d", len(plan.Topics))
	}

	// Nine topics over fourteen days gives one topic per day.
	for i, topic := range plan.Topics {
		if topic.Day != i+1 {
			t.Errorf("topic %d: expected day %d, got %d", i, i+1, topic.Day)
		}
	}
}

func TestCreateFromRequestInvalidSubject(t *testing.T) {
	store := newTestStore(t)
	service := NewPlanService(store)

	if _, err := service.CreateFromRequest("Subject: , Goal: whatever", "alice"); err == nil {
		t.Error("expected an error for an empty subject")
	}
}

func TestCreateFromRequestShortTimeline(t *testing.T) {
	store := newTestStore(t)
	service := NewPlanService(store)

	// One week holds only 7 of the 9 math topics at one slot per day.
	message, err := service.CreateFromRequest("Subject: Math, Goal: Cram in 1 week", "alice")
	if err != nil {
		t.Fatalf("CreateFromRequest failed: %v", err)
	}
	if !strings.Contains(message, "7 key topics spread over 7 days") {
		t.Errorf("unexpected confirmation message: %q", message)
	}

	plan, err := service.GetCurrentPlan("alice")
	if err != nil {
		t.Fatalf("GetCurrentPlan failed: %v", err)
	}
	if len(plan.Topics) != 7 {
		t.Errorf("expected 7 topics within the timeline, got %d", len(plan.Topics))
	}
}

func TestMarkTopicCompleteMessages(t *testing.T) {
	store := newTestStore(t)
	service := NewPlanService(store)

	if _, err := service.CreateFromRequest("Subject: Math, Goal: Master Algebra in 2 weeks", "alice"); err != nil {
		t.Fatalf("CreateFromRequest failed: %v", err)
	}

	message, err := service.MarkTopicComplete("Linear Equations", "alice")
	if err != nil {
		t.Fatalf("MarkTopicComplete failed: %v", err)
	}
	if message != "Marked 'Linear Equations' as completed! Well done!" {
		t.Errorf("unexpected success message: %q", message)
	}

	message, err = service.MarkTopicComplete("Basket Weaving", "alice")
	if err != nil {
		t.Fatalf("MarkTopicComplete failed: %v", err)
	}
	if message != "Topic 'Basket Weaving' not found in your study plan." {
		t.Errorf("unexpected not-found message: %q", message)
	}
}
