package models

import "time"

type StudyPlan struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	Subject   string    `json:"subject" db:"subject"`
	Goal      string    `json:"goal" db:"goal"`
	Topics    []Topic   `json:"study_plan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Topic struct {
	ID        int64  `json:"id" db:"id"`
	PlanID    int64  `json:"plan_id" db:"plan_id"`
	Day       int    `json:"day" db:"day"`
	Topic     string `json:"topic" db:"topic"`
	Completed bool   `json:"completed" db:"completed"`
	Progress  int    `json:"progress" db:"progress"`
}

// TopicInput is the shape submitted when a plan is created. Progress is
// always stored as 0 regardless of the completed flag passed in.
type TopicInput struct {
	Day       int    `json:"day"`
	Topic     string `json:"topic"`
	Completed bool   `json:"completed"`
}

// ProgressView reports either a single topic's progress or the rounded
// average across the current plan's topics.
type ProgressView struct {
	Subject         string `json:"subject,omitempty"`
	Topic           string `json:"topic,omitempty"`
	Progress        int    `json:"progress,omitempty"`
	OverallProgress int    `json:"overall_progress,omitempty"`
}
