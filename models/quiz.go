package models

import "time"

type Quiz struct {
	ID        int64      `json:"id" db:"id"`
	UserID    int64      `json:"user_id" db:"user_id"`
	Topic     string     `json:"topic" db:"topic"`
	Questions []Question `json:"questions"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}
