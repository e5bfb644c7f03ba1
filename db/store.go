package db

import (
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"studybuddy/models"
)

// StudyStore is the persistence contract the agent tools operate against.
type StudyStore interface {
	GetOrCreateUser(username string) (int64, error)
	CreateStudyPlan(userID int64, subject, goal string, topics []models.TopicInput) (int64, error)
	GetCurrentStudyPlan(userID int64) (*models.StudyPlan, error)
	UpdateTopicProgress(userID int64, topicName string, progress int) (bool, error)
	MarkTopicComplete(userID int64, topicName string) (bool, error)
	SaveQuiz(userID int64, topic string, questions []models.Question) (int64, error)
	GetQuizzes(userID int64, topic string) ([]*models.Quiz, error)
	GetProgress(userID int64, topic string) (*models.ProgressView, error)
	Close() error
}

// SQLStore backs StudyStore with SQLite (default) or Postgres. Writes
// against the same user are serialized with a per-user lock because the
// current-plan lookup and the dependent topic update are separate
// statements that must observe the same committed state.
type SQLStore struct {
	db *sqlx.DB

	mu        sync.Mutex
	userLocks map[int64]*sync.Mutex
	usersMu   sync.Mutex
}

func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite3" {
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLStore{
		db:        db,
		userLocks: make(map[int64]*sync.Mutex),
	}

	if err := store.initializeSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) initializeSchema() error {
	idColumn := "INTEGER PRIMARY KEY AUTOINCREMENT"
	if s.db.DriverName() == "postgres" {
		idColumn = "SERIAL PRIMARY KEY"
	}

	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS users (
				id %s,
				username TEXT UNIQUE NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS study_plans (
				id %s,
				user_id INTEGER NOT NULL,
				subject TEXT NOT NULL,
				goal TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id)
			)`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS topics (
				id %s,
				plan_id INTEGER NOT NULL,
				day INTEGER NOT NULL,
				topic TEXT NOT NULL,
				completed BOOLEAN DEFAULT FALSE,
				progress INTEGER DEFAULT 0,
				FOREIGN KEY (plan_id) REFERENCES study_plans (id)
			)`, idColumn),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS quizzes (
				id %s,
				user_id INTEGER NOT NULL,
				topic TEXT NOT NULL,
				questions TEXT NOT NULL,
				created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (user_id) REFERENCES users (id)
			)`, idColumn),
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}

	return nil
}

func (s *SQLStore) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

// insertID runs an INSERT and reports the generated row id. Postgres has
// no LastInsertId, so the query grows a RETURNING clause there.
func (s *SQLStore) insertID(tx *sqlx.Tx, query string, args ...any) (int64, error) {
	if s.db.DriverName() == "postgres" {
		var id int64
		err := tx.QueryRowx(s.db.Rebind(query+" RETURNING id"), args...).Scan(&id)
		return id, err
	}

	result, err := tx.Exec(s.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}
