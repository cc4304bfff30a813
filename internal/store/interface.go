package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/shrimpsizemoose/klassrum/internal/models"
)

// ErrDuplicateUser is returned when an insert trips the unique constraint
// on email or username. Handlers map it to 409 without telling which
// field collided.
var ErrDuplicateUser = errors.New("email or username already in use")

type LearnStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateUser(user *models.User) (int64, error)
	GetUserByEmail(email string) (*models.User, error)

	ListTopics() ([]models.Topic, error)
	EnsureTopics(topics []models.Topic) error
	ReseedCatalog(topics []models.Topic) error

	UpsertAssignment(assignment *models.Assignment) (int64, error)
	FetchProgress(userID int64) ([]ProgressRow, error)
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB                *sqlx.DB
	Converter         func(string) string
	IsUniqueViolation func(error) bool
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		sql := string(content)
		if translateSQL != nil {
			sql = translateSQL(sql)
		}

		if _, err := s.DB.Exec(sql); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) CreateUser(user *models.User) (int64, error) {
	_, err := s.DB.NamedExec(`
		INSERT INTO users (username, email, password_hash)
		VALUES (:username, :email, :password_hash)
	`, user)
	if err != nil {
		if s.IsUniqueViolation != nil && s.IsUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	var id int64
	query := s.Converter(`SELECT id FROM users WHERE email = ?`)
	if err := s.DB.Get(&id, query, user.Email); err != nil {
		return 0, fmt.Errorf("failed to read back user id: %w", err)
	}
	return id, nil
}

func (s *BaseStore) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := s.Converter(`
		SELECT id, username, email, password_hash
		FROM users
		WHERE email = ?
	`)

	err := s.DB.Get(&user, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (s *BaseStore) ListTopics() ([]models.Topic, error) {
	var topics []models.Topic
	err := s.DB.Select(&topics, `
		SELECT id, module_name, topic_name
		FROM topics
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list topics: %w", err)
	}
	return topics, nil
}

// EnsureTopics inserts the seed catalog only when the topics table is empty.
func (s *BaseStore) EnsureTopics(topics []models.Topic) error {
	var count int64
	if err := s.DB.Get(&count, `SELECT COUNT(*) FROM topics`); err != nil {
		return fmt.Errorf("failed to count topics: %w", err)
	}
	if count > 0 {
		return nil
	}
	return s.insertTopics(topics)
}

// ReseedCatalog wipes all data (children before parents, to satisfy
// foreign keys) and re-inserts the topic seed. Every registered user and
// submission is discarded.
func (s *BaseStore) ReseedCatalog(topics []models.Topic) error {
	for _, table := range []string{"assignments", "users", "topics"} {
		if _, err := s.DB.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return s.insertTopics(topics)
}

func (s *BaseStore) insertTopics(topics []models.Topic) error {
	_, err := s.DB.NamedExec(`
		INSERT INTO topics (id, module_name, topic_name)
		VALUES (:id, :module_name, :topic_name)
	`, topics)
	if err != nil {
		return fmt.Errorf("failed to insert topic seed: %w", err)
	}
	return nil
}

// UpsertAssignment replaces-or-inserts keyed by (user_id, topic_id).
// A replaced row loses its previous marks and file path; completed is set
// unconditionally. The old file on disk is left behind.
func (s *BaseStore) UpsertAssignment(assignment *models.Assignment) (int64, error) {
	_, err := s.DB.NamedExec(`
		INSERT INTO assignments (user_id, topic_id, file_path, marks, completed)
		VALUES (:user_id, :topic_id, :file_path, 0, TRUE)
		ON CONFLICT (user_id, topic_id) DO UPDATE SET
		file_path = excluded.file_path,
		marks = 0,
		completed = TRUE
	`, assignment)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert assignment: %w", err)
	}

	var id int64
	query := s.Converter(`SELECT id FROM assignments WHERE user_id = ? AND topic_id = ?`)
	if err := s.DB.Get(&id, query, assignment.UserID, assignment.TopicID); err != nil {
		return 0, fmt.Errorf("failed to read back assignment id: %w", err)
	}
	return id, nil
}

func (s *BaseStore) FetchProgress(userID int64) ([]ProgressRow, error) {
	var rows []ProgressRow
	query := s.Converter(`
		SELECT
			t.id AS topic_id,
			t.module_name,
			t.topic_name,
			COALESCE(a.completed, FALSE) AS completed,
			COALESCE(a.marks, 0) AS marks
		FROM topics t
		LEFT JOIN assignments a
			ON a.topic_id = t.id
			AND a.user_id = ?
		ORDER BY t.id
	`)

	err := s.DB.Select(&rows, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	return rows, nil
}
