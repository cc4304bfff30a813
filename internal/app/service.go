package app

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/klassrum/internal/models"
	"github.com/shrimpsizemoose/klassrum/internal/store"
)

type Service struct {
	Config *Config
	Store  store.LearnStore
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	store, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	return &Service{
		Config: config,
		Store:  store,
	}, nil
}

// InitCatalog applies the configured seed policy. With reseed_on_start the
// store is wiped and re-seeded, discarding all users and submissions;
// otherwise the seed is inserted only into an empty catalog.
func (s *Service) InitCatalog() error {
	if s.Config.Database.ReseedOnStart {
		logger.Info.Printf("Reseeding catalog: discarding all users and submissions")
		return s.Store.ReseedCatalog(store.SeedTopics)
	}
	return s.Store.EnsureTopics(store.SeedTopics)
}

func (s *Service) Register(req *models.SignupRequest) (int64, error) {
	if err := req.Validate(); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.Config.Auth.BcryptCost)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
	}

	return s.Store.CreateUser(user)
}

func (s *Service) Login(req *models.LoginRequest) (*models.User, error) {
	user, err := s.Store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// SaveSubmission stores the uploaded file under the uploads dir as
// <unixMillis>-<originalName> and upserts the (userID, topicID) row.
// A previously stored file for the same pair stays on disk; only the
// just-written file is removed when the row write fails.
func (s *Service) SaveSubmission(userID, topicID int64, file multipart.File, header *multipart.FileHeader) (int64, error) {
	if err := os.MkdirAll(s.Config.Uploads.Dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create uploads dir: %w", err)
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(header.Filename))
	path := filepath.Join(s.Config.Uploads.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("failed to create upload file: %w", err)
	}

	if _, err := io.Copy(dst, file); err != nil {
		dst.Close()
		os.Remove(path)
		return 0, fmt.Errorf("failed to write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("failed to flush upload file: %w", err)
	}

	id, err := s.Store.UpsertAssignment(&models.Assignment{
		UserID:    userID,
		TopicID:   topicID,
		FilePath:  path,
		Completed: true,
	})
	if err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.Debug.Printf("Failed to clean up orphaned upload %s: %v", path, rmErr)
		}
		return 0, fmt.Errorf("failed to record submission: %w", err)
	}

	return id, nil
}

func (s *Service) Close() error {
	if err := s.Store.Close(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}
