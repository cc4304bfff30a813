package app

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shrimpsizemoose/klassrum/internal/models"
	"github.com/shrimpsizemoose/klassrum/internal/store"
	"github.com/shrimpsizemoose/klassrum/internal/store/sqlite"
)

func newTestService(t *testing.T) (*Service, func()) {
	t.Helper()

	st, err := NewStore(":memory:", "../../migrations")
	require.NoError(t, err, "Failed to create store")
	require.NoError(t, st.ReseedCatalog(store.SeedTopics))

	config := &Config{}
	config.Server.Port = ":0"
	config.Auth.BcryptCost = bcrypt.MinCost
	config.Uploads.Dir = t.TempDir()
	config.Database.ReseedOnStart = true

	service := &Service{
		Config: config,
		Store:  st,
	}

	return service, func() {
		require.NoError(t, service.Close())
	}
}

// multipartFile builds an in-memory multipart payload the way the upload
// handler receives it
func multipartFile(t *testing.T, filename, content string) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("assignment", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	file, header, err := req.FormFile("assignment")
	require.NoError(t, err)
	return file, header
}

func TestRegisterAndLogin(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	aliceID, err := service.Register(&models.SignupRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), aliceID)

	t.Run("duplicate email regardless of username", func(t *testing.T) {
		_, err := service.Register(&models.SignupRequest{
			Username: "bob",
			Email:    "a@x.com",
			Password: "pw456",
		})
		require.ErrorIs(t, err, store.ErrDuplicateUser)
	})

	t.Run("wrong password and unknown email are the same error", func(t *testing.T) {
		_, wrongPw := service.Login(&models.LoginRequest{Email: "a@x.com", Password: "wrong"})
		_, unknown := service.Login(&models.LoginRequest{Email: "ghost@x.com", Password: "pw123"})
		require.ErrorIs(t, wrongPw, ErrInvalidCredentials)
		require.ErrorIs(t, unknown, ErrInvalidCredentials)
		assert.Equal(t, wrongPw, unknown)
	})

	t.Run("successful login", func(t *testing.T) {
		user, err := service.Login(&models.LoginRequest{Email: "a@x.com", Password: "pw123"})
		require.NoError(t, err)
		assert.Equal(t, aliceID, user.ID)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("plaintext is never stored", func(t *testing.T) {
		user, err := service.Store.GetUserByEmail("a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.NotEqual(t, "pw123", user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw123")))
	})
}

func TestRegisterValidation(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	cases := []struct {
		name string
		req  models.SignupRequest
	}{
		{"missing username", models.SignupRequest{Email: "a@x.com", Password: "pw"}},
		{"missing email", models.SignupRequest{Username: "alice", Password: "pw"}},
		{"missing password", models.SignupRequest{Username: "alice", Email: "a@x.com"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Register(&tc.req)
			var vErrs validator.ValidationErrors
			require.ErrorAs(t, err, &vErrs)
		})
	}
}

func TestSaveSubmission(t *testing.T) {
	service, cleanup := newTestService(t)
	defer cleanup()

	userID, err := service.Register(&models.SignupRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123",
	})
	require.NoError(t, err)

	file1, header1 := multipartFile(t, "first.pdf", "first draft")
	defer file1.Close()
	firstID, err := service.SaveSubmission(userID, 3, file1, header1)
	require.NoError(t, err)

	file2, header2 := multipartFile(t, "second.pdf", "final version")
	defer file2.Close()
	secondID, err := service.SaveSubmission(userID, 3, file2, header2)
	require.NoError(t, err)
	assert.Equal(t, firstID, secondID, "second upload replaces the row")

	sqliteStore, ok := service.Store.(*sqlite.SQLiteStore)
	require.True(t, ok)

	var got models.Assignment
	err = sqliteStore.DB.Get(&got, `
		SELECT id, user_id, topic_id, file_path, marks, completed
		FROM assignments
		WHERE user_id = ? AND topic_id = ?
	`, userID, 3)
	require.NoError(t, err)
	assert.True(t, got.Completed)
	assert.Zero(t, got.Marks)
	assert.Contains(t, got.FilePath, "second.pdf")

	content, err := os.ReadFile(got.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "final version", string(content))
}
