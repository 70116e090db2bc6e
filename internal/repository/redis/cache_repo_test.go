package redis

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quiz-bot/internal/pkg/errors"
)

type sessionPayload struct {
	State      string `json:"state"`
	QuestionID uint   `json:"question_id"`
}

func setupCacheRepo(t *testing.T) (*CacheRepo, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo, err := NewCacheRepo(client)
	require.NoError(t, err)

	return repo, mr
}

func TestNewCacheRepo_NilClient(t *testing.T) {
	repo, err := NewCacheRepo(nil)
	assert.Nil(t, repo)
	assert.Error(t, err)
}

func TestCacheRepo_SetGetJSON(t *testing.T) {
	// Arrange
	repo, _ := setupCacheRepo(t)
	payload := sessionPayload{State: "awaiting_answer", QuestionID: 42}

	// Act
	err := repo.SetJSON("session:100", payload, time.Minute)
	require.NoError(t, err)

	var got sessionPayload
	err = repo.GetJSON("session:100", &got)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, payload, got, "сохраненное состояние должно читаться без потерь")
}

func TestCacheRepo_GetJSON_Missing(t *testing.T) {
	repo, _ := setupCacheRepo(t)

	var got sessionPayload
	err := repo.GetJSON("session:missing", &got)

	assert.ErrorIs(t, err, apperrors.ErrNotFound, "отсутствующий ключ должен давать ErrNotFound")
}

func TestCacheRepo_GetJSON_Expired(t *testing.T) {
	// Arrange
	repo, mr := setupCacheRepo(t)
	require.NoError(t, repo.SetJSON("session:100", sessionPayload{State: "awaiting_answer"}, time.Minute))

	// Act: проматываем время за TTL
	mr.FastForward(2 * time.Minute)

	var got sessionPayload
	err := repo.GetJSON("session:100", &got)

	// Assert
	assert.ErrorIs(t, err, apperrors.ErrNotFound, "истекший ключ равнозначен отсутствующему")
}

func TestCacheRepo_Delete(t *testing.T) {
	repo, _ := setupCacheRepo(t)
	require.NoError(t, repo.SetJSON("feedback:100", true, time.Minute))

	require.NoError(t, repo.Delete("feedback:100"))

	exists, err := repo.Exists("feedback:100")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCacheRepo_Exists(t *testing.T) {
	repo, _ := setupCacheRepo(t)

	exists, err := repo.Exists("feedback:100")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.SetJSON("feedback:100", true, time.Minute))

	exists, err = repo.Exists("feedback:100")
	require.NoError(t, err)
	assert.True(t, exists)
}
