package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

func newTestSessions(t *testing.T, ttl time.Duration) *Sessions {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, repository.Migrate(db))

	logger := zap.NewNop()
	return NewSessions(
		repository.NewIdentityRepository(db, logger),
		repository.NewSessionRepository(db, logger),
		ttl,
		logger,
	)
}

func testIdentity() *entity.AuthIdentity {
	return &entity.AuthIdentity{
		ID:       uuid.New(),
		Provider: "github",
		Subject:  uuid.NewString(),
		Email:    "jane@example.com",
		Name:     "Jane Doe",
	}
}

func TestLoginAndResolve(t *testing.T) {
	s := newTestSessions(t, time.Hour)

	sess, ident, err := s.Login(context.Background(), testIdentity())
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	got, err := s.Resolve(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, got.ID)
	assert.Equal(t, "jane@example.com", got.Email)
}

func TestLogin_SameSubjectKeepsIdentity(t *testing.T) {
	s := newTestSessions(t, time.Hour)

	first := testIdentity()
	_, ident1, err := s.Login(context.Background(), first)
	require.NoError(t, err)

	// a later login for the same provider subject reuses the identity
	// row even though the caller minted a fresh id
	again := testIdentity()
	again.Subject = first.Subject
	again.Email = "jane+new@example.com"
	_, ident2, err := s.Login(context.Background(), again)
	require.NoError(t, err)

	assert.Equal(t, ident1.ID, ident2.ID)
	assert.Equal(t, "jane+new@example.com", ident2.Email)
}

func TestResolve_UnknownToken(t *testing.T) {
	s := newTestSessions(t, time.Hour)

	for _, token := range []string{"", "bogus"} {
		_, err := s.Resolve(context.Background(), token)
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	}
}

func TestResolve_ExpiredSession(t *testing.T) {
	s := newTestSessions(t, -time.Minute)

	sess, _, err := s.Login(context.Background(), testIdentity())
	require.NoError(t, err)

	_, err = s.Resolve(context.Background(), sess.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// the expired row was dropped on sight, so a second resolve takes
	// the unknown-token path
	_, err = s.Resolve(context.Background(), sess.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	s := newTestSessions(t, time.Hour)

	sess, _, err := s.Login(context.Background(), testIdentity())
	require.NoError(t, err)

	require.NoError(t, s.Logout(context.Background(), sess.Token))

	_, err = s.Resolve(context.Background(), sess.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSweepExpired(t *testing.T) {
	s := newTestSessions(t, -time.Minute)

	sess, _, err := s.Login(context.Background(), testIdentity())
	require.NoError(t, err)

	s.SweepExpired(context.Background())

	_, err = s.Resolve(context.Background(), sess.Token)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestRandomToken(t *testing.T) {
	a, err := RandomToken()
	require.NoError(t, err)
	b, err := RandomToken()
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
