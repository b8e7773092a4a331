package connections

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/engin-hq/engin/constants"
	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

type testHarness struct {
	db  *gorm.DB
	svc *Service
}

func newTestHarness(t *testing.T) *testHarness {
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
	svc := NewService(
		repository.NewConnectionRepository(db, logger),
		repository.NewProfileRepository(db, logger),
		logger,
	)
	return &testHarness{db: db, svc: svc}
}

func (h *testHarness) seedProfile(t *testing.T, username string) uuid.UUID {
	t.Helper()
	p := &entity.Profile{
		ID:       uuid.New(),
		Email:    username + "@example.com",
		Username: username,
	}
	require.NoError(t, h.db.Create(p).Error)
	return p.ID
}

func TestRequest(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")

	c, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)
	assert.Equal(t, constants.ConnectionPending, c.Status)
	assert.Equal(t, alice, c.SenderID)
	assert.Equal(t, bob, c.ReceiverID)

	_, err = h.svc.Request(context.Background(), alice, alice)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = h.svc.Request(context.Background(), alice, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRequest_PairConflictsInBothDirections(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")

	_, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)

	_, err = h.svc.Request(context.Background(), alice, bob)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	// the reverse direction is the same edge
	_, err = h.svc.Request(context.Background(), bob, alice)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestAccept_ReceiverOnly(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")
	carol := h.seedProfile(t, "carol")

	c, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)

	// neither the sender nor a third party may resolve the request
	_, err = h.svc.Accept(context.Background(), alice, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = h.svc.Reject(context.Background(), carol, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	accepted, err := h.svc.Accept(context.Background(), bob, c.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.ConnectionAccepted, accepted.Status)
}

func TestAccept_ResolvedRequestConflicts(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")

	c, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)
	_, err = h.svc.Accept(context.Background(), bob, c.ID)
	require.NoError(t, err)

	_, err = h.svc.Accept(context.Background(), bob, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)

	_, err = h.svc.Reject(context.Background(), bob, c.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestAccept_MissingConnectionIsNotFound(t *testing.T) {
	h := newTestHarness(t)
	bob := h.seedProfile(t, "bob")

	_, err := h.svc.Accept(context.Background(), bob, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList_AcceptedEdgesAreBidirectional(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")
	carol := h.seedProfile(t, "carol")

	c1, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)
	_, err = h.svc.Accept(context.Background(), bob, c1.ID)
	require.NoError(t, err)

	// pending edge, must not show up in either list
	_, err = h.svc.Request(context.Background(), carol, alice)
	require.NoError(t, err)

	for _, id := range []uuid.UUID{alice, bob} {
		list, err := h.svc.List(context.Background(), id)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, c1.ID, list[0].ID)

		n, err := h.svc.CountAccepted(context.Background(), id)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)
	}
}

func TestPending_ListsOnlyAwaitingDecision(t *testing.T) {
	h := newTestHarness(t)
	alice := h.seedProfile(t, "alice")
	bob := h.seedProfile(t, "bob")
	carol := h.seedProfile(t, "carol")

	_, err := h.svc.Request(context.Background(), alice, bob)
	require.NoError(t, err)
	_, err = h.svc.Request(context.Background(), carol, bob)
	require.NoError(t, err)

	pending, err := h.svc.Pending(context.Background(), bob)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	// the sender's own outgoing request is not pending for them
	pending, err = h.svc.Pending(context.Background(), alice)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
