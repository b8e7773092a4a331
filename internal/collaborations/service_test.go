package collaborations

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

	"github.com/engin-hq/engin/internal/common"
	"github.com/engin-hq/engin/internal/entity"
	"github.com/engin-hq/engin/internal/repository"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
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
		repository.NewCollaborationRepository(db, logger),
		repository.NewStartupRepository(db, logger),
		logger,
	)
	return svc, db
}

func seed(t *testing.T, db *gorm.DB) (uuid.UUID, uuid.UUID) {
	t.Helper()
	p := &entity.Profile{ID: uuid.New(), Email: "dev@example.com", Username: "dev"}
	require.NoError(t, db.Create(p).Error)
	st := &entity.Startup{ID: uuid.New(), FounderID: uuid.New(), Name: "Acme", TeamSize: 1}
	require.NoError(t, db.Create(st).Error)
	return p.ID, st.ID
}

func TestCreate_ResolvesRoleByName(t *testing.T) {
	svc, db := newTestService(t)
	profileID, startupID := seed(t, db)

	c, err := svc.Create(context.Background(), profileID, startupID, "Advisor")
	require.NoError(t, err)
	assert.Equal(t, profileID, c.ProfileID)
	assert.Equal(t, startupID, c.StartupID)

	// a second collaboration with the same role reuses the lookup row
	c2, err := svc.Create(context.Background(), profileID, startupID, "Advisor")
	require.NoError(t, err)
	assert.Equal(t, c.JobRoleID, c2.JobRoleID)

	roles, err := svc.Roles(context.Background())
	require.NoError(t, err)
	require.Len(t, roles, 1)
	assert.Equal(t, "Advisor", roles[0].Name)
}

func TestCreate_Validation(t *testing.T) {
	svc, db := newTestService(t)
	profileID, startupID := seed(t, db)

	_, err := svc.Create(context.Background(), profileID, startupID, "  ")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = svc.Create(context.Background(), profileID, uuid.New(), "Advisor")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListAndCount(t *testing.T) {
	svc, db := newTestService(t)
	profileID, startupID := seed(t, db)

	_, err := svc.Create(context.Background(), profileID, startupID, "Advisor")
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), profileID, startupID, "Designer")
	require.NoError(t, err)

	list, err := svc.List(context.Background(), profileID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	n, err := svc.Count(context.Background(), profileID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = svc.Count(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
