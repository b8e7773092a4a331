package jobs

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
		repository.NewJobRepository(db, logger),
		repository.NewStartupRepository(db, logger),
		repository.NewApplicationRepository(db, logger),
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

func (h *testHarness) seedStartup(t *testing.T, founderID uuid.UUID) uuid.UUID {
	t.Helper()
	st := &entity.Startup{
		ID:        uuid.New(),
		FounderID: founderID,
		Name:      "Acme",
		TeamSize:  3,
	}
	require.NoError(t, h.db.Create(st).Error)
	return st.ID
}

func TestCreate_FounderOnly(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	stranger := h.seedProfile(t, "stranger")
	startupID := h.seedStartup(t, founder)

	req := CreateJobRequest{StartupID: startupID, Title: "Backend Engineer", Equity: 0.5}

	_, err := h.svc.Create(context.Background(), stranger, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	j, err := h.svc.Create(context.Background(), founder, req)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", j.Title)
	assert.Equal(t, startupID, j.StartupID)
}

func TestCreate_RejectsBadEquity(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	startupID := h.seedStartup(t, founder)

	for _, equity := range []float64{-1, 101} {
		_, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
			StartupID: startupID, Title: "Engineer", Equity: equity,
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, common.ErrInvalidInput)
	}
}

func TestApply_DuplicateConflictsWhateverTheStatus(t *testing.T) {
	statuses := []constants.ApplicationStatus{
		constants.ApplicationPending,
		constants.ApplicationAccepted,
		constants.ApplicationRejected,
	}
	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			h := newTestHarness(t)
			founder := h.seedProfile(t, "founder")
			applicant := h.seedProfile(t, "applicant")
			startupID := h.seedStartup(t, founder)

			j, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
				StartupID: startupID, Title: "Engineer",
			})
			require.NoError(t, err)

			a, err := h.svc.Apply(context.Background(), applicant, j.ID)
			require.NoError(t, err)
			require.Equal(t, constants.ApplicationPending, a.Status)

			if status != constants.ApplicationPending {
				_, err = h.svc.SetApplicationStatus(context.Background(), founder, a.ID, string(status))
				require.NoError(t, err)
			}

			_, err = h.svc.Apply(context.Background(), applicant, j.ID)
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrConflict)
		})
	}
}

func TestApply_FounderCannotApplyToOwnJob(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	startupID := h.seedStartup(t, founder)

	j, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
		StartupID: startupID, Title: "Engineer",
	})
	require.NoError(t, err)

	_, err = h.svc.Apply(context.Background(), founder, j.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestApply_MissingJobIsNotFound(t *testing.T) {
	h := newTestHarness(t)
	applicant := h.seedProfile(t, "applicant")

	_, err := h.svc.Apply(context.Background(), applicant, uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSetApplicationStatus_FounderOnly(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	applicant := h.seedProfile(t, "applicant")
	startupID := h.seedStartup(t, founder)

	j, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
		StartupID: startupID, Title: "Engineer",
	})
	require.NoError(t, err)
	a, err := h.svc.Apply(context.Background(), applicant, j.ID)
	require.NoError(t, err)

	_, err = h.svc.SetApplicationStatus(context.Background(), applicant, a.ID, string(constants.ApplicationAccepted))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = h.svc.SetApplicationStatus(context.Background(), founder, a.ID, "maybe")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	updated, err := h.svc.SetApplicationStatus(context.Background(), founder, a.ID, string(constants.ApplicationAccepted))
	require.NoError(t, err)
	assert.Equal(t, constants.ApplicationAccepted, updated.Status)
}

func TestWithdrawApplication(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	applicant := h.seedProfile(t, "applicant")
	other := h.seedProfile(t, "other")
	startupID := h.seedStartup(t, founder)

	j, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
		StartupID: startupID, Title: "Engineer",
	})
	require.NoError(t, err)
	a, err := h.svc.Apply(context.Background(), applicant, j.ID)
	require.NoError(t, err)

	err = h.svc.WithdrawApplication(context.Background(), other, a.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, h.svc.WithdrawApplication(context.Background(), applicant, a.ID))

	list, err := h.svc.ListApplicationsByProfile(context.Background(), applicant)
	require.NoError(t, err)
	assert.Empty(t, list)

	// once resolved, an application can no longer be withdrawn
	a2, err := h.svc.Apply(context.Background(), applicant, j.ID)
	require.NoError(t, err)
	_, err = h.svc.SetApplicationStatus(context.Background(), founder, a2.ID, string(constants.ApplicationAccepted))
	require.NoError(t, err)
	err = h.svc.WithdrawApplication(context.Background(), applicant, a2.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
}

func TestListApplicationsByJob_FounderOnly(t *testing.T) {
	h := newTestHarness(t)
	founder := h.seedProfile(t, "founder")
	applicant := h.seedProfile(t, "applicant")
	startupID := h.seedStartup(t, founder)

	j, err := h.svc.Create(context.Background(), founder, CreateJobRequest{
		StartupID: startupID, Title: "Engineer",
	})
	require.NoError(t, err)
	_, err = h.svc.Apply(context.Background(), applicant, j.ID)
	require.NoError(t, err)

	_, err = h.svc.ListApplicationsByJob(context.Background(), applicant, j.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	list, err := h.svc.ListApplicationsByJob(context.Background(), founder, j.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, applicant, list[0].ProfileID)
}
