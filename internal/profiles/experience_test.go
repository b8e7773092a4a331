package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engin-hq/engin/internal/common"
)

func onboarded(t *testing.T, svc *Service) uuid.UUID {
	t.Helper()
	identity := testIdentity()
	_, err := svc.CompleteOnboarding(context.Background(), identity, CreateProfileRequest{Username: "jane"})
	require.NoError(t, err)
	return identity.ID
}

func TestAddExperience(t *testing.T) {
	svc := newTestService(t)
	profileID := onboarded(t, svc)

	end := "2024-06-30"
	exp, err := svc.AddExperience(context.Background(), profileID, AddExperienceRequest{
		Company:   "Acme",
		Title:     "Engineer",
		StartDate: "2022-01-15",
		EndDate:   &end,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 1, 15, 0, 0, 0, 0, time.UTC), exp.StartDate)
	require.NotNil(t, exp.EndDate)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *exp.EndDate)

	// open-ended position
	current, err := svc.AddExperience(context.Background(), profileID, AddExperienceRequest{
		Company:   "Beacon",
		Title:     "Lead",
		StartDate: "2024-07-01",
	})
	require.NoError(t, err)
	assert.Nil(t, current.EndDate)

	list, err := svc.ListExperience(context.Background(), profileID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestAddExperience_RejectsBadDates(t *testing.T) {
	svc := newTestService(t)
	profileID := onboarded(t, svc)

	badEnd := "2020-01-01"
	cases := []struct {
		name string
		req  AddExperienceRequest
		want error
	}{
		{"missing company", AddExperienceRequest{Title: "Engineer", StartDate: "2022-01-15"}, common.ErrValidation},
		{"missing start", AddExperienceRequest{Company: "Acme", Title: "Engineer"}, common.ErrValidation},
		{"garbled start", AddExperienceRequest{Company: "Acme", Title: "Engineer", StartDate: "15/01/2022"}, common.ErrInvalidInput},
		{"end before start", AddExperienceRequest{Company: "Acme", Title: "Engineer", StartDate: "2022-01-15", EndDate: &badEnd}, common.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddExperience(context.Background(), profileID, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDeleteExperience_OwnerOnly(t *testing.T) {
	svc := newTestService(t)
	profileID := onboarded(t, svc)

	exp, err := svc.AddExperience(context.Background(), profileID, AddExperienceRequest{
		Company:   "Acme",
		Title:     "Engineer",
		StartDate: "2022-01-15",
	})
	require.NoError(t, err)

	err = svc.DeleteExperience(context.Background(), uuid.New(), exp.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrForbidden)

	require.NoError(t, svc.DeleteExperience(context.Background(), profileID, exp.ID))

	err = svc.DeleteExperience(context.Background(), profileID, exp.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
