package waitlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ShopBooking/internal/domain"
	waitlistRepo "github.com/m04kA/SMC-ShopBooking/internal/infra/storage/waitlist"
	"github.com/m04kA/SMC-ShopBooking/internal/service/waitlist/models"
	tu "github.com/m04kA/SMC-ShopBooking/internal/usecase/usecasetest"
	"github.com/m04kA/SMC-ShopBooking/pkg/ptr"
)

type fakeRepo struct {
	entries map[string]domain.WaitlistEntry // ref -> entry
	err     error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[string]domain.WaitlistEntry{}}
}

func (r *fakeRepo) Create(_ context.Context, e *domain.WaitlistEntry) (*domain.WaitlistEntry, error) {
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.entries[e.RefCode]; ok {
		return nil, waitlistRepo.ErrDuplicateRefCode
	}
	r.entries[e.RefCode] = *e
	return e, nil
}

func (r *fakeRepo) GetByRefCode(_ context.Context, shopID, refCode string) (*domain.WaitlistEntry, error) {
	e, ok := r.entries[refCode]
	if !ok || e.ShopID != shopID {
		return nil, waitlistRepo.ErrEntryNotFound
	}
	return &e, nil
}

func newService(repo *fakeRepo, codes *tu.SeqCodes) *Service {
	return NewService(repo, tu.Seed().Services(), &tu.SeqIDs{}, codes, 3, tu.Logger())
}

func validRequest() *models.CreateEntryRequest {
	return &models.CreateEntryRequest{
		ShopID:        tu.ShopID,
		ServiceID:     ptr.Ptr(tu.ServiceID),
		PreferredDate: ptr.Ptr("2030-01-15"),
		ClientName:    "Kim",
		ClientEmail:   "kim@example.com",
	}
}

func TestService_CreateAndGet(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, &tu.SeqCodes{})

	created, err := svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "WL0001", created.RefCode)
	assert.Equal(t, "waiting", created.Status)

	got, err := svc.GetByRefCode(context.Background(), tu.ShopID, "WL0001")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetByRefCode(context.Background(), "shop-2", "WL0001")
	assert.ErrorIs(t, err, ErrEntryNotFound)
}

func TestService_Create_RetriesDuplicateRefCode(t *testing.T) {
	repo := newFakeRepo()
	repo.entries["WL0001"] = domain.WaitlistEntry{ShopID: tu.ShopID, RefCode: "WL0001"}

	created, err := newService(repo, &tu.SeqCodes{}).Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, "WL0002", created.RefCode)
}

func TestService_Create_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *models.CreateEntryRequest)
		repoErr error
		wantErr error
	}{
		{"bad email", func(r *models.CreateEntryRequest) { r.ClientEmail = "nope" }, nil, ErrInvalidInput},
		{"blank name", func(r *models.CreateEntryRequest) { r.ClientName = "  " }, nil, ErrInvalidInput},
		{"bad date", func(r *models.CreateEntryRequest) { r.PreferredDate = ptr.Ptr("15.01.2030") }, nil, ErrInvalidInput},
		{"unknown service", func(r *models.CreateEntryRequest) { r.ServiceID = ptr.Ptr("svc-x") }, nil, ErrServiceNotFound},
		{"store down", func(*models.CreateEntryRequest) {}, errors.New("boom"), ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			repo.err = tt.repoErr
			req := validRequest()
			tt.mutate(req)

			_, err := newService(repo, &tu.SeqCodes{}).Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
