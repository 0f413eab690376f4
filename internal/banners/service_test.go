package banners

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/db/models"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubBannersRepo struct {
	banners []models.Banner
	deleted []uuid.UUID
}

func (s *stubBannersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubBannersRepo) CreateBanner(ctx context.Context, banner *models.Banner) (*models.Banner, error) {
	s.banners = append(s.banners, *banner)
	return banner, nil
}

func (s *stubBannersRepo) FindBanner(ctx context.Context, id uuid.UUID) (*models.Banner, error) {
	for i := range s.banners {
		if s.banners[i].ID == id {
			return &s.banners[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubBannersRepo) ListBanners(ctx context.Context, activeOnly bool) ([]models.Banner, error) {
	if !activeOnly {
		return s.banners, nil
	}
	var rows []models.Banner
	for _, banner := range s.banners {
		if banner.IsActive {
			rows = append(rows, banner)
		}
	}
	return rows, nil
}

func (s *stubBannersRepo) UpdateBanner(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	for i := range s.banners {
		if s.banners[i].ID != id {
			continue
		}
		if active, ok := updates["is_active"].(bool); ok {
			s.banners[i].IsActive = active
		}
		if position, ok := updates["position"].(int); ok {
			s.banners[i].Position = position
		}
	}
	return nil
}

func (s *stubBannersRepo) DeleteBanner(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newBannersService(t *testing.T, repo *stubBannersRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{})
	require.NoError(t, err)
	return svc
}

func TestCreateBannerDefaultsActive(t *testing.T) {
	repo := &stubBannersRepo{}
	svc := newBannersService(t, repo)

	view, err := svc.Create(context.Background(), CreateBannerInput{
		ImageURL: "https://cdn.localo.test/banner.png",
	})
	require.NoError(t, err)
	assert.True(t, view.IsActive)
	assert.Equal(t, 0, view.Position)
}

func TestCreateBannerRejectsBadTargetIDs(t *testing.T) {
	repo := &stubBannersRepo{}
	svc := newBannersService(t, repo)

	bad := "not-a-uuid"
	_, err := svc.Create(context.Background(), CreateBannerInput{
		ImageURL:   "https://cdn.localo.test/banner.png",
		CategoryID: &bad,
	})
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestListActiveFiltersInactive(t *testing.T) {
	repo := &stubBannersRepo{banners: []models.Banner{
		{ID: uuid.New(), ImageURL: "https://cdn.localo.test/a.png", IsActive: true},
		{ID: uuid.New(), ImageURL: "https://cdn.localo.test/b.png", IsActive: false},
	}}
	svc := newBannersService(t, repo)

	views, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateBannerUnknownID(t *testing.T) {
	repo := &stubBannersRepo{}
	svc := newBannersService(t, repo)

	active := false
	_, err := svc.Update(context.Background(), uuid.New(), UpdateBannerInput{IsActive: &active})
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestUpdateBannerTogglesActive(t *testing.T) {
	id := uuid.New()
	repo := &stubBannersRepo{banners: []models.Banner{
		{ID: id, ImageURL: "https://cdn.localo.test/a.png", IsActive: true},
	}}
	svc := newBannersService(t, repo)

	active := false
	view, err := svc.Update(context.Background(), id, UpdateBannerInput{IsActive: &active})
	require.NoError(t, err)
	assert.False(t, view.IsActive)
}

func TestDeleteBannerService(t *testing.T) {
	id := uuid.New()
	repo := &stubBannersRepo{banners: []models.Banner{
		{ID: id, ImageURL: "https://cdn.localo.test/a.png"},
	}}
	svc := newBannersService(t, repo)

	require.NoError(t, svc.Delete(context.Background(), id))
	require.Len(t, repo.deleted, 1)
	assert.Equal(t, id, repo.deleted[0])
}
