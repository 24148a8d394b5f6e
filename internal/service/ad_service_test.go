package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAds(t *testing.T, repo *fakeAdRepo, images *fakeImageStorage, now time.Time) *adService {
	t.Helper()
	svc := NewAdService(repo, images).(*adService)
	svc.now = func() time.Time { return now }
	return svc
}

func adRequest() dto.CreateAdRequest {
	return dto.CreateAdRequest{
		Title:          "Midterm Meal Deal",
		Description:    "Two plates for the price of one.",
		SponsorName:    "Campus Kitchen",
		WhatsappNumber: "08012345678",
		DurationDays:   DefaultAdDurationDays,
	}
}

func TestAdCreateDefaultDuration(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, newFakeImageStorage(), now)

	ad, err := svc.Create(context.Background(), adRequest())
	require.NoError(t, err)

	assert.True(t, ad.IsActive)
	assert.True(t, ad.CreatedAt.Equal(now))
	assert.True(t, ad.ExpiresAt.Equal(now.AddDate(0, 0, 7)))
}

func TestAdCreateZeroDurationIsBornExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, newFakeImageStorage(), now)

	req := adRequest()
	req.DurationDays = 0

	ad, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, ad.ExpiresAt.Equal(now))

	// Flagged active, but the expiry re-filter keeps it out of the active
	// list and the expired list picks it up immediately.
	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	expired, err := svc.Expired(context.Background())
	require.NoError(t, err)
	require.Len(t, expired, 1)
	assert.Equal(t, ad.ID, expired[0].ID)
}

func TestAdCreateMissingFields(t *testing.T) {
	svc := newTestAds(t, newFakeAdRepo(), newFakeImageStorage(), time.Now())

	req := adRequest()
	req.SponsorName = "   "

	_, err := svc.Create(context.Background(), req)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Missing required fields", appErr.Message)
}

func TestAdCreateUploadsAssets(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	images := newFakeImageStorage()
	svc := newTestAds(t, newFakeAdRepo(), images, now)

	req := adRequest()
	req.SponsorLogo = &dto.ImageUpload{Reader: strings.NewReader("png"), Size: 3, ContentType: "image/png", FileName: "logo.png"}
	req.AdImage = &dto.ImageUpload{Reader: strings.NewReader("jpg"), Size: 3, ContentType: "image/jpeg", FileName: "banner.jpg"}

	ad, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "sponsored_ads/logos/logo", ad.SponsorLogoPublicID)
	assert.Equal(t, "sponsored_ads/images/banner", ad.AdImagePublicID)
	assert.Contains(t, ad.SponsorLogoURL, "res.cloudinary.com")
	assert.Len(t, images.uploaded, 2)
}

func TestAdCreateUploadFailure(t *testing.T) {
	images := newFakeImageStorage()
	images.uploadErr = apperror.BadRequest("Only image files are allowed")
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, images, time.Now())

	req := adRequest()
	req.AdImage = &dto.ImageUpload{Reader: strings.NewReader("x"), Size: 1, ContentType: "text/plain", FileName: "x.txt"}

	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Empty(t, repo.ads)
}

func TestAdExtendAddsToStoredExpiry(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, newFakeImageStorage(), now)

	// Expired five days ago and already swept inactive.
	expiry := now.AddDate(0, 0, -5)
	ad := &entity.SponsoredAd{Title: "Old", ExpiresAt: expiry, IsActive: false}
	require.NoError(t, repo.Create(context.Background(), ad))

	require.NoError(t, svc.Extend(context.Background(), ad.ID))

	stored := repo.ads[ad.ID]
	// Seven days on top of the stored expiry, not of now: two days remain.
	assert.True(t, stored.ExpiresAt.Equal(expiry.AddDate(0, 0, 7)))
	assert.True(t, stored.IsActive)

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, ad.ID, active[0].ID)
}

func TestAdExtendUnknown(t *testing.T) {
	svc := newTestAds(t, newFakeAdRepo(), newFakeImageStorage(), time.Now())

	err := svc.Extend(context.Background(), uuid.New())

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
	assert.Equal(t, "Ad not found", appErr.Message)
}

func TestAdActiveExcludesExpiredButFlagged(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, newFakeImageStorage(), now)

	live := &entity.SponsoredAd{Title: "Live", ExpiresAt: now.AddDate(0, 0, 3), IsActive: true}
	// Past expiry, sweep has not caught it yet.
	stale := &entity.SponsoredAd{Title: "Stale", ExpiresAt: now.Add(-time.Hour), IsActive: true}
	require.NoError(t, repo.Create(context.Background(), live))
	require.NoError(t, repo.Create(context.Background(), stale))

	active, err := svc.Active(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].ID)
}

func TestAdSweepDeactivates(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	svc := newTestAds(t, repo, newFakeImageStorage(), now)

	live := &entity.SponsoredAd{ExpiresAt: now.AddDate(0, 0, 3), IsActive: true}
	stale := &entity.SponsoredAd{ExpiresAt: now.Add(-time.Hour), IsActive: true}
	require.NoError(t, repo.Create(context.Background(), live))
	require.NoError(t, repo.Create(context.Background(), stale))

	svc.Sweep(context.Background())

	assert.True(t, repo.ads[live.ID].IsActive)
	assert.False(t, repo.ads[stale.ID].IsActive)

	// Re-running changes nothing.
	svc.Sweep(context.Background())
	assert.True(t, repo.ads[live.ID].IsActive)
}

func TestAdSweepSwallowsErrors(t *testing.T) {
	repo := newFakeAdRepo()
	repo.deactivateErr = errors.New("connection refused")
	svc := newTestAds(t, repo, newFakeImageStorage(), time.Now())

	svc.Sweep(context.Background())
}

func TestAdDeleteCleansUpAssets(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	images := newFakeImageStorage()
	svc := newTestAds(t, repo, images, now)

	ad := &entity.SponsoredAd{
		ExpiresAt:           now.AddDate(0, 0, 7),
		IsActive:            true,
		SponsorLogoPublicID: "sponsored_ads/logos/logo",
		AdImageURL:          "https://res.cloudinary.com/demo/image/upload/v1/sponsored_ads/images/banner.webp",
	}
	require.NoError(t, repo.Create(context.Background(), ad))

	require.NoError(t, svc.Delete(context.Background(), ad.ID))

	assert.Empty(t, repo.ads)
	// Logo by public id, banner by URL fallback.
	assert.Contains(t, images.deleted, "sponsored_ads/logos/logo")
	assert.Contains(t, images.deleted, ad.AdImageURL)
}

func TestAdDeleteSurvivesAssetFailure(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	repo := newFakeAdRepo()
	images := newFakeImageStorage()
	images.deleteOK = false
	svc := newTestAds(t, repo, images, now)

	ad := &entity.SponsoredAd{ExpiresAt: now, SponsorLogoPublicID: "sponsored_ads/logos/x"}
	require.NoError(t, repo.Create(context.Background(), ad))

	require.NoError(t, svc.Delete(context.Background(), ad.ID))
	assert.Empty(t, repo.ads)
}
