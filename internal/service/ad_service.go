package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/internal/repository"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/Destinytch001/naits-server/pkg/clock"
	"github.com/Destinytch001/naits-server/pkg/storage"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

const (
	adLogoFolder  = "sponsored_ads/logos"
	adImageFolder = "sponsored_ads/images"

	// DefaultAdDurationDays applies when the caller omits duration_days.
	DefaultAdDurationDays = 7
	// AdExtensionDays is added to the stored expiry on an extend request,
	// even when that expiry is already in the past.
	AdExtensionDays = 7
)

// AdService time-boxes promotional ads and keeps is_active eventually
// consistent with expires_at via the sweep.
type AdService interface {
	Create(ctx context.Context, req dto.CreateAdRequest) (*entity.SponsoredAd, error)
	Active(ctx context.Context) ([]*entity.SponsoredAd, error)
	Expired(ctx context.Context) ([]*entity.SponsoredAd, error)
	Extend(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Sweep deactivates every expired ad still flagged active. Errors are
	// logged and swallowed; the next tick retries naturally.
	Sweep(ctx context.Context)
}

type adService struct {
	repo         repository.AdRepository
	imageStorage storage.ImageStorage
	sanitizer    *bluemonday.Policy
	now          func() time.Time
}

func NewAdService(repo repository.AdRepository, imageStorage storage.ImageStorage) AdService {
	return &adService{
		repo:         repo,
		imageStorage: imageStorage,
		sanitizer:    bluemonday.StrictPolicy(),
		now:          clock.Now,
	}
}

func (s *adService) Create(ctx context.Context, req dto.CreateAdRequest) (*entity.SponsoredAd, error) {
	if !req.Valid() {
		return nil, apperror.BadRequest("Missing required fields")
	}

	createdAt := s.now()
	ad := &entity.SponsoredAd{
		Title:          strings.TrimSpace(req.Title),
		Description:    s.sanitizer.Sanitize(strings.TrimSpace(req.Description)),
		SponsorName:    strings.TrimSpace(req.SponsorName),
		WhatsappNumber: strings.TrimSpace(req.WhatsappNumber),
		CreatedAt:      createdAt,
		ExpiresAt:      createdAt.AddDate(0, 0, req.DurationDays),
		IsActive:       true,
	}

	if req.SponsorLogo != nil {
		url, publicID, err := s.imageStorage.UploadImage(ctx, req.SponsorLogo.Reader, req.SponsorLogo.Size, req.SponsorLogo.ContentType, adLogoFolder, req.SponsorLogo.FileName)
		if err != nil {
			return nil, err
		}
		ad.SponsorLogoURL = url
		ad.SponsorLogoPublicID = publicID
	}

	if req.AdImage != nil {
		url, publicID, err := s.imageStorage.UploadImage(ctx, req.AdImage.Reader, req.AdImage.Size, req.AdImage.ContentType, adImageFolder, req.AdImage.FileName)
		if err != nil {
			return nil, err
		}
		ad.AdImageURL = url
		ad.AdImagePublicID = publicID
	}

	if err := s.repo.Create(ctx, ad); err != nil {
		return nil, err
	}

	return ad, nil
}

func (s *adService) Active(ctx context.Context) ([]*entity.SponsoredAd, error) {
	return s.repo.FindActive(ctx, s.now())
}

func (s *adService) Expired(ctx context.Context) ([]*entity.SponsoredAd, error) {
	return s.repo.FindExpired(ctx, s.now())
}

func (s *adService) Extend(ctx context.Context, id uuid.UUID) error {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Ad not found")
		}
		return err
	}

	// Extension is relative to the stored expiry, not to now: unused time
	// is preserved, and an already-expired ad comes back with whatever is
	// left of the seven days.
	newExpiry := ad.ExpiresAt.AddDate(0, 0, AdExtensionDays)
	return s.repo.UpdateExpiry(ctx, id, newExpiry, true)
}

func (s *adService) Delete(ctx context.Context, id uuid.UUID) error {
	ad, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Ad not found")
		}
		return err
	}

	// Asset deletes are best effort; orphaned images are accepted.
	if ad.SponsorLogoPublicID != "" {
		s.imageStorage.DeleteImage(ctx, ad.SponsorLogoPublicID)
	} else if ad.SponsorLogoURL != "" {
		s.imageStorage.DeleteImageByURL(ctx, ad.SponsorLogoURL)
	}
	if ad.AdImagePublicID != "" {
		s.imageStorage.DeleteImage(ctx, ad.AdImagePublicID)
	} else if ad.AdImageURL != "" {
		s.imageStorage.DeleteImageByURL(ctx, ad.AdImageURL)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("Ad not found")
	}

	return nil
}

func (s *adService) Sweep(ctx context.Context) {
	count, err := s.repo.DeactivateExpired(ctx, s.now())
	if err != nil {
		log.Printf("ad expiration sweep failed: %v", err)
		return
	}

	if count > 0 {
		log.Printf("Deactivated %d expired ads", count)
	}
}
