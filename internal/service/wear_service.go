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

const wearUploadFolder = "faculty_wear"

type WearService interface {
	List(ctx context.Context) ([]*entity.WearItem, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.WearItem, error)
	Create(ctx context.Context, in dto.WearItemInput, image *dto.ImageUpload) (*entity.WearItem, error)
	Update(ctx context.Context, id uuid.UUID, in dto.WearItemInput, image *dto.ImageUpload) (*entity.WearItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string) ([]*entity.WearItem, error)
}

type wearService struct {
	repo         repository.WearRepository
	imageStorage storage.ImageStorage
	search       SearchService
	sanitizer    *bluemonday.Policy
	now          func() time.Time
}

func NewWearService(repo repository.WearRepository, imageStorage storage.ImageStorage, search SearchService) WearService {
	return &wearService{
		repo:         repo,
		imageStorage: imageStorage,
		search:       search,
		sanitizer:    bluemonday.StrictPolicy(),
		now:          clock.Now,
	}
}

func (s *wearService) List(ctx context.Context) ([]*entity.WearItem, error) {
	return s.repo.FindAll(ctx)
}

func (s *wearService) Get(ctx context.Context, id uuid.UUID) (*entity.WearItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Product not found")
		}
		return nil, err
	}

	return item, nil
}

func (s *wearService) Create(ctx context.Context, in dto.WearItemInput, image *dto.ImageUpload) (*entity.WearItem, error) {
	if err := validateWearInput(in); err != nil {
		return nil, err
	}

	imageURL := strings.TrimSpace(in.ImageURL)
	if image != nil {
		uploadedURL, _, err := s.imageStorage.UploadImage(ctx, image.Reader, image.Size, image.ContentType, wearUploadFolder, image.FileName)
		if err != nil {
			return nil, err
		}
		imageURL = uploadedURL
	}

	now := s.now()
	item := &entity.WearItem{
		Title:         strings.TrimSpace(in.Title),
		Description:   s.sanitizer.Sanitize(strings.TrimSpace(in.Description)),
		ImageURL:      imageURL,
		BadgeText:     strings.TrimSpace(in.BadgeText),
		StandardPrice: float64(*in.StandardPrice),
		CustomPrice:   float64(*in.CustomPrice),
		AddToCartText: strings.TrimSpace(in.AddToCartText),
		AddToCartLink: linkOrDefault(in.AddToCartLink),
		BuyNowText:    strings.TrimSpace(in.BuyNowText),
		BuyNowLink:    linkOrDefault(in.BuyNowLink),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.search.IndexWearItem(item)
	return item, nil
}

func (s *wearService) Update(ctx context.Context, id uuid.UUID, in dto.WearItemInput, image *dto.ImageUpload) (*entity.WearItem, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateWearInput(in); err != nil {
		return nil, err
	}

	imageURL := existing.ImageURL
	switch {
	case image != nil:
		// Replacing the asset: drop the previous one first, best effort.
		if existing.ImageURL != "" {
			s.imageStorage.DeleteImageByURL(ctx, existing.ImageURL)
		}
		uploadedURL, _, err := s.imageStorage.UploadImage(ctx, image.Reader, image.Size, image.ContentType, wearUploadFolder, image.FileName)
		if err != nil {
			return nil, err
		}
		imageURL = uploadedURL
	case strings.TrimSpace(in.ImageURL) != "" && strings.TrimSpace(in.ImageURL) != existing.ImageURL:
		if existing.ImageURL != "" {
			s.imageStorage.DeleteImageByURL(ctx, existing.ImageURL)
		}
		imageURL = strings.TrimSpace(in.ImageURL)
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Description = s.sanitizer.Sanitize(strings.TrimSpace(in.Description))
	existing.ImageURL = imageURL
	existing.BadgeText = strings.TrimSpace(in.BadgeText)
	existing.StandardPrice = float64(*in.StandardPrice)
	existing.CustomPrice = float64(*in.CustomPrice)
	existing.AddToCartText = strings.TrimSpace(in.AddToCartText)
	existing.AddToCartLink = linkOrDefault(in.AddToCartLink)
	existing.BuyNowText = strings.TrimSpace(in.BuyNowText)
	existing.BuyNowLink = linkOrDefault(in.BuyNowLink)
	existing.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.search.IndexWearItem(existing)
	return existing, nil
}

func (s *wearService) Delete(ctx context.Context, id uuid.UUID) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	// Asset deletion is non-fatal: the record goes away regardless.
	if item.ImageURL != "" {
		s.imageStorage.DeleteImageByURL(ctx, item.ImageURL)
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperror.NotFound("Product not found")
	}

	s.search.RemoveWearItem(id.String())
	return nil
}

func (s *wearService) Search(ctx context.Context, query string) ([]*entity.WearItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.repo.FindAll(ctx)
	}

	if s.search.Enabled() {
		ids, err := s.search.SearchWearItems(ctx, query)
		if err == nil {
			items, err := s.repo.FindByIDs(ctx, ids)
			if err != nil {
				return nil, err
			}
			return orderByIDs(items, ids), nil
		}
		log.Printf("search index query failed, falling back to database: %v", err)
	}

	return s.repo.SearchByText(ctx, query)
}

func validateWearInput(in dto.WearItemInput) error {
	if missing := in.MissingFields(); len(missing) > 0 {
		return apperror.BadRequest("Missing required fields: " + strings.Join(missing, ", "))
	}

	if *in.StandardPrice < 0 || *in.CustomPrice < 0 {
		return apperror.BadRequest("Invalid price format")
	}

	return nil
}

func linkOrDefault(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return "#"
	}
	return link
}

// orderByIDs sorts repository results into index relevance order.
func orderByIDs(items []*entity.WearItem, ids []uuid.UUID) []*entity.WearItem {
	byID := make(map[uuid.UUID]*entity.WearItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
	}

	ordered := make([]*entity.WearItem, 0, len(items))
	for _, id := range ids {
		if item, ok := byID[id]; ok {
			ordered = append(ordered, item)
		}
	}

	return ordered
}
