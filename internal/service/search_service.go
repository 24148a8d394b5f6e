package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/google/uuid"
	"github.com/meilisearch/meilisearch-go"
)

const wearIndex = "wear_items"

// SearchService maintains the faculty-wear search index. All indexing is
// best-effort: a missing or unreachable Meilisearch degrades to the database
// fallback and never fails a write path.
type SearchService interface {
	Enabled() bool
	IndexWearItem(item *entity.WearItem)
	RemoveWearItem(id string)
	SearchWearItems(ctx context.Context, query string) ([]uuid.UUID, error)
}

type meiliWearDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	BadgeText   string `json:"badge_text"`
	CreatedAt   int64  `json:"created_at"`
}

type searchService struct {
	client meilisearch.ServiceManager
}

// NewSearchService wraps a Meilisearch client; pass nil to disable indexing.
func NewSearchService(client meilisearch.ServiceManager) SearchService {
	s := &searchService{client: client}
	if client != nil {
		s.initIndex()
	}
	return s
}

func (s *searchService) initIndex() {
	sortableAttrs := []string{"created_at"}
	if _, err := s.client.Index(wearIndex).UpdateSortableAttributes(&sortableAttrs); err != nil {
		log.Printf("Failed to update %s sortable attributes: %v", wearIndex, err)
	}
}

func (s *searchService) Enabled() bool {
	return s.client != nil
}

func (s *searchService) IndexWearItem(item *entity.WearItem) {
	if s.client == nil {
		return
	}

	doc := meiliWearDoc{
		ID:          item.ID.String(),
		Title:       item.Title,
		Description: item.Description,
		BadgeText:   item.BadgeText,
		CreatedAt:   item.CreatedAt.Unix(),
	}

	primaryKey := "id"
	if _, err := s.client.Index(wearIndex).AddDocuments([]meiliWearDoc{doc}, &primaryKey); err != nil {
		log.Printf("Failed to index wear item %s: %v", item.ID, err)
	}
}

func (s *searchService) RemoveWearItem(id string) {
	if s.client == nil {
		return
	}

	if _, err := s.client.Index(wearIndex).DeleteDocument(id); err != nil {
		log.Printf("Failed to deindex wear item %s: %v", id, err)
	}
}

func (s *searchService) SearchWearItems(ctx context.Context, query string) ([]uuid.UUID, error) {
	if s.client == nil {
		return nil, nil
	}

	resp, err := s.client.Index(wearIndex).SearchWithContext(ctx, query, &meilisearch.SearchRequest{
		Limit: 50,
	})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, err := json.Marshal(hit)
		if err != nil {
			continue
		}
		var doc meiliWearDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}

	return ids, nil
}
