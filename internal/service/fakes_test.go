package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory fakes for the repository and storage interfaces. Fakes instead
// of a mock framework: what each one does is right here on the page.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User

	updateStatusErr error
	markIdleErr     error
	markOfflineErr  error

	statusUpdates []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) add(user *entity.User) *entity.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.add(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Nickname, nickname) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) ExistsByNicknameOrWhatsapp(ctx context.Context, nickname, whatsapp string) (bool, error) {
	for _, user := range f.users {
		if strings.EqualFold(user.Nickname, nickname) || user.Whatsapp == whatsapp {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, q dto.ListUsersQuery) ([]*entity.User, int64, error) {
	var users []*entity.User
	for _, user := range f.users {
		users = append(users, user)
	}
	return users, int64(len(users)), nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.users[id]; !ok {
		return 0, nil
	}
	delete(f.users, id)
	return 1, nil
}

func (f *fakeUserRepo) RecordHeartbeat(ctx context.Context, id uuid.UUID, now time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Status = entity.StatusOnline
	user.LastActive = &now
	user.LastSeen = &now
	return nil
}

func (f *fakeUserRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	if f.updateStatusErr != nil {
		return f.updateStatusErr
	}
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Status = status
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeUserRepo) StampLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error {
	user, ok := f.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.LastLogin = &now
	return nil
}

func (f *fakeUserRepo) MarkIdle(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.markIdleErr != nil {
		return 0, f.markIdleErr
	}
	var count int64
	for _, user := range f.users {
		if user.Status == entity.StatusOnline && user.LastActive != nil && user.LastActive.Before(cutoff) {
			user.Status = entity.StatusIdle
			count++
		}
	}
	return count, nil
}

func (f *fakeUserRepo) MarkOffline(ctx context.Context, cutoff time.Time) (int64, error) {
	if f.markOfflineErr != nil {
		return 0, f.markOfflineErr
	}
	var count int64
	for _, user := range f.users {
		online := user.Status == entity.StatusOnline || user.Status == entity.StatusIdle
		if online && user.LastActive != nil && user.LastActive.Before(cutoff) {
			user.Status = entity.StatusOffline
			count++
		}
	}
	return count, nil
}

type fakeAdRepo struct {
	ads map[uuid.UUID]*entity.SponsoredAd

	deactivateErr error
}

func newFakeAdRepo() *fakeAdRepo {
	return &fakeAdRepo{ads: make(map[uuid.UUID]*entity.SponsoredAd)}
}

func (f *fakeAdRepo) Create(ctx context.Context, ad *entity.SponsoredAd) error {
	if ad.ID == uuid.Nil {
		ad.ID = uuid.New()
	}
	copied := *ad
	f.ads[ad.ID] = &copied
	return nil
}

func (f *fakeAdRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SponsoredAd, error) {
	ad, ok := f.ads[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ad
	return &copied, nil
}

func (f *fakeAdRepo) FindActive(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error) {
	var ads []*entity.SponsoredAd
	for _, ad := range f.ads {
		if ad.IsActive && ad.ExpiresAt.After(now) {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

func (f *fakeAdRepo) FindExpired(ctx context.Context, now time.Time) ([]*entity.SponsoredAd, error) {
	var ads []*entity.SponsoredAd
	for _, ad := range f.ads {
		if !ad.ExpiresAt.After(now) {
			ads = append(ads, ad)
		}
	}
	return ads, nil
}

func (f *fakeAdRepo) UpdateExpiry(ctx context.Context, id uuid.UUID, expiresAt time.Time, active bool) error {
	ad, ok := f.ads[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	ad.ExpiresAt = expiresAt
	ad.IsActive = active
	return nil
}

func (f *fakeAdRepo) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	if f.deactivateErr != nil {
		return 0, f.deactivateErr
	}
	var count int64
	for _, ad := range f.ads {
		if ad.IsActive && !ad.ExpiresAt.After(now) {
			ad.IsActive = false
			count++
		}
	}
	return count, nil
}

func (f *fakeAdRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.ads[id]; !ok {
		return 0, nil
	}
	delete(f.ads, id)
	return 1, nil
}

type fakeWearRepo struct {
	items map[uuid.UUID]*entity.WearItem
}

func newFakeWearRepo() *fakeWearRepo {
	return &fakeWearRepo{items: make(map[uuid.UUID]*entity.WearItem)}
}

func (f *fakeWearRepo) Create(ctx context.Context, item *entity.WearItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeWearRepo) FindAll(ctx context.Context) ([]*entity.WearItem, error) {
	var items []*entity.WearItem
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

func (f *fakeWearRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.WearItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeWearRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.WearItem, error) {
	var items []*entity.WearItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeWearRepo) Update(ctx context.Context, item *entity.WearItem) error {
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeWearRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func (f *fakeWearRepo) SearchByText(ctx context.Context, query string) ([]*entity.WearItem, error) {
	var items []*entity.WearItem
	for _, item := range f.items {
		if strings.Contains(strings.ToLower(item.Title), strings.ToLower(query)) ||
			strings.Contains(strings.ToLower(item.Description), strings.ToLower(query)) {
			items = append(items, item)
		}
	}
	return items, nil
}

// fakeImageStorage records uploads and deletes instead of talking to
// Cloudinary. Uploaded URLs follow the real delivery URL shape so the
// public-id heuristic works against them.
type fakeImageStorage struct {
	uploaded  []string
	deleted   []string
	uploadErr error
	deleteOK  bool
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{deleteOK: true}
}

func (f *fakeImageStorage) UploadImage(ctx context.Context, r io.Reader, size int64, contentType, folder, fileName string) (string, string, error) {
	if f.uploadErr != nil {
		return "", "", f.uploadErr
	}
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	publicID := folder + "/" + name
	f.uploaded = append(f.uploaded, publicID)
	url := fmt.Sprintf("https://res.cloudinary.com/test/image/upload/v1/%s.webp", publicID)
	return url, publicID, nil
}

func (f *fakeImageStorage) DeleteImage(ctx context.Context, publicID string) bool {
	f.deleted = append(f.deleted, publicID)
	return f.deleteOK
}

func (f *fakeImageStorage) DeleteImageByURL(ctx context.Context, fileURL string) bool {
	f.deleted = append(f.deleted, fileURL)
	return f.deleteOK
}

// fakeSearch is a disabled SearchService that remembers index traffic.
type fakeSearch struct {
	indexed []string
	removed []string
}

func (f *fakeSearch) Enabled() bool { return false }

func (f *fakeSearch) IndexWearItem(item *entity.WearItem) {
	f.indexed = append(f.indexed, item.ID.String())
}

func (f *fakeSearch) RemoveWearItem(id string) {
	f.removed = append(f.removed, id)
}

func (f *fakeSearch) SearchWearItems(ctx context.Context, query string) ([]uuid.UUID, error) {
	return nil, nil
}
