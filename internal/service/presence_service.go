package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/internal/repository"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/Destinytch001/naits-server/pkg/clock"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PresenceService derives a user's presence (online/idle/offline) from
// activity timestamps. Status is corrected by whichever runs first: the
// periodic sweep or a lazy recompute on a status read.
type PresenceService interface {
	// Heartbeat marks the user online and refreshes both activity stamps.
	Heartbeat(ctx context.Context, userID uuid.UUID) error
	// Status reads a user's presence, recomputing it from last_active and
	// persisting the correction when the stored value has gone stale.
	Status(ctx context.Context, userID uuid.UUID) (*dto.StatusResponse, error)
	// Sweep bulk-transitions stale online users to idle and stale
	// online/idle users to offline. Errors are logged and swallowed.
	Sweep(ctx context.Context)
}

type presenceService struct {
	repo             repository.UserRepository
	idleThreshold    time.Duration
	offlineThreshold time.Duration
	now              func() time.Time
}

func NewPresenceService(repo repository.UserRepository, idleThreshold, offlineThreshold time.Duration) PresenceService {
	return &presenceService{
		repo:             repo,
		idleThreshold:    idleThreshold,
		offlineThreshold: offlineThreshold,
		now:              clock.Now,
	}
}

func (s *presenceService) Heartbeat(ctx context.Context, userID uuid.UUID) error {
	return s.repo.RecordHeartbeat(ctx, userID, s.now())
}

func (s *presenceService) Status(ctx context.Context, userID uuid.UUID) (*dto.StatusResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}

	status := user.Status
	if status == "" {
		status = entity.StatusOffline
	}

	resp := &dto.StatusResponse{
		Success:    true,
		FirstName:  user.FirstName,
		Department: user.Department,
	}

	if user.LastActive != nil {
		inactiveFor := s.now().Sub(*user.LastActive)

		// Offline dominates: the larger threshold is checked first.
		switch {
		case inactiveFor > s.offlineThreshold:
			status = entity.StatusOffline
		case inactiveFor > s.idleThreshold:
			status = entity.StatusIdle
		}

		// Persist the correction, but never fail the read over it.
		if status != user.Status {
			if err := s.repo.UpdateStatus(ctx, userID, status); err != nil {
				log.Printf("failed to persist status correction for %s: %v", userID, err)
			}
		}

		lastSeen := user.LastActive.Format(time.RFC3339)
		resp.LastSeen = &lastSeen
	}

	resp.Status = status
	return resp, nil
}

func (s *presenceService) Sweep(ctx context.Context) {
	now := s.now()

	if _, err := s.repo.MarkIdle(ctx, now.Add(-s.idleThreshold)); err != nil {
		log.Printf("status sweep: idle pass failed: %v", err)
	}

	if _, err := s.repo.MarkOffline(ctx, now.Add(-s.offlineThreshold)); err != nil {
		log.Printf("status sweep: offline pass failed: %v", err)
	}
}
