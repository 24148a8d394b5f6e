package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Destinytch001/naits-server/internal/dto"
	"github.com/Destinytch001/naits-server/internal/entity"
	"github.com/Destinytch001/naits-server/internal/repository"
	"github.com/Destinytch001/naits-server/internal/token"
	"github.com/Destinytch001/naits-server/pkg/apperror"
	"github.com/Destinytch001/naits-server/pkg/clock"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ValidationError carries the full list of field problems from a signup
// payload so the handler can return them all at once.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string { return "Validation failed" }

type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (*entity.User, error)
	Signin(ctx context.Context, req dto.SigninRequest) (string, *entity.User, error)
	BulkCreate(ctx context.Context, reqs []dto.SignupRequest) (*dto.BulkCreateResponse, error)
}

type authService struct {
	repo          repository.UserRepository
	tokens        *token.Service
	rdb           *redis.Client
	signinLockout time.Duration
	bcryptCost    int
	now           func() time.Time
}

func NewAuthService(repo repository.UserRepository, tokens *token.Service, rdb *redis.Client, signinLockout time.Duration) AuthService {
	return &authService{
		repo:          repo,
		tokens:        tokens,
		rdb:           rdb,
		signinLockout: signinLockout,
		bcryptCost:    bcrypt.DefaultCost,
		now:           clock.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req dto.SignupRequest) (*entity.User, error) {
	if details := req.Validate(); len(details) > 0 {
		return nil, &ValidationError{Details: details}
	}

	exists, err := s.repo.ExistsByNicknameOrWhatsapp(ctx, req.Nickname, req.Whatsapp)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.BadRequest("User already exists")
	}

	user, err := s.buildUser(req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *authService) Signin(ctx context.Context, req dto.SigninRequest) (string, *entity.User, error) {
	if req.Nickname == "" || req.Password == "" {
		return "", nil, apperror.BadRequest("Nickname and password are required")
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.rdb, req.Nickname, "signin", s.signinLockout)
	if err != nil {
		// A broken limiter must not lock everyone out.
		log.Printf("signin rate limit check failed: %v", err)
	} else if !allowed {
		return "", nil, apperror.New(http.StatusTooManyRequests, "Too many signin attempts", apperror.ErrRateLimitExceeded)
	}

	user, err := s.repo.FindByNickname(ctx, req.Nickname)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, apperror.New(http.StatusUnauthorized, "Invalid credentials", apperror.ErrUnauthorized)
	}

	signed, err := s.tokens.Issue(user.ID, user.Nickname)
	if err != nil {
		return "", nil, err
	}

	if err := s.repo.StampLastLogin(ctx, user.ID, s.now()); err != nil {
		log.Printf("failed to stamp last_login for %s: %v", user.ID, err)
	}

	if err := ClearRateLimit(ctx, s.rdb, req.Nickname, "signin"); err != nil {
		log.Printf("failed to clear signin rate limit: %v", err)
	}

	return signed, user, nil
}

func (s *authService) BulkCreate(ctx context.Context, reqs []dto.SignupRequest) (*dto.BulkCreateResponse, error) {
	resp := &dto.BulkCreateResponse{
		Success:        true,
		CreatedUserIDs: []string{},
		Skipped:        []dto.SkippedUser{},
	}

	for i, req := range reqs {
		index := i + 1

		if details := req.Validate(); len(details) > 0 {
			resp.Skipped = append(resp.Skipped, dto.SkippedUser{
				Index:    index,
				Nickname: req.Nickname,
				Errors:   details,
			})
			continue
		}

		exists, err := s.repo.ExistsByNicknameOrWhatsapp(ctx, req.Nickname, req.Whatsapp)
		if err != nil {
			return nil, err
		}
		if exists {
			resp.Skipped = append(resp.Skipped, dto.SkippedUser{
				Index:    index,
				Nickname: req.Nickname,
				Errors:   []string{"User already exists"},
			})
			continue
		}

		user, err := s.buildUser(req)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}

		resp.CreatedUserIDs = append(resp.CreatedUserIDs, user.ID.String())
	}

	resp.CreatedCount = len(resp.CreatedUserIDs)
	resp.SkippedCount = len(resp.Skipped)
	return resp, nil
}

// buildUser normalizes a validated signup payload into a persistable record:
// names trimmed, nickname lowercased, department and level uppercased.
func (s *authService) buildUser(req dto.SignupRequest) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &entity.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Birthday:     req.Birthday,
		Nickname:     strings.ToLower(strings.TrimSpace(req.Nickname)),
		Department:   strings.ToUpper(req.Department),
		Level:        strings.ToUpper(req.Level),
		Whatsapp:     req.Whatsapp,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
