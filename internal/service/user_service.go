package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"spotbook/internal/cache"
	"spotbook/internal/model"
	"spotbook/internal/repository"
)

// userCacheTTL bounds how long a user removed from the database keeps a
// working session.
const userCacheTTL = 30 * time.Second

// UserService exposes user lookups for session restoring.
type UserService interface {
	GetSessionUser(ctx context.Context, id uint) (*model.SessionUser, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// GetSessionUser returns the safe projection of a user. Missing users
// surface repository.ErrNotFound.
func (s *userService) GetSessionUser(ctx context.Context, id uint) (*model.SessionUser, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.SessionUser
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	safe := user.Safe()
	if payload, err := json.Marshal(safe); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return &safe, nil
}
