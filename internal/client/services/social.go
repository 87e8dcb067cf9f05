package services

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/dmitrijs2005/notehub/internal/client/models"
	"github.com/dmitrijs2005/notehub/internal/logging"
)

// SocialAPI is the subset of the API used by SocialService.
type SocialAPI interface {
	Profile(ctx context.Context, username string) (*models.Profile, error)
	Follow(ctx context.Context, username string) error
	Unfollow(ctx context.Context, username string) error
	Recommendations(ctx context.Context) ([]models.Profile, error)
}

// SocialService caches user profiles and applies follow/unfollow
// optimistically: the cached counters change before the request is sent
// and are rolled back if it fails.
type SocialService struct {
	api   SocialAPI
	cache *cache.Cache
	log   logging.Logger

	// serialises read-modify-write of cached profiles
	mu sync.Mutex
}

// NewSocialService caches profiles for ttl. ttl <= 0 keeps them until the
// process exits.
func NewSocialService(api SocialAPI, ttl time.Duration, log logging.Logger) *SocialService {
	if log == nil {
		log = logging.Nop()
	}
	exp := cache.NoExpiration
	cleanup := time.Duration(0)
	if ttl > 0 {
		exp, cleanup = ttl, 2*ttl
	}
	return &SocialService{api: api, cache: cache.New(exp, cleanup), log: log}
}

// Profile returns the cached profile of username, fetching it on a miss.
func (s *SocialService) Profile(ctx context.Context, username string) (*models.Profile, error) {
	if p, ok := s.cached(username); ok {
		s.log.Debug(ctx, "profile cache hit", "user", username)
		return &p, nil
	}
	p, err := s.api.Profile(ctx, username)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(username, *p)
	out := *p
	return &out, nil
}

// Invalidate drops the cached profile of username.
func (s *SocialService) Invalidate(username string) {
	s.cache.Delete(username)
}

func (s *SocialService) Follow(ctx context.Context, username string) (*models.Profile, error) {
	return s.setFollowing(ctx, username, true)
}

func (s *SocialService) Unfollow(ctx context.Context, username string) (*models.Profile, error) {
	return s.setFollowing(ctx, username, false)
}

func (s *SocialService) Recommendations(ctx context.Context) ([]models.Profile, error) {
	return s.api.Recommendations(ctx)
}

func (s *SocialService) setFollowing(ctx context.Context, username string, follow bool) (*models.Profile, error) {
	if _, err := s.Profile(ctx, username); err != nil {
		return nil, err
	}

	delta := s.apply(username, follow)

	call := s.api.Unfollow
	if follow {
		call = s.api.Follow
	}
	if err := call(ctx, username); err != nil {
		if delta != 0 {
			s.log.Warn(ctx, "follow state change failed, rolling back", "user", username, "follow", follow, "error", err)
			s.rollback(username, delta)
		}
		return nil, err
	}

	if p, ok := s.cached(username); ok {
		return &p, nil
	}
	// evicted or invalidated while the request was in flight
	return s.Profile(ctx, username)
}

// apply sets IsFollowing on the cached profile and returns the follower
// delta it applied: +1, -1, or 0 when the state was already as requested.
func (s *SocialService) apply(username string, follow bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.cached(username)
	if !ok || p.IsFollowing == follow {
		return 0
	}
	delta := 1
	if !follow {
		delta = -1
	}
	p.IsFollowing = follow
	p.FollowersCount += delta
	s.cache.SetDefault(username, p)
	return delta
}

func (s *SocialService) rollback(username string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.cached(username)
	if !ok {
		return
	}
	p.IsFollowing = delta < 0
	p.FollowersCount -= delta
	s.cache.SetDefault(username, p)
}

func (s *SocialService) cached(username string) (models.Profile, bool) {
	v, ok := s.cache.Get(username)
	if !ok {
		return models.Profile{}, false
	}
	p, ok := v.(models.Profile)
	return p, ok
}
