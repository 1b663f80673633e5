package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/prn-tf/starterkit/internal/domain"
)

// cachedUser is the cache wire form of domain.User. The entity excludes
// PasswordHash from its JSON form, but the cache must round-trip it for
// credential checks, so the cache uses its own record.
type cachedUser struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// cachedUserRepository decorates a UserRepository with read-through caching
// for the two lookups the request path hits on every authenticated request.
// Cache failures degrade to the inner repository; they are never surfaced.
type cachedUserRepository struct {
	inner  UserRepository
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedUserRepository wraps repo with a caching layer.
func NewCachedUserRepository(repo UserRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) UserRepository {
	return &cachedUserRepository{
		inner:  repo,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "user_cache").Logger(),
	}
}

func userIDKey(id int64) string        { return fmt.Sprintf("user:id:%d", id) }
func userEmailKey(email string) string { return "user:email:" + email }

func (r *cachedUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.inner.Create(ctx, user); err != nil {
		return err
	}
	r.store(ctx, user)
	return nil
}

func (r *cachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if user := r.lookup(ctx, userIDKey(id)); user != nil {
		return user, nil
	}
	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if user := r.lookup(ctx, userEmailKey(email)); user != nil {
		return user, nil
	}
	user, err := r.inner.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	r.store(ctx, user)
	return user, nil
}

func (r *cachedUserRepository) Update(ctx context.Context, user *domain.User) error {
	if err := r.inner.Update(ctx, user); err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

func (r *cachedUserRepository) Delete(ctx context.Context, id int64) error {
	// Fetch first so the email key can be invalidated too.
	user, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.inner.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, user)
	return nil
}

func (r *cachedUserRepository) List(ctx context.Context, opts ListOptions) (*ListResult[domain.User], error) {
	return r.inner.List(ctx, opts)
}

func (r *cachedUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	exists, err := r.cache.Exists(ctx, userEmailKey(email))
	if err == nil && exists {
		return true, nil
	}
	return r.inner.ExistsByEmail(ctx, email)
}

func (r *cachedUserRepository) lookup(ctx context.Context, key string) *domain.User {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var rec cachedUser
	if err := json.Unmarshal(data, &rec); err != nil {
		r.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt cache entry")
		_ = r.cache.Delete(ctx, key)
		return nil
	}
	return &domain.User{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.PasswordHash,
		IsActive:     rec.IsActive,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    rec.UpdatedAt,
	}
}

func (r *cachedUserRepository) store(ctx context.Context, user *domain.User) {
	data, err := json.Marshal(cachedUser{
		ID:           user.ID,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, userIDKey(user.ID), data, r.ttl); err != nil {
		r.logger.Debug().Err(err).Msg("cache set failed")
		return
	}
	_ = r.cache.Set(ctx, userEmailKey(user.Email), data, r.ttl)
}

func (r *cachedUserRepository) invalidate(ctx context.Context, user *domain.User) {
	_ = r.cache.Delete(ctx, userIDKey(user.ID))
	_ = r.cache.Delete(ctx, userEmailKey(user.Email))
}

// Ensure cachedUserRepository implements UserRepository.
var _ UserRepository = (*cachedUserRepository)(nil)
