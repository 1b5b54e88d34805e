package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"memories-server/internal/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CachedPostRepository is a read-through cache over another PostStore for
// single post lookups. Only FindByID fills the cache; every write goes to the
// wrapped store and then drops the key, so overlapping writes cannot leave an
// older document behind. Redis failures are logged and never surface to
// callers.
type CachedPostRepository struct {
	repo  PostStore
	redis *redis.Client
	ttl   time.Duration
}

func NewCachedPostRepository(repo PostStore, client *redis.Client, ttl time.Duration) *CachedPostRepository {
	return &CachedPostRepository{repo: repo, redis: client, ttl: ttl}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func postKey(id bson.ObjectID) string { return "post:" + id.Hex() }

func (r *CachedPostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	if p, ok := r.get(ctx, id); ok {
		return p, nil
	}
	p, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.set(ctx, p)
	return p, nil
}

func (r *CachedPostRepository) Count(ctx context.Context) (int64, error) {
	return r.repo.Count(ctx)
}

func (r *CachedPostRepository) FindPage(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.repo.FindPage(ctx, skip, limit)
}

func (r *CachedPostRepository) Search(ctx context.Context, titlePattern string, tags []string) ([]models.Post, error) {
	return r.repo.Search(ctx, titlePattern, tags)
}

func (r *CachedPostRepository) Insert(ctx context.Context, post *models.Post) error {
	return r.repo.Insert(ctx, post)
}

func (r *CachedPostRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Post, error) {
	defer r.del(ctx, id)
	return r.repo.Update(ctx, id, fields)
}

func (r *CachedPostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	defer r.del(ctx, id)
	return r.repo.Delete(ctx, id)
}

func (r *CachedPostRepository) ToggleLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	defer r.del(ctx, id)
	return r.repo.ToggleLike(ctx, id, userID)
}

func (r *CachedPostRepository) AppendComment(ctx context.Context, id bson.ObjectID, value string) (*models.Post, error) {
	defer r.del(ctx, id)
	return r.repo.AppendComment(ctx, id, value)
}

func (r *CachedPostRepository) get(ctx context.Context, id bson.ObjectID) (*models.Post, bool) {
	raw, err := r.redis.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("cache get %s: %v", postKey(id), err)
		}
		return nil, false
	}
	var p models.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Printf("cache decode %s: %v", postKey(id), err)
		return nil, false
	}
	p.Normalize()
	return &p, true
}

func (r *CachedPostRepository) set(ctx context.Context, p *models.Post) {
	raw, err := json.Marshal(p)
	if err != nil {
		log.Printf("cache encode %s: %v", postKey(p.ID), err)
		return
	}
	if err := r.redis.Set(ctx, postKey(p.ID), raw, r.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", postKey(p.ID), err)
	}
}

func (r *CachedPostRepository) del(ctx context.Context, id bson.ObjectID) {
	if err := r.redis.Del(ctx, postKey(id)).Err(); err != nil {
		log.Printf("cache del %s: %v", postKey(id), err)
	}
}
