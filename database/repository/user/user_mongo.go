package userRepo

import (
	"context"
	"fmt"
	"time"

	"fixitnow/database"
	"fixitnow/models"
	"fixitnow/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository using MongoDB, with a Redis
// read-through cache in front of GetByID. User records are owned by the
// identity collaborator and change rarely, so short-TTL cached copies are
// safe.
type MongoUserRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	return &MongoUserRepo{
		coll:  database.Database().Collection("users"),
		cache: utils.GetCacheClient(),
	}
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// GetByID retrieves a user by its unique ID, consulting the cache first.
func (r *MongoUserRepo) GetByID(id string) (*models.User, error) {
	cacheKey := utils.UserCachePrefix + id
	if r.cache != nil {
		var cached models.User
		if err := utils.GetCachedRecord(r.cache, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch user with id %s: %w", id, err)
	}

	if r.cache != nil {
		// Best-effort: a cache write failure never fails the read.
		_ = utils.SaveCachedRecord(r.cache, cacheKey, &user)
	}
	return &user, nil
}

// Exists reports whether a user with the given id exists.
func (r *MongoUserRepo) Exists(id string) (bool, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return count > 0, nil
}
