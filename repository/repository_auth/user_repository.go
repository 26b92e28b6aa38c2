package repository_auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/metalvault/metalvault/domain"
	"github.com/metalvault/metalvault/domain/domain_auth"
	"github.com/metalvault/metalvault/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type userRepository struct {
	db         mongo.Database
	collection string
}

func NewUserRepository(db mongo.Database, collection string) domain_auth.UserRepository {
	return &userRepository{
		db:         db,
		collection: collection,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain_auth.User) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.FavoriteBands == nil {
		user.FavoriteBands = []int64{}
	}
	if user.FavoriteAlbums == nil {
		user.FavoriteAlbums = []int64{}
	}

	coll := r.db.Collection(r.collection)
	resultID, err := coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain_auth.ErrUserExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	if oid, ok := resultID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain_auth.User, error) {
	coll := r.db.Collection(r.collection)
	var user domain_auth.User
	err := coll.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain_auth.User) error {
	if user.ID.IsZero() {
		return errors.New("user ID cannot be empty")
	}
	user.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)

	coll := r.db.Collection(r.collection)
	result, err := coll.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
		"email":           user.Email,
		"hashed_password": user.HashedPassword,
		"favorite_bands":  user.FavoriteBands,
		"favorite_albums": user.FavoriteAlbums,
		"updated_at":      user.UpdatedAt,
	}})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain_auth.ErrUserExists
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user %q: %w", user.Username, domain.ErrNotFound)
	}
	return nil
}
