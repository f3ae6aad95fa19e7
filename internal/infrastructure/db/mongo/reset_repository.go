package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

const resetCollection = "password_resets"

type MongoResetRepository struct {
	coll *mongo.Collection
}

func NewResetRepository(db *mongo.Database) *MongoResetRepository {
	return &MongoResetRepository{coll: db.Collection(resetCollection)}
}

type mongoReset struct {
	Token     string `bson:"token"`
	UserID    string `bson:"user_id"`
	ExpiresAt int64  `bson:"expires_at"`
}

func (r *MongoResetRepository) Save(ctx context.Context, reset *domain.PasswordReset) error {
	_, err := r.coll.InsertOne(ctx, mongoReset{
		Token:     reset.Token,
		UserID:    reset.UserID,
		ExpiresAt: reset.ExpiresAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert reset: %w", err)
	}
	return nil
}

// Consume finds and deletes the reset in one round trip, making the token
// single-use even under concurrent submissions.
func (r *MongoResetRepository) Consume(ctx context.Context, token string) (*domain.PasswordReset, error) {
	var mr mongoReset
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"token": token}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("consume reset: %w", err)
	}

	return &domain.PasswordReset{
		Token:     mr.Token,
		UserID:    mr.UserID,
		ExpiresAt: unixToTime(mr.ExpiresAt),
	}, nil
}
