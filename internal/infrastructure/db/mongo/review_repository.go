package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

const reviewCollection = "reviews"

type MongoReviewRepository struct {
	coll *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *MongoReviewRepository {
	return &MongoReviewRepository{coll: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	SupplierID string             `bson:"supplier_id"`
	AuthorID   string             `bson:"author_id"`
	AuthorName string             `bson:"author_name,omitempty"`
	Rating     int                `bson:"rating"`
	Comment    string             `bson:"comment,omitempty"`
	CreatedAt  int64              `bson:"created_at"`
}

func (r *MongoReviewRepository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	res, err := r.coll.InsertOne(ctx, mongoReview{
		SupplierID: review.SupplierID,
		AuthorID:   review.AuthorID,
		AuthorName: review.AuthorName,
		Rating:     review.Rating,
		Comment:    review.Comment,
		CreatedAt:  review.CreatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	created := *review
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoReviewRepository) ListBySupplier(ctx context.Context, supplierID string) ([]domain.Review, error) {
	cur, err := r.coll.Find(ctx, bson.M{"supplier_id": supplierID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Review
	for cur.Next(ctx) {
		var mr mongoReview
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode review: %w", err)
		}
		out = append(out, domain.Review{
			ID:         mr.ID.Hex(),
			SupplierID: mr.SupplierID,
			AuthorID:   mr.AuthorID,
			AuthorName: mr.AuthorName,
			Rating:     mr.Rating,
			Comment:    mr.Comment,
			CreatedAt:  unixToTime(mr.CreatedAt),
		})
	}
	return out, cur.Err()
}
