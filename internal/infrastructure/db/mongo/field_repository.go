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

const fieldCollection = "supplier_fields"

type MongoFieldRepository struct {
	coll *mongo.Collection
}

func NewFieldRepository(db *mongo.Database) *MongoFieldRepository {
	return &MongoFieldRepository{coll: db.Collection(fieldCollection)}
}

type mongoField struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	CreatedAt int64              `bson:"created_at"`
}

func (r *MongoFieldRepository) Create(ctx context.Context, field *domain.SupplierField) (*domain.SupplierField, error) {
	res, err := r.coll.InsertOne(ctx, mongoField{
		Name:      field.Name,
		CreatedAt: field.CreatedAt.Unix(),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrFieldExists
		}
		return nil, fmt.Errorf("insert field: %w", err)
	}

	created := *field
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoFieldRepository) FindByID(ctx context.Context, id string) (*domain.SupplierField, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFieldNotFound
	}

	var mf mongoField
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrFieldNotFound
		}
		return nil, fmt.Errorf("find field: %w", err)
	}
	return toField(&mf), nil
}

func (r *MongoFieldRepository) List(ctx context.Context) ([]domain.SupplierField, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list fields: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.SupplierField
	for cur.Next(ctx) {
		var mf mongoField
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode field: %w", err)
		}
		out = append(out, *toField(&mf))
	}
	return out, cur.Err()
}

func (r *MongoFieldRepository) Update(ctx context.Context, field *domain.SupplierField) error {
	oid, err := primitive.ObjectIDFromHex(field.ID)
	if err != nil {
		return domain.ErrFieldNotFound
	}

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"name": field.Name}})
	if err != nil {
		return fmt.Errorf("update field: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFieldNotFound
	}
	return nil
}

func toField(mf *mongoField) *domain.SupplierField {
	return &domain.SupplierField{
		ID:        mf.ID.Hex(),
		Name:      mf.Name,
		CreatedAt: unixToTime(mf.CreatedAt),
	}
}
