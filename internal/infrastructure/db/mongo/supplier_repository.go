package mongo

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kibfin/supplier-portal/internal/core/domain"
)

const supplierCollection = "suppliers"

type MongoSupplierRepository struct {
	coll *mongo.Collection
}

func NewSupplierRepository(db *mongo.Database) *MongoSupplierRepository {
	return &MongoSupplierRepository{coll: db.Collection(supplierCollection)}
}

type mongoSupplier struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	FieldID     string             `bson:"field_id"`
	ContactName string             `bson:"contact_name,omitempty"`
	Phone       string             `bson:"phone,omitempty"`
	Email       string             `bson:"email,omitempty"`
	Address     string             `bson:"address,omitempty"`
	Rating      float64            `bson:"rating"`
	ReviewCount int                `bson:"review_count"`
	CreatedAt   int64              `bson:"created_at"`
	UpdatedAt   int64              `bson:"updated_at"`
}

func (r *MongoSupplierRepository) Create(ctx context.Context, supplier *domain.Supplier) (*domain.Supplier, error) {
	doc := toMongoSupplier(supplier)
	doc.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert supplier: %w", err)
	}

	created := *supplier
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoSupplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrSupplierNotFound
	}

	var ms mongoSupplier
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrSupplierNotFound
		}
		return nil, fmt.Errorf("find supplier: %w", err)
	}
	return toSupplier(&ms), nil
}

// searchQuery builds the Find filter. The query is free text, not a pattern;
// it is quoted so regex metacharacters match literally.
func searchQuery(filter domain.SupplierFilter) bson.M {
	query := bson.M{}
	if filter.Query != "" {
		regex := bson.M{"$regex": regexp.QuoteMeta(filter.Query), "$options": "i"}
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"contact_name": regex},
		}
	}
	if filter.FieldID != "" {
		query["field_id"] = filter.FieldID
	}
	return query
}

// Search matches the free-text query against name and contact fields and
// optionally narrows by field tag. Results are name-ordered.
func (r *MongoSupplierRepository) Search(ctx context.Context, filter domain.SupplierFilter) ([]domain.Supplier, error) {
	cur, err := r.coll.Find(ctx, searchQuery(filter), options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("search suppliers: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Supplier
	for cur.Next(ctx) {
		var ms mongoSupplier
		if err := cur.Decode(&ms); err != nil {
			return nil, fmt.Errorf("decode supplier: %w", err)
		}
		out = append(out, *toSupplier(&ms))
	}
	return out, cur.Err()
}

func (r *MongoSupplierRepository) Update(ctx context.Context, supplier *domain.Supplier) error {
	oid, err := primitive.ObjectIDFromHex(supplier.ID)
	if err != nil {
		return domain.ErrSupplierNotFound
	}

	doc := toMongoSupplier(supplier)
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func (r *MongoSupplierRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrSupplierNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete supplier: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSupplierNotFound
	}
	return nil
}

func toMongoSupplier(s *domain.Supplier) mongoSupplier {
	ms := mongoSupplier{
		Name:        s.Name,
		FieldID:     s.FieldID,
		ContactName: s.ContactName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		CreatedAt:   s.CreatedAt.Unix(),
		UpdatedAt:   s.UpdatedAt.Unix(),
	}
	if oid, err := primitive.ObjectIDFromHex(s.ID); err == nil {
		ms.ID = oid
	}
	return ms
}

func toSupplier(ms *mongoSupplier) *domain.Supplier {
	return &domain.Supplier{
		ID:          ms.ID.Hex(),
		Name:        ms.Name,
		FieldID:     ms.FieldID,
		ContactName: ms.ContactName,
		Phone:       ms.Phone,
		Email:       ms.Email,
		Address:     ms.Address,
		Rating:      ms.Rating,
		ReviewCount: ms.ReviewCount,
		CreatedAt:   unixToTime(ms.CreatedAt),
		UpdatedAt:   unixToTime(ms.UpdatedAt),
	}
}
