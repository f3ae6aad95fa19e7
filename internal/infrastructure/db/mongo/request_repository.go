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

const requestCollection = "supplier_requests"

type MongoRequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *MongoRequestRepository {
	return &MongoRequestRepository{coll: db.Collection(requestCollection)}
}

type mongoRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	RequestedBy   string             `bson:"requested_by"`
	BranchID      string             `bson:"branch_id,omitempty"`
	SupplierName  string             `bson:"supplier_name"`
	FieldID       string             `bson:"field_id,omitempty"`
	ContactName   string             `bson:"contact_name,omitempty"`
	Phone         string             `bson:"phone,omitempty"`
	Justification string             `bson:"justification,omitempty"`
	Status        string             `bson:"status"`
	CreatedAt     int64              `bson:"created_at"`
	UpdatedAt     int64              `bson:"updated_at"`
}

func (r *MongoRequestRepository) Create(ctx context.Context, request *domain.SupplierRequest) (*domain.SupplierRequest, error) {
	res, err := r.coll.InsertOne(ctx, mongoRequest{
		RequestedBy:   request.RequestedBy,
		BranchID:      request.BranchID,
		SupplierName:  request.SupplierName,
		FieldID:       request.FieldID,
		ContactName:   request.ContactName,
		Phone:         request.Phone,
		Justification: request.Justification,
		Status:        string(request.Status),
		CreatedAt:     request.CreatedAt.Unix(),
		UpdatedAt:     request.UpdatedAt.Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	created := *request
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *MongoRequestRepository) FindByID(ctx context.Context, id string) (*domain.SupplierRequest, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return toRequest(&mr), nil
}

func (r *MongoRequestRepository) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.SupplierRequest, error) {
	cur, err := r.coll.Find(ctx, bson.M{"status": string(status)},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.SupplierRequest
	for cur.Next(ctx) {
		var mr mongoRequest
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		out = append(out, *toRequest(&mr))
	}
	return out, cur.Err()
}

func (r *MongoRequestRepository) CountByStatus(ctx context.Context, status domain.RequestStatus) (int64, error) {
	count, err := r.coll.CountDocuments(ctx, bson.M{"status": string(status)})
	if err != nil {
		return 0, fmt.Errorf("count requests: %w", err)
	}
	return count, nil
}

func (r *MongoRequestRepository) Update(ctx context.Context, request *domain.SupplierRequest) error {
	oid, err := primitive.ObjectIDFromHex(request.ID)
	if err != nil {
		return domain.ErrRequestNotFound
	}

	update := bson.M{"$set": bson.M{
		"status":     string(request.Status),
		"updated_at": request.UpdatedAt.Unix(),
	}}

	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update request: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

func toRequest(mr *mongoRequest) *domain.SupplierRequest {
	return &domain.SupplierRequest{
		ID:            mr.ID.Hex(),
		RequestedBy:   mr.RequestedBy,
		BranchID:      mr.BranchID,
		SupplierName:  mr.SupplierName,
		FieldID:       mr.FieldID,
		ContactName:   mr.ContactName,
		Phone:         mr.Phone,
		Justification: mr.Justification,
		Status:        domain.RequestStatus(mr.Status),
		CreatedAt:     unixToTime(mr.CreatedAt),
		UpdatedAt:     unixToTime(mr.UpdatedAt),
	}
}
