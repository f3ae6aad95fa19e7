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

const (
	branchCollection      = "branches"
	transactionCollection = "transactions"
)

type MongoBranchRepository struct {
	coll *mongo.Collection
}

func NewBranchRepository(db *mongo.Database) *MongoBranchRepository {
	return &MongoBranchRepository{coll: db.Collection(branchCollection)}
}

type mongoBranch struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	ManagerID string             `bson:"manager_id,omitempty"`
}

func (r *MongoBranchRepository) FindByID(ctx context.Context, id string) (*domain.Branch, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrBranchNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoBranchRepository) FindByManager(ctx context.Context, userID string) (*domain.Branch, error) {
	return r.findOne(ctx, bson.M{"manager_id": userID})
}

func (r *MongoBranchRepository) findOne(ctx context.Context, filter bson.M) (*domain.Branch, error) {
	var mb mongoBranch
	if err := r.coll.FindOne(ctx, filter).Decode(&mb); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrBranchNotFound
		}
		return nil, fmt.Errorf("find branch: %w", err)
	}
	return &domain.Branch{ID: mb.ID.Hex(), Name: mb.Name, ManagerID: mb.ManagerID}, nil
}

type MongoTransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *MongoTransactionRepository {
	return &MongoTransactionRepository{coll: db.Collection(transactionCollection)}
}

type mongoTransaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	BranchID    string             `bson:"branch_id"`
	SupplierID  string             `bson:"supplier_id,omitempty"`
	FieldID     string             `bson:"field_id,omitempty"`
	Type        string             `bson:"type"`
	Amount      float64            `bson:"amount"`
	Description string             `bson:"description,omitempty"`
	BookedAt    int64              `bson:"booked_at"`
}

func (r *MongoTransactionRepository) ListByBranch(ctx context.Context, branchID string, limit int64) ([]domain.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "booked_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, bson.M{"branch_id": branchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	return decodeTransactions(ctx, cur)
}

func (r *MongoTransactionRepository) SumByBranch(ctx context.Context, branchID string) (float64, float64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"branch_id": branchID}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$type",
			"total": bson.M{"$sum": "$amount"},
		}}},
	}

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, 0, fmt.Errorf("sum transactions: %w", err)
	}
	defer cur.Close(ctx)

	var income, expenses float64
	for cur.Next(ctx) {
		var row struct {
			Type  string  `bson:"_id"`
			Total float64 `bson:"total"`
		}
		if err := cur.Decode(&row); err != nil {
			return 0, 0, fmt.Errorf("decode sum: %w", err)
		}
		switch domain.TransactionType(row.Type) {
		case domain.TransactionIncome:
			income = row.Total
		case domain.TransactionExpense:
			expenses = row.Total
		}
	}
	return income, expenses, cur.Err()
}

func (r *MongoTransactionRepository) ListBetween(ctx context.Context, from, to int64) ([]domain.Transaction, error) {
	cur, err := r.coll.Find(ctx, bson.M{"booked_at": bson.M{"$gte": from, "$lt": to}})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer cur.Close(ctx)

	return decodeTransactions(ctx, cur)
}

func decodeTransactions(ctx context.Context, cur *mongo.Cursor) ([]domain.Transaction, error) {
	var out []domain.Transaction
	for cur.Next(ctx) {
		var mt mongoTransaction
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		out = append(out, domain.Transaction{
			ID:          mt.ID.Hex(),
			BranchID:    mt.BranchID,
			SupplierID:  mt.SupplierID,
			FieldID:     mt.FieldID,
			Type:        domain.TransactionType(mt.Type),
			Amount:      mt.Amount,
			Description: mt.Description,
			BookedAt:    unixToTime(mt.BookedAt),
		})
	}
	return out, cur.Err()
}
