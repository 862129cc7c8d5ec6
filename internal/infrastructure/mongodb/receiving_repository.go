package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/yard-service/internal/domain"
	mongodbpkg "github.com/wms-platform/yard-service/pkg/mongodb"
)

// ReceivingRepository reads receiving orders written by the receiving
// workflow. This side never writes them.
type ReceivingRepository struct {
	collection *mongo.Collection
}

func NewReceivingRepository(client *mongodbpkg.Client) *ReceivingRepository {
	repo := &ReceivingRepository{collection: client.Collection("receiving_orders")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ReceivingRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "pallets.palletId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ReceivingRepository) FindByID(ctx context.Context, orderID string) (*domain.ReceivingOrder, error) {
	var order domain.ReceivingOrder
	err := r.collection.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &order, err
}

func (r *ReceivingRepository) FindByPalletID(ctx context.Context, palletID string) (*domain.ReceivingOrder, error) {
	var order domain.ReceivingOrder
	err := r.collection.FindOne(ctx, bson.M{"pallets.palletId": palletID}).Decode(&order)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &order, err
}
