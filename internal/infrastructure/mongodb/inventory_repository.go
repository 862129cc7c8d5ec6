package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/yard-service/internal/domain"
	mongodbpkg "github.com/wms-platform/yard-service/pkg/mongodb"
)

type InventoryRepository struct {
	collection *mongo.Collection
}

func NewInventoryRepository(client *mongodbpkg.Client) *InventoryRepository {
	repo := &InventoryRepository{collection: client.Collection("material_inventory")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *InventoryRepository) ensureIndexes(ctx context.Context) {
	// The unique palletLineId index is the idempotency backstop: even a
	// racing duplicate event cannot create a second record for the line.
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "inventoryId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "palletLineId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "palletId", Value: 1}}},
		{Keys: bson.D{{Key: "materialId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *InventoryRepository) Save(ctx context.Context, inventory *domain.MaterialInventory) error {
	inventory.UpdatedAt = mongodbpkg.Now()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"palletLineId": inventory.PalletLineID}
	update := bson.M{"$set": inventory}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save inventory record: %w", err)
	}
	return nil
}

func (r *InventoryRepository) FindByPalletLineID(ctx context.Context, palletLineID string) (*domain.MaterialInventory, error) {
	var inventory domain.MaterialInventory
	err := r.collection.FindOne(ctx, bson.M{"palletLineId": palletLineID}).Decode(&inventory)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &inventory, err
}

func (r *InventoryRepository) FindByPalletID(ctx context.Context, palletID string) ([]*domain.MaterialInventory, error) {
	opts := options.Find().SetSort(mongodbpkg.SortAscending("palletLineId"))
	cursor, err := r.collection.Find(ctx, bson.M{"palletId": palletID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var records []*domain.MaterialInventory
	err = cursor.All(ctx, &records)
	return records, err
}
