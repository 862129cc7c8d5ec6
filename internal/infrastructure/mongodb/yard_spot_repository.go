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

type YardSpotRepository struct {
	collection *mongo.Collection
}

func NewYardSpotRepository(client *mongodbpkg.Client) *YardSpotRepository {
	repo := &YardSpotRepository{collection: client.Collection("yard_spots")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *YardSpotRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "spotId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}, {Key: "status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *YardSpotRepository) Save(ctx context.Context, spot *domain.YardSpot) error {
	spot.UpdatedAt = mongodbpkg.Now()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"spotId": spot.SpotID}
	update := bson.M{"$set": spot}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save yard spot: %w", err)
	}
	return nil
}

func (r *YardSpotRepository) FindByID(ctx context.Context, spotID string) (*domain.YardSpot, error) {
	var spot domain.YardSpot
	err := r.collection.FindOne(ctx, bson.M{"spotId": spotID}).Decode(&spot)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &spot, err
}

func (r *YardSpotRepository) FindAvailable(ctx context.Context, warehouseID string) ([]*domain.YardSpot, error) {
	filter := bson.M{"warehouseId": warehouseID, "status": domain.SpotStatusAvailable}
	opts := options.Find().SetSort(mongodbpkg.SortAscending("spotId"))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var spots []*domain.YardSpot
	err = cursor.All(ctx, &spots)
	return spots, err
}

// UpdateIfStatus persists the spot only if the stored document still holds
// expectedStatus. A concurrent writer that already claimed the spot makes
// the filter match nothing, and the loser observes ErrSpotUnavailable.
func (r *YardSpotRepository) UpdateIfStatus(ctx context.Context, spot *domain.YardSpot, expectedStatus domain.SpotStatus) error {
	spot.UpdatedAt = mongodbpkg.Now()

	filter := bson.M{"spotId": spot.SpotID, "status": expectedStatus}
	update := bson.M{"$set": spot}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update yard spot: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrSpotUnavailable
	}
	return nil
}
