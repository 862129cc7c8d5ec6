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

type DockRepository struct {
	collection *mongo.Collection
}

func NewDockRepository(client *mongodbpkg.Client) *DockRepository {
	repo := &DockRepository{collection: client.Collection("docks")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *DockRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dockId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "warehouseId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *DockRepository) Save(ctx context.Context, dock *domain.Dock) error {
	dock.UpdatedAt = mongodbpkg.Now()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"dockId": dock.DockID}
	update := bson.M{"$set": dock}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save dock: %w", err)
	}
	return nil
}

// OccupyIfVacant persists the dock only if the stored document holds no
// current appointment. A concurrent assignment that already claimed the
// dock makes the filter match nothing, and the loser observes
// ErrDockOccupied.
func (r *DockRepository) OccupyIfVacant(ctx context.Context, dock *domain.Dock) error {
	dock.UpdatedAt = mongodbpkg.Now()

	filter := bson.M{"dockId": dock.DockID, "currentAppointmentId": ""}
	update := bson.M{"$set": dock}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to occupy dock: %w", err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrDockOccupied
	}
	return nil
}

func (r *DockRepository) FindByID(ctx context.Context, dockID string) (*domain.Dock, error) {
	var dock domain.Dock
	err := r.collection.FindOne(ctx, bson.M{"dockId": dockID}).Decode(&dock)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &dock, err
}

func (r *DockRepository) FindByWarehouse(ctx context.Context, warehouseID string) ([]*domain.Dock, error) {
	opts := options.Find().SetSort(mongodbpkg.SortAscending("dockId"))
	cursor, err := r.collection.Find(ctx, bson.M{"warehouseId": warehouseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var docks []*domain.Dock
	err = cursor.All(ctx, &docks)
	return docks, err
}
