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

type ManifestRepository struct {
	collection *mongo.Collection
}

func NewManifestRepository(client *mongodbpkg.Client) *ManifestRepository {
	repo := &ManifestRepository{collection: client.Collection("cargo_manifests")}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *ManifestRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "manifestId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)
}

func (r *ManifestRepository) Save(ctx context.Context, manifest *domain.CargoManifest) error {
	opts := options.Update().SetUpsert(true)
	filter := bson.M{"manifestId": manifest.ManifestID}
	update := bson.M{"$set": manifest}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save manifest: %w", err)
	}
	return nil
}

func (r *ManifestRepository) FindByID(ctx context.Context, manifestID string) (*domain.CargoManifest, error) {
	var manifest domain.CargoManifest
	err := r.collection.FindOne(ctx, bson.M{"manifestId": manifestID}).Decode(&manifest)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &manifest, err
}

func (r *ManifestRepository) FindByAppointment(ctx context.Context, appointmentID string) (*domain.CargoManifest, error) {
	var manifest domain.CargoManifest
	err := r.collection.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&manifest)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &manifest, err
}
