package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/wms-platform/yard-service/internal/domain"
	mongodbpkg "github.com/wms-platform/yard-service/pkg/mongodb"
)

type AppointmentRepository struct {
	client     *mongodbpkg.Client
	collection *mongo.Collection
	guards     *mongo.Collection
}

func NewAppointmentRepository(client *mongodbpkg.Client) *AppointmentRepository {
	repo := &AppointmentRepository{
		client:     client,
		collection: client.Collection("appointments"),
		guards:     client.Collection("dock_slot_guards"),
	}
	repo.ensureIndexes(context.Background())
	return repo
}

func (r *AppointmentRepository) ensureIndexes(ctx context.Context) {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "dockId", Value: 1}, {Key: "startTime", Value: 1}}},
		{Keys: bson.D{{Key: "truckId", Value: 1}, {Key: "startTime", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	r.collection.Indexes().CreateMany(ctx, indexes)

	guardIndexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dockId", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	r.guards.Indexes().CreateMany(ctx, guardIndexes)
}

func (r *AppointmentRepository) Save(ctx context.Context, appointment *domain.Appointment) error {
	appointment.UpdatedAt = mongodbpkg.Now()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"appointmentId": appointment.AppointmentID}
	update := bson.M{"$set": appointment}

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, appointmentID string) (*domain.Appointment, error) {
	var appointment domain.Appointment
	err := r.collection.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&appointment)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &appointment, err
}

func (r *AppointmentRepository) FindByDock(ctx context.Context, dockID string, from, to time.Time) ([]*domain.Appointment, error) {
	filter := bson.M{
		"dockId":    dockID,
		"status":    bson.M{"$ne": domain.AppointmentStatusCancelled},
		"startTime": bson.M{"$lt": to},
		"endTime":   bson.M{"$gt": from},
	}
	opts := options.Find().SetSort(mongodbpkg.SortAscending("startTime"))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var appointments []*domain.Appointment
	err = cursor.All(ctx, &appointments)
	return appointments, err
}

func (r *AppointmentRepository) FindScheduledForTruck(ctx context.Context, truckID string, dayStart, dayEnd time.Time) ([]*domain.Appointment, error) {
	filter := bson.M{
		"truckId":   truckID,
		"status":    domain.AppointmentStatusScheduled,
		"startTime": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	opts := options.Find().SetSort(mongodbpkg.SortAscending("startTime"))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var appointments []*domain.Appointment
	err = cursor.All(ctx, &appointments)
	return appointments, err
}

// IsSlotAvailable checks whether any non-cancelled appointment on the dock
// overlaps [start, end). Appointments touching only at the boundary do not
// overlap.
func (r *AppointmentRepository) IsSlotAvailable(ctx context.Context, dockID string, start, end time.Time, excludeAppointmentID string) (bool, error) {
	filter := bson.M{
		"dockId":    dockID,
		"status":    bson.M{"$ne": domain.AppointmentStatusCancelled},
		"startTime": bson.M{"$lt": end},
		"endTime":   bson.M{"$gt": start},
	}
	if excludeAppointmentID != "" {
		filter["appointmentId"] = bson.M{"$ne": excludeAppointmentID}
	}

	count, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check slot availability: %w", err)
	}
	return count == 0, nil
}

// ScheduleIfAvailable writes the appointment only if its slot is still free,
// with the conflict check and the insert in a single transaction so two
// concurrent schedulers cannot both win the same window.
func (r *AppointmentRepository) ScheduleIfAvailable(ctx context.Context, appointment *domain.Appointment) error {
	return r.writeIfAvailable(ctx, appointment, "")
}

// RescheduleIfAvailable is ScheduleIfAvailable with the appointment's own
// row excluded from the conflict check.
func (r *AppointmentRepository) RescheduleIfAvailable(ctx context.Context, appointment *domain.Appointment) error {
	return r.writeIfAvailable(ctx, appointment, appointment.AppointmentID)
}

func (r *AppointmentRepository) writeIfAvailable(ctx context.Context, appointment *domain.Appointment, excludeAppointmentID string) error {
	return r.client.WithTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		// Bump the per-dock guard document first. Concurrent schedulers
		// for the same dock write the same guard, so at most one of them
		// commits; the others hit a transient write conflict, the driver
		// re-runs the transaction, and the re-read of the slot now sees
		// the winner's appointment.
		guardUpdate := bson.M{"$inc": bson.M{"version": 1}}
		opts := options.Update().SetUpsert(true)
		if _, err := r.guards.UpdateOne(sessCtx, bson.M{"dockId": appointment.DockID}, guardUpdate, opts); err != nil {
			return fmt.Errorf("failed to lock dock schedule: %w", err)
		}

		available, err := r.IsSlotAvailable(sessCtx, appointment.DockID, appointment.StartTime, appointment.EndTime, excludeAppointmentID)
		if err != nil {
			return err
		}
		if !available {
			return domain.ErrSlotUnavailable
		}
		return r.Save(sessCtx, appointment)
	})
}
