package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mentorly/database/repository"
	"mentorly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoSchedulerRepo implements LedgerRepository using MongoDB.
type MongoSchedulerRepo struct {
	client          *mongo.Client
	appointmentColl *mongo.Collection
	paymentColl     *mongo.Collection
	lockColl        *mongo.Collection
	timeout         time.Duration
}

// NewMongoSchedulerRepo constructs the repository and ensures its indexes.
func NewMongoSchedulerRepo(ctx context.Context, db *mongo.Database, timeout time.Duration) (*MongoSchedulerRepo, error) {
	repo := &MongoSchedulerRepo{
		client:          db.Client(),
		appointmentColl: db.Collection("appointments"),
		paymentColl:     db.Collection("payments"),
		lockColl:        db.Collection("booking_locks"),
		timeout:         timeout,
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (repo *MongoSchedulerRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := repo.appointmentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "mentor_id", Value: 1}, {Key: "date", Value: 1}, {Key: "start_minute", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	_, err = repo.paymentColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "appointment_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to create payment indexes: %w", err)
	}
	return nil
}

// mongoLedgerTx routes every call through the transaction's session context.
// The ctx arguments are ignored; sc already derives from the caller's context.
type mongoLedgerTx struct {
	repo *MongoSchedulerRepo
	sc   mongo.SessionContext
}

func (t *mongoLedgerTx) FindOverlapping(_ context.Context, mentorID, date string, window models.Interval) (bool, error) {
	if window.Empty() {
		return false, nil
	}
	filter := bson.M{
		"mentor_id":    mentorID,
		"date":         date,
		"start_minute": bson.M{"$lt": window.End},
		"end_minute":   bson.M{"$gt": window.Start},
	}
	n, err := t.repo.appointmentColl.CountDocuments(t.sc, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("error finding overlapping appointments: %w", err)
	}
	return n > 0, nil
}

func (t *mongoLedgerTx) InsertAppointment(_ context.Context, a *models.Appointment) error {
	if _, err := t.repo.appointmentColl.InsertOne(t.sc, a); err != nil {
		return fmt.Errorf("insert appointment failed: %w", err)
	}
	return nil
}

func (t *mongoLedgerTx) InsertPayment(_ context.Context, p *models.Payment) error {
	if _, err := t.repo.paymentColl.InsertOne(t.sc, p); err != nil {
		return fmt.Errorf("insert payment failed: %w", err)
	}
	return nil
}

func (repo *MongoSchedulerRepo) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start_minute", Value: 1}})
	cursor, err := repo.appointmentColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching appointments: %w", err)
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

func (repo *MongoSchedulerRepo) ListPayments(ctx context.Context) ([]models.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.paymentColl.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching payments: %w", err)
	}
	defer cursor.Close(ctx)

	payments := []models.Payment{}
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("error decoding payments: %w", err)
	}
	return payments, nil
}

// DeleteAppointment removes a single appointment that no payment references.
func (repo *MongoSchedulerRepo) DeleteAppointment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	err := repo.paymentColl.FindOne(ctx, bson.M{"appointment_id": id}).Err()
	switch {
	case err == nil:
		return fmt.Errorf("appointment %s: %w", id, repository.ErrReferenced)
	case !errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("error checking payments for appointment %s: %w", id, err)
	}

	delResult, err := repo.appointmentColl.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("error deleting appointment %s: %w", id, err)
	}
	if delResult.DeletedCount == 0 {
		return fmt.Errorf("appointment %s: %w", id, repository.ErrNotFound)
	}
	return nil
}

func (repo *MongoSchedulerRepo) DeleteAllAppointments(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	n, err := repo.paymentColl.CountDocuments(ctx, bson.M{}, options.Count().SetLimit(1))
	if err != nil {
		return 0, fmt.Errorf("error checking payments: %w", err)
	}
	if n > 0 {
		return 0, fmt.Errorf("appointments: %w", repository.ErrReferenced)
	}

	delResult, err := repo.appointmentColl.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error deleting appointments: %w", err)
	}
	return delResult.DeletedCount, nil
}

func (repo *MongoSchedulerRepo) DeleteAllPayments(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.timeout)
	defer cancel()

	delResult, err := repo.paymentColl.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("error deleting payments: %w", err)
	}
	return delResult.DeletedCount, nil
}
