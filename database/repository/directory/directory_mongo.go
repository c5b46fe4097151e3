package directoryRepo

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

// MongoDirectoryRepo implements DirectoryRepository using MongoDB.
type MongoDirectoryRepo struct {
	mentorColl      *mongo.Collection
	studentColl     *mongo.Collection
	appointmentColl *mongo.Collection
	paymentColl     *mongo.Collection
	timeout         time.Duration
}

// NewMongoDirectoryRepo creates the repository and ensures its indexes.
func NewMongoDirectoryRepo(ctx context.Context, db *mongo.Database, timeout time.Duration) (*MongoDirectoryRepo, error) {
	repo := &MongoDirectoryRepo{
		mentorColl:      db.Collection("mentors"),
		studentColl:     db.Collection("students"),
		appointmentColl: db.Collection("appointments"),
		paymentColl:     db.Collection("payments"),
		timeout:         timeout,
	}
	if err := repo.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoDirectoryRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	unique := mongo.IndexModel{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)}
	for _, coll := range []*mongo.Collection{r.mentorColl, r.studentColl} {
		if _, err := coll.Indexes().CreateOne(ctx, unique); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

func (r *MongoDirectoryRepo) GetMentor(ctx context.Context, id string) (*models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := r.mentorColl.FindOne(ctx, bson.M{"id": id}).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("mentor %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch mentor %s: %w", id, err)
	}
	return decodeMentor(raw)
}

func (r *MongoDirectoryRepo) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var s models.Student
	if err := r.studentColl.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("student %s: %w", id, repository.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch student %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoDirectoryRepo) CreateMentor(ctx context.Context, mentor *models.Mentor) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if err := mentor.Expertise.Validate(); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	if _, err := r.mentorColl.InsertOne(ctx, mentor); err != nil {
		return fmt.Errorf("failed to create mentor: %w", err)
	}
	return nil
}

func (r *MongoDirectoryRepo) CreateStudent(ctx context.Context, student *models.Student) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.studentColl.InsertOne(ctx, student); err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

func (r *MongoDirectoryRepo) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.mentorColl.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve mentors: %w", err)
	}
	defer cursor.Close(ctx)

	mentors := []models.Mentor{}
	for cursor.Next(ctx) {
		m, err := decodeMentor(cursor.Current)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, *m)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return mentors, nil
}

func (r *MongoDirectoryRepo) ListStudents(ctx context.Context) ([]models.Student, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.studentColl.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve students: %w", err)
	}
	defer cursor.Close(ctx)

	students := []models.Student{}
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("failed to decode students: %w", err)
	}
	return students, nil
}

func (r *MongoDirectoryRepo) DeleteMentor(ctx context.Context, id string) error {
	return r.deleteOne(ctx, r.mentorColl, "mentor", bson.M{"mentor_id": id}, id)
}

func (r *MongoDirectoryRepo) DeleteStudent(ctx context.Context, id string) error {
	return r.deleteOne(ctx, r.studentColl, "student", bson.M{"student_id": id}, id)
}

func (r *MongoDirectoryRepo) DeleteAllMentors(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, r.mentorColl, bson.M{"mentor_id": bson.M{"$exists": true}})
}

func (r *MongoDirectoryRepo) DeleteAllStudents(ctx context.Context) (int64, error) {
	return r.deleteAll(ctx, r.studentColl, bson.M{"student_id": bson.M{"$exists": true}})
}

func (r *MongoDirectoryRepo) deleteOne(ctx context.Context, coll *mongo.Collection, kind string, refFilter bson.M, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	referenced, err := r.referenced(ctx, refFilter)
	if err != nil {
		return err
	}
	if referenced {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrReferenced)
	}

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s with id %s: %w", kind, id, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, repository.ErrNotFound)
	}
	return nil
}

func (r *MongoDirectoryRepo) deleteAll(ctx context.Context, coll *mongo.Collection, refFilter bson.M) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	referenced, err := r.referenced(ctx, refFilter)
	if err != nil {
		return 0, err
	}
	if referenced {
		return 0, fmt.Errorf("%s: %w", coll.Name(), repository.ErrReferenced)
	}

	result, err := coll.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to delete %s: %w", coll.Name(), err)
	}
	return result.DeletedCount, nil
}

// referenced reports whether any appointment or payment matches filter.
func (r *MongoDirectoryRepo) referenced(ctx context.Context, filter bson.M) (bool, error) {
	for _, coll := range []*mongo.Collection{r.appointmentColl, r.paymentColl} {
		n, err := coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, fmt.Errorf("failed to check references in %s: %w", coll.Name(), err)
		}
		if n > 0 {
			return true, nil
		}
	}
	return false, nil
}

// decodeMentor treats any document that will not decode into a valid
// expertise set as corrupt rather than as a mentor without expertise.
func decodeMentor(raw bson.Raw) (*models.Mentor, error) {
	var m models.Mentor
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("mentor document: %w: %v", repository.ErrDataIntegrity, err)
	}
	if m.Expertise == nil {
		return nil, fmt.Errorf("mentor %s: %w: missing expertise", m.ID, repository.ErrDataIntegrity)
	}
	if err := m.Expertise.Validate(); err != nil {
		return nil, fmt.Errorf("mentor %s: %w: %v", m.ID, repository.ErrDataIntegrity, err)
	}
	return &m, nil
}
