package admin

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"mentorly/models"
)

// RegisterMentor stores a new mentor under a fresh id.
func (a *DefaultAdminService) RegisterMentor(ctx context.Context, in models.MentorInput) (*models.Mentor, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: mentor name is required", ErrInvalidInput)
	}
	expertise, err := models.NewExpertiseSet(in.Expertise...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(expertise) == 0 {
		return nil, fmt.Errorf("%w: mentor needs at least one expertise tag", ErrInvalidInput)
	}

	mentor := &models.Mentor{
		ID:        a.NewID(),
		Name:      name,
		Expertise: expertise,
		Premium:   in.Premium,
		CreatedAt: a.Now(),
	}
	if err := a.Directory.CreateMentor(ctx, mentor); err != nil {
		return nil, err
	}
	a.Logger.Info("mentor registered", zap.String("mentor_id", mentor.ID), zap.Strings("expertise", mentor.Expertise), zap.Bool("premium", mentor.Premium))
	return mentor, nil
}

// RegisterStudent stores a new student under a fresh id.
func (a *DefaultAdminService) RegisterStudent(ctx context.Context, in models.StudentInput) (*models.Student, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: student name is required", ErrInvalidInput)
	}
	interest := models.NormalizeTag(in.AreaOfInterest)
	if interest == "" {
		return nil, fmt.Errorf("%w: area of interest is required", ErrInvalidInput)
	}

	student := &models.Student{
		ID:             a.NewID(),
		Name:           name,
		AreaOfInterest: interest,
		CreatedAt:      a.Now(),
	}
	if err := a.Directory.CreateStudent(ctx, student); err != nil {
		return nil, err
	}
	a.Logger.Info("student registered", zap.String("student_id", student.ID), zap.String("area_of_interest", interest))
	return student, nil
}

func (a *DefaultAdminService) ListMentors(ctx context.Context) ([]models.Mentor, error) {
	return a.Directory.ListMentors(ctx)
}

func (a *DefaultAdminService) ListStudents(ctx context.Context) ([]models.Student, error) {
	return a.Directory.ListStudents(ctx)
}

func (a *DefaultAdminService) DeleteMentor(ctx context.Context, id string) error {
	if err := a.Directory.DeleteMentor(ctx, id); err != nil {
		return err
	}
	a.Logger.Info("mentor deleted", zap.String("mentor_id", id))
	return nil
}

func (a *DefaultAdminService) DeleteStudent(ctx context.Context, id string) error {
	if err := a.Directory.DeleteStudent(ctx, id); err != nil {
		return err
	}
	a.Logger.Info("student deleted", zap.String("student_id", id))
	return nil
}

func (a *DefaultAdminService) DeleteAllMentors(ctx context.Context) (int64, error) {
	n, err := a.Directory.DeleteAllMentors(ctx)
	if err != nil {
		return 0, err
	}
	a.Logger.Info("mentors deleted", zap.Int64("count", n))
	return n, nil
}

func (a *DefaultAdminService) DeleteAllStudents(ctx context.Context) (int64, error) {
	n, err := a.Directory.DeleteAllStudents(ctx)
	if err != nil {
		return 0, err
	}
	a.Logger.Info("students deleted", zap.Int64("count", n))
	return n, nil
}
