package workoutrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"converse-server/internal/domain/workout"
	"converse-server/internal/infrastructure/database/dbschema"
)

type WorkoutGormRepository struct {
	db *gorm.DB
}

var _ workout.Repository = (*WorkoutGormRepository)(nil)

func NewWorkoutGormRepository(db *gorm.DB) workout.Repository {
	return &WorkoutGormRepository{db: db}
}

func (repo *WorkoutGormRepository) Create(ctx context.Context, profile *workout.Profile) error {
	entity := dbschema.NewSchemaWorkoutProfile(profile)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("create workout profile: %w", err)
	}
	profile.ID = entity.ID
	profile.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *WorkoutGormRepository) FindByName(ctx context.Context, name string) (*workout.Profile, error) {
	var entity dbschema.WorkoutProfile
	err := repo.db.WithContext(ctx).Where("name = ?", name).First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find workout profile: %w", err)
	}
	return entity.EtoD(), nil
}
