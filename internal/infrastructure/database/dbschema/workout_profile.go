package dbschema

import (
	"converse-server/internal/domain/workout"
	"converse-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(WorkoutProfile{})
}

// WorkoutProfile represents the database schema for workout profiles. It
// shares the store with the conversational tables but has no relation to
// User: the aggregates are intentionally kept apart.
type WorkoutProfile struct {
	BaseModel
	Name        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	GifURL      string `gorm:"type:varchar(512);not null"`
	WorkoutType string `gorm:"type:varchar(100);not null"`
}

// NewSchemaWorkoutProfile converts a domain profile into a schema instance.
func NewSchemaWorkoutProfile(profile *workout.Profile) *WorkoutProfile {
	return &WorkoutProfile{
		BaseModel: BaseModel{
			ID:        profile.ID,
			CreatedAt: profile.CreatedAt,
		},
		Name:        profile.Name,
		GifURL:      profile.GifURL,
		WorkoutType: profile.WorkoutType,
	}
}

// EtoD converts the schema profile to its domain representation.
func (p *WorkoutProfile) EtoD() *workout.Profile {
	return &workout.Profile{
		ID:          p.ID,
		Name:        p.Name,
		GifURL:      p.GifURL,
		WorkoutType: p.WorkoutType,
		CreatedAt:   p.CreatedAt,
	}
}
