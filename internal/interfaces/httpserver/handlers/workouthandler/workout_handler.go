// Package workouthandler is a thin shim over the workout profile service.
package workouthandler

import (
	"context"

	"converse-server/internal/domain/workout"
)

type WorkoutHandler struct {
	workouts *workout.Service
}

func NewWorkoutHandler(workouts *workout.Service) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

func (h *WorkoutHandler) Create(ctx context.Context, name, gifURL, workoutType string) (*workout.Profile, error) {
	return h.workouts.Create(ctx, workout.Profile{Name: name, GifURL: gifURL, WorkoutType: workoutType})
}

func (h *WorkoutHandler) Get(ctx context.Context, name string) (*workout.Profile, error) {
	return h.workouts.Get(ctx, name)
}
