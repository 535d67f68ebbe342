package workout_test

import (
	"context"
	"testing"

	"converse-server/internal/domain/workout"
	"converse-server/internal/utils/apperrors"
)

type memoryRepository struct {
	profiles map[string]*workout.Profile
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{profiles: make(map[string]*workout.Profile)}
}

func (m *memoryRepository) Create(_ context.Context, profile *workout.Profile) error {
	copied := *profile
	m.profiles[profile.Name] = &copied
	return nil
}

func (m *memoryRepository) FindByName(_ context.Context, name string) (*workout.Profile, error) {
	profile, ok := m.profiles[name]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func TestCreateAndGet(t *testing.T) {
	svc := workout.NewService(newMemoryRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, workout.Profile{
		Name:        "  pushup  ",
		GifURL:      "https://example.com/pushup.gif",
		WorkoutType: "strength",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "pushup" {
		t.Fatalf("name = %q, want trimmed", created.Name)
	}

	got, err := svc.Get(ctx, "pushup")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.WorkoutType != "strength" {
		t.Fatalf("workout type = %q", got.WorkoutType)
	}
}

func TestCreateRejectsIncompleteProfile(t *testing.T) {
	svc := workout.NewService(newMemoryRepository())
	ctx := context.Background()

	cases := []struct {
		name    string
		profile workout.Profile
	}{
		{"missing name", workout.Profile{GifURL: "u", WorkoutType: "t"}},
		{"missing gif", workout.Profile{Name: "n", WorkoutType: "t"}},
		{"missing type", workout.Profile{Name: "n", GifURL: "u"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, tc.profile); apperrors.TypeOf(err) != apperrors.TypeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc := workout.NewService(newMemoryRepository())
	ctx := context.Background()

	profile := workout.Profile{Name: "squat", GifURL: "u", WorkoutType: "legs"}
	if _, err := svc.Create(ctx, profile); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, profile); apperrors.TypeOf(err) != apperrors.TypeValidation {
		t.Fatalf("expected validation error on duplicate, got %v", err)
	}
}

func TestGetUnknownProfileIsNotFound(t *testing.T) {
	svc := workout.NewService(newMemoryRepository())

	if _, err := svc.Get(context.Background(), "nope"); apperrors.TypeOf(err) != apperrors.TypeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
