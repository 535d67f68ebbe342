// Package requests holds the request payloads bound from JSON bodies.
package requests

// SearchRequest is the body of POST /v1/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// ChatRequest is the body of POST /v1/chat.
type ChatRequest struct {
	Message string `json:"message"`
	BotName string `json:"botName"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateWorkoutRequest is the body of POST /v1/workouts.
type CreateWorkoutRequest struct {
	Name        string `json:"name"`
	GifURL      string `json:"gifUrl"`
	WorkoutType string `json:"workoutType"`
}
