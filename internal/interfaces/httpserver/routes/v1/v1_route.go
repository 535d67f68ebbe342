// Package v1 groups the versioned API surface behind the auth middleware.
package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"converse-server/internal/domain/user"
	"converse-server/internal/infrastructure/auth"
	"converse-server/internal/interfaces/httpserver/middlewares"
	"converse-server/internal/interfaces/httpserver/routes/v1/chat"
	"converse-server/internal/interfaces/httpserver/routes/v1/search"
	"converse-server/internal/interfaces/httpserver/routes/v1/workout"
)

type V1Route struct {
	search  *search.SearchRoute
	chat    *chat.ChatRoute
	workout *workout.WorkoutRoute

	tokens *auth.TokenManager
	users  *user.Service
	logger zerolog.Logger
}

func NewV1Route(
	search *search.SearchRoute,
	chat *chat.ChatRoute,
	workout *workout.WorkoutRoute,
	tokens *auth.TokenManager,
	users *user.Service,
	logger zerolog.Logger,
) *V1Route {
	return &V1Route{
		search:  search,
		chat:    chat,
		workout: workout,
		tokens:  tokens,
		users:   users,
		logger:  logger,
	}
}

func (route *V1Route) RegisterRouter(router gin.IRouter) {
	v1 := router.Group("/v1")
	v1.Use(middlewares.AuthMiddleware(route.tokens, route.users, route.logger))

	route.search.RegisterRouter(v1)
	route.chat.RegisterRouter(v1)
	route.workout.RegisterRouter(v1)
}
