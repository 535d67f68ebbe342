// Package workout registers the workout profile endpoints.
package workout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"converse-server/internal/interfaces/httpserver/handlers/workouthandler"
	"converse-server/internal/interfaces/httpserver/requests"
	"converse-server/internal/interfaces/httpserver/responses"
	"converse-server/internal/utils/apperrors"
)

type WorkoutRoute struct {
	handler *workouthandler.WorkoutHandler
}

func NewWorkoutRoute(handler *workouthandler.WorkoutHandler) *WorkoutRoute {
	return &WorkoutRoute{handler: handler}
}

func (route *WorkoutRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/workouts")
	group.POST("", route.create)
	group.GET("/:name", route.get)
}

func (route *WorkoutRoute) create(reqCtx *gin.Context) {
	var req requests.CreateWorkoutRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleError(reqCtx, apperrors.Validation("invalid request body"))
		return
	}

	profile, err := route.handler.Create(reqCtx.Request.Context(), req.Name, req.GifURL, req.WorkoutType)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusCreated, profile)
}

func (route *WorkoutRoute) get(reqCtx *gin.Context) {
	profile, err := route.handler.Get(reqCtx.Request.Context(), reqCtx.Param("name"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, profile)
}
