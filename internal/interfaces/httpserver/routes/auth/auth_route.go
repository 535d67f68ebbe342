// Package auth registers the public credential endpoints.
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"converse-server/internal/interfaces/httpserver/handlers/authhandler"
	"converse-server/internal/interfaces/httpserver/requests"
	"converse-server/internal/interfaces/httpserver/responses"
	"converse-server/internal/utils/apperrors"
)

type AuthRoute struct {
	handler *authhandler.AuthHandler
}

func NewAuthRoute(handler *authhandler.AuthHandler) *AuthRoute {
	return &AuthRoute{handler: handler}
}

func (route *AuthRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/auth")
	group.POST("/register", route.register)
	group.POST("/login", route.login)
}

func (route *AuthRoute) register(reqCtx *gin.Context) {
	var req requests.RegisterRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleError(reqCtx, apperrors.Validation("invalid request body"))
		return
	}

	result, err := route.handler.Register(reqCtx.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusCreated, result)
}

func (route *AuthRoute) login(reqCtx *gin.Context) {
	var req requests.LoginRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleError(reqCtx, apperrors.Validation("invalid request body"))
		return
	}

	result, err := route.handler.Login(reqCtx.Request.Context(), req.Email, req.Password)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, result)
}
