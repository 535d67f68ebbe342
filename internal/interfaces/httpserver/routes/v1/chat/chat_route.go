// Package chat registers the authenticated per-bot chat endpoints.
package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"converse-server/internal/interfaces/httpserver/handlers/chathandler"
	"converse-server/internal/interfaces/httpserver/middlewares"
	"converse-server/internal/interfaces/httpserver/requests"
	"converse-server/internal/interfaces/httpserver/responses"
	"converse-server/internal/utils/apperrors"
)

type ChatRoute struct {
	handler *chathandler.ChatHandler
}

func NewChatRoute(handler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{handler: handler}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/chat")
	group.POST("", route.chat)
	group.GET("/history/:botName", route.history)
}

func (route *ChatRoute) chat(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleError(reqCtx, apperrors.Unauthorized("authentication required"))
		return
	}

	var req requests.ChatRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleError(reqCtx, apperrors.Validation("invalid request body"))
		return
	}

	result, err := route.handler.Chat(reqCtx.Request.Context(), principal.UserID, req.BotName, req.Message)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, result)
}

func (route *ChatRoute) history(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleError(reqCtx, apperrors.Unauthorized("authentication required"))
		return
	}

	messages, err := route.handler.History(reqCtx.Request.Context(), principal.UserID, reqCtx.Param("botName"))
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, gin.H{"messages": messages})
}
