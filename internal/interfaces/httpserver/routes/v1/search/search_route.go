// Package search registers the authenticated search endpoints.
package search

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"converse-server/internal/interfaces/httpserver/handlers/searchhandler"
	"converse-server/internal/interfaces/httpserver/middlewares"
	"converse-server/internal/interfaces/httpserver/requests"
	"converse-server/internal/interfaces/httpserver/responses"
	"converse-server/internal/utils/apperrors"
)

type SearchRoute struct {
	handler *searchhandler.SearchHandler
}

func NewSearchRoute(handler *searchhandler.SearchHandler) *SearchRoute {
	return &SearchRoute{handler: handler}
}

func (route *SearchRoute) RegisterRouter(router gin.IRouter) {
	group := router.Group("/search")
	group.POST("", route.search)
	group.GET("/history", route.history)
}

func (route *SearchRoute) search(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleError(reqCtx, apperrors.Unauthorized("authentication required"))
		return
	}

	var req requests.SearchRequest
	if err := reqCtx.ShouldBindJSON(&req); err != nil {
		responses.HandleError(reqCtx, apperrors.Validation("invalid request body"))
		return
	}

	result, err := route.handler.Search(reqCtx.Request.Context(), principal.UserID, req.Query)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, result)
}

func (route *SearchRoute) history(reqCtx *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(reqCtx)
	if !ok {
		responses.HandleError(reqCtx, apperrors.Unauthorized("authentication required"))
		return
	}

	messages, err := route.handler.History(reqCtx.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, gin.H{"messages": messages})
}
