package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter assembles the gin engine the HTTP function serves. CORS is
// open-origin: the browser client is hosted separately from the API.
func NewRouter(h *RecipeHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(cors.Default())

	h.RegisterRoutes(router)
	return router
}
