package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/firerecipes/backend/internal/auth"
	"github.com/firerecipes/backend/internal/models"
	"github.com/firerecipes/backend/internal/store"
)

// ListResponse is the body of a successful GET /recipes. RecipeCount is the
// approximate total from the applicable counter document, a hint for
// pagination math, never authoritative for last-page detection.
type ListResponse struct {
	RecipeCount int64              `json:"recipeCount"`
	IsAuth      bool               `json:"isAuth"`
	Documents   []models.RecipeDoc `json:"documents"`
}

// RecipeHandler serves the recipe CRUD endpoints. Counter maintenance and
// image cleanup are not done here; they ride the document-change triggers.
type RecipeHandler struct {
	recipes  store.RecipeStore
	counters store.CounterStore
	verifier auth.TokenVerifier
}

func NewRecipeHandler(recipes store.RecipeStore, counters store.CounterStore, verifier auth.TokenVerifier) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		counters: counters,
		verifier: verifier,
	}
}

func (h *RecipeHandler) RegisterRoutes(router gin.IRouter) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", RequireAuth(h.verifier), h.CreateRecipe)
		recipes.PUT("/:id", RequireAuth(h.verifier), h.UpdateRecipe)
		recipes.DELETE("/:id", RequireAuth(h.verifier), h.DeleteRecipe)
	}
}

// bindRecipe decodes, validates and sanitizes a create/update body. On
// failure it writes the 400 response naming every offending field and
// returns false.
func (h *RecipeHandler) bindRecipe(c *gin.Context) (models.Recipe, bool) {
	var payload models.RecipePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Recipe{}, false
	}
	if err := payload.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Recipe{}, false
	}
	return payload.Sanitize(), true
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	recipe, ok := h.bindRecipe(c)
	if !ok {
		return
	}
	id, err := h.recipes.Add(c.Request.Context(), recipe)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ListRecipes is the one endpoint that never rejects on auth: an invalid or
// absent credential degrades to the anonymous view, which is restricted to
// published recipes regardless of any other filter.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	ctx := c.Request.Context()

	isAuth := false
	if token, err := auth.BearerToken(c.GetHeader("Authorization")); err == nil {
		if _, err := h.verifier.Verify(ctx, token); err == nil {
			isAuth = true
		}
	}

	q := store.Query{
		Authenticated:    isAuth,
		Category:         c.Query("category"),
		OrderByField:     c.Query("orderByField"),
		OrderByDirection: c.DefaultQuery("orderByDirection", "asc"),
		PerPage:          intQuery(c, "perPage"),
		PageNumber:       intQuery(c, "pageNumber"),
	}

	count, err := h.counters.Count(ctx, q.CounterKey())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	docs, err := h.recipes.Find(ctx, q)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ListResponse{
		RecipeCount: count,
		IsAuth:      isAuth,
		Documents:   docs,
	})
}

// UpdateRecipe fully replaces the document: fields outside the sanitized set
// are dropped, not merged.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	recipe, ok := h.bindRecipe(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if err := h.recipes.Set(c.Request.Context(), id, recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusOK)
}

func intQuery(c *gin.Context, key string) int {
	v := c.Query(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
