package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/gin-gonic/gin"

	"github.com/firerecipes/backend/internal/api"
	"github.com/firerecipes/backend/internal/auth"
	"github.com/firerecipes/backend/internal/gcp"
	"github.com/firerecipes/backend/internal/store"
)

var (
	router  *gin.Engine
	once    sync.Once
	initErr error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Register the HTTP function. "RecipesAPI" is the entry point name in GCP.
	functions.HTTP("RecipesAPI", handleRecipes)
}

// main is required by the Go Functions Framework.
func main() {}

// handleRecipes is the HTTP entry point; it delegates to the gin router.
func handleRecipes(w http.ResponseWriter, r *http.Request) {
	// Use sync.Once for robust, one-time initialization of clients.
	once.Do(func() {
		router, initErr = newRouter(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		http.Error(w, "Internal Server Error: failed to initialize service", http.StatusInternalServerError)
		return
	}

	router.ServeHTTP(w, r)
}

func newRouter(ctx context.Context) (*gin.Engine, error) {
	projectID := os.Getenv("GCP_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT environment variable must be set")
	}
	secret := gcp.GetEnv("AUTH_JWT_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set")
	}

	client, err := gcp.NewFirestoreClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	st := store.NewFirestoreStore(client)
	verifier := auth.NewJWTVerifier([]byte(secret))
	handler := api.NewRecipeHandler(st, st, verifier)

	gin.SetMode(gin.ReleaseMode)
	return api.NewRouter(handler), nil
}
