package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	cloudevents "github.com/cloudevents/sdk-go/v2"

	"github.com/firerecipes/backend/internal/gcp"
	"github.com/firerecipes/backend/internal/store"
	"github.com/firerecipes/backend/internal/triggers"
)

var (
	dispatcher *triggers.Dispatcher
	once       sync.Once
	initErr    error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// One deployable per lifecycle event; all three share the dispatcher.
	functions.CloudEvent("OnRecipeCreated", onRecipeCreated)
	functions.CloudEvent("OnRecipeUpdated", onRecipeUpdated)
	functions.CloudEvent("OnRecipeDeleted", onRecipeDeleted)
}

// main is required by the Go Functions Framework.
func main() {}

func onRecipeCreated(ctx context.Context, e cloudevents.Event) error {
	return dispatch(ctx, triggers.Created, e)
}

func onRecipeUpdated(ctx context.Context, e cloudevents.Event) error {
	return dispatch(ctx, triggers.Updated, e)
}

func onRecipeDeleted(ctx context.Context, e cloudevents.Event) error {
	return dispatch(ctx, triggers.Deleted, e)
}

func dispatch(ctx context.Context, event triggers.Lifecycle, e cloudevents.Event) error {
	once.Do(func() {
		dispatcher, initErr = newDispatcher(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	return dispatcher.Dispatch(ctx, store.RecipesCollection, event, e.Data())
}

func newDispatcher(ctx context.Context) (*triggers.Dispatcher, error) {
	projectID := os.Getenv("GCP_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT environment variable must be set")
	}
	bucket := gcp.GetEnv("IMAGES_BUCKET", "")
	if bucket == "" {
		return nil, fmt.Errorf("IMAGES_BUCKET must be set")
	}

	client, err := gcp.NewFirestoreClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	bucketHandle, err := gcp.NewStorageBucket(ctx, bucket)
	if err != nil {
		return nil, err
	}

	maintainer := triggers.NewCounterMaintainer(
		store.NewFirestoreStore(client),
		store.NewGCSImageStore(bucketHandle),
	)
	return triggers.NewDispatcher(maintainer), nil
}
