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
	"github.com/firerecipes/backend/internal/sweep"
)

var (
	sweeper *sweep.Sweeper
	once    sync.Once
	initErr error
)

func init() {
	// --- Set up structured logging ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Invoked daily by Cloud Scheduler through Pub/Sub; the payload is unused.
	functions.CloudEvent("DailyRecipePublishCheck", dailyRecipePublishCheck)
}

// main is required by the Go Functions Framework.
func main() {}

func dailyRecipePublishCheck(ctx context.Context, e cloudevents.Event) error {
	once.Do(func() {
		sweeper, initErr = newSweeper(context.Background())
	})
	if initErr != nil {
		slog.Error("Critical error during function initialization", "error", initErr)
		return initErr
	}

	slog.Info("daily publish check started")
	return sweeper.Run(ctx)
}

func newSweeper(ctx context.Context) (*sweep.Sweeper, error) {
	projectID := gcp.GetEnv("GCP_PROJECT", "")
	if projectID == "" {
		return nil, fmt.Errorf("GCP_PROJECT environment variable must be set")
	}

	client, err := gcp.NewFirestoreClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return sweep.NewSweeper(store.NewFirestoreStore(client)), nil
}
