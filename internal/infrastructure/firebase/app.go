package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"storefront/pkg/logger"
)

// Credentials prefers inline service account JSON (production) and falls
// back to a key file on disk (local development).
func Credentials(serviceAccountJSON, serviceAccountPath string) (option.ClientOption, error) {
	if serviceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(serviceAccountJSON)), nil
	}

	if _, err := os.Stat(serviceAccountPath); err != nil {
		return nil, fmt.Errorf("service account file %s: %w", serviceAccountPath, err)
	}

	logger.Info("Using Firebase service account from file: %s", serviceAccountPath)
	return option.WithCredentialsFile(serviceAccountPath), nil
}

// App holds the Firebase clients this service talks to.
type App struct {
	projectID string
	opt       option.ClientOption
	Auth      *auth.Client
}

func NewApp(ctx context.Context, projectID string, opt option.ClientOption) (*App, error) {
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: projectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize Firebase Auth: %w", err)
	}

	return &App{
		projectID: projectID,
		opt:       opt,
		Auth:      authClient,
	}, nil
}

// Firestore opens a Firestore client for the app's project. The caller
// closes it.
func (a *App) Firestore(ctx context.Context) (*firestore.Client, error) {
	client, err := firestore.NewClient(ctx, a.projectID, a.opt)
	if err != nil {
		return nil, fmt.Errorf("create Firestore client: %w", err)
	}
	return client, nil
}
