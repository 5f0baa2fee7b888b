package main

import (
	"context"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"vitrina/internal/adapter/api"
	"vitrina/internal/adapter/api/handler"
	apimiddleware "vitrina/internal/adapter/api/middleware"
	"vitrina/internal/adapter/api/router"
	"vitrina/internal/adapter/repository"
	"vitrina/internal/infrastructure/firebase"
	"vitrina/internal/infrastructure/storage"
	"vitrina/internal/infrastructure/websocket"
	"vitrina/internal/usecase"
	"vitrina/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	opts := credentialOptions()

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	usernameRepo := repository.NewFirestoreUsernameRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	commentRepo := repository.NewFirestoreCommentRepository(firestoreClient)
	likeRepo := repository.NewFirestoreLikeRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, usernameRepo, firebaseAuthClient)
	listingUseCase := usecase.NewListingUseCase(listingRepo, likeRepo, storageClient, cfg.MediaFolder)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, userRepo)

	listingFeed := usecase.NewListingFeed(listingRepo, likeRepo)
	if err := listingFeed.Start(ctx); err != nil {
		log.Fatalf("Failed to start listing feed: %v", err)
	}

	handler.Setup(authUseCase, userUseCase, listingUseCase, commentUseCase)
	handler.SetupAdminHandler(userUseCase, wsManager)
	handler.SetupFeedHandler(listingFeed, commentUseCase, wsManager, firebaseAuthClient)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware()

	router.Setup(e, authMiddleware, adminMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}

// credentialOptions picks explicit service account credentials when
// configured, falling back to application default credentials otherwise.
func credentialOptions() []option.ClientOption {
	if serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		return []option.ClientOption{option.WithCredentialsJSON([]byte(serviceAccountJSON))}
	}

	if serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH"); serviceAccountPath != "" {
		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		return []option.ClientOption{option.WithCredentialsFile(serviceAccountPath)}
	}

	return nil
}
