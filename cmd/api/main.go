package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"waypost/internal/adapter/api"
	"waypost/internal/adapter/api/handler"
	apimiddleware "waypost/internal/adapter/api/middleware"
	"waypost/internal/adapter/api/router"
	"waypost/internal/adapter/repository"
	"waypost/internal/domain/service"
	"waypost/internal/infrastructure/firebase"
	"waypost/internal/infrastructure/websocket"
	"waypost/internal/usecase"
	"waypost/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption

	// Service account from environment variable (for production)
	serviceAccountJSON := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if serviceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(serviceAccountJSON))
	} else {
		// Fallback to file path (for local development)
		serviceAccountPath := os.Getenv("FIREBASE_SERVICE_ACCOUNT_PATH")
		if serviceAccountPath == "" {
			serviceAccountPath = "./service-account.json"
		}

		if _, err := os.Stat(serviceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", serviceAccountPath)
		}

		log.Printf("Using Firebase service account from file: %s", serviceAccountPath)
		opt = option.WithCredentialsFile(serviceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	serviceRepo := repository.NewFirestoreServiceRepository(firestoreClient)
	escrowRepo := repository.NewFirestoreEscrowRepository(firestoreClient)
	tokenRepo := repository.NewFirestoreTokenRepository(firestoreClient)
	walletRepo := repository.NewFirestoreWalletRepository(firestoreClient)
	verificationRepo := repository.NewFirestoreVerificationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	geoService := service.NewGeoService(cfg.MapboxAccessToken, cfg.GoogleMapsApiKey)
	attestationService := service.NewAttestationService(cfg.VerifierBaseURL, cfg.VerifierScope)

	serviceUseCase := usecase.NewServiceUseCase(serviceRepo, escrowRepo, tokenRepo, verificationRepo, wsManager)
	walletUseCase := usecase.NewWalletUseCase(walletRepo)
	verificationUseCase := usecase.NewVerificationUseCase(verificationRepo, attestationService)

	handler.Setup(serviceUseCase, walletUseCase, verificationUseCase)
	handler.SetupHealthHandler(firebaseAuthClient)
	handler.SetupDevTokenHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	verifyLimiter := apimiddleware.NewRateLimiter(cfg.VerifyRateLimit, time.Minute)

	geoHandler := handler.NewGeoHandler(geoService)
	wsHandler := handler.NewWebSocketHandler(wsManager, firebaseAuthClient)

	router.Setup(e, authMiddleware, verifyLimiter)
	router.SetupGeoRouter(e, geoHandler, authMiddleware)
	router.SetupWebSocketRouter(e, wsHandler)
	router.SetupDevRouter(e, cfg.Environment)

	log.Printf("Starting server on port %s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
