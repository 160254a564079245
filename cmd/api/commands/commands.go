package commands

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/storefront/core/internal/adapters/repository"
	"github.com/storefront/core/internal/application/services"
	"github.com/storefront/core/internal/domain/entities"
	"github.com/storefront/core/internal/infrastructure/config"
	"github.com/storefront/core/internal/infrastructure/logger"
	"github.com/storefront/core/internal/infrastructure/server"
	"github.com/storefront/core/internal/infrastructure/storage"
	"github.com/storefront/core/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the Storefront admin API server",
		Long:  "Start the Storefront admin API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSeedCommand creates the seed command. It initializes the data
// directory with an admin account and a starter catalog so a fresh
// install has something to show.
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Initialize the data directory",
		Long:  "Create the data directory, an admin user and a starter catalog. Collections that already hold records are left untouched.",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("admin-email")
			password, _ := cmd.Flags().GetString("admin-password")
			runSeed(email, password)
		},
	}

	seedCmd.Flags().String("admin-email", "admin@storefront.local", "Admin account email")
	seedCmd.Flags().String("admin-password", "", "Admin account password (required)")

	return seedCmd
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the system",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			phone, _ := cmd.Flags().GetString("phone")
			role, _ := cmd.Flags().GetString("role")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createUser(name, email, password, phone, role)
		},
	}

	createUserCmd.Flags().String("name", "", "User display name")
	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("phone", "", "User phone number")
	createUserCmd.Flags().String("role", "user", "User role (admin, user)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Storefront version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Storefront Admin API v1.0.0")
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	store := storage.New(cfg.Storage.DataDir)
	if err := store.HealthCheck(); err != nil {
		appLogger.Fatal("Data directory not usable", "error", err)
	}

	srv, err := server.New(cfg, store, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting Storefront admin API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"data_dir", cfg.Storage.DataDir,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatal("Server failed to start", "error", err)
	}
}

func runSeed(adminEmail, adminPassword string) {
	if adminPassword == "" {
		log.Fatal("--admin-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	store := storage.New(cfg.Storage.DataDir)
	if err := store.HealthCheck(); err != nil {
		log.Fatalf("Data directory not usable: %v", err)
	}

	ctx := context.Background()

	// Admin account
	userRepo := repository.NewUserRepository(store.Collection(entities.UserResource.Name, entities.UserResource.Prefix), appLogger)
	digest := services.NewPasswordDigest(cfg.Auth.PasswordScheme)
	userService := services.NewUserService(userRepo, digest, appLogger)

	admin, err := userService.CreateUser(ctx, ports.CreateUserRequest{
		Name:     "Administrator",
		Email:    adminEmail,
		Password: adminPassword,
		Role:     "admin",
	})
	switch {
	case errors.Is(err, entities.ErrEmailTaken):
		fmt.Printf("Admin account %s already exists, skipping\n", adminEmail)
	case err != nil:
		log.Fatalf("Failed to create admin account: %v", err)
	default:
		fmt.Printf("Admin account created: %s (%s)\n", adminEmail, admin.ID())
	}

	// Starter catalog, only into empty collections.
	starters := map[string][]entities.Record{
		"categories": {
			{"name": "Electronics", "slug": "electronics"},
			{"name": "Clothing", "slug": "clothing"},
		},
		"brands": {
			{"name": "Generic", "slug": "generic"},
		},
	}

	for _, res := range entities.CatalogResources {
		payloads, ok := starters[res.Name]
		if !ok {
			continue
		}

		col := store.Collection(res.Name, res.Prefix)
		existing, err := col.List()
		if err != nil {
			log.Fatalf("Failed to read %s: %v", res.Name, err)
		}
		if len(existing) > 0 {
			fmt.Printf("Collection %s already has %d records, skipping\n", res.Name, len(existing))
			continue
		}

		for _, payload := range payloads {
			if _, err := col.Create(payload); err != nil {
				log.Fatalf("Failed to seed %s: %v", res.Name, err)
			}
		}
		fmt.Printf("Seeded %s with %d records\n", res.Name, len(payloads))
	}
}

func createUser(name, email, password, phone, role string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	store := storage.New(cfg.Storage.DataDir)
	userRepo := repository.NewUserRepository(store.Collection(entities.UserResource.Name, entities.UserResource.Prefix), appLogger)
	digest := services.NewPasswordDigest(cfg.Auth.PasswordScheme)
	userService := services.NewUserService(userRepo, digest, appLogger)

	user, err := userService.CreateUser(context.Background(), ports.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Phone:    phone,
		Role:     role,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %s\n", user.ID())
	fmt.Printf("  Email: %s\n", user.String("email"))
	fmt.Printf("  Role: %s\n", user.String("role"))
	if name != "" {
		fmt.Printf("  Name: %s\n", name)
	}
}
