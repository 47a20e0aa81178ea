package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"face-attendance-seed/config"
	"face-attendance-seed/internal/docstore"
	"face-attendance-seed/internal/models"
	"face-attendance-seed/internal/repository"
	"face-attendance-seed/logging"
)

// Pre-creates the seeded PocketBase collections without writing any record.
func main() {
	fmt.Println("🚀 PocketBase Collection Setup Script")
	fmt.Println("=====================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	url := cfg.DatabaseURL
	if cfg.Backend != config.BackendPocketBase {
		url = os.Getenv("POCKETBASE_URL")
		if url == "" {
			url = "http://127.0.0.1:8090"
		}
	}
	fmt.Printf("Connecting to: %s\n", url)

	store, err := docstore.OpenPocketBase(ctx, docstore.Options{
		Backend:         docstore.BackendPocketBase,
		CredentialsFile: cfg.CredentialsFile,
		DatabaseURL:     url,
	})
	if err != nil {
		fmt.Printf("❌ Auth failed: %v\n", err)
		fmt.Println("\nThe credentials file must hold a superuser login:")
		fmt.Println(`  {"identity":"admin@example.com","password":"password123"}`)
		stop()
		os.Exit(1)
	}
	defer store.Close()
	fmt.Println("✅ Authentication successful")

	failed := 0
	for _, name := range models.SeededCollections {
		fields := repository.DocumentFields(name)
		fmt.Printf("\n📦 Ensuring collection: %s\n", name)
		if err := store.EnsureCollection(ctx, name, fields); err != nil {
			fmt.Printf("   ⚠️  %v\n", err)
			failed++
			continue
		}
		fmt.Printf("   ✅ %d fields ready\n", len(fields))
	}

	if failed > 0 {
		fmt.Printf("\n❌ %d collection(s) could not be set up\n", failed)
		store.Close()
		stop()
		os.Exit(1)
	}

	fmt.Println("\n🎉 Setup complete!")
	fmt.Printf("\nAccess Admin UI: %s/_/\n", url)
}
