package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/config"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/database"
	"github.com/franciscosanchezn/pizzeria-backoffice/internal/services"
)

func main() {
	// Parse command line flags
	clientID := flag.String("id", "dev-staff", "Client ID")
	clientSecret := flag.String("secret", "dev-staff-secret-123", "Client secret")
	name := flag.String("name", "Development staff tool", "Display name")
	scopes := flag.String("scopes", "catalog orders statistics", "Space-separated scopes")
	flag.Parse()

	_ = godotenv.Load()
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	db, err := database.InitDatabase(context.Background(), conf.Database())
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	clients := services.NewStaffClientService(db, conf.PasswordCost)

	// Check if client already exists
	if existing, err := clients.GetClientByID(*clientID); err == nil {
		fmt.Printf("Staff client '%s' already exists (%s)\n", existing.ID, existing.Name)
		return
	}

	client, err := clients.CreateClientWithSecret(*clientID, *clientSecret, *name, "http://localhost", *scopes)
	if err != nil {
		log.Fatal("Failed to create client:", err)
	}

	fmt.Printf("✓ Staff OAuth client created!\n")
	fmt.Printf("Client ID: %s\n", client.ID)
	fmt.Printf("Client Secret: %s\n", *clientSecret)
	fmt.Println("\nRequest a staff token with:")
	fmt.Printf("curl -X POST http://%s:%d/oauth/token \\\n", conf.Host, conf.Port)
	fmt.Printf("  -d 'grant_type=client_credentials' \\\n")
	fmt.Printf("  -d 'client_id=%s' \\\n", client.ID)
	fmt.Printf("  -d 'client_secret=%s'\n", *clientSecret)
}
