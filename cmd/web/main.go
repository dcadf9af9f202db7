package main

import (
	"log"

	"jobboard_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use actual environment variables.
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
