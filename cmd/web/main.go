package main

import (
	"github.com/joho/godotenv"

	"jobsoko_backend/internal/app"
)

func main() {
	// .env is optional; containers inject real environment variables.
	_ = godotenv.Load()

	app.Run()
}
