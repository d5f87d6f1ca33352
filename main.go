package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/vietanh2810/bingo-api/cmd/app"
)

// @title        Bingo API
// @version      1.0
// @description  Live bingo sessions: draws, cards, claims and realtime rooms.
// @BasePath     /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
