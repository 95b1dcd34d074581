package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/freightops-pro/fopsbackend-sub004/internal/config"
	"github.com/freightops-pro/fopsbackend-sub004/internal/models"
	"github.com/freightops-pro/fopsbackend-sub004/internal/routes"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	db := config.InitDB()

	if err := db.AutoMigrate(
		&models.BankAccount{},
		&models.BankTransaction{},
		&models.LedgerEntry{},
		&models.MatchAuditLog{},
	); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	if err := r.Run(config.ServerAddr()); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
