package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "github.com/freightops-pro/fopsbackend-sub004/internal/handlers"
	"github.com/freightops-pro/fopsbackend-sub004/internal/repository"
	service "github.com/freightops-pro/fopsbackend-sub004/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	accountRepo := repository.NewBankAccountRepository(db)
	transactionRepo := repository.NewBankTransactionRepository(db)
	ledgerRepo := repository.NewLedgerEntryRepository(db)
	matchStateRepo := repository.NewMatchStateRepository(db)

	reconService := service.NewService(
		accountRepo,
		transactionRepo,
		ledgerRepo,
		matchStateRepo,
		matchStateRepo,
	)

	reconHandler := handler.NewReconciliationHandler(reconService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	recon := api.Group("/reconciliation")
	recon.POST("/run", reconHandler.Run)
	recon.GET("/summary", reconHandler.Summary)
	recon.GET("/unmatched", reconHandler.Unmatched)

	tx := api.Group("/transactions")
	tx.POST("/:id/match", reconHandler.ManualMatch)
	tx.POST("/:id/unmatch", reconHandler.Unmatch)
	tx.GET("/:id/audit", reconHandler.Audit)
}
