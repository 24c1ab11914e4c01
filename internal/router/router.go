package router

import (
	"time"

	"poinku/config"
	"poinku/internal/handler"
	"poinku/internal/middleware"
	"poinku/internal/repository"
	"poinku/internal/service"
	"poinku/internal/worker"
	"poinku/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the process-level singletons the router wires handlers to.
type Deps struct {
	YouTube handler.ChatResolver
	Manager *worker.Manager
	Hub     *ws.Hub
}

func Setup(cfg *config.Config, db *gorm.DB, deps Deps) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	raffleRepo := repository.NewRaffleRepository(db)
	claimRepo := repository.NewClaimCodeRepository(db)
	tipRepo := repository.NewTipRepository(db)
	streamRepo := repository.NewLivestreamRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// Services
	settleSvc := service.NewSettlementService(db, deps.Hub)
	authSvc := service.NewAuthService(cfg, db, userRepo)
	taskSvc := service.NewTaskService(db, settleSvc, auditRepo)
	raffleSvc := service.NewRaffleService(db, settleSvc, auditRepo, cfg.Rewards.TicketPrice)
	claimSvc := service.NewClaimService(db, settleSvc)
	tipSvc := service.NewTipService(db, settleSvc)
	historySvc := service.NewHistoryService(db)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, auditRepo)
	oauthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo, walletRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, taskSvc)
	verificationHandler := handler.NewVerificationHandler(taskRepo, taskSvc)
	raffleHandler := handler.NewRaffleHandler(raffleRepo, raffleSvc)
	claimHandler := handler.NewClaimHandler(claimRepo, claimSvc)
	tipHandler := handler.NewTipHandler(tipRepo, tipSvc)
	historyHandler := handler.NewHistoryHandler(historySvc, ledgerRepo)
	adminHandler := handler.NewAdminHandler(adminRepo, userRepo, walletRepo, auditRepo, settleSvc)
	streamHandler := handler.NewLivestreamHandler(streamRepo, auditRepo, deps.YouTube, deps.Manager)

	authMw := middleware.AuthRequired(&cfg.JWT)
	activeMw := middleware.NotBanned(userRepo)
	adminMw := middleware.AdminRequired()

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.GET("/google", oauthHandler.Redirect)
			authGroup.GET("/google/callback", oauthHandler.Callback)
			authGroup.POST("/google/link", authMw, activeMw, oauthHandler.Link)
		}

		me := api.Group("/me")
		me.Use(authMw, activeMw)
		{
			me.GET("/profile", meHandler.Me)
			me.GET("/points", meHandler.Points)
			me.GET("/wallet/:currency", meHandler.Wallet)
			me.GET("/history", historyHandler.Feed)
			me.GET("/ledger", historyHandler.Ledger)
		}

		user := api.Group("")
		user.Use(authMw, activeMw)
		{
			user.GET("/tasks", taskHandler.List)
			user.POST("/tasks/:id/submit", taskHandler.Submit)
			user.GET("/tasks/:id/verify", taskHandler.Verify)

			user.GET("/raffles", raffleHandler.List)
			user.GET("/raffles/winners", raffleHandler.Winners)
			user.POST("/raffles/exchange", raffleHandler.Exchange)

			user.POST("/claim", claimHandler.Redeem)

			user.GET("/tips", tipHandler.History)
			user.POST("/tips", tipHandler.Send)
		}

		api.GET("/ws/points", ws.UpgradePointsWS(&cfg.JWT, deps.Hub))

		admin := api.Group("/admin")
		admin.Use(authMw, activeMw, adminMw)
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.GET("/users", adminHandler.Users)
			admin.PATCH("/users/:id/ban", adminHandler.Ban)
			admin.PATCH("/users/:id/unban", adminHandler.Unban)
			admin.POST("/users/tip-point", adminHandler.TipPoint)
			admin.GET("/wallets", adminHandler.Wallets)

			admin.GET("/tasks", taskHandler.AdminList)
			admin.POST("/tasks", taskHandler.AdminCreate)
			admin.PUT("/tasks/:id", taskHandler.AdminUpdate)
			admin.DELETE("/tasks/:id", taskHandler.AdminDelete)
			admin.GET("/verifications", verificationHandler.Pending)
			admin.PATCH("/verifications/:id/approve", verificationHandler.Approve)
			admin.PATCH("/verifications/:id/reject", verificationHandler.Reject)

			admin.GET("/raffles", raffleHandler.AdminList)
			admin.POST("/raffles", raffleHandler.AdminCreate)
			admin.DELETE("/raffles/:id", raffleHandler.AdminDelete)
			admin.GET("/raffles/:id/entries", raffleHandler.AdminEntries)
			admin.PATCH("/raffles/:id/winner", raffleHandler.AdminSetWinner)

			admin.GET("/codes", claimHandler.AdminList)
			admin.POST("/codes", claimHandler.AdminCreate)
			admin.DELETE("/codes/:id", claimHandler.AdminDelete)

			admin.GET("/streams", streamHandler.List)
			admin.POST("/streams", streamHandler.Create)
			admin.PATCH("/streams/:id/finish", streamHandler.Finish)
			admin.GET("/worker/status", streamHandler.WorkerStatus)
			admin.POST("/worker/start", streamHandler.WorkerStart)
			admin.POST("/worker/stop", streamHandler.WorkerStop)
		}
	}

	return r
}
