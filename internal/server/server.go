package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/matchdaylabs/tribuna/config"
	"github.com/matchdaylabs/tribuna/internal/gateway"
	"github.com/matchdaylabs/tribuna/internal/handlers"
	"github.com/matchdaylabs/tribuna/internal/middleware"
	"github.com/matchdaylabs/tribuna/internal/monitoring"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	gatewayCfg, err := config.LoadGatewayConfig()
	if err != nil {
		return fmt.Errorf("failed to load gateway config: %v", err)
	}

	gatewayClient, err := config.InitGatewayClient(gatewayCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize payment gateway: %v", err)
	}

	r := gin.Default()

	setupRoutes(r, db, gatewayClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func setupRoutes(r *gin.Engine, db *gorm.DB, gatewayClient gateway.Client) {
	r.Use(middleware.DatabaseMiddleware(db))
	r.Use(middleware.GatewayMiddleware(gatewayClient))
	r.Use(monitoring.HTTPMetrics())

	r.GET("/metrics", gin.WrapH(monitoring.Handler()))
	r.Static("/uploads", "./uploads")

	public := r.Group("/v1")
	{
		public.POST("/register", handlers.Register)
		public.POST("/login", handlers.Login)

		public.POST("/payments/webhook", handlers.PaymentWebhook)

		public.GET("/clubs", handlers.ListClubs)
		public.GET("/clubs/:id", handlers.GetClub)

		public.GET("/stadiums", handlers.ListStadiums)
		public.GET("/stadiums/:id", handlers.GetStadium)
		public.GET("/stadiums/:id/sectors", handlers.ListSectors)
		public.GET("/stadiums/:id/sectors/:number", handlers.GetSector)

		public.GET("/events", handlers.ListEvents)
		public.GET("/events/:id", handlers.GetEvent)
		public.GET("/events/:id/prices", handlers.ListPrices)
		public.GET("/events/:id/prices/:sector", handlers.GetPrice)

		public.GET("/ticket-types", handlers.ListTicketTypes)
		public.GET("/ticket-types/:id", handlers.GetTicketType)
	}

	protected := r.Group("/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	{
		protected.GET("/profile", handlers.GetProfile)

		protected.POST("/memberships", handlers.CreateMembership)

		protected.POST("/payments/checkout", handlers.CreateCheckout)
		protected.POST("/payments/card", handlers.CreateCardPurchase)
		protected.GET("/purchases/:id/tickets", handlers.ListPurchaseTickets)
	}

	admin := r.Group("/v1")
	admin.Use(middleware.JWTAuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/clubs", handlers.CreateClub)
		admin.PUT("/clubs/:id", handlers.UpdateClub)
		admin.DELETE("/clubs/:id", handlers.DeleteClub)

		admin.POST("/stadiums", handlers.CreateStadium)
		admin.PUT("/stadiums/:id", handlers.UpdateStadium)
		admin.DELETE("/stadiums/:id", handlers.DeleteStadium)

		admin.POST("/stadiums/:id/sectors", handlers.CreateSector)
		admin.PUT("/stadiums/:id/sectors/:number", handlers.UpdateSector)
		admin.DELETE("/stadiums/:id/sectors/:number", handlers.DeleteSector)

		admin.POST("/events", handlers.CreateEvent)
		admin.PUT("/events/:id", handlers.UpdateEvent)
		admin.DELETE("/events/:id", handlers.DeleteEvent)

		admin.POST("/events/:id/prices", handlers.CreatePrice)
		admin.PUT("/events/:id/prices/:sector", handlers.UpdatePrice)
		admin.DELETE("/events/:id/prices/:sector", handlers.DeletePrice)

		admin.POST("/ticket-types", handlers.CreateTicketType)
		admin.PUT("/ticket-types/:id", handlers.UpdateTicketType)
		admin.DELETE("/ticket-types/:id", handlers.DeleteTicketType)

		admin.GET("/users", handlers.ListUsers)
		admin.GET("/users/:id", handlers.GetUser)
		admin.PUT("/users/:id", handlers.UpdateUser)
		admin.DELETE("/users/:id", handlers.DeleteUser)

		admin.GET("/memberships", handlers.ListMemberships)
		admin.GET("/memberships/:userId/:clubId", handlers.GetMembership)
		admin.PUT("/memberships/:userId/:clubId", handlers.UpdateMembership)
		admin.DELETE("/memberships/:userId/:clubId", handlers.DeleteMembership)

		admin.POST("/tickets/:id/redeem", handlers.RedeemTicket)
	}
}
