package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"time"

	"github.com/Jataveda/Agriconnect/cache"
	"github.com/Jataveda/Agriconnect/confs"
	"github.com/Jataveda/Agriconnect/handlers"
	httpHandler "github.com/Jataveda/Agriconnect/handlers/http"
	"github.com/Jataveda/Agriconnect/mq"
	"github.com/Jataveda/Agriconnect/repositories"
	"github.com/Jataveda/Agriconnect/services"
	"github.com/Jataveda/Agriconnect/usecases"
	"github.com/Jataveda/Agriconnect/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg       confs.Config
	app       *gin.Engine
	hub       *ws.Hub
	simulator *services.LocationSimulator

	users    *usecases.UserUseCase
	listings *usecases.ListingUseCase
}

// NewServer wires use cases, handlers and routes on top of store. events may
// be nil, in which case nothing is published.
func NewServer(cfg confs.Config, store *repositories.Store, events mq.EventPublisher) *Server {
	if events == nil {
		events = mq.NoopPublisher{}
	}

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(store.Users, usecases.NewPasswordHasher(cfg.PasswordMode))
	listingUseCase := usecases.NewListingUseCase(store)
	orderUseCase := usecases.NewOrderUseCase(store, events, cfg.StrictOrderTransitions)
	messageUseCase := usecases.NewMessageUseCase(store, events)
	statsUseCase := usecases.NewStatsUseCase(store)

	// Realtime: hub, location simulator and the websocket handler feeding both into rooms
	hub := ws.NewHub()
	tracking := cache.NewTrackingCache(cfg.TrackingHistory)
	simulator := services.NewLocationSimulator(orderUseCase, tracking, cfg.TrackingInterval)
	wsHandler := handlers.NewWSHandler(hub, orderUseCase, messageUseCase, tracking)
	messageUseCase.OnMessage(wsHandler.BroadcastMessage)
	simulator.OnLocation(wsHandler.BroadcastLocation)

	s := &Server{
		cfg:       cfg,
		app:       gin.Default(),
		hub:       hub,
		simulator: simulator,
		users:     userUseCase,
		listings:  listingUseCase,
	}

	m := newMetrics(hub, tracking)
	s.app.Use(corsMiddleware(cfg.CORSAllowOrigins), m.middleware())

	s.app.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	s.app.GET("/metrics", gin.WrapH(m.handler()))

	// Initialize handlers
	loginHandler := httpHandler.NewLoginHandler(userUseCase)
	userHandler := httpHandler.NewUserHandler(userUseCase)
	vehicleHandler := httpHandler.NewVehicleHandler(listingUseCase)
	produceHandler := httpHandler.NewProduceHandler(listingUseCase)
	pesticideHandler := httpHandler.NewPesticideHandler(listingUseCase)
	orderHandler := httpHandler.NewOrderHandler(orderUseCase)
	messageHandler := httpHandler.NewMessageHandler(messageUseCase)
	dashboardHandler := httpHandler.NewDashboardHandler(userUseCase, orderUseCase, statsUseCase)
	trackingHandler := handlers.NewTrackingHandler(orderUseCase, tracking)

	api := s.app.Group("/api")
	{
		api.POST("/auth/login", loginHandler.Login)

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetAllUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.GET("/:id/vehicles", vehicleHandler.GetVehiclesByOwner)
			users.GET("/:id/produce", produceHandler.GetProduceByFarmer)
			users.GET("/:id/pesticides", pesticideHandler.GetPesticidesBySupplier)
			users.GET("/:id/orders", orderHandler.GetOrdersByUser)
			users.GET("/:id/orders/export", dashboardHandler.ExportUserOrders)
			users.GET("/:id/stats", dashboardHandler.GetUserStats)
		}

		vehicles := api.Group("/vehicles")
		{
			vehicles.GET("", vehicleHandler.GetAllVehicles)
			vehicles.POST("", vehicleHandler.CreateVehicle)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
		}

		produce := api.Group("/produce")
		{
			produce.GET("", produceHandler.GetAllProduce)
			produce.POST("", produceHandler.CreateProduce)
			produce.GET("/:id", produceHandler.GetProduce)
			produce.PUT("/:id", produceHandler.UpdateProduce)
			produce.DELETE("/:id", produceHandler.DeleteProduce)
		}

		pesticides := api.Group("/pesticides")
		{
			pesticides.GET("", pesticideHandler.GetAllPesticides)
			pesticides.POST("", pesticideHandler.CreatePesticide)
			pesticides.GET("/:id", pesticideHandler.GetPesticide)
			pesticides.PUT("/:id", pesticideHandler.UpdatePesticide)
			pesticides.DELETE("/:id", pesticideHandler.DeletePesticide)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.GetAllOrders) // ?itemId= filters by listing
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
			orders.GET("/:id/messages", messageHandler.GetOrderMessages)
			orders.GET("/:id/tracking", trackingHandler.GetOrderTracking)
		}

		api.POST("/messages", messageHandler.CreateMessage)
		api.GET("/pricing/suggestions", dashboardHandler.GetPriceSuggestions)
		api.GET("/tracking/stats", trackingHandler.GetTrackingStats)
		api.GET("/ws/orders", wsHandler.GetConnectedOrders)
	}

	s.app.GET("/ws/orders/:id", wsHandler.HandleOrderWS)

	return s
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	if len(origins) == 0 || slices.Contains(origins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	return cors.New(config)
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.app
}

// Simulator exposes the location simulator so callers can drive ticks by hand.
func (s *Server) Simulator() *services.LocationSimulator {
	return s.simulator
}

// SeedDemoData creates the demo accounts and fleet if they are missing.
func (s *Server) SeedDemoData(ctx context.Context) error {
	return usecases.SeedDemoData(ctx, s.users, s.listings)
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	if s.cfg.SeedDemoData {
		if err := s.SeedDemoData(ctx); err != nil {
			return err
		}
	}
	s.simulator.Start(ctx)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + s.cfg.Port,
		Handler:           s.app,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Agriconnect API listening on %s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Hijacked websocket connections are not tracked by http.Server.
	s.hub.CloseAll()
	return srv.Shutdown(shutdownCtx)
}
