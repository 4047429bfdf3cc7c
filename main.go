package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/Jataveda/Agriconnect/confs"
	"github.com/Jataveda/Agriconnect/db"
	"github.com/Jataveda/Agriconnect/mq"
	"github.com/Jataveda/Agriconnect/obs"
	"github.com/Jataveda/Agriconnect/repositories"
	"github.com/Jataveda/Agriconnect/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, "agriconnect", cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown: %v", err)
		}
	}()

	// pick the store
	var store *repositories.Store
	if cfg.StoreDriver == confs.DriverMemory {
		log.Println("Using in-memory store; data is lost on restart")
		store = repositories.NewMemoryStore()
	} else {
		database, err := db.Connect(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer database.Close()
		store = repositories.NewSQLStore(database)
	}

	// event publisher
	var events mq.EventPublisher = mq.NoopPublisher{}
	if cfg.AMQPURL != "" {
		publisher, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		events = publisher
		log.Printf("Publishing events to exchange %s", cfg.AMQPExchange)
	}
	defer events.Close()

	// run server
	srv := server.NewServer(cfg, store, events)
	if err := srv.Start(ctx); err != nil {
		log.Printf("Server error: %v", err)
	}
}
