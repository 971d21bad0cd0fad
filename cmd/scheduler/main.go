package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnishMulay/scatterstore/internal/chunk_queue"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/config"
	"github.com/AnishMulay/scatterstore/internal/file_service"
	"github.com/AnishMulay/scatterstore/internal/gateway"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/metadata_service"
	"github.com/AnishMulay/scatterstore/internal/placement_service"
	"github.com/AnishMulay/scatterstore/internal/server"
	"github.com/AnishMulay/scatterstore/internal/worker_registry"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadSchedulerConfig("config/scheduler.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ls := log_service.NewStdoutLogService("scheduler")

	var ms metadata_service.MetadataService
	if cfg.DatabaseURL != "" {
		pg, err := metadata_service.NewPostgresMetadataService(context.Background(), cfg.DatabaseURL, ls)
		if err != nil {
			log.Fatalf("failed to connect to metadata database: %v", err)
		}
		defer pg.Close()
		ms = pg
	} else {
		ls.Warn(log_service.LogEvent{Message: "DATABASE_URL not set, using in-memory metadata"})
		ms = metadata_service.NewInMemoryMetadataService()
	}

	queue, err := chunk_queue.NewAMQPChunkQueue(cfg.BrokerURL, ls)
	if err != nil {
		log.Fatalf("failed to connect to broker: %v", err)
	}

	comm := communication.NewGRPCCommunicator(cfg.RPCAddress(), ls)
	registry := worker_registry.NewInMemoryWorkerRegistry(cfg.LivenessTimeout, ls)
	placement := placement_service.NewRoundRobinPlacementService(registry, ms, ls)
	fs := file_service.NewDispersedFileService(ms, queue, comm, ls, file_service.DefaultChunkSize, "scheduler")

	cors := gateway.DefaultCORSConfig()
	cors.AllowCredentials = cfg.CORSAllowCredentials
	gw := gateway.NewHTTPGateway(cfg.HTTPAddress(), fs, registry, ls, cors)

	srv := server.NewSchedulerServer(comm, registry, placement, gw, ls, cfg.ReaperPeriod)
	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down scheduler...")
	if err := srv.Stop(); err != nil {
		log.Printf("Error stopping scheduler: %v", err)
	}
	if err := queue.Stop(); err != nil {
		log.Printf("Error closing broker connection: %v", err)
	}
}
