package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AnishMulay/scatterstore/internal/chunk_queue"
	"github.com/AnishMulay/scatterstore/internal/chunk_service"
	"github.com/AnishMulay/scatterstore/internal/communication"
	"github.com/AnishMulay/scatterstore/internal/config"
	"github.com/AnishMulay/scatterstore/internal/consumer_service"
	"github.com/AnishMulay/scatterstore/internal/heartbeat_service"
	"github.com/AnishMulay/scatterstore/internal/log_service"
	"github.com/AnishMulay/scatterstore/internal/server"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	cfg, err := config.LoadWorkerConfig("config/worker.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ls := log_service.NewLocalDiscLogService(cfg.LogDir, cfg.WorkerID)

	queue, err := chunk_queue.NewAMQPChunkQueue(cfg.BrokerURL, ls)
	if err != nil {
		log.Fatalf("failed to connect to broker: %v", err)
	}

	comm := communication.NewGRPCCommunicator(cfg.RPCAddress(), ls)
	cs := chunk_service.NewLocalDiscChunkService(cfg.StorageRoot, cfg.WorkerID, ls)
	consumer := consumer_service.NewChunkTaskConsumer(queue, comm, cs, ls, cfg.WorkerID, cfg.SchedulerAddress())
	hb := heartbeat_service.NewHeartbeatService(comm, ls, cfg.WorkerID, cfg.Address(), cfg.SchedulerAddress(), cfg.HeartbeatPeriod)

	srv := server.NewWorkerServer(comm, cs, consumer, hb, ls, cfg.WorkerID)
	if err := srv.Start(); err != nil {
		log.Fatalf("failed to start worker: %v", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	log.Println("Shutting down worker...")
	if err := srv.Stop(); err != nil {
		log.Printf("Error stopping worker: %v", err)
	}
}
