package main

import (
	"context"
	"log"
	"time"

	"github.com/gridscope/transformer-asset-service/config"
	"github.com/gridscope/transformer-asset-service/http/controller"
	routes "github.com/gridscope/transformer-asset-service/http/route"
	infraPkg "github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/provider"
	"github.com/gridscope/transformer-asset-service/repository"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	repo := repository.InitRepository(infra)
	prov := provider.InitProvider(infra, repo)

	ctrl := controller.NewController(cfg, infra, repo, prov)

	router := routes.SetupRouter(ctrl)

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := infra.Logger.Shutdown(ctx); err != nil {
			log.Printf("Telemetry shutdown: %v", err)
		}
	}()

	addr := ":" + cfg.EnvConfig.Server.Port
	log.Println("HTTP Server started on", addr)
	// Plain log on failure; log.Fatalf would skip the deferred
	// telemetry flush.
	if err := router.Run(addr); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
