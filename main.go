package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/fileshare-io/fileshare-api/config"
	"github.com/fileshare-io/fileshare-api/http/controller"
	routes "github.com/fileshare-io/fileshare-api/http/route"
	infraPkg "github.com/fileshare-io/fileshare-api/infra"
	"github.com/fileshare-io/fileshare-api/repository"
	"github.com/fileshare-io/fileshare-api/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	infra := infraPkg.InitInfra(cfg)
	defer infra.Shutdown(context.Background())

	repo := repository.InitRepository(infra)

	files := service.NewFileService(
		repo.FileRepo,
		infra.Minio,
		infra.Produce.CleanupService,
		infra.Logger.Logger,
		cfg.EnvConfig.BaseURL,
	)

	ctrl := controller.NewController(cfg, infra, repo, files)

	router := routes.SetupRouter(ctrl)

	log.Println("HTTP Server started on :8080")
	if err := router.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
