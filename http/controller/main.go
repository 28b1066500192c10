package controller

import (
	"github.com/fileshare-io/fileshare-api/config"
	"github.com/fileshare-io/fileshare-api/infra"
	"github.com/fileshare-io/fileshare-api/repository"
	"github.com/fileshare-io/fileshare-api/service"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Files      *service.FileService
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository, files *service.FileService) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	if files == nil {
		panic("Failed to initialize File service")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Files:      files,
	}
}
