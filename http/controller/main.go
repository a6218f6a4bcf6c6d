package controller

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gridscope/transformer-asset-service/config"
	"github.com/gridscope/transformer-asset-service/infra"
	"github.com/gridscope/transformer-asset-service/provider"
	"github.com/gridscope/transformer-asset-service/repository"
	"github.com/gridscope/transformer-asset-service/utils"
)

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Repository *repository.Repository
	Provider   *provider.Provider
}

func NewController(config *config.Config, infra *infra.Infra, repo *repository.Repository, prov *provider.Provider) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	if prov == nil {
		panic("Failed to initialize Provider")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Repository: repo,
		Provider:   prov,
	}
}

// respondError maps provider error kinds to HTTP responses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, provider.ErrValidation):
		utils.JSON400(c, err.Error())
	case errors.Is(err, provider.ErrNotFound):
		utils.JSON404(c, err.Error())
	case errors.Is(err, provider.ErrForbidden):
		utils.JSON403(c, err.Error())
	default:
		utils.JSON500(c, err.Error())
	}
}
