package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/gridscope/transformer-asset-service/http/controller"
)

type Middlewares struct {
	CORSMiddleware  gin.HandlerFunc
	AuthMiddleware  gin.HandlerFunc
	AdminMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	auth := AuthMiddleware(ctrl.Config.EnvConfig)
	admin := AdminMiddleware()

	return &Middlewares{
		CORSMiddleware:  cors,
		AuthMiddleware:  auth,
		AdminMiddleware: admin,
	}, nil
}
