package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/gridscope/transformer-asset-service/http/controller"
	middlewares "github.com/gridscope/transformer-asset-service/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.CORSMiddleware)

	// Stored blobs are served straight from the upload directory.
	r.Static(ctrl.Infra.Storage.PublicPrefix, ctrl.Infra.Storage.Directory)

	apiRoutes := r.Group("/api/v1")
	{
		apiRoutes.Use(middles.AuthMiddleware)

		recordRoutes := apiRoutes.Group("/transformer-records")
		{
			recordRoutes.GET("/", ctrl.ListTransformerRecords)
			recordRoutes.GET("/:id", ctrl.GetTransformerRecord)
			recordRoutes.POST("/", middles.AdminMiddleware, ctrl.CreateTransformerRecord)
			recordRoutes.PUT("/:id", middles.AdminMiddleware, ctrl.UpdateTransformerRecord)
			recordRoutes.DELETE("/:id", middles.AdminMiddleware, ctrl.DeleteTransformerRecord)
			recordRoutes.DELETE("/images/:image_id", middles.AdminMiddleware, ctrl.DeleteImage)
		}

		inspectionRoutes := apiRoutes.Group("/inspections")
		{
			inspectionRoutes.GET("/transformer/:record_id", ctrl.GetInspectionsByTransformerRecord)
			inspectionRoutes.GET("/:id", ctrl.GetInspection)
			inspectionRoutes.POST("/", middles.AdminMiddleware, ctrl.CreateInspection)
			inspectionRoutes.POST("/:id/images", middles.AdminMiddleware, ctrl.AppendInspectionImage)
			inspectionRoutes.DELETE("/:id", middles.AdminMiddleware, ctrl.DeleteInspection)
		}
	}

	return r
}
