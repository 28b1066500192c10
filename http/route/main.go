package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/fileshare-io/fileshare-api/http/controller"
	middlewares "github.com/fileshare-io/fileshare-api/http/middleware"
)

func SetupRouter(ctrl *controller.Controller) *gin.Engine {
	r := gin.Default()
	middles, err := middlewares.NewMiddlewares(ctrl)
	if err != nil {
		panic(err)
	}

	r.Use(middles.TraceMiddleware)
	r.Use(middles.CORSMiddleware)

	r.GET("/health", ctrl.HealthCheck)

	apiRoutes := r.Group("/api")
	{
		// Public: anyone with the link can resolve a file
		apiRoutes.GET("/file", ctrl.GetFile)

		authed := apiRoutes.Group("")
		{
			authed.Use(middles.AuthMiddleware)

			authed.POST("/upload", ctrl.UploadFile)
			authed.GET("/files", ctrl.ListFiles)
			authed.DELETE("/delete", ctrl.DeleteFile)
		}
	}
	return r
}
