package main

import (
	"fmt"
	"os"

	"dcim/bulk"
	"dcim/cache"
	"dcim/config"
	"dcim/dao/query"
	"dcim/entities"
	"dcim/logutils"
	"dcim/mailer"
	"dcim/schemas"
	"dcim/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Local development keeps secrets in .env; in cluster deployments the
	// file is absent and the ConfigMap mount provides everything.
	_ = godotenv.Load()

	if err := query.InitDB(); err != nil {
		fmt.Println("err init:", err)
		os.Exit(1)
	}

	cfg := config.GetConfig()
	store := cache.New()
	reporter := &mailer.UploadReporter{
		Mailer:     mailer.New(cfg),
		Recipients: cfg.Upload.ReportRecipients,
	}
	pipeline := &bulk.Pipeline{
		Handlers:   entities.DefaultRegistry(),
		Schemas:    schemas.Default(),
		Cache:      store,
		NewSession: query.NewJobSession,
		Report:     reporter,
	}
	service.Init(pipeline, store)

	r := gin.Default()
	api := r.Group("/api/dcim")
	service.RegisterAuth(api)

	protected := api.Group("", service.AuthRequired())
	service.RegisterEntity(protected)
	service.RegisterUpload(protected)

	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logutils.Log.Fatal(err)
	}
}
