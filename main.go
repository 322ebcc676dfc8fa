package main

import (
	"log"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"quotelens/collections"
	"quotelens/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Serve static files from ./static
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Upload & import ──────────────────────────────────────
		se.Router.GET("/upload", handlers.HandleUploadPage(app))
		se.Router.POST("/uploads", handlers.HandleUploadValidate(app))
		se.Router.POST("/uploads/commit", handlers.HandleUploadCommit(app))
		se.Router.POST("/uploads/errors", handlers.HandleUploadErrorReport(app))

		// ── Analytics dashboards ─────────────────────────────────
		se.Router.GET("/uploads/{uploadId}/analytics", handlers.HandleClientAnalytics(app))
		se.Router.GET("/uploads/{uploadId}/companies", handlers.HandleCompanyAnalytics(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/uploads/{uploadId}/export/csv", handlers.HandleExportCSV(app))
		se.Router.GET("/uploads/{uploadId}/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/uploads/{uploadId}/export/pdf", handlers.HandleExportPDF(app))

		// Home: jump to the latest upload's dashboard
		se.Router.GET("/", handlers.HandleHome(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
