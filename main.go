package main

import (
	"log"
	"os"

	"github.com/COMFACA/Creditos-Backend/src/db"
	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/COMFACA/Creditos-Backend/src/routes"
	"github.com/COMFACA/Creditos-Backend/src/seed"
	"github.com/COMFACA/Creditos-Backend/src/services"
	"github.com/gin-gonic/gin"
)

func main() {

	// Database connection
	db, err := db.Connect()
	if err != nil {
		log.Fatalf("Error connecting to database: %v\n", err)
	}

	// Auto-migrate models
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.LineaCredito{},
		&models.EmpresaConvenio{},
		&models.Postulacion{},
		&models.SolicitudCredito{},
		&models.SolicitudSolicitante{},
		&models.SolicitudDocumento{},
		&models.FirmanteSolicitud{},
		&models.SolicitudTimeline{},
		&models.PdfGenerado{},
		&models.ProcesoFirmado{},
		&models.NumeroSolicitudSecuencia{},
	); err != nil {
		log.Fatalf("Error during auto-migration: %v\n", err)
	}

	// Seed initial data
	seed.Seed(db)

	// Port and host setup
	host := os.Getenv("SERVER_HOST")
	if host == "" {
		host = ":8080"
	}

	// JWT secret setup
	middleware.SetSecretKey(os.Getenv("JWT_SECRET"))

	// Gin router setup
	router := gin.Default()
	router.Use(middleware.SetupCORS())

	// Services setup
	userService := services.NewUserService(db)
	lineaService := services.NewLineaCreditoService(db)
	convenioService := services.NewConvenioService(db)
	trabajadorService := services.NewTrabajadorService(
		os.Getenv("TRABAJADORES_API_URL"), os.Getenv("TRABAJADORES_API_TOKEN"))
	validacionService := services.NewConvenioValidationService(db, trabajadorService)
	postulacionService := services.NewPostulacionService(db, validacionService)
	numeroService := services.NewNumeroSolicitudService(db)
	solicitudService := services.NewSolicitudService(db, numeroService)
	documentoService := services.NewDocumentoService(db, solicitudService, os.Getenv("STORAGE_DIR"))
	generadorService := services.NewGeneradorPdfService(
		os.Getenv("PDF_GENERATOR_URL"), os.Getenv("PDF_GENERATOR_USER"), os.Getenv("PDF_GENERATOR_PASSWORD"))
	pdfService := services.NewSolicitudPdfService(db, solicitudService, generadorService, os.Getenv("PDF_OUTPUT_DIR"))
	firmaPlusService := services.NewFirmaPlusService(
		os.Getenv("FIRMA_PLUS_API_URL"), os.Getenv("FIRMA_PLUS_API_KEY"), os.Getenv("FIRMA_PLUS_CALLBACK_URL"))
	firmaService := services.NewFirmaDigitalService(db, solicitudService, firmaPlusService,
		os.Getenv("FIRMA_PLUS_WEBHOOK_TOKEN"), os.Getenv("FIRMADOS_DIR"))

	// Routes setup
	routes.SetupUserRoutes(router, userService)
	routes.SetupLineaCreditoRoutes(router, lineaService)
	routes.SetupConvenioRoutes(router, convenioService, validacionService)
	routes.SetupTrabajadorRoutes(router, trabajadorService)
	routes.SetupPostulacionRoutes(router, postulacionService, solicitudService)
	routes.SetupSolicitudRoutes(router, solicitudService)
	routes.SetupEstadoRoutes(router)
	routes.SetupDocumentoRoutes(router, documentoService)
	routes.SetupPdfRoutes(router, pdfService, generadorService)
	routes.SetupFirmaRoutes(router, firmaService, firmaPlusService)

	router.GET("/", func(c *gin.Context) {
		c.String(200, "Comfaca Creditos API")
	})

	// Server run
	if err := router.Run(host); err != nil {
		log.Fatalf("Error starting server on %s: %v\n", host, err)
	}
}
