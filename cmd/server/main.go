package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hospital-ops-backend/internal/config"
	"hospital-ops-backend/internal/database"
	"hospital-ops-backend/internal/handler"
	"hospital-ops-backend/internal/middleware"
	"hospital-ops-backend/internal/realtime"
	"hospital-ops-backend/internal/repository"
	"hospital-ops-backend/internal/service"
	"hospital-ops-backend/internal/state"
	"hospital-ops-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log.Println("Configuration loaded successfully")

	// 2. Initialize JWT utilities with config
	utils.InitJWT(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 3. Initialize database connection (optional, falls back to demo mode)
	var (
		userRepo        *repository.UserRepository
		auditRepo       *repository.AuditRepository
		patientRepo     *repository.PatientRepository
		bedRepo         *repository.BedRepository
		staffRepo       *repository.StaffRepository
		inventoryRepo   *repository.InventoryRepository
		appointmentRepo *repository.AppointmentRepository
	)

	if cfg.Database.Enabled {
		db, err := database.Connect(cfg)
		if err != nil {
			log.Printf("Warning: database unavailable, running in offline demo mode: %v", err)
		} else {
			userRepo = repository.NewUserRepo(db)
			auditRepo = repository.NewAuditRepo(db)
			patientRepo = repository.NewPatientRepo(db)
			bedRepo = repository.NewBedRepo(db)
			staffRepo = repository.NewStaffRepo(db)
			inventoryRepo = repository.NewInventoryRepo(db)
			appointmentRepo = repository.NewAppointmentRepo(db)
		}
	} else {
		log.Println("No database configured, running in offline demo mode")
	}

	// 4. Initialize the in-memory store
	store := state.NewStore(nil)
	store.Replace(state.DemoState())
	if patientRepo != nil {
		seedFromDatabase(store, patientRepo, bedRepo, staffRepo, inventoryRepo, appointmentRepo)
	}

	// 5. Initialize services
	hospitalService := service.NewHospitalService(store, patientRepo, bedRepo, inventoryRepo, auditRepo)
	staffingService := service.NewStaffingService(store, staffRepo, auditRepo)
	inventoryService := service.NewInventoryService(store, inventoryRepo)
	appointmentService := service.NewAppointmentService(store, appointmentRepo)
	advisoryService := service.NewAdvisoryService(cfg.Advisory, appointmentService)
	hub := realtime.NewHub()
	workerService := service.NewWorkerService(store, patientRepo, bedRepo, staffRepo, inventoryRepo, appointmentRepo, hub)

	var authService *service.AuthService
	if userRepo != nil {
		authService = service.NewAuthService(userRepo, auditRepo)
	}

	// 6. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()

	// Apply CORS middleware
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	hospitalHandler := handler.NewHospitalHandler(hospitalService)
	staffingHandler := handler.NewStaffingHandler(staffingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, hospitalService)
	advisoryHandler := handler.NewAdvisoryHandler(advisoryService, hospitalService, staffingService, inventoryService)

	// 10. Define routes
	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":   "healthy",
			"service":  "hospital-ops-backend",
			"online":   patientRepo != nil,
			"advisory": advisoryService.Available(),
		})
	})

	// Auth routes (public, only available with a database)
	if authService != nil {
		authHandler := handler.NewAuthHandler(authService)
		auth := r.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.POST("/logout", authHandler.Logout)
		}
	}

	// Realtime change feed
	r.GET("/ws", func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	})

	// Operations routes
	api := r.Group("/api")
	if authService != nil {
		api.Use(middleware.AuthMiddleware())
	}
	{
		api.GET("/state", hospitalHandler.GetState)

		api.POST("/patients", hospitalHandler.CreatePatient)
		api.POST("/patients/:id/admit", hospitalHandler.AdmitPatient)
		api.GET("/patients/:id/suggest-bed", hospitalHandler.SuggestBed)
		api.POST("/patients/:id/assign-staff", hospitalHandler.AssignStaff)
		api.POST("/patients/:id/treatments", hospitalHandler.RecordTreatment)
		api.GET("/patients/:id/risk", advisoryHandler.PredictRisk)

		api.GET("/beds/matches", hospitalHandler.ClassifyBeds)
		api.POST("/beds", hospitalHandler.CreateBed)
		api.POST("/beds/:id/reserve", hospitalHandler.ToggleReservation)

		api.POST("/staff", staffingHandler.CreateStaff)
		api.PUT("/staff/:id", staffingHandler.UpdateStaff)
		api.GET("/staff/at-risk", staffingHandler.GetAtRiskStaff)

		api.POST("/inventory", inventoryHandler.CreateItem)
		api.PUT("/inventory/:id", inventoryHandler.UpdateItem)
		api.GET("/inventory/low-stock", inventoryHandler.GetLowStock)
		api.GET("/inventory/reorder", inventoryHandler.GetReorderSuggestions)

		api.GET("/appointments", appointmentHandler.GetAppointments)
		api.POST("/appointments", appointmentHandler.BookAppointment)
		api.PUT("/appointments/:id", appointmentHandler.UpdateAppointment)
		api.POST("/appointments/:id/toggle", appointmentHandler.ToggleAppointmentStatus)

		api.POST("/advisory/triage", advisoryHandler.AnalyzeTriage)
		api.POST("/advisory/summarize", advisoryHandler.SummarizeDocument)
		api.GET("/advisory/report", advisoryHandler.GenerateReport)
		api.POST("/advisory/surge", advisoryHandler.GenerateSurge)
		api.GET("/advisory/forecast", advisoryHandler.GenerateForecast)
		api.GET("/advisory/balance", advisoryHandler.BalanceStaffLoad)
		api.GET("/advisory/reorder", advisoryHandler.SuggestReorder)
		api.POST("/advisory/chat", advisoryHandler.Chat)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel background worker context
	cancel()
	log.Println("Server exited")
}

// seedFromDatabase replaces the demo snapshot with the database contents.
// Tables that fail to load keep their demo values.
func seedFromDatabase(
	store *state.Store,
	patientRepo *repository.PatientRepository,
	bedRepo *repository.BedRepository,
	staffRepo *repository.StaffRepository,
	inventoryRepo *repository.InventoryRepository,
	appointmentRepo *repository.AppointmentRepository,
) {
	snap := store.Snapshot()

	if patients, err := patientRepo.GetAllPatients(); err != nil {
		log.Printf("Warning: failed to load patients, keeping demo data: %v", err)
	} else {
		snap.Patients = patients
	}
	if beds, err := bedRepo.GetAllBeds(); err != nil {
		log.Printf("Warning: failed to load beds, keeping demo data: %v", err)
	} else if len(beds) > 0 {
		snap.Beds = beds
	}
	if staff, err := staffRepo.GetAllStaff(); err != nil {
		log.Printf("Warning: failed to load staff, keeping demo data: %v", err)
	} else if len(staff) > 0 {
		snap.Staff = staff
	}
	if items, err := inventoryRepo.GetAllItems(); err != nil {
		log.Printf("Warning: failed to load inventory, keeping demo data: %v", err)
	} else if len(items) > 0 {
		snap.Inventory = items
	}
	if appts, err := appointmentRepo.GetAllAppointments(); err != nil {
		log.Printf("Warning: failed to load appointments, keeping demo data: %v", err)
	} else {
		snap.Appointments = appts
	}

	store.Replace(snap)
	log.Println("Snapshot seeded from database")
}
