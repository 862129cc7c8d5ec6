package main

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wms-platform/yard-service/internal/api/dto"
	"github.com/wms-platform/yard-service/internal/application"
	"github.com/wms-platform/yard-service/internal/domain"
	"github.com/wms-platform/yard-service/internal/events"
	kafkaInfra "github.com/wms-platform/yard-service/internal/infrastructure/kafka"
	mongoRepo "github.com/wms-platform/yard-service/internal/infrastructure/mongodb"
	"github.com/wms-platform/yard-service/pkg/cloudevents"
	"github.com/wms-platform/yard-service/pkg/errors"
	"github.com/wms-platform/yard-service/pkg/kafka"
	"github.com/wms-platform/yard-service/pkg/logging"
	"github.com/wms-platform/yard-service/pkg/metrics"
	"github.com/wms-platform/yard-service/pkg/middleware"
	"github.com/wms-platform/yard-service/pkg/mongodb"
	"github.com/wms-platform/yard-service/pkg/resilience"
)

const serviceName = "yard-service"

func main() {
	// Setup logger
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting yard-service API")

	// Load configuration
	config := loadConfig()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	warehouseLocation, err := time.LoadLocation(config.WarehouseTimezone)
	if err != nil {
		logger.WithError(err).Error("Invalid warehouse timezone", "timezone", config.WarehouseTimezone)
		os.Exit(1)
	}

	// Initialize Prometheus metrics
	m := metrics.New(metrics.DefaultConfig(serviceName))
	logger.Info("Metrics initialized")

	// Initialize MongoDB
	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer mongoClient.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(config.Kafka)
	defer kafkaProducer.Close()
	logger.Info("Kafka producer initialized", "brokers", config.Kafka.Brokers)

	// Initialize CloudEvents factory
	eventFactory := cloudevents.NewEventFactory("/yard-service")

	// Initialize repositories
	appointmentRepo := mongoRepo.NewAppointmentRepository(mongoClient)
	dockRepo := mongoRepo.NewDockRepository(mongoClient)
	spotRepo := mongoRepo.NewYardSpotRepository(mongoClient)
	manifestRepo := mongoRepo.NewManifestRepository(mongoClient)
	receivingRepo := mongoRepo.NewReceivingRepository(mongoClient)
	inventoryRepo := mongoRepo.NewInventoryRepository(mongoClient)
	unitOfWork := mongoRepo.NewUnitOfWork(mongoClient)

	// Initialize event dispatcher with the Kafka publisher as a wildcard
	// subscriber, so every post-commit event also leaves the process
	dispatcher := events.NewDispatcher(logger)
	breaker := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("kafka-publisher"), logger.Logger)
	kafkaPublisher := kafkaInfra.NewEventPublisher(kafkaProducer, eventFactory, breaker, m, logger)
	dispatcher.Register("*", kafkaPublisher.Handle)

	// Initialize application services
	schedulingService := application.NewSchedulingService(appointmentRepo, manifestRepo, unitOfWork, dispatcher, m, logger)
	yardService := application.NewYardService(appointmentRepo, dockRepo, spotRepo, unitOfWork, dispatcher, m, logger, warehouseLocation)
	materializationService := application.NewMaterializationService(receivingRepo, inventoryRepo, unitOfWork, dispatcher, m, logger)

	// Start the pallet consumer that drives inventory materialization
	kafkaConsumer := kafka.NewConsumer(config.Kafka, logger.Logger)
	defer kafkaConsumer.Close()
	palletConsumer := kafkaInfra.NewPalletConsumer(kafkaConsumer, materializationService, m, logger)
	go func() {
		if err := palletConsumer.Start(ctx); err != nil && !stderrors.Is(err, context.Canceled) {
			logger.WithError(err).Error("Pallet consumer stopped")
		}
	}()
	logger.Info("Pallet consumer started", "topic", kafka.Topics.ReceivingEvents)

	// Setup Gin router with middleware
	router := gin.New()
	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	// Health check endpoints
	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return mongoClient.HealthCheck(ctx)
	}))

	// Metrics endpoint
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	// API v1 routes
	appointments := router.Group("/api/v1/appointments")
	{
		appointments.POST("", scheduleAppointmentHandler(schedulingService, logger))
		appointments.GET("/:appointmentId", getAppointmentHandler(schedulingService, logger))
		appointments.POST("/:appointmentId/cancel", cancelAppointmentHandler(schedulingService, logger))
		appointments.PUT("/:appointmentId/reschedule", rescheduleAppointmentHandler(schedulingService, logger))
		appointments.POST("/:appointmentId/manifest", attachManifestHandler(schedulingService, logger))
		appointments.GET("/:appointmentId/manifest", getManifestHandler(schedulingService, logger))
	}

	docks := router.Group("/api/v1/docks")
	{
		docks.GET("/:dockId", getDockHandler(yardService, logger))
		docks.GET("/:dockId/appointments", listDockAppointmentsHandler(schedulingService, logger))
		docks.GET("/:dockId/availability", slotAvailabilityHandler(schedulingService, logger))
	}

	yard := router.Group("/api/v1/yard")
	{
		yard.POST("/check-in", checkInTruckHandler(yardService, logger))
		yard.POST("/assign-dock", assignToDockHandler(yardService, logger))
		yard.GET("/spots", listAvailableSpotsHandler(yardService, logger))
		yard.GET("/spots/:spotId", getSpotHandler(yardService, logger))
		yard.POST("/spots/:spotId/vacate", vacateSpotHandler(yardService, logger))
	}

	router.GET("/api/v1/inventory/pallets/:palletId", getPalletInventoryHandler(materializationService, logger))

	// Start server
	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr        string
	WarehouseTimezone string
	MongoDB           *mongodb.Config
	Kafka             *kafka.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr:        getEnv("SERVER_ADDR", ":8020"),
		WarehouseTimezone: getEnv("WAREHOUSE_TIMEZONE", "UTC"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "yard_db"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
		Kafka: &kafka.Config{
			Brokers:       []string{getEnv("KAFKA_BROKERS", "localhost:9092")},
			ConsumerGroup: "yard-service",
			ClientID:      "yard-service",
			BatchSize:     100,
			BatchTimeout:  10 * time.Millisecond,
			RequiredAcks:  -1,
			MinBytes:      1,
			MaxBytes:      10e6,
			MaxWait:       500 * time.Millisecond,
			CommitTimeout: 5 * time.Second,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// actorFrom pulls the actor identity propagated by the middleware; callers
// that send none act as the system
func actorFrom(c *gin.Context) application.Actor {
	return application.Actor{ID: middleware.GetActorID(c)}.OrSystem()
}

// toAppError maps domain sentinel errors to HTTP-facing errors
func toAppError(err error) *errors.AppError {
	switch {
	case stderrors.Is(err, domain.ErrAppointmentNotFound):
		return errors.ErrNotFound("appointment")
	case stderrors.Is(err, domain.ErrDockNotFound):
		return errors.ErrNotFound("dock")
	case stderrors.Is(err, domain.ErrYardSpotNotFound):
		return errors.ErrNotFound("yard spot")
	case stderrors.Is(err, domain.ErrManifestNotFound):
		return errors.ErrNotFound("manifest")
	case stderrors.Is(err, domain.ErrReceivingOrderNotFound):
		return errors.ErrNotFound("receiving order")
	case stderrors.Is(err, domain.ErrPalletNotFound):
		return errors.ErrNotFound("pallet")
	case stderrors.Is(err, domain.ErrInventoryNotFound):
		return errors.ErrNotFound("inventory record")
	case stderrors.Is(err, domain.ErrSlotUnavailable):
		return errors.ErrConflict("dock slot is already booked for this window")
	case stderrors.Is(err, domain.ErrSpotUnavailable):
		return errors.ErrConflict("yard spot is not available")
	case stderrors.Is(err, domain.ErrDockOccupied):
		return errors.ErrConflict("dock is occupied by another appointment")
	case stderrors.Is(err, domain.ErrNoScheduledAppointment):
		return errors.NewAppError("NO_APPOINTMENT", "truck has no scheduled appointment today", http.StatusConflict)
	case stderrors.Is(err, domain.ErrInvalidStatusTransition):
		return errors.ErrInvalidTransition(err.Error())
	case stderrors.Is(err, domain.ErrManifestAlreadyAttached):
		return errors.ErrConflict("appointment already has a manifest")
	case stderrors.Is(err, domain.ErrInvalidTimeRange),
		stderrors.Is(err, domain.ErrInvalidAppointmentType),
		stderrors.Is(err, domain.ErrNoManifestLines):
		return errors.ErrBadRequest(err.Error())
	case stderrors.Is(err, domain.ErrMissingAccount):
		return errors.ErrInvariantViolation("receiving order has no billing account")
	default:
		return nil
	}
}

func respondError(responder *middleware.ErrorResponder, err error) {
	if appErr := toAppError(err); appErr != nil {
		responder.RespondWithAppError(appErr)
		return
	}
	if appErr, ok := errors.AsAppError(err); ok {
		responder.RespondWithAppError(appErr)
		return
	}
	responder.RespondInternalError(err)
}

// HTTP Handlers

func scheduleAppointmentHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.ScheduleAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.ScheduleAppointmentCommand{
			AppointmentID: req.AppointmentID,
			DockID:        req.DockID,
			TruckID:       req.TruckID,
			SupplierID:    req.SupplierID,
			AccountID:     req.AccountID,
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
			Type:          req.Type,
		}

		appointment, err := service.ScheduleAppointment(c.Request.Context(), cmd, actorFrom(c))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, toAppointmentResponse(appointment))
	}
}

func getAppointmentHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		appointment, err := service.GetAppointment(c.Request.Context(), c.Param("appointmentId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, toAppointmentResponse(appointment))
	}
}

func cancelAppointmentHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		// Cancellation reason is optional; a missing body is fine
		var req dto.CancelAppointmentRequest
		_ = c.ShouldBindJSON(&req)

		cmd := application.CancelAppointmentCommand{
			AppointmentID: c.Param("appointmentId"),
			Reason:        req.Reason,
		}

		appointment, err := service.CancelAppointment(c.Request.Context(), cmd, actorFrom(c))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, toAppointmentResponse(appointment))
	}
}

func rescheduleAppointmentHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.RescheduleAppointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.RescheduleAppointmentCommand{
			AppointmentID: c.Param("appointmentId"),
			StartTime:     req.StartTime,
			EndTime:       req.EndTime,
		}

		appointment, err := service.RescheduleAppointment(c.Request.Context(), cmd, actorFrom(c))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, toAppointmentResponse(appointment))
	}
}

func attachManifestHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.AttachManifestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.AttachManifestCommand{
			AppointmentID: c.Param("appointmentId"),
		}
		for _, line := range req.Lines {
			cmd.Lines = append(cmd.Lines, application.ManifestLineInput{
				MaterialID:       line.MaterialID,
				Description:      line.Description,
				ExpectedQuantity: line.ExpectedQuantity,
			})
		}

		manifest, err := service.AttachManifest(c.Request.Context(), cmd, actorFrom(c))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusCreated, toManifestResponse(manifest))
	}
}

func getManifestHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		manifest, err := service.GetManifest(c.Request.Context(), c.Param("appointmentId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, toManifestResponse(manifest))
	}
}

func listDockAppointmentsHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		// Default to the next 24 hours
		from := time.Now()
		to := from.Add(24 * time.Hour)

		if fromStr := c.Query("from"); fromStr != "" {
			if parsed, err := time.Parse(time.RFC3339, fromStr); err == nil {
				from = parsed
			}
		}
		if toStr := c.Query("to"); toStr != "" {
			if parsed, err := time.Parse(time.RFC3339, toStr); err == nil {
				to = parsed
			}
		}

		appointments, err := service.ListDockAppointments(c.Request.Context(), c.Param("dockId"), from, to)
		if err != nil {
			respondError(responder, err)
			return
		}

		response := dto.AppointmentListResponse{
			Appointments: make([]dto.AppointmentResponse, len(appointments)),
			Total:        len(appointments),
		}
		for i, a := range appointments {
			response.Appointments[i] = toAppointmentResponse(a)
		}

		c.JSON(http.StatusOK, response)
	}
}

func slotAvailabilityHandler(service *application.SchedulingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		start, err := time.Parse(time.RFC3339, c.Query("start"))
		if err != nil {
			responder.RespondBadRequest("invalid or missing start parameter, expected RFC3339")
			return
		}
		end, err := time.Parse(time.RFC3339, c.Query("end"))
		if err != nil {
			responder.RespondBadRequest("invalid or missing end parameter, expected RFC3339")
			return
		}

		dockID := c.Param("dockId")
		available, err := service.IsSlotAvailable(c.Request.Context(), dockID, start, end)
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.SlotAvailabilityResponse{
			DockID:    dockID,
			StartTime: start,
			EndTime:   end,
			Available: available,
		})
	}
}

func checkInTruckHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.CheckInTruckRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.CheckInTruckCommand{
			TruckID: req.TruckID,
			SpotID:  req.SpotID,
		}

		spotID, err := service.CheckInTruck(c.Request.Context(), cmd, actorFrom(c))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.CheckInResponse{
			TruckID: req.TruckID,
			SpotID:  spotID,
			Status:  string(domain.SpotStatusOccupied),
		})
	}
}

func assignToDockHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var req dto.AssignToDockRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cmd := application.AssignToDockCommand{
			SpotID:        req.SpotID,
			AppointmentID: req.AppointmentID,
		}

		if err := service.AssignToDock(c.Request.Context(), cmd, actorFrom(c)); err != nil {
			respondError(responder, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func listAvailableSpotsHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		spots, err := service.ListAvailableSpots(c.Request.Context(), c.Query("warehouseId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		response := dto.SpotListResponse{
			Spots: make([]dto.SpotResponse, len(spots)),
			Total: len(spots),
		}
		for i, s := range spots {
			response.Spots[i] = toSpotResponse(s)
		}

		c.JSON(http.StatusOK, response)
	}
}

func getSpotHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		spot, err := service.GetSpot(c.Request.Context(), c.Param("spotId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, toSpotResponse(spot))
	}
}

func vacateSpotHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		cmd := application.VacateSpotCommand{SpotID: c.Param("spotId")}
		if err := service.VacateSpot(c.Request.Context(), cmd, actorFrom(c)); err != nil {
			respondError(responder, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

func getDockHandler(service *application.YardService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		dock, err := service.GetDock(c.Request.Context(), c.Param("dockId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		c.JSON(http.StatusOK, dto.DockResponse{
			ID:                   dock.ID.Hex(),
			DockID:               dock.DockID,
			WarehouseID:          dock.WarehouseID,
			CurrentAppointmentID: dock.CurrentAppointmentID,
			Occupied:             dock.IsOccupied(),
			UpdatedAt:            dock.UpdatedAt,
		})
	}
}

func getPalletInventoryHandler(service *application.MaterializationService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		records, err := service.GetPalletInventory(c.Request.Context(), c.Param("palletId"))
		if err != nil {
			respondError(responder, err)
			return
		}

		response := dto.InventoryListResponse{
			Records: make([]dto.InventoryResponse, len(records)),
			Total:   len(records),
		}
		for i, r := range records {
			response.Records[i] = dto.InventoryResponse{
				ID:           r.ID.Hex(),
				InventoryID:  r.InventoryID,
				MaterialID:   r.MaterialID,
				LocationID:   r.LocationID,
				PalletID:     r.PalletID,
				PalletLineID: r.PalletLineID,
				Quantity:     r.Quantity,
				Weight:       r.Weight,
				BatchNumber:  r.BatchNumber,
				ExpiryDate:   r.ExpiryDate,
				AccountID:    r.AccountID,
				Barcode:      r.Barcode,
				CreatedAt:    r.CreatedAt,
				UpdatedAt:    r.UpdatedAt,
			}
		}

		c.JSON(http.StatusOK, response)
	}
}

// Helper functions to convert domain to response

func toAppointmentResponse(a *domain.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		ID:            a.ID.Hex(),
		AppointmentID: a.AppointmentID,
		DockID:        a.DockID,
		TruckID:       a.TruckID,
		SupplierID:    a.SupplierID,
		AccountID:     a.AccountID,
		StartTime:     a.StartTime,
		EndTime:       a.EndTime,
		Type:          string(a.Type),
		Status:        string(a.Status),
		ManifestID:    a.ManifestID,
		CreatedBy:     a.CreatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toManifestResponse(m *domain.CargoManifest) dto.ManifestResponse {
	resp := dto.ManifestResponse{
		ID:            m.ID.Hex(),
		ManifestID:    m.ManifestID,
		AppointmentID: m.AppointmentID,
		Lines:         make([]dto.ManifestLineResponse, len(m.Lines)),
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
	for i, line := range m.Lines {
		resp.Lines[i] = dto.ManifestLineResponse{
			MaterialID:       line.MaterialID,
			Description:      line.Description,
			ExpectedQuantity: line.ExpectedQuantity,
		}
	}
	return resp
}

func toSpotResponse(s *domain.YardSpot) dto.SpotResponse {
	return dto.SpotResponse{
		ID:          s.ID.Hex(),
		SpotID:      s.SpotID,
		WarehouseID: s.WarehouseID,
		Status:      string(s.Status),
		TruckID:     s.TruckID,
		UpdatedAt:   s.UpdatedAt,
	}
}
