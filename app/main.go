package main

import (
	"context"
	"messadmin/config"
	"messadmin/services/mess/delivery"
	"messadmin/services/mess/gateway"
	"messadmin/services/mess/repository"
	"messadmin/services/mess/scheduler"
	"messadmin/services/mess/usecase"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

const useCaseTimeout = 30 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	db, err := config.BootDB()
	if err != nil {
		log.Fatalf("Failed to boot DB: %v", err)
		return
	}

	userRepo := repository.NewUserRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	billRepo := repository.NewBillRepository(db)
	configRepo := repository.NewBillingConfigRepository(db)
	disputeRepo := repository.NewDisputeRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	paymentGateway := gateway.NewSimulatedGateway()

	authUC := usecase.NewAuthUseCase(userRepo, useCaseTimeout)
	teacherUC := usecase.NewTeacherUseCase(teacherRepo, useCaseTimeout)
	attendanceUC := usecase.NewAttendanceUseCase(attendanceRepo, teacherRepo, userRepo, useCaseTimeout)
	billUC := usecase.NewBillUseCase(billRepo, teacherRepo, attendanceRepo, useCaseTimeout)
	configUC := usecase.NewBillingConfigUseCase(configRepo, useCaseTimeout)
	disputeUC := usecase.NewDisputeUseCase(disputeRepo, teacherRepo, useCaseTimeout)
	paymentUC := usecase.NewPaymentUseCase(billRepo, teacherRepo, paymentGateway, useCaseTimeout)
	menuUC := usecase.NewMenuUseCase(menuRepo, useCaseTimeout)

	delivery.NewAuthDelivery(app, authUC)
	delivery.NewTeacherDelivery(app, teacherUC)
	delivery.NewAttendanceDelivery(app, attendanceUC)
	delivery.NewBillingDelivery(app, billUC, configUC)
	delivery.NewDisputeDelivery(app, disputeUC)
	delivery.NewMenuDelivery(app, menuUC)
	delivery.NewTeacherPortalDelivery(app, attendanceUC, billUC, disputeUC, paymentUC)

	schedCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler.New(attendanceUC, billUC, userRepo).Start(schedCtx)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")
	stopScheduler()

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
