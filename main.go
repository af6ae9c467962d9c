package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/templedesk/temple-booking/config"
	"github.com/templedesk/temple-booking/internal/handler"
	"github.com/templedesk/temple-booking/internal/middleware"
	"github.com/templedesk/temple-booking/internal/repository"
	"github.com/templedesk/temple-booking/internal/service"
	"github.com/templedesk/temple-booking/pkg/database"
	"github.com/templedesk/temple-booking/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// RabbitMQ is optional: without a URL, booking events are simply not
	// published.
	var publisher service.EventPublisher
	if cfg.RabbitURL != "" {
		mq, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer mq.Close()
		publisher = mq
	}

	// Repositories
	hallRepo := repository.NewHallRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sevaRepo := repository.NewSevaRepository(db)
	gotraRepo := repository.NewGotraRepository(db)
	sevaBookingRepo := repository.NewSevaBookingRepository(db)

	// Services
	clock := service.SystemClock()
	hallSvc := service.NewHallService(hallRepo, bookingRepo)
	bookingSvc := service.NewBookingService(bookingRepo, hallRepo, publisher, clock)
	calendarSvc := service.NewCalendarService(bookingRepo)
	sevaBookingSvc := service.NewSevaBookingService(sevaBookingRepo, sevaRepo, gotraRepo, clock)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "temple-booking"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	handler.NewHallHandler(hallSvc).RegisterRoutes(e)
	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e)
	handler.NewCalendarHandler(calendarSvc).RegisterRoutes(e)
	handler.NewSevaHandler(sevaRepo, gotraRepo).RegisterRoutes(e)
	handler.NewSevaBookingHandler(sevaBookingSvc).RegisterRoutes(e)

	log.Printf("Temple Booking Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
