// README: Entry point; loads config, wires services, starts HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"letsgo/internal/config"
	httptransport "letsgo/internal/http"
	"letsgo/internal/infra"
	"letsgo/internal/metrics"
	"letsgo/internal/modules/booking"
	"letsgo/internal/modules/fare"
	"letsgo/internal/modules/trip"
	"letsgo/internal/modules/user"
	"letsgo/internal/publisher"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	collector := metrics.NewCollector()
	if cfg.Metrics.Addr != "" {
		metricsServer := collector.Serve(cfg.Metrics.Addr)
		defer func() { _ = metricsServer.Shutdown(context.Background()) }()
	}

	var eventPublisher booking.EventPublisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := publisher.NewNATSPublisher(cfg.NATS.URL, collector)
		if err != nil {
			log.Fatalf("nats init: %v", err)
		}
		defer natsPublisher.Close()
		eventPublisher = natsPublisher
	}

	calculator := fare.NewCalculator(fare.DefaultConfig())
	fareCache := trip.NewFareCache(redisClient)

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore, calculator, fareCache, collector)

	userStore := user.NewStore(dbPool)

	bookingStore := booking.NewStore(dbPool)
	bookingSvc := booking.NewService(bookingStore, tripStore, userStore, fareCache,
		eventPublisher, collector, cfg.Booking.MaxSeatsPerBooking)

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Booking:   bookingSvc,
		Trips:     tripSvc,
		JWTSecret: []byte(cfg.Auth.JWTSecret),
		Observe:   collector.ObserveRequest,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	log.Printf("api listening on %s", cfg.HTTP.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
