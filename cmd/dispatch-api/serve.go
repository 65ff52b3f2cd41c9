// README: serve command; wires outbound sinks and runs the HTTP server until signalled.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/handlers"

	httptransport "cabdispatch/internal/http"
	"cabdispatch/internal/infra"
	"cabdispatch/internal/modules/ride"
	"cabdispatch/internal/service"
)

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := a.dispatcher()
	if err != nil {
		return err
	}
	closers, err := a.wireSinks(ctx, d)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()
	if err != nil {
		return err
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE"}),
		handlers.AllowedHeaders([]string{"Content-Type", "X-Request-ID"}),
	)
	server := &http.Server{Addr: a.cfg.HTTP.Addr, Handler: cors(httptransport.NewRouter(d))}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("dispatch-api listening on %s", a.cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	log.Printf("shutting down")
	return server.Shutdown(shutdownCtx)
}

// wireSinks attaches every configured ride sink and returns their closers.
func (a *app) wireSinks(ctx context.Context, d *service.Dispatcher) ([]func(), error) {
	var closers []func()

	if a.cfg.Redis.Addr != "" {
		client, err := infra.NewRedis(ctx, a.cfg.Redis.Addr)
		if err != nil {
			return closers, err
		}
		closers = append(closers, func() { _ = client.Close() })
		d.AddSink(ride.NewRedisPublisher(client, a.cfg.Redis.Channel))
		log.Printf("publishing rides to redis channel %s", a.cfg.Redis.Channel)
	}

	if len(a.cfg.Kafka.Brokers) > 0 {
		producer, err := infra.NewKafkaProducer(a.cfg.Kafka.Brokers)
		if err != nil {
			return closers, err
		}
		pub := ride.NewKafkaPublisher(producer, a.cfg.Kafka.Topic)
		closers = append(closers, func() { _ = pub.Close() })
		d.AddSink(pub)
		log.Printf("producing rides to kafka topic %s", a.cfg.Kafka.Topic)
	}

	if a.cfg.DB.DSN != "" {
		if a.cfg.DB.Migrate {
			if err := infra.Migrate(a.cfg.DB.DSN); err != nil {
				return closers, err
			}
		}
		pool, err := infra.NewDB(ctx, a.cfg.DB.DSN)
		if err != nil {
			return closers, err
		}
		closers = append(closers, pool.Close)
		d.AddSink(ride.NewPGStore(pool))
		log.Printf("archiving rides to postgres")
	}

	return closers, nil
}
