package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/travelbook/api"
	"github.com/zvrva/travelbook/config"
	"github.com/zvrva/travelbook/internal/service/offerings"
	"github.com/zvrva/travelbook/internal/service/reservation"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, offeringSvc offerings.OfferingUseCase, reservationSvc reservation.ReservationUseCase) error {
	router := gin.Default()

	api.NewOfferingHandler(offeringSvc).Register(router.Group("/offerings"))
	api.NewReservationHandler(reservationSvc).Register(router.Group("/reservations"))

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
