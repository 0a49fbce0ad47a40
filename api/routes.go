package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-tracker/internal/handlers/v1/ledger"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/report"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/user"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type registrar interface {
	Register(api huma.API)
}

// Pinger checks database reachability for /status.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	DB      Pinger
}

// Handler builds the mux with every route registered.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	humaAPI := humago.New(mux, huma.DefaultConfig("Finance Tracker", "1.0.0"))
	humaAPI.UseMiddleware(logging.Middleware(r.Logger))

	handlers := []registrar{
		user.NewCreateUserHandler(r.Service.User),
		user.NewGetUserHandler(r.Service.User),
		user.NewSetTargetHandler(r.Service.User),
		user.NewBalanceHandler(r.Service.Balance),
		ledger.NewCreateEntryHandler(r.Service.Ledger),
		ledger.NewModifyEntryHandler(r.Service.Ledger),
		ledger.NewListEntriesHandler(r.Service.Ledger),
		report.NewPeriodReportHandler(r.Service.Report),
		report.NewCashFlowHandler(r.Service.Report),
		report.NewMonthTotalHandler(r.Service.Report),
		report.NewCategoriesHandler(r.Service.Report),
		report.NewRangeHandler(r.Service.Report),
	}
	for _, h := range handlers {
		h.Register(humaAPI)
	}

	statusHandler := status.NewHandler(r.DB)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
