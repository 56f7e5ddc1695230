package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func (app *application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ErrorLog:     log.New(app.log, "", 0),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	shutdownError := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		app.log.Info().Str("signal", s.String()).Msg("shutting down the http server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			shutdownError <- err
			return
		}
		app.log.Info().Msg("waiting for background jobs to finish")
		app.wg.Wait()
		shutdownError <- nil
	}()

	app.log.Info().Str("addr", srv.Addr).Str("env", app.config.env).Msg("starting the http server .....")
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdownError; err != nil {
		return err
	}
	app.log.Info().Str("addr", srv.Addr).Msg("stopped the http server")
	return nil
}
