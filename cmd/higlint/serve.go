package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/sh4d0w/ios-mobile-designer/internal/api"
)

func newServeCmd() *cobra.Command {
	var (
		addr  string
		packs []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored runs, rules, and waivers over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			reg, err := buildRegistry(packs, nil, "")
			if err != nil {
				return err
			}

			if addr == "" {
				addr = cfg.Server.Addr
			}
			server := &api.Server{
				DB:              db,
				UserStore:       db,
				Registry:        reg,
				Logger:          log,
				SessionDuration: time.Duration(cfg.Server.SessionHours) * time.Hour,
				AllowedOrigins:  cfg.Server.AllowedOrigins,
			}
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           server.Routes(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			go func() {
				ticker := time.NewTicker(time.Hour)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						if n, err := db.DeleteExpiredSessions(); err == nil && n > 0 {
							log.WithField("sessions", n).Debug("pruned expired sessions")
						}
					}
				}
			}()

			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = httpServer.Shutdown(shutdownCtx)
			}()

			log.WithField("addr", addr).WithField("rules", reg.Len()).Info("serving")
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			log.Info("shut down")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringArrayVar(&packs, "rules", nil, "extra YAML rule pack (repeatable)")
	return cmd
}
