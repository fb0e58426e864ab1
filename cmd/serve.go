package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/dataexplorer/internal/dataset"
	"github.com/KaramelBytes/dataexplorer/internal/shell"
	"github.com/KaramelBytes/dataexplorer/internal/web"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive explorer in the browser",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := *currentConfig()
		if serveAddr != "" {
			c.Addr = serveAddr
		}
		maxUpload := int64(c.MaxUploadMB) << 20
		dataset.UploadLimit = maxUpload

		logger := log.New(os.Stderr, "", log.LstdFlags)
		srv := web.New(func() *shell.Shell { return newShell(&c) }, maxUpload, logger)
		server := &http.Server{
			Addr:              c.Addr,
			Handler:           srv,
			ReadHeaderTimeout: 15 * time.Second,
			// profiling a large dataset and rendering its PDF can take minutes
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  60 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Printf("✅ DataExplorer listening on %s", c.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)
		select {
		case err := <-errCh:
			return err
		case <-stop:
			logger.Println("⚠️ shutting down")
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8501)")
}
