package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/fabulist/fabula/internal/adapters/http"
	"github.com/fabulist/fabula/internal/logging"
	"github.com/fabulist/fabula/pkg/adapters/memory"
	"github.com/fabulist/fabula/pkg/adapters/redis"
	"github.com/fabulist/fabula/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve <script>",
	Short: "Start the stateless HTTP server",
	Long:  `Serves the story over a JSON API. Sessions persist in memory by default, or in Redis with --redis.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		ttl, _ := cmd.Flags().GetDuration("session-ttl")

		logger := logging.New(slog.LevelInfo)

		doc, err := loadDocument(args)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		var store ports.SessionStore = memory.NewStore()
		if redisAddr != "" {
			rs := redis.New(redisAddr, "", 0, redis.WithTTL(ttl))
			defer rs.Close()
			store = rs
		}

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: httpAdapter.NewHandler(doc, store, logger),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Serving %q on %s\n", doc.Title, srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session persistence (host:port)")
	serveCmd.Flags().Duration("session-ttl", 24*time.Hour, "Session expiration when using Redis")
}
