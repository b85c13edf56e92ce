package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MeKo-Tech/textspot/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP spotting server",
	Long: `Start an HTTP server exposing the spotting pipeline.

Endpoints:
  GET  /health        liveness probe
  POST /v1/spot       multipart image upload, returns spotted text
  GET  /v1/threshold  current acceptance threshold
  POST /v1/threshold  update the acceptance threshold at runtime
  GET  /v1/stream     WebSocket endpoint for streaming requests
  GET  /metrics       Prometheus metrics (when enabled)`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "0.0.0.0", "listen address")
	serveCmd.Flags().IntP("port", "p", 8080, "listen port")
	serveCmd.Flags().Int("timeout", 60, "per-request processing timeout in seconds")
	serveCmd.Flags().Int("max-upload-mb", 32, "maximum upload size in megabytes")
	serveCmd.Flags().Bool("metrics", true, "expose Prometheus metrics")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.timeout_seconds", serveCmd.Flags().Lookup("timeout"))
	_ = viper.BindPFlag("server.max_upload_mb", serveCmd.Flags().Lookup("max-upload-mb"))
	_ = viper.BindPFlag("server.enable_metrics", serveCmd.Flags().Lookup("metrics"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pl, err := buildPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.NewServer(pl, server.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		MaxUploadMB: int64(cfg.Server.MaxUploadMB),
		TimeoutSec:  cfg.Server.TimeoutSeconds,
	})
	defer func() { _ = srv.Close() }()

	return srv.ListenAndServe(ctx, cfg.Server.EnableMetrics)
}
