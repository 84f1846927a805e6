// Command server runs the groqchat service, a thin HTTP proxy in front
// of the Groq chat completion API.
//
// Configuration via environment variables (see pkg/config for the full
// layered resolution including .env and YAML files):
//
//	GROQ_API_KEY        - Groq API key (required)
//	GROQ_DEFAULT_MODEL  - Default model (default: llama-3.1-8b-instant)
//	HOST                - Listen host (default: 0.0.0.0)
//	PORT                - Listen port (default: 8000)
//	DEBUG               - Debug categories ("all", "transport,validation", ...)
//	ALLOWED_ORIGINS     - Comma-separated CORS origins (default: *)
//	GROQCHAT_CONFIG     - Path to an optional YAML config file
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/devtayyabsajjad/groqchat/pkg/config"
	"github.com/devtayyabsajjad/groqchat/pkg/debug"
	"github.com/devtayyabsajjad/groqchat/pkg/models"
	"github.com/devtayyabsajjad/groqchat/pkg/observability"
	"github.com/devtayyabsajjad/groqchat/pkg/provider"
	"github.com/devtayyabsajjad/groqchat/pkg/provider/groq"
	"github.com/devtayyabsajjad/groqchat/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	debug.Init(settings.Debug, settings.LogLevel)
	logger := slog.Default()

	registry := models.Builtin()

	// A gateway failure is not fatal: the server still starts and
	// reports disconnected on /health.
	var client provider.CompletionClient
	gw, err := groq.New(groq.Config{
		APIKey:  settings.APIKey,
		Timeout: settings.RequestTimeout,
	})
	if err != nil {
		logger.Error("groq client initialization failed", "error", err)
	} else {
		client = observability.InstrumentClient(gw)
		defer client.Close()
	}

	handler := transport.NewHandler(settings, registry, client, logger)

	mux := http.NewServeMux()
	mux.Handle("/", handler.Routes())
	mux.Handle("GET /metrics", promhttp.Handler())

	chain := transport.Chain(
		transport.Recovery(logger),
		transport.RequestID(),
		transport.Logging(logger),
		transport.CORS(settings.AllowedOrigins),
		observability.MetricsMiddleware,
	)

	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)
	srv := transport.NewServer(chain(mux),
		transport.WithAddr(addr),
		transport.WithLogger(logger),
	)

	logger.Info("groqchat starting",
		"addr", addr,
		"default_model", settings.DefaultModel,
		"models", len(registry.List()),
	)
	return srv.ListenAndServe()
}
