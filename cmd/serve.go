package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/display"
	"github.com/nyaya-legal/nyaya/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the legal assistant HTTP server",
	Long: `Starts the HTTP server on port 5000 (or $PORT).

Exposes:
  POST /api/legal-assist   - IPC analysis of a scenario
  POST /api/general-chat   - general legal Q&A
  POST /api/case-law       - relevant precedents as structured results
  GET  /api/indian-kanoon  - Indian Kanoon database search
  POST /api/transcribe     - speech to text (multipart "audio")
  GET  /health             - liveness and configured services

API keys are read from the environment (or .env):
  TOGETHER_API_KEY, OPENAI_API_KEY, INDIAN_KANOON_API_KEY
A feature whose key is missing answers 500 "Missing ... API key".`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides $PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("port") {
		viper.Set("server.port", servePort)
	}

	cfg, svc, err := loadAssistant()
	if err != nil {
		return err
	}

	configured := configuredServices(cfg)
	srv, err := server.New(server.Config{
		Assistant:   svc,
		CORSOrigins: cfg.Server.CORSOrigins,
		MaxUploadMB: cfg.Server.MaxUploadMB,
		Services:    configured,
	})
	if err != nil {
		return fmt.Errorf("initialize server: %w", err)
	}

	display.PrintBanner(display.ServerInfo{
		Version:           version,
		LLMModel:          cfg.LLM.Model,
		LLMBaseURL:        cfg.LLM.BaseURL,
		TranscribeModel:   cfg.Transcriber.Model,
		TranscribeBaseURL: cfg.Transcriber.BaseURL,
		CaseSearchBaseURL: cfg.CaseSearch.BaseURL,
		Configured:        configured,
		PromptsFile:       cfg.PromptsFile,
		CORSOrigins:       cfg.Server.CORSOrigins,
		Port:              cfg.Server.Port,
	})
	for _, name := range cfg.Missing() {
		display.Warn(fmt.Sprintf("%s API key is not set; its features will answer 500", name))
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	display.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func configuredServices(cfg *config.Config) map[string]bool {
	configured := map[string]bool{
		config.ServiceLLM:         true,
		config.ServiceTranscriber: true,
		config.ServiceCaseSearch:  true,
	}
	for _, name := range cfg.Missing() {
		configured[name] = false
	}
	return configured
}
