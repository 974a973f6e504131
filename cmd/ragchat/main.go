// Copyright 2026 Praxis Works
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/praxisworks/ragchat"
	"github.com/praxisworks/ragchat/ai"
	"github.com/praxisworks/ragchat/httpapi"
	"github.com/urfave/cli/v2"
)

func main() {
	// Missing .env is fine; flags and real env vars still apply.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "ragchat",
		Usage: "Knowledge-base-augmented chat service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"RAGCHAT_LOG_LEVEL"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API server",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "db",
						Aliases: []string{"d"},
						Usage:   "Path to BadgerDB database directory",
						Value:   "./data/ragchat",
						EnvVars: []string{"RAGCHAT_DB"},
					},
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "HTTP listen address",
						Value:   ":8000",
						EnvVars: []string{"RAGCHAT_ADDR"},
					},
					&cli.StringFlag{
						Name:    "ai-host",
						Usage:   "OpenAI-compatible service host URL",
						Value:   "http://localhost:11434/v1",
						EnvVars: []string{"RAGCHAT_AI_HOST"},
					},
					&cli.StringFlag{
						Name:    "api-key",
						Usage:   "API key for the AI service",
						Value:   "none",
						EnvVars: []string{"OPENAI_API_KEY"},
					},
					&cli.StringFlag{
						Name:    "embedding-model",
						Usage:   "Embedding model name",
						Value:   "text-embedding-3-small",
						EnvVars: []string{"RAGCHAT_EMBEDDING_MODEL"},
					},
					&cli.StringFlag{
						Name:    "chat-model",
						Usage:   "Generation model name",
						Value:   "gpt-4o-mini",
						EnvVars: []string{"RAGCHAT_CHAT_MODEL"},
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serveCommand(c *cli.Context) error {
	config := ai.NewConfig(
		ai.WithHost(c.String("ai-host")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)

	service, err := ragchat.NewService(c.String("db"), ragchat.WithAIConfig(config))
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	server, err := httpapi.NewServer(service.Registry(), service.Pipeline(), service.Engine(), service.Memory())
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              c.String("addr"),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", httpServer.Addr, "db", c.String("db"))
		errCh <- httpServer.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-stop:
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
