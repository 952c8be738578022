// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/grocermind/grocermind/agent"
	"github.com/grocermind/grocermind/config"
	"github.com/grocermind/grocermind/guardrail"
	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/orchestrator"
	"github.com/grocermind/grocermind/retrieval"
	"github.com/grocermind/grocermind/router"
	"github.com/grocermind/grocermind/server"
	"github.com/grocermind/grocermind/stock"
	"github.com/grocermind/grocermind/store"
	"github.com/grocermind/grocermind/tool"
	"github.com/grocermind/grocermind/trace"
)

var policyFile string

func main() {
	rootCmd := &cobra.Command{
		Use:   "grocermind",
		Short: "Conversational grocery shopping assistant",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Missing .env is fine; the environment may be set directly.
			_ = godotenv.Load()
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		},
	}
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "YAML guardrail policy file")

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat on stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd.Context())
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the chat API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			orch, cleanup, err := buildOrchestrator(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer cleanup()
			return server.NewHandler(orch).Run(cfg.HTTPAddr)
		},
	}

	rootCmd.AddCommand(chatCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func runChat(ctx context.Context) error {
	cfg := config.Load()
	orch, cleanup, err := buildOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	sessionID := trace.NewTurnID()
	fmt.Println("grocermind shopping assistant (type 'quit' to exit)")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		result := orch.Process(ctx, text, sessionID)
		fmt.Println(result.Response)
	}
	return scanner.Err()
}

// buildOrchestrator wires the full pipeline. The returned cleanup closes
// the conversation log and must be called when the command exits.
func buildOrchestrator(ctx context.Context, cfg config.Config) (*orchestrator.Orchestrator, func(), error) {
	if policyFile != "" {
		policy, err := config.LoadPolicy(policyFile)
		if err != nil {
			return nil, nil, err
		}
		cfg.Policy = policy
	}

	provider, err := model.NewOpenAIProvider(model.OpenAIConfig{
		APIKey:         cfg.OpenAIAPIKey,
		EmbeddingModel: cfg.EmbeddingModel,
	})
	if err != nil {
		return nil, nil, err
	}

	orders, err := store.LoadOrders(filepath.Join(cfg.DataDir, "orders.json"))
	if err != nil {
		return nil, nil, err
	}
	catalog, err := store.LoadCatalog(filepath.Join(cfg.DataDir, "products.json"))
	if err != nil {
		return nil, nil, err
	}

	retriever, err := buildRetriever(ctx, cfg, provider)
	if err != nil {
		return nil, nil, err
	}

	carts := store.NewCarts()
	stockClient := stock.NewClient(cfg.StockServiceURL, 10*time.Second)
	tools := []tool.Tool{
		tool.NewPriceTool(catalog),
		tool.NewCartAddTool(catalog, carts),
		tool.NewCartSummaryTool(carts),
		tool.NewBudgetTool(catalog, provider, cfg.ModelName),
		tool.NewRefundTool(orders),
		tool.NewStockTool(stockClient),
	}

	engine := guardrail.NewEngine(guardrail.EngineConfig{
		RestrictedTopics:    cfg.Policy.RestrictedTopics,
		MaxRefundAmount:     cfg.Policy.MaxRefundAmount,
		ModerationMinLength: cfg.Policy.ModerationMinLength,
		Provider:            provider,
		ModerationModel:     cfg.ModelName,
		Orders:              orders,
	})

	recorder, err := trace.NewJSONLRecorder(cfg.LogDir)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := recorder.Close(); err != nil {
			log.Warn().Err(err).Msg("closing conversation log")
		}
	}

	orch, err := orchestrator.New(orchestrator.Config{
		Guardrails: engine,
		Router:     router.New(provider, cfg.ModelName),
		FAQ:        agent.NewFAQAgent(provider, retriever, cfg.ModelName),
		Action:     agent.NewActionAgent(provider, retriever, tools, cfg.ModelName),
		General:    agent.NewGeneralAgent(provider, cfg.ModelName),
		Intents:    orchestrator.NewIntentDetector(provider, cfg.ModelName),
		Recorder:   recorder,
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return orch, cleanup, nil
}

func buildRetriever(ctx context.Context, cfg config.Config, provider *model.OpenAIProvider) (retrieval.ContextProvider, error) {
	docsPath := filepath.Join(cfg.DataDir, "docs.json")
	if _, err := os.Stat(docsPath); os.IsNotExist(err) {
		log.Warn().Str("path", docsPath).Msg("no document store, retrieval context disabled")
		return retrieval.Static(""), nil
	}

	docs, err := retrieval.LoadDocuments(docsPath)
	if err != nil {
		return nil, err
	}
	return retrieval.NewEmbeddingStore(ctx, provider, docs, 5)
}
