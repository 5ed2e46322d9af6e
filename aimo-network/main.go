// Command aimo-network runs a basic and a streaming chat completion against
// AiMo Network through its OpenAI-compatible API.
//
// Set your API key first:
//
//	export AIMO_API_KEY="aimo-sk-v2-<your-key>"
//	go run ./aimo-network
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aimo-network/skills/go/examples/aimo"
)

func main() {
	cfg := aimo.LoadConfig()
	logger := aimo.NewLogger(cfg.LogLevel)

	// Create AiMo client
	client := aimo.NewClient(cfg, logger)

	if err := run(context.Background(), os.Stdout, client); err != nil {
		logger.Error("aimo-network example failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, client *aimo.Client) error {
	// Basic completion
	answer, err := client.Chat(ctx, "What is AiMo Network?", "")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, answer)

	// Streaming completion
	fmt.Fprintln(w, "\n--- Streaming ---")
	return client.ChatStream(ctx, w, "Explain decentralized AI in one paragraph.", "")
}
