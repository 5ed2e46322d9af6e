package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aimo-network/skills/go/examples/aimo"
)

func main() {
	// Get API key, base URL and model from the environment
	cfg := aimo.LoadConfig()
	logger := aimo.NewLogger(cfg.LogLevel)

	// Create AiMo client
	client := aimo.NewClient(cfg, logger)

	if err := run(context.Background(), os.Stdout, client); err != nil {
		logger.Error("ChatCompletionStream error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, client *aimo.Client) error {
	fmt.Fprint(w, "Streaming response: ")

	// Print the content as it arrives
	if err := client.ChatStream(ctx, w, "Please write a short poem about programming", ""); err != nil {
		return err
	}

	fmt.Fprintln(w, "Stream finished")
	return nil
}
