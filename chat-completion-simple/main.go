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
		logger.Error("ChatCompletion error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, w io.Writer, client *aimo.Client) error {
	// Make the request
	answer, err := client.Chat(ctx, "Hello! Can you help me write a simple program?", "")
	if err != nil {
		return err
	}

	// Print the response
	if answer != "" {
		fmt.Fprintf(w, "Response: %s\n", answer)
	} else {
		fmt.Fprintln(w, "No response received")
	}
	return nil
}
