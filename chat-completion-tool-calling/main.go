package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/aimo-network/skills/go/examples/aimo"
)

// weatherTool is the function definition advertised to the model.
var weatherTool = openai.Tool{
	Type: openai.ToolTypeFunction,
	Function: &openai.FunctionDefinition{
		Name:        "get_current_weather",
		Description: "Get the current weather in a given location",
		Parameters: jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"location": {
					Type:        jsonschema.String,
					Description: "The city and state, e.g. San Francisco, CA",
				},
				"unit": {
					Type: jsonschema.String,
					Enum: []string{"celsius", "fahrenheit"},
				},
			},
			Required: []string{"location"},
		},
	},
}

// getCurrentWeather is a mock function that simulates getting weather data
func getCurrentWeather(location string, unit string) (string, error) {
	fields := []struct {
		path  string
		value string
	}{
		{"location", location},
		{"temperature", "22"},
		{"unit", unit},
		{"forecast", "Sunny"},
	}

	result := `{}`
	for _, f := range fields {
		var err error
		if result, err = sjson.Set(result, f.path, f.value); err != nil {
			return "", fmt.Errorf("set %s: %w", f.path, err)
		}
	}
	return result, nil
}

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
	// Make the request with the weather tool attached
	msg, err := client.ChatWithTools(ctx, "What's the weather like in Boston?", "", []openai.Tool{weatherTool})
	if err != nil {
		return err
	}
	if msg == nil {
		fmt.Fprintln(w, "No response received")
		return nil
	}

	if len(msg.ToolCalls) == 0 {
		fmt.Fprintf(w, "Response: %s\n", msg.Content)
		return nil
	}

	// Handle function calls
	for _, toolCall := range msg.ToolCalls {
		if toolCall.Function.Name != weatherTool.Function.Name {
			continue
		}
		result, err := callWeather(toolCall.Function.Arguments)
		if err != nil {
			return fmt.Errorf("%s: %w", toolCall.Function.Name, err)
		}

		fmt.Fprintf(w, "Function called: %s\n", toolCall.Function.Name)
		fmt.Fprintf(w, "Arguments: %s\n", toolCall.Function.Arguments)
		fmt.Fprintf(w, "Result: %s\n", result)
	}
	return nil
}

func callWeather(arguments string) (string, error) {
	if !gjson.Valid(arguments) {
		return "", fmt.Errorf("invalid arguments %q", arguments)
	}
	args := gjson.Parse(arguments)

	location := args.Get("location")
	if !location.Exists() {
		return "", fmt.Errorf("missing location in %s", arguments)
	}
	unit := "celsius"
	if u := args.Get("unit"); u.Exists() {
		unit = u.String()
	}

	return getCurrentWeather(location.String(), unit)
}
