package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimo-network/skills/go/examples/aimo"
	"github.com/aimo-network/skills/go/examples/aimo/aimotest"
)

func newClient(srv *aimotest.Server) *aimo.Client {
	return aimo.NewClient(aimo.Config{APIKey: "key", BaseURL: srv.URL},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestGetCurrentWeather(t *testing.T) {
	got, err := getCurrentWeather("Boston, MA", "fahrenheit")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"location":"Boston, MA","temperature":"22","unit":"fahrenheit","forecast":"Sunny"}`, got)
}

func TestCallWeather(t *testing.T) {
	got, err := callWeather(`{"location":"Paris"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"location":"Paris","temperature":"22","unit":"celsius","forecast":"Sunny"}`, got)

	_, err = callWeather(`{"unit":"celsius"}`)
	assert.ErrorContains(t, err, "missing location")

	_, err = callWeather(`{not json`)
	assert.ErrorContains(t, err, "invalid arguments")
}

func TestRun_ToolCall(t *testing.T) {
	srv := aimotest.NewServer(t, aimotest.Reply{ToolCalls: []aimotest.ToolCall{{
		ID:        "call_abc",
		Name:      "get_current_weather",
		Arguments: `{"location":"Boston, MA","unit":"fahrenheit"}`,
	}}})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, newClient(srv)))

	assert.Contains(t, out.String(), "Function called: get_current_weather\n")
	assert.Contains(t, out.String(), `Arguments: {"location":"Boston, MA","unit":"fahrenheit"}`)
	assert.Contains(t, out.String(), `"forecast":"Sunny"`)

	reqs := srv.Requests()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Tools, 1)
	assert.Contains(t, string(reqs[0].Tools[0]), `"get_current_weather"`)
}

func TestRun_PlainAnswer(t *testing.T) {
	srv := aimotest.NewServer(t, aimotest.Reply{Content: "It is sunny in Boston."})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, newClient(srv)))
	assert.Equal(t, "Response: It is sunny in Boston.\n", out.String())
}

func TestRun_NoChoices(t *testing.T) {
	srv := aimotest.NewServer(t, aimotest.Reply{NoChoices: true})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, newClient(srv)))
	assert.Equal(t, "No response received\n", out.String())
}
