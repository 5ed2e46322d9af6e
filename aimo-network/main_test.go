package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aimo-network/skills/go/examples/aimo"
	"github.com/aimo-network/skills/go/examples/aimo/aimotest"
)

func newClient(srv *aimotest.Server) *aimo.Client {
	return aimo.NewClient(aimo.Config{APIKey: "aimo-sk-v2-test", BaseURL: srv.URL},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRun(t *testing.T) {
	srv := aimotest.NewServer(t, aimotest.Reply{
		Content:   "AiMo is a network.",
		Fragments: []string{"Decentralized AI ", "runs on ", "many providers."},
	})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), &out, newClient(srv)))

	want := "AiMo is a network.\n" +
		"\n--- Streaming ---\n" +
		"Decentralized AI runs on many providers.\n"
	assert.Equal(t, want, out.String())

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.False(t, reqs[0].Stream)
	assert.Equal(t, "What is AiMo Network?", reqs[0].Messages[0].Content)
	assert.True(t, reqs[1].Stream)
	assert.Equal(t, "Explain decentralized AI in one paragraph.", reqs[1].Messages[0].Content)
}

func TestRun_ChatFailureStopsBeforeStreaming(t *testing.T) {
	srv := aimotest.NewServer(t, aimotest.Reply{Status: http.StatusUnauthorized})

	var out bytes.Buffer
	err := run(context.Background(), &out, newClient(srv))
	require.Error(t, err)
	assert.Empty(t, out.String())
	assert.Len(t, srv.Requests(), 1)
}
