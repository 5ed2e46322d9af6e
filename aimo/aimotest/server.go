// Package aimotest provides an in-process OpenAI-compatible chat completions
// endpoint for tests of the AiMo examples.
package aimotest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// Reply describes what the server answers.
//
// Non-streaming requests get Content (null when empty) plus ToolCalls in a
// single choice, or no choices when NoChoices is set. Streaming requests get
// one chunk per Fragment, framed by a role-only chunk and a usage-only chunk,
// then [DONE]. A non-empty StreamError replaces the framing after the
// fragments with an error event. A non-zero Status >= 400 answers every
// request with an API error body instead.
type Reply struct {
	Content     string
	NoChoices   bool
	ToolCalls   []ToolCall
	Fragments   []string
	StreamError string
	Status      int
}

// ToolCall is a function call the server puts in the assistant message.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// Request is the part of an incoming chat completion request tests inspect.
type Request struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens     int               `json:"max_tokens"`
	Stream        bool              `json:"stream"`
	Tools         []json.RawMessage `json:"tools"`
	Authorization string            `json:"-"`
}

// Server is a running fake endpoint; point a client's base URL at URL.
type Server struct {
	URL string

	reply Reply

	mu       sync.Mutex
	requests []Request
}

const (
	completionID = "chatcmpl-test"
	created      = 1700000000
)

// NewServer starts a server answering with reply. It is closed when the test
// ends.
func NewServer(t testing.TB, reply Reply) *Server {
	t.Helper()

	s := &Server{reply: reply}
	mux := http.NewServeMux()
	mux.HandleFunc("/chat/completions", s.handleChatCompletions)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	s.URL = srv.URL
	return s
}

// Requests returns the chat completion requests received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

func (s *Server) handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req.Authorization = r.Header.Get("Authorization")

	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.reply.Status >= http.StatusBadRequest {
		writeJSON(w, s.reply.Status, openai.ErrorResponse{Error: &openai.APIError{
			Code:    s.reply.Status,
			Message: http.StatusText(s.reply.Status),
			Type:    "invalid_request_error",
		}})
		return
	}

	if req.Stream {
		s.stream(w, req.Model)
		return
	}
	writeJSON(w, http.StatusOK, s.completion(req.Model))
}

func (s *Server) completion(model string) any {
	resp := openai.ChatCompletionResponse{
		ID:      completionID,
		Object:  "chat.completion",
		Created: created,
		Model:   model,
		Choices: []openai.ChatCompletionChoice{},
		Usage: openai.Usage{
			PromptTokens:     5,
			CompletionTokens: 7,
			TotalTokens:      12,
		},
	}
	if s.reply.NoChoices {
		return resp
	}

	// Absent content is sent as an explicit null, which the SDK types
	// cannot express.
	if s.reply.Content == "" && len(s.reply.ToolCalls) == 0 {
		return map[string]any{
			"id":      resp.ID,
			"object":  resp.Object,
			"created": resp.Created,
			"model":   resp.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": openai.ChatMessageRoleAssistant, "content": nil},
				"finish_reason": openai.FinishReasonStop,
			}},
			"usage": resp.Usage,
		}
	}

	message := openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: s.reply.Content,
	}
	finish := openai.FinishReasonStop
	for _, tc := range s.reply.ToolCalls {
		message.ToolCalls = append(message.ToolCalls, openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolTypeFunction,
			Function: openai.FunctionCall{
				Name:      tc.Name,
				Arguments: tc.Arguments,
			},
		})
		finish = openai.FinishReasonToolCalls
	}
	resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
		Index:        0,
		Message:      message,
		FinishReason: finish,
	})
	return resp
}

func (s *Server) stream(w http.ResponseWriter, model string) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher, _ := w.(http.Flusher)

	send := func(event any) {
		b, _ := json.Marshal(event)
		fmt.Fprintf(w, "data: %s\n\n", b)
		if flusher != nil {
			flusher.Flush()
		}
	}
	chunk := func(delta openai.ChatCompletionStreamChoiceDelta, finish openai.FinishReason) openai.ChatCompletionStreamResponse {
		return openai.ChatCompletionStreamResponse{
			ID:      completionID,
			Object:  "chat.completion.chunk",
			Created: created,
			Model:   model,
			Choices: []openai.ChatCompletionStreamChoice{{
				Index:        0,
				Delta:        delta,
				FinishReason: finish,
			}},
		}
	}

	send(chunk(openai.ChatCompletionStreamChoiceDelta{Role: openai.ChatMessageRoleAssistant}, ""))
	for _, fragment := range s.reply.Fragments {
		send(chunk(openai.ChatCompletionStreamChoiceDelta{Content: fragment}, ""))
	}

	if s.reply.StreamError != "" {
		send(openai.ErrorResponse{Error: &openai.APIError{
			Message: s.reply.StreamError,
			Type:    "server_error",
		}})
		return
	}

	send(chunk(openai.ChatCompletionStreamChoiceDelta{}, openai.FinishReasonStop))
	send(openai.ChatCompletionStreamResponse{
		ID:      completionID,
		Object:  "chat.completion.chunk",
		Created: created,
		Model:   model,
		Choices: []openai.ChatCompletionStreamChoice{},
		Usage: &openai.Usage{
			PromptTokens:     5,
			CompletionTokens: len(s.reply.Fragments),
			TotalTokens:      5 + len(s.reply.Fragments),
		},
	})

	fmt.Fprint(w, "data: [DONE]\n\n")
	if flusher != nil {
		flusher.Flush()
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
