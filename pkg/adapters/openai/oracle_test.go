package openai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/adapters/openai"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatRequest struct {
	Model          string `json:"model"`
	ResponseFormat struct {
		Type string `json:"type"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func completion(content string) string {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(body)
}

func TestOracle_Classify(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, completion(`{"is_valid": true}`))
	}))
	defer srv.Close()

	o, err := openai.New("sk-test", openai.WithBaseURL(srv.URL), openai.WithModel("tiny"), openai.WithMaxRetries(0))
	require.NoError(t, err)

	raw, err := o.Classify(context.Background(), oracle.Request{
		Shape:  oracle.ShapeValidation,
		System: "system prompt",
		Prompt: "Wiadomość klienta: latte",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"is_valid": true}`, raw)

	assert.Equal(t, "tiny", got.Model)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
}

func TestOracle_ServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`)
	}))
	defer srv.Close()

	o, err := openai.New("sk-test", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = o.Classify(context.Background(), oracle.Request{Shape: oracle.ShapeTurn})
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestOracle_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"x","object":"chat.completion","created":0,"model":"m","choices":[]}`)
	}))
	defer srv.Close()

	o, err := openai.New("sk-test", openai.WithBaseURL(srv.URL), openai.WithMaxRetries(0))
	require.NoError(t, err)

	_, err = o.Classify(context.Background(), oracle.Request{Shape: oracle.ShapeTurn})
	assert.ErrorContains(t, err, "no choices")
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := openai.New("  ")
	assert.ErrorIs(t, err, openai.ErrNoAPIKey)

	o, err := openai.New("sk")
	require.NoError(t, err)
	assert.Equal(t, openai.DefaultModel, o.Model())
}
