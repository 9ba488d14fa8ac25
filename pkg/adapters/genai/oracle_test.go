package genai_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/kawiarnia/pkg/adapters/genai"
	"github.com/aretw0/kawiarnia/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gemini(t *testing.T, reply string, seen *map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			http.NotFound(w, r)
			return
		}
		if seen != nil {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, seen)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
}

func TestOracle_Classify(t *testing.T) {
	var seen map[string]any
	srv := gemini(t, `{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"is_valid\": false}"}]}}]}`, &seen)
	defer srv.Close()

	ctx := context.Background()
	o, err := genai.New(ctx, "key", genai.WithBaseURL(srv.URL), genai.WithModel("tiny"))
	require.NoError(t, err)
	assert.Equal(t, "tiny", o.Model())

	raw, err := o.Classify(ctx, oracle.Request{Shape: oracle.ShapeValidation, System: "rules", Prompt: "hej"})
	require.NoError(t, err)
	assert.Equal(t, `{"is_valid": false}`, raw)

	require.NotNil(t, seen)
	genCfg, ok := seen["generationConfig"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
	assert.Contains(t, seen, "systemInstruction")
}

func TestOracle_EmptyResponse(t *testing.T) {
	srv := gemini(t, `{"candidates":[]}`, nil)
	defer srv.Close()

	ctx := context.Background()
	o, err := genai.New(ctx, "key", genai.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = o.Classify(ctx, oracle.Request{Shape: oracle.ShapeTurn, Prompt: "latte"})
	assert.Error(t, err)
}

func TestNew_RequiresKey(t *testing.T) {
	_, err := genai.New(context.Background(), "")
	assert.ErrorIs(t, err, genai.ErrNoAPIKey)
}
