package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherreport.app/config"
	apperrors "weatherreport.app/pkg/errors"
)

func newOllamaTestGenerator(handler http.HandlerFunc) (*OllamaGenerator, *httptest.Server) {
	server := httptest.NewServer(handler)
	generator := NewOllamaGenerator(&config.GeneratorConfig{
		BaseURL:        server.URL,
		Model:          "mistral",
		TimeoutSeconds: 5,
	})
	return generator, server
}

func TestOllamaGenerator_Generate(t *testing.T) {
	generator, server := newOllamaTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "mistral", body["model"])
		assert.Equal(t, false, body["stream"])
		assert.NotEmpty(t, body["prompt"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"A pleasant afternoon in Atlanta."}`))
	})
	defer server.Close()

	text, err := generator.Generate(context.Background(), "describe the weather")

	require.NoError(t, err)
	assert.Equal(t, "A pleasant afternoon in Atlanta.", text)
}

func TestOllamaGenerator_ServerError(t *testing.T) {
	generator, server := newOllamaTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer server.Close()

	text, err := generator.Generate(context.Background(), "describe the weather")

	assert.Empty(t, text)
	assert.True(t, apperrors.IsGenerationError(err))
}

func TestOllamaGenerator_EmptyResponse(t *testing.T) {
	generator, server := newOllamaTestGenerator(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	})
	defer server.Close()

	text, err := generator.Generate(context.Background(), "describe the weather")

	assert.Empty(t, text)
	assert.True(t, apperrors.IsGenerationError(err))
}

func TestOllamaGenerator_Unreachable(t *testing.T) {
	generator := NewOllamaGenerator(&config.GeneratorConfig{
		BaseURL:        "http://127.0.0.1:1",
		Model:          "mistral",
		TimeoutSeconds: 1,
	})

	_, err := generator.Generate(context.Background(), "describe the weather")
	assert.True(t, apperrors.IsGenerationError(err))
}
