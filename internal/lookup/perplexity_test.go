package lookup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"

	"statgraft/internal/cache"
	"statgraft/internal/model"
)

func lookupServer(t *testing.T, content string, calls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if r.URL.Path != "/chat/completions" {
			t.Errorf("expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("expected Authorization header Bearer test-key, got %s", r.Header.Get("Authorization"))
		}

		resp := openai.ChatCompletionResponse{
			ID:     "chatcmpl-123",
			Object: "chat.completion",
			Model:  "sonar",
			Choices: []openai.ChatCompletionChoice{
				{
					Index: 0,
					Message: openai.ChatCompletionMessage{
						Role:    "assistant",
						Content: content,
					},
					FinishReason: "stop",
				},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testConfig(baseURL string) model.LookupConfig {
	return model.LookupConfig{
		APIKey:            "test-key",
		Model:             "sonar",
		BaseURL:           baseURL,
		TimeoutSeconds:    5,
		RequestsPerMinute: 6000,
		Burst:             100,
	}
}

func TestSearchClient_EnrichStatistic(t *testing.T) {
	content := "Statistic: 67% of small businesses invest in SEO\nSource: Search Engine Journal, 2024\nURL: https://example.com/seo-report"
	server := lookupServer(t, content, nil)
	defer server.Close()

	client, err := NewSearchClient(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSearchClient failed: %v", err)
	}

	result, err := client.EnrichStatistic(context.Background(), "67% of businesses", PostContext{Topic: "SEO Guide", Category: "SEO"})
	if err != nil {
		t.Fatalf("EnrichStatistic failed: %v", err)
	}

	if !result.Success {
		t.Error("expected success")
	}
	if !strings.Contains(result.Content, "Statistic: 67%") {
		t.Errorf("unexpected content: %s", result.Content)
	}
	if len(result.Citations) != 1 || result.Citations[0] != "https://example.com/seo-report" {
		t.Errorf("unexpected citations: %v", result.Citations)
	}
}

func TestSearchClient_MissingKey(t *testing.T) {
	_, err := NewSearchClient(model.LookupConfig{}, nil)
	if err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestSearchClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": {"message": "Internal Server Error", "type": "server_error"}}`))
	}))
	defer server.Close()

	client, err := NewSearchClient(testConfig(server.URL), nil)
	if err != nil {
		t.Fatalf("NewSearchClient failed: %v", err)
	}

	result, err := client.EnrichStatistic(context.Background(), "40% growth", PostContext{})
	if err == nil {
		t.Error("expected error from failing API")
	}
	if result.Success {
		t.Error("expected unsuccessful result")
	}
}

func TestSearchClient_CacheHit(t *testing.T) {
	var calls int32
	content := "Statistic: 40% growth\nSource: ABS, 2025\nURL: https://example.com/growth"
	server := lookupServer(t, content, &calls)
	defer server.Close()

	mem := cache.NewMemoryCache(time.Minute, time.Minute)
	client, err := NewSearchClient(testConfig(server.URL), mem)
	if err != nil {
		t.Fatalf("NewSearchClient failed: %v", err)
	}

	post := PostContext{Topic: "Growth", Category: "Marketing"}
	for i := 0; i < 3; i++ {
		result, err := client.EnrichStatistic(context.Background(), "40% growth", post)
		if err != nil {
			t.Fatalf("EnrichStatistic failed: %v", err)
		}
		if !result.Success {
			t.Error("expected success")
		}
	}

	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected 1 upstream call, got %d", got)
	}
}

func TestSearchClient_PromptIncludesClaimAndLocale(t *testing.T) {
	cfg := testConfig("")
	cfg.Locale = "Melbourne, Australia"
	client, err := NewSearchClient(cfg, nil)
	if err != nil {
		t.Fatalf("NewSearchClient failed: %v", err)
	}

	prompt := client.enrichPrompt("85% conversion lift", PostContext{Topic: "CRO", Category: "Conversion"})
	for _, want := range []string{`"85% conversion lift"`, "Topic: CRO", "Category: Conversion", "Melbourne, Australia", "NOT_FOUND"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestExtractURLs(t *testing.T) {
	text := "See https://example.com/a. Also (https://example.com/b) and https://example.com/a again."
	urls := extractURLs(text)
	if len(urls) != 2 {
		t.Fatalf("expected 2 unique URLs, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://example.com/a" || urls[1] != "https://example.com/b" {
		t.Errorf("unexpected URLs: %v", urls)
	}
}
