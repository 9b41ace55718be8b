package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"statgraft/internal/cache"
	"statgraft/internal/model"
	"statgraft/internal/worker"
)

// SearchClient implements Client against a Perplexity-compatible endpoint
type SearchClient struct {
	client  *openai.Client
	config  model.LookupConfig
	locale  string
	limiter *worker.Limiter
	cache   cache.Cache
}

// NewSearchClient creates a search client. cache may be nil to disable
// response caching.
func NewSearchClient(cfg model.LookupConfig, c cache.Cache) (*SearchClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("lookup API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	rpm := cfg.RequestsPerMinute
	if rpm <= 0 {
		rpm = 50
	}

	return &SearchClient{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		locale:  cfg.Locale,
		limiter: worker.NewLimiter(float64(rpm)/60.0, cfg.Burst),
		cache:   c,
	}, nil
}

// EnrichStatistic asks the collaborator for a verified version of claim,
// with source and URL. Responses are cached by claim and topic.
func (s *SearchClient) EnrichStatistic(ctx context.Context, claim string, post PostContext) (Result, error) {
	key := cache.Key(claim, post.Topic)

	if s.cache != nil {
		if data, ok := s.cache.Get(key); ok {
			var cached Result
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	result, err := s.query(ctx, s.enrichPrompt(claim, post))
	if err != nil {
		return Result{Success: false, Error: err.Error()}, err
	}

	if s.cache != nil && result.Success {
		if data, err := json.Marshal(result); err == nil {
			s.cache.Set(key, data, 0)
		}
	}

	return result, nil
}

func (s *SearchClient) query(ctx context.Context, prompt string) (Result, error) {
	endpoint := s.config.BaseURL
	if endpoint == "" {
		endpoint = "https://api.perplexity.ai"
	}
	if err := s.limiter.Wait(ctx, endpoint); err != nil {
		return Result{}, err
	}

	timeout := time.Duration(s.config.TimeoutSeconds) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	mdl := s.config.Model
	if mdl == "" {
		mdl = "sonar"
	}

	resp, err := s.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: mdl,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return Result{}, fmt.Errorf("lookup API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return Result{}, fmt.Errorf("no response from lookup API")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)

	return Result{
		Content:   content,
		Citations: extractURLs(content),
		Success:   true,
	}, nil
}

func (s *SearchClient) enrichPrompt(claim string, post PostContext) string {
	topic := post.Topic
	if topic == "" {
		topic = "Digital marketing"
	}
	category := post.Category
	if category == "" {
		category = "Marketing"
	}
	locale := s.locale
	if locale == "" {
		locale = "Sydney, Australia"
	}

	return fmt.Sprintf(`Find verified, authoritative statistics for: "%s"

**Context**:
- Topic: %s
- Category: %s
- Location: %s (prefer local data if available)
- Recency: Prefer recent data

**Requirements**:
1. Provide exact statistic with source
2. Include source name, publication year, and URL
3. Prefer: Industry reports, research studies, government data, or authoritative publications
4. If multiple sources exist, choose most reputable
5. If no exact match, provide closest relevant statistic

**Return ONLY in this format** (no extra text):
Statistic: [exact number/percentage with brief context]
Source: [Publication Name, Year]
URL: [source URL]

If no verified data found, return:
NOT_FOUND: Brief explanation why`, claim, topic, category, locale)
}

// extractURLs extracts all URLs from text using regex
func extractURLs(text string) []string {
	urlPattern := regexp.MustCompile(`https?://[^\s\)]+`)
	matches := urlPattern.FindAllString(text, -1)

	// Deduplicate
	seen := make(map[string]bool)
	var unique []string
	for _, url := range matches {
		// Clean up trailing punctuation
		url = strings.TrimRight(url, ".,;:!?")
		if !seen[url] {
			seen[url] = true
			unique = append(unique, url)
		}
	}

	return unique
}
