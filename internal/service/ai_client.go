package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAnthropicBaseURL = "https://api.anthropic.com"
	defaultAnthropicModel   = "claude-3-sonnet-20240229"
	anthropicVersion        = "2023-06-01"
)

// httpDoer 抽象 HTTP 客户端，便于测试注入
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system,omitempty"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type aiChatRequest struct {
	SystemPrompt string
	UserPrompt   string
	MaxTokens    int
}

type aiChatResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// anthropicClient 封装 Anthropic Messages 接口的单次请求/响应调用
// 不做重试；除客户端整体超时外没有额外的超时或取消策略
type anthropicClient struct {
	apiKey  string
	baseURL string
	model   string
	http    httpDoer
}

func newAnthropicClient(apiKey, baseURL string) *anthropicClient {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultAnthropicBaseURL
	}
	return &anthropicClient{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: base,
		model:   defaultAnthropicModel,
		http:    &http.Client{Timeout: 180 * time.Second},
	}
}

func (c *anthropicClient) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = &http.Client{Timeout: 20 * time.Second}
		return
	}
	c.http = client
}

func (c *anthropicClient) SetBaseURL(base string) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = defaultAnthropicBaseURL
	}
	c.baseURL = base
}

func (c *anthropicClient) SetModel(model string) {
	model = strings.TrimSpace(model)
	if model == "" {
		return
	}
	c.model = model
}

// complete 同步调用一次文本生成接口并返回拼接后的文本内容。
func (c *anthropicClient) complete(ctx context.Context, req aiChatRequest) (aiChatResponse, error) {
	if c.apiKey == "" {
		return aiChatResponse{}, fmt.Errorf("anthropic api key is not configured")
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	payload := anthropicRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		System:    strings.TrimSpace(req.SystemPrompt),
		Messages: []anthropicMessage{
			{Role: "user", Content: req.UserPrompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := c.baseURL + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("x-api-key", c.apiKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "lifelog-ai/1.0")

	client := c.http
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("call anthropic api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return aiChatResponse{}, fmt.Errorf("read anthropic response: %w", err)
	}

	var completion anthropicResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return aiChatResponse{}, fmt.Errorf("decode anthropic response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		errMsg := strings.TrimSpace(completion.Error.Message)
		if errMsg == "" {
			errMsg = strings.TrimSpace(string(respBody))
		}
		if errMsg == "" {
			errMsg = resp.Status
		}
		return aiChatResponse{}, fmt.Errorf("anthropic api error: %s", errMsg)
	}

	var builder strings.Builder
	for _, block := range completion.Content {
		if block.Type == "text" {
			builder.WriteString(block.Text)
		}
	}
	content := strings.TrimSpace(builder.String())
	if content == "" {
		return aiChatResponse{}, fmt.Errorf("anthropic api returned empty content")
	}

	return aiChatResponse{
		Content:      content,
		InputTokens:  completion.Usage.InputTokens,
		OutputTokens: completion.Usage.OutputTokens,
	}, nil
}
