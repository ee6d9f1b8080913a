package narrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/palemoky/ai-dungeon-master/internal/config"
	"github.com/palemoky/ai-dungeon-master/internal/game/story"
)

// GroqClient Groq chat-completions 客户端
type GroqClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqClient 创建 Groq 客户端
func NewGroqClient(cfg config.NarratorConfig, apiKey string) *GroqClient {
	return &GroqClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  apiKey,
		model:   cfg.Model,
		httpClient: &http.Client{
			Timeout: cfg.TimeoutDuration(),
		},
	}
}

// chatCompletionRequest 请求体
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []story.Entry `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatCompletionResponse 响应体（只取需要的字段）
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate 发起一次阻塞的补全请求
func (c *GroqClient) Generate(ctx context.Context, messages []story.Entry, opts GenerateOptions) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: opts.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("编码请求体失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("构造请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("请求 DM 后端失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// 读取一小段错误详情便于排查
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("DM 后端返回 %d: %s", resp.StatusCode, string(detail))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("解码响应失败: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
