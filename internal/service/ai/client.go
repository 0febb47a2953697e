package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/meltyapp/backend/internal/config"
)

// Turn 是传给上游的一个历史回合。
type Turn struct {
	Role string // "user" 或 "model"
	Text string
}

// SummaryUnavailable 是摘要生成失败时展示给用户的兜底文案。
const SummaryUnavailable = "暂时无法连接到 AI。"

// summaryFallback 在上游返回空内容时使用。
const summaryFallback = "记录下这一刻的心情，是自我关怀的开始。"

const summaryInstruction = `请将以下日记内容总结为一句温暖且富有洞察力的话，送给这位同学。关注潜在的情绪。请用中文回答，不要超过50字。日记内容: %q`

// Client 调用 Gemini 风格的生成式接口。
// 流式路径刻意返回未解析的原始响应体：中继自己负责按字节流
// 增量提取文本，客户端超时交给调用方的 context 控制。
type Client struct {
	httpClient      *http.Client
	baseURL         string
	apiKey          string
	model           string
	temperature     float64
	maxOutputTokens int
}

// NewClient builds an upstream client from configuration.
func NewClient(cfg config.AIConfig) *Client {
	return &Client{
		httpClient:      &http.Client{},
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		model:           cfg.Model,
		temperature:     cfg.Temperature,
		maxOutputTokens: cfg.MaxOutputTokens,
	}
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// StreamGenerate 发起流式生成请求并返回原始响应体。
// 调用方负责读完并关闭返回的流。
func (c *Client) StreamGenerate(ctx context.Context, systemPrompt string, history []Turn, userMessage string) (io.ReadCloser, error) {
	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		role := "model"
		if turn.Role == "user" {
			role = "user"
		}
		contents = append(contents, content{Role: role, Parts: []part{{Text: turn.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: userMessage}}})

	payload := generateRequest{
		Contents:          contents,
		SystemInstruction: &content{Parts: []part{{Text: systemPrompt}}},
		GenerationConfig:  &generationConfig{Temperature: c.temperature, MaxOutputTokens: c.maxOutputTokens},
	}

	resp, err := c.post(ctx, "streamGenerateContent", payload)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// GenerateOnce 发起一次非流式生成调用并返回首个候选的文本。
func (c *Client) GenerateOnce(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{Temperature: c.temperature, MaxOutputTokens: 200},
	}

	resp, err := c.post(ctx, "generateContent", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode upstream response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// SummarizeJournal 为一篇日记生成一句话总结。
func (c *Client) SummarizeJournal(ctx context.Context, entry string) (string, error) {
	text, err := c.GenerateOnce(ctx, fmt.Sprintf(summaryInstruction, entry))
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return summaryFallback, nil
	}
	return text, nil
}

func (c *Client) post(ctx context.Context, method string, payload generateRequest) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode upstream request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:%s?key=%s", c.baseURL, c.model, method, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		resp.Body.Close()
		return nil, fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return resp, nil
}
