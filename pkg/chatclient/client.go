package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/meltyapp/backend/internal/wire"
)

var (
	ErrMessageRequired  = errors.New("message is required")
	ErrPersonaRequired  = errors.New("persona is required")
	ErrCallbackRequired = errors.New("onChunk callback is required")
)

// Chunk 是一次回调携带的逻辑事件：一段增量文本或终止信号。
// SessionID 一旦从响应头或任一事件中习得，就附在后续每次回调上。
type Chunk struct {
	Text      string
	Done      bool
	SessionID string
}

// ChunkFunc 按事件到达顺序接收解码结果。
type ChunkFunc func(Chunk)

// StreamRequest 携带一个聊天回合。
type StreamRequest struct {
	Message   string `json:"message"`
	Persona   string `json:"persona"`
	SessionID string `json:"sessionId,omitempty"`
	IsAudio   bool   `json:"isAudio,omitempty"`
	AudioData string `json:"audioData,omitempty"`
}

// Client 发起聊天请求并增量解码中继下发的行分隔事件流。
type Client struct {
	baseURL    string
	httpClient *http.Client
	identity   IdentityProvider
}

// New creates a chat client. httpClient 传 nil 时使用 http.DefaultClient。
func New(baseURL string, identity IdentityProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		identity:   identity,
	}
}

// Stream 发送一个回合并对每个解码出的事件调用一次 onChunk。
// 每次调用恰好产生一次 Done 回调：服务端没发终止事件时由
// 解码器在字节流结束处合成。解析失败的行按空事件跳过。
func (c *Client) Stream(ctx context.Context, req StreamRequest, onChunk ChunkFunc) error {
	if req.Message == "" {
		return ErrMessageRequired
	}
	if req.Persona == "" {
		return ErrPersonaRequired
	}
	if onChunk == nil {
		return ErrCallbackRequired
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.identity != nil {
		id, err := c.identity.UserID()
		if err != nil {
			return fmt.Errorf("resolve identity: %w", err)
		}
		httpReq.Header.Set("X-User-Id", id)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("chat request failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	// 先读响应头：服务端新建的会话ID在任何体字节之前就可用。
	resolved := resp.Header.Get(wire.SessionIDHeader)
	if resolved == "" {
		resolved = req.SessionID
	}
	finished := false

	emit := func(text string, done bool, eventSessionID string) {
		if finished {
			return
		}
		if resolved == "" && eventSessionID != "" {
			resolved = eventSessionID
		}
		onChunk(Chunk{Text: text, Done: done, SessionID: resolved})
		if done {
			finished = true
		}
	}

	flushLine := func(line string) {
		event, ok := wire.DecodeLine(line)
		if !ok {
			return
		}
		if event.Delta() == "" && !event.Done {
			return
		}
		emit(event.Delta(), event.Done, event.SessionID)
	}

	// 严格按换行切分；行尾未到的残段留给下一次读取，绝不提前解析。
	var buffer []byte
	chunk := make([]byte, 2048)
	for {
		n, readErr := resp.Body.Read(chunk)
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			for {
				idx := bytes.IndexByte(buffer, '\n')
				if idx < 0 {
					break
				}
				line := string(buffer[:idx])
				buffer = buffer[idx+1:]
				flushLine(line)
			}
		}
		if readErr != nil {
			if len(bytes.TrimSpace(buffer)) > 0 {
				flushLine(string(buffer))
			}
			if !finished {
				emit("", true, "")
			}
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return readErr
		}
	}
}
