package wire

import (
	"encoding/json"
	"strings"
)

// SessionIDHeader 在响应头中暴露本次请求解析出的会话ID，
// 客户端在读取任何响应体之前即可拿到服务端新建的会话。
const SessionIDHeader = "X-Chat-Session-Id"

// framingPrefix 是下游行协议的事件标记，解析前需要剥离。
const framingPrefix = "data:"

// Event 是中继下发的单个行级事件：要么携带一段增量文本，
// 要么是带 done 标记的终止事件（附带会话ID）。不落库。
type Event struct {
	Content   string `json:"content,omitempty"`
	Text      string `json:"text,omitempty"`
	Done      bool   `json:"done,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
}

// Delta 返回事件携带的增量文本，content 优先于 text。
func (e Event) Delta() string {
	if e.Content != "" {
		return e.Content
	}
	return e.Text
}

// DecodeLine 解析一行下游事件。行首允许带 "data:" 前缀；
// 空行或无法解析的行返回 ok=false，调用方应当跳过而不是报错。
func DecodeLine(line string) (Event, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return Event{}, false
	}

	if strings.HasPrefix(trimmed, framingPrefix) {
		trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, framingPrefix))
		if trimmed == "" {
			return Event{}, false
		}
	}

	var event Event
	if err := json.Unmarshal([]byte(trimmed), &event); err != nil {
		return Event{}, false
	}
	return event, true
}
