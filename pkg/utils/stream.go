package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// StreamHeaders 设置行分隔事件流的响应头。
func StreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// SendStreamLine 把 payload 作为一行 "data: {json}" 事件写出并立即刷新。
// 写失败（通常是客户端断开）时返回错误，调用方据此停止推送。
func SendStreamLine(w http.ResponseWriter, flusher http.Flusher, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal stream payload: %w", err)
	}

	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
