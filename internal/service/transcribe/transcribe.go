package transcribe

import "context"

// Transcriber 把 base64 音频负载转成文本。
type Transcriber interface {
	Transcribe(ctx context.Context, audioBase64 string) (string, error)
}

// PlaceholderText 是转写服务接入前的占位回复。
const PlaceholderText = "[音频消息已接收，转写功能待实现]"

// Placeholder 是当前的占位实现，接入真实语音服务前始终返回固定文本。
type Placeholder struct{}

func (Placeholder) Transcribe(_ context.Context, _ string) (string, error) {
	return PlaceholderText, nil
}
