package chat

import (
	"context"
	"errors"

	"github.com/meltyapp/backend/internal/model/chat"
)

var (
	ErrPersonaRequired = errors.New("persona id is required")
	ErrSessionNotFound = errors.New("session not found")
)

// Store persists chat sessions and their messages.
// 中继是 model 角色消息的唯一写入方；客户端发起的 user 角色消息
// 也经由同一写入口落库。
type Store interface {
	CreateSession(ctx context.Context, userID, personaID string) (chat.Session, error)
	GetSession(ctx context.Context, sessionID string) (chat.Session, error)
	ListSessions(ctx context.Context, userID string) ([]chat.Session, error)
	SaveMessage(ctx context.Context, message chat.Message) error
	LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error)
}
