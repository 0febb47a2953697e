package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meltyapp/backend/internal/model/chat"
)

// GormStore 用 chat_sessions / chat_messages 两张表持久化会话数据。
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm connection as a chat Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) CreateSession(ctx context.Context, userID, personaID string) (chat.Session, error) {
	if personaID == "" {
		return chat.Session{}, ErrPersonaRequired
	}

	session := chat.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Persona:   personaID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *GormStore) GetSession(ctx context.Context, sessionID string) (chat.Session, error) {
	var session chat.Session
	err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return chat.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return chat.Session{}, fmt.Errorf("get session: %w", err)
	}
	return session, nil
}

func (s *GormStore) ListSessions(ctx context.Context, userID string) ([]chat.Session, error) {
	var sessions []chat.Session
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (s *GormStore) SaveMessage(ctx context.Context, message chat.Message) error {
	if message.SessionID == "" {
		return ErrSessionNotFound
	}

	message.ID = uuid.NewString()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return fmt.Errorf("save message: %w", err)
	}
	return nil
}

func (s *GormStore) LoadTranscript(ctx context.Context, sessionID string) ([]chat.Message, error) {
	// 先确认会话存在，让未知会话稳定地映射到 ErrSessionNotFound。
	if _, err := s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var messages []chat.Message
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}
	return messages, nil
}
