package chat

import "time"

// 消息角色只有两种：用户与模型。
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message 是会话内追加写入的单个回合。
// 用户回合在调用上游前写入，模型回合只在完整回复组装完成后写入。
type Message struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID    string    `json:"sessionId" gorm:"column:session_id;type:uuid;not null;index"`
	Role         string    `json:"role" gorm:"not null"`
	Content      string    `json:"content" gorm:"type:text;not null"`
	MoodDetected string    `json:"moodDetected,omitempty" gorm:"column:mood_detected"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (Message) TableName() string {
	return "chat_messages"
}
