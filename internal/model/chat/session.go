package chat

import "time"

// Session 把一位用户在某个 persona 下的消息聚成一次会话。
// 首条消息时创建，之后不再变更。
type Session struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;index"`
	Persona   string    `json:"persona" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Session) TableName() string {
	return "chat_sessions"
}
