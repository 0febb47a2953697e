package journal

import "time"

// Entry 是一条日记：正文、当天心情，以及可选的配图和 AI 总结。
type Entry struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    string    `json:"userId" gorm:"column:user_id;not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Mood      string    `json:"mood,omitempty"`
	ImageURL  string    `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Summary   string    `json:"summary,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Entry) TableName() string {
	return "journal_entries"
}
