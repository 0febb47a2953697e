package mood

import "strings"

// Tag 表示消息上可附带的情绪标签，取值为封闭枚举。
type Tag string

const (
	Happy   Tag = "HAPPY"
	Anxious Tag = "ANXIOUS"
	Sad     Tag = "SAD"
	Angry   Tag = "ANGRY"
)

// rule 是一条有序规则：只要任一关键词出现在文本中即命中。
type rule struct {
	tag      Tag
	keywords []string
}

// rules 自上而下求值，第一条命中的规则获胜，不做加权或打分。
// 同时含有多类关键词的文本按此顺序确定性地归类。
var rules = []rule{
	{Happy, []string{"开心", "高兴", "快乐"}},
	{Anxious, []string{"焦虑", "紧张", "担心"}},
	{Sad, []string{"难过", "伤心", "沮丧"}},
	{Angry, []string{"生气", "愤怒", "烦躁"}},
}

// Detect 对用户消息做轻量关键词情绪识别。
// 无命中时返回 ok=false，消息不带情绪标签。
func Detect(text string) (Tag, bool) {
	normalized := strings.ToLower(text)
	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(normalized, keyword) {
				return r.tag, true
			}
		}
	}
	return "", false
}
