package config

import "time"

// ProductConfig 产品层面的可调参数。
// 这些都是前端交互里沿用下来的经验值，没有更深的依据，所以做成配置而不是写死。
type ProductConfig struct {
	// 单条快拍播放时长（毫秒），默认 5000
	StoryDurationMs int `json:"story_duration_ms" yaml:"story_duration_ms"`
	// 播放进度 tick（毫秒），默认 50
	StoryTickMs int `json:"story_tick_ms" yaml:"story_tick_ms"`
	// 快拍有效期（小时），默认 24
	StoryTTLHours int `json:"story_ttl_hours" yaml:"story_ttl_hours"`
	// 快拍签名 URL 有效期（秒），默认 3600
	StorySignTTLSeconds int `json:"story_sign_ttl_seconds" yaml:"story_sign_ttl_seconds"`
	// 用户搜索返回上限，默认 10
	SearchLimit int `json:"search_limit" yaml:"search_limit"`
	// 聊天机器人保留的上下文轮数，默认 6
	ChatbotHistoryTurns int `json:"chatbot_history_turns" yaml:"chatbot_history_turns"`
	// 私密文档在私有桶里的 objectKey 列表（简历、成绩单）
	DocumentKeys []string `json:"document_keys" yaml:"document_keys"`
}

func (p *ProductConfig) fillDefaults() {
	if p.StoryDurationMs <= 0 {
		p.StoryDurationMs = 5000
	}
	if p.StoryTickMs <= 0 {
		p.StoryTickMs = 50
	}
	if p.StoryTTLHours <= 0 {
		p.StoryTTLHours = 24
	}
	if p.StorySignTTLSeconds <= 0 {
		p.StorySignTTLSeconds = 3600
	}
	if p.SearchLimit <= 0 {
		p.SearchLimit = 10
	}
	if p.ChatbotHistoryTurns <= 0 {
		p.ChatbotHistoryTurns = 6
	}
}

func ProvideProductConfig(cfg *Config) *ProductConfig {
	return cfg.Product
}

func (p *ProductConfig) StoryDuration() time.Duration {
	return time.Duration(p.StoryDurationMs) * time.Millisecond
}

func (p *ProductConfig) StoryTick() time.Duration {
	return time.Duration(p.StoryTickMs) * time.Millisecond
}

func (p *ProductConfig) StoryTTL() time.Duration {
	return time.Duration(p.StoryTTLHours) * time.Hour
}
