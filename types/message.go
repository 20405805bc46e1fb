package types

// MessageDTO 单条私信
type MessageDTO struct {
	Id         int64  `json:"id"`
	SenderId   uint64 `json:"sender_id"`
	ReceiverId uint64 `json:"receiver_id"`
	Content    string `json:"content"`
	IsRead     bool   `json:"is_read"`
	CreatedAt  int64  `json:"created_at"` // 毫秒
}

// ConversationDTO 会话摘要：每个对端恰好一条
type ConversationDTO struct {
	Peer        UserBrief `json:"peer"`
	LastMsg     string    `json:"last_msg"`
	LastMsgTime int64     `json:"last_msg_time"`
	Unread      int       `json:"unread"`
}

// ChatHistoryDTO 打开聊天返回：对端资料 + 完整历史（正序）
type ChatHistoryDTO struct {
	Peer     UserBrief    `json:"peer"`
	Messages []MessageDTO `json:"messages"`
}

type SendMessageRequest struct {
	ReceiverId uint64 `json:"receiver_id" binding:"required"`
	Content    string `json:"content"`
}

// MessageEvent 私信插入后的 fanout 事件（redis 通道 + websocket 下行共用）
type MessageEvent struct {
	Message MessageDTO `json:"message"`
}

// MessageFanoutChannel 私信事件的 redis 发布通道
const MessageFanoutChannel = "lumen:dm:event"
