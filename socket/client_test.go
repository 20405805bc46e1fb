package socket

import (
	"context"
	"testing"
	"time"

	"Lumen/config"
	"Lumen/service"
	"Lumen/types"

	"github.com/tidwall/gjson"
)

// slowMessage 只实现 OpenChat：带放行通道的 peer 会挂住，
// 用来模拟先发起的拉取后返回
type slowMessage struct {
	service.IMessageService
	gate map[uint64]chan struct{}
	got  chan uint64
}

func (s *slowMessage) OpenChat(ctx context.Context, userID, peerID uint64) (*types.ChatHistoryDTO, error) {
	s.got <- peerID
	if gate, ok := s.gate[peerID]; ok {
		<-gate
	}
	return &types.ChatHistoryDTO{Peer: types.UserBrief{Id: peerID}}, nil
}

func waitOpenChat(t *testing.T, got chan uint64, want uint64) {
	t.Helper()
	select {
	case p := <-got:
		if p != want {
			t.Fatalf("expected OpenChat(%d), got OpenChat(%d)", want, p)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("OpenChat was not called")
	}
}

func drainEvents(c *Client) []gjson.Result {
	var out []gjson.Result
	for {
		select {
		case data := <-c.out:
			out = append(out, gjson.ParseBytes(data))
		default:
			return out
		}
	}
}

// 拉 A 的历史还在路上时切到 B：A 的响应落地前版本已变，整包丢弃，
// 客户端只会收到 B 的历史
func TestOpenChatDiscardsStaleResponse(t *testing.T) {
	msg := &slowMessage{
		gate: map[uint64]chan struct{}{1: make(chan struct{})},
		got:  make(chan uint64, 2),
	}
	c := NewClient(1, 100, nil, msg, nil, &config.ProductConfig{})

	done := make(chan struct{})
	go func() {
		c.openChat(context.Background(), 1)
		close(done)
	}()
	waitOpenChat(t, msg.got, 1)

	c.openChat(context.Background(), 2)
	waitOpenChat(t, msg.got, 2)

	close(msg.gate[1])
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first openChat did not finish")
	}

	var histories []gjson.Result
	for _, ev := range drainEvents(c) {
		if ev.Get("event").String() == EventChatHistory {
			histories = append(histories, ev)
		}
	}
	if len(histories) != 1 {
		t.Fatalf("expected exactly one chat_history, got %d", len(histories))
	}
	if got := histories[0].Get("payload.history.peer.id").Uint(); got != 2 {
		t.Fatalf("expected history for peer 2, got peer %d", got)
	}
	if got := histories[0].Get("payload.version").Uint(); got != 2 {
		t.Fatalf("expected version 2, got %d", got)
	}
}

// 拉取途中关掉线程面板，迟到的历史同样作废
func TestCloseChatInvalidatesPendingHistory(t *testing.T) {
	msg := &slowMessage{
		gate: map[uint64]chan struct{}{1: make(chan struct{})},
		got:  make(chan uint64, 1),
	}
	c := NewClient(1, 100, nil, msg, nil, &config.ProductConfig{})

	done := make(chan struct{})
	go func() {
		c.openChat(context.Background(), 1)
		close(done)
	}()
	waitOpenChat(t, msg.got, 1)

	c.closeChat()
	close(msg.gate[1])
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("openChat did not finish")
	}

	for _, ev := range drainEvents(c) {
		if ev.Get("event").String() == EventChatHistory {
			t.Fatal("stale chat_history must be discarded after close_chat")
		}
	}
}
