package socket

import (
	"context"
	"encoding/json"

	"Lumen/pkg/log"
	"Lumen/types"

	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// 单个事件的最大并发投递数
const maxFanout = 32

// Subscriber 订阅私信 fanout 通道，把事件推给发送方和接收方的在线连接
type Subscriber struct {
	Redis *redis.Client
	Hub   *Hub
}

func NewSubscriber(rds *redis.Client, hub *Hub) *Subscriber {
	return &Subscriber{Redis: rds, Hub: hub}
}

// Start 阻塞消费，ctx 取消时退订并退出
func (s *Subscriber) Start(ctx context.Context) error {
	sub := s.Redis.Subscribe(ctx, types.MessageFanoutChannel)
	defer sub.Close()

	ch := sub.Channel()
	log.L.Info("message subscriber started", zap.String("channel", types.MessageFanoutChannel))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			var event types.MessageEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.L.Error("unmarshal fanout event failed", zap.Error(err))
				continue
			}
			s.dispatch(event)
		}
	}
}

func (s *Subscriber) dispatch(event types.MessageEvent) {
	msg := event.Message

	targets := s.Hub.ForUser(msg.ReceiverId)
	if msg.SenderId != msg.ReceiverId {
		// 发送方的各端也要推：没有本地回显，发送方看到自己的消息全靠这里
		targets = append(targets, s.Hub.ForUser(msg.SenderId)...)
	}
	if len(targets) == 0 {
		return
	}

	p := pool.New().WithMaxGoroutines(maxFanout)
	for _, c := range targets {
		c := c
		p.Go(func() {
			c.Deliver(event)
		})
	}
	p.Wait()
}
