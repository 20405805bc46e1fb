package socket

import (
	"context"
	"sync"
	"time"

	"Lumen/config"
	"Lumen/pkg/jsonutil"
	"Lumen/pkg/log"
	"Lumen/pkg/storyshow"
	"Lumen/service"
	"Lumen/types"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	outBufSize = 64
)

// 下行事件
const (
	EventChatHistory  = "chat_history"
	EventThreadAppend = "thread_append"
	EventConversation = "conversations_updated"
	EventShowState    = "show_state"
	EventShowClosed   = "show_closed"
	EventPong         = "pong"
)

// ServerEvent websocket 下行统一信封
type ServerEvent struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// ChatHistoryPayload 打开聊天的历史推送，带版本号
type ChatHistoryPayload struct {
	Version uint64               `json:"version"`
	History *types.ChatHistoryDTO `json:"history"`
}

// Client 一条 websocket 连接，同时承载打开线程和快拍放映的视图状态。
// 订阅（fanout 投递）、线程状态和放映机都归这个对象所有，Close 统一释放。
type Client struct {
	cid  int64
	uid  uint64
	conn *websocket.Conn

	message service.IMessageService
	story   service.IStoryService
	product *config.ProductConfig

	// 打开线程的视图状态。手动拉取和异步推送都可能更新它，
	// 全部过 mu 序列化，配合版本号丢弃过期响应。
	mu            sync.Mutex
	selectedPeer  uint64
	threadVersion uint64
	player        *storyshow.Player

	out      chan []byte
	closeOne sync.Once
	quit     chan struct{}
}

func NewClient(cid int64, uid uint64, conn *websocket.Conn,
	message service.IMessageService, story service.IStoryService, product *config.ProductConfig) *Client {
	return &Client{
		cid:     cid,
		uid:     uid,
		conn:    conn,
		message: message,
		story:   story,
		product: product,
		out:     make(chan []byte, outBufSize),
		quit:    make(chan struct{}),
	}
}

// Start 启动读写循环，阻塞到连接关闭
func (c *Client) Start(ctx context.Context) {
	go c.writeLoop()
	c.readLoop(ctx)
}

func (c *Client) Close() {
	c.closeOne.Do(func() {
		c.stopShow()
		close(c.quit)
		_ = c.conn.Close()
	})
}

func (c *Client) readLoop(ctx context.Context) {
	defer c.Close()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		// 先探 event 字段再决定怎么处理，避免为每种事件建一套绑定结构
		event := gjson.GetBytes(data, "event").String()
		switch event {
		case "open_chat":
			peer := gjson.GetBytes(data, "peer_id").Uint()
			c.openChat(ctx, peer)
		case "close_chat":
			c.closeChat()
		case "start_show":
			author := int(gjson.GetBytes(data, "author_index").Int())
			story := int(gjson.GetBytes(data, "story_index").Int())
			c.startShow(ctx, author, story)
		case "next_story":
			c.withPlayer(func(p *storyshow.Player) { p.Next() })
		case "prev_story":
			c.withPlayer(func(p *storyshow.Player) { p.Previous() })
		case "stop_show":
			c.stopShow()
		case "ping":
			c.send(ServerEvent{Event: EventPong})
		default:
			log.L.Warn("unknown ws event", zap.String("event", event), zap.Uint64("uid", c.uid))
		}
	}
}

func (c *Client) writeLoop() {
	for {
		select {
		case <-c.quit:
			return
		case data := <-c.out:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.Close()
				return
			}
		}
	}
}

// openChat 设置当前线程并拉取历史。版本号在发起时递增并随响应携带，
// 响应落地前再校验一次：期间线程被切换过就整包丢弃，防止旧响应覆盖新线程。
func (c *Client) openChat(ctx context.Context, peer uint64) {
	if peer == 0 {
		return
	}

	c.mu.Lock()
	c.selectedPeer = peer
	c.threadVersion++
	version := c.threadVersion
	c.mu.Unlock()

	history, err := c.message.OpenChat(ctx, c.uid, peer)
	if err != nil {
		log.L.Error("open chat failed", zap.Error(err), zap.Uint64("uid", c.uid), zap.Uint64("peer", peer))
		return
	}

	c.mu.Lock()
	stale := c.threadVersion != version
	c.mu.Unlock()
	if stale {
		return
	}

	c.send(ServerEvent{
		Event:   EventChatHistory,
		Payload: ChatHistoryPayload{Version: version, History: history},
	})
}

func (c *Client) closeChat() {
	c.mu.Lock()
	c.selectedPeer = 0
	c.threadVersion++
	c.mu.Unlock()
}

// Deliver fanout 投递入口。属于当前打开线程的消息追加进线程，
// 无论是否命中线程都通知会话列表刷新——发送方看到自己的消息
// 也只走这条回路。
func (c *Client) Deliver(event types.MessageEvent) {
	msg := event.Message

	peer := msg.SenderId
	if msg.SenderId == c.uid {
		peer = msg.ReceiverId
	}

	c.mu.Lock()
	inThread := c.selectedPeer != 0 && c.selectedPeer == peer
	c.mu.Unlock()

	if inThread {
		c.send(ServerEvent{Event: EventThreadAppend, Payload: msg})
	}
	c.send(ServerEvent{Event: EventConversation})
}

// startShow 开启服务端驱动的快拍放映：进度 tick 和观看上报都在服务端做，
// 客户端只收 show_state 推送。重新开始会先停掉上一场。
func (c *Client) startShow(ctx context.Context, authorIdx, storyIdx int) {
	c.stopShow()

	dtoBuckets, err := c.story.LoadStories(ctx, c.uid)
	if err != nil {
		log.L.Error("load stories for show failed", zap.Error(err), zap.Uint64("uid", c.uid))
		return
	}

	buckets := make([]storyshow.Bucket, 0, len(dtoBuckets))
	for _, b := range dtoBuckets {
		bucket := storyshow.Bucket{Author: b.Author.Id}
		for _, st := range b.Stories {
			bucket.Stories = append(bucket.Stories, storyshow.Story{ID: st.Id, OwnerID: st.UserId})
		}
		buckets = append(buckets, bucket)
	}

	player := storyshow.NewPlayer(buckets, storyshow.Options{
		Duration: c.product.StoryDuration(),
		Tick:     c.product.StoryTick(),
		ViewerID: c.uid,
		OnChange: func(snap storyshow.Snapshot) {
			c.send(ServerEvent{Event: EventShowState, Payload: snap})
		},
		OnView: func(storyID int64, _ uint64) {
			if err := c.story.MarkViewed(ctx, storyID, c.uid); err != nil {
				log.L.Warn("mark story viewed failed", zap.Error(err), zap.Int64("story_id", storyID))
			}
		},
		OnClose: func() {
			c.send(ServerEvent{Event: EventShowClosed})
		},
	})

	if err := player.Start(authorIdx, storyIdx); err != nil {
		log.L.Warn("start show failed", zap.Error(err), zap.Uint64("uid", c.uid))
		return
	}

	c.mu.Lock()
	c.player = player
	c.mu.Unlock()
}

func (c *Client) stopShow() {
	c.mu.Lock()
	player := c.player
	c.player = nil
	c.mu.Unlock()

	if player != nil {
		player.Stop()
	}
}

func (c *Client) withPlayer(fn func(*storyshow.Player)) {
	c.mu.Lock()
	player := c.player
	c.mu.Unlock()

	if player != nil {
		fn(player)
	}
}

func (c *Client) send(event ServerEvent) {
	data := []byte(jsonutil.Encode(event))
	select {
	case c.out <- data:
	default:
		// 写缓冲满说明消费端已经跟不上了，断开让客户端重连。
		// send 可能在放映回调里被调，Close 交给独立 goroutine 做
		log.L.Warn("ws out buffer full, closing", zap.Uint64("uid", c.uid), zap.Int64("cid", c.cid))
		go c.Close()
	}
}
