package socket

import (
	"strconv"
	"sync"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// Hub 在线连接注册表。一个用户可以有多个连接（多端/多标签页）。
type Hub struct {
	users cmap.ConcurrentMap[string, *clientSet]
}

type clientSet struct {
	mu    sync.RWMutex
	items map[int64]*Client
}

func NewHub() *Hub {
	return &Hub{
		users: cmap.New[*clientSet](),
	}
}

func (h *Hub) Register(c *Client) {
	key := strconv.FormatUint(c.uid, 10)
	set := h.users.Upsert(key, nil, func(exist bool, valueInMap, _ *clientSet) *clientSet {
		if exist {
			return valueInMap
		}
		return &clientSet{items: make(map[int64]*Client)}
	})

	set.mu.Lock()
	set.items[c.cid] = c
	set.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	key := strconv.FormatUint(c.uid, 10)
	set, ok := h.users.Get(key)
	if !ok {
		return
	}

	set.mu.Lock()
	delete(set.items, c.cid)
	empty := len(set.items) == 0
	set.mu.Unlock()

	if empty {
		h.users.RemoveCb(key, func(_ string, v *clientSet, exists bool) bool {
			if !exists {
				return false
			}
			v.mu.RLock()
			defer v.mu.RUnlock()
			return len(v.items) == 0
		})
	}
}

// ForUser 某用户当前所有在线连接
func (h *Hub) ForUser(uid uint64) []*Client {
	set, ok := h.users.Get(strconv.FormatUint(uid, 10))
	if !ok {
		return nil
	}

	set.mu.RLock()
	defer set.mu.RUnlock()
	clients := make([]*Client, 0, len(set.items))
	for _, c := range set.items {
		clients = append(clients, c)
	}
	return clients
}

func (h *Hub) OnlineCount() int {
	total := 0
	for item := range h.users.IterBuffered() {
		item.Val.mu.RLock()
		total += len(item.Val.items)
		item.Val.mu.RUnlock()
	}
	return total
}
