package storyshow

import (
	"errors"
	"sync"
	"time"
)

// 快拍放映机：跨作者桶自动推进的放映状态机。
// 定时器和回调由 Player 自己持有，Start/Stop 配对，任何退出路径都会释放。

type Story struct {
	ID      int64
	OwnerID uint64
}

// Bucket 一个作者的一组快拍，顺序即放映顺序
type Bucket struct {
	Author  uint64
	Stories []Story
}

// Snapshot 对外暴露的放映状态
type Snapshot struct {
	Closed      bool
	AuthorIndex int
	StoryIndex  int
	Progress    int // 0..100
}

type Options struct {
	// 单条播放时长，默认 5s
	Duration time.Duration
	// 进度 tick，默认 50ms
	Tick time.Duration
	// ViewerID 当前观众，用于跳过作者本人的观看上报
	ViewerID uint64
	// OnChange 每次状态变化（包括进度 tick）回调
	OnChange func(Snapshot)
	// OnView 一条快拍首次展示给非作者观众时回调，同一条只会触发一次
	OnView func(storyID int64, ownerID uint64)
	// OnClose 放映结束（自动播完或手动关闭）回调
	OnClose func()
}

type Player struct {
	opts    Options
	buckets []Bucket

	mu       sync.Mutex
	closed   bool
	started  bool
	author   int
	story    int
	elapsed  time.Duration
	reported map[int64]struct{}

	quit     chan struct{}
	quitOnce sync.Once
}

func NewPlayer(buckets []Bucket, opts Options) *Player {
	if opts.Duration <= 0 {
		opts.Duration = 5 * time.Second
	}
	if opts.Tick <= 0 {
		opts.Tick = 50 * time.Millisecond
	}
	return &Player{
		opts:     opts,
		buckets:  buckets,
		closed:   true,
		reported: make(map[int64]struct{}),
		quit:     make(chan struct{}),
	}
}

// Start 从指定位置开始放映并启动计时。重复 Start 返回错误，
// 不会出现两个计时器并存。
func (p *Player) Start(authorIdx, storyIdx int) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return errors.New("player already started")
	}
	if !p.validIndex(authorIdx, storyIdx) {
		p.mu.Unlock()
		return errors.New("invalid start index")
	}
	p.started = true
	p.closed = false
	p.author = authorIdx
	p.story = storyIdx
	p.elapsed = 0
	view, report := p.pendingViewLocked()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.fireView(view, report)
	p.emit(snap)

	go p.run()
	return nil
}

func (p *Player) run() {
	ticker := time.NewTicker(p.opts.Tick)
	defer ticker.Stop()

	for {
		select {
		case <-p.quit:
			return
		case <-ticker.C:
			if p.tick() {
				return
			}
		}
	}
}

// tick 返回 true 表示放映已结束，run 循环该退出了。
// 回调一律在锁外触发，回调里再调 Stop 也不会卡住。
func (p *Player) tick() bool {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return true
	}

	p.elapsed += p.opts.Tick
	if p.elapsed < p.opts.Duration {
		snap := p.snapshotLocked()
		p.mu.Unlock()
		p.emit(snap)
		return false
	}

	finished, view, report, snap := p.advanceAndCollectLocked()
	p.mu.Unlock()

	if finished {
		p.fireClose()
		return true
	}
	p.fireView(view, report)
	p.emit(snap)
	return false
}

// Next 手动切下一条，行为等同提前播完
func (p *Player) Next() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	finished, view, report, snap := p.advanceAndCollectLocked()
	p.mu.Unlock()

	if finished {
		p.fireClose()
		return
	}
	p.fireView(view, report)
	p.emit(snap)
}

// Previous 手动切上一条：回退一条，或上一个作者的最后一条；
// 已经在第一个作者第一条时什么都不做。
func (p *Player) Previous() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}

	switch {
	case p.story > 0:
		p.story--
	case p.author > 0:
		p.author--
		p.story = len(p.buckets[p.author].Stories) - 1
	default:
		// 已经是最开始，no-op
		p.mu.Unlock()
		return
	}

	p.elapsed = 0
	view, report := p.pendingViewLocked()
	snap := p.snapshotLocked()
	p.mu.Unlock()

	p.fireView(view, report)
	p.emit(snap)
}

// Stop 关闭放映并通知计时 goroutine 退出。只发信号不等待，
// 可重复调用，也可以在任意回调里调用。
func (p *Player) Stop() {
	p.mu.Lock()
	wasClosed := p.closed
	p.closed = true
	p.mu.Unlock()

	p.quitOnce.Do(func() { close(p.quit) })

	if !wasClosed {
		p.fireClose()
	}
}

func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// advanceAndCollectLocked 推进到下一条/下一个作者，没有更多内容时置为
// closed 并返回 finished=true。待上报的观看和新快照一并带出，回调留给锁外。
func (p *Player) advanceAndCollectLocked() (finished bool, view Story, report bool, snap Snapshot) {
	bucket := p.buckets[p.author]

	if p.story+1 < len(bucket.Stories) {
		p.story++
	} else if p.author+1 < len(p.buckets) {
		p.author++
		p.story = 0
	} else {
		p.closed = true
		return true, Story{}, false, Snapshot{}
	}

	p.elapsed = 0
	view, report = p.pendingViewLocked()
	return false, view, report, p.snapshotLocked()
}

// pendingViewLocked 当前条目需要首次上报时记账并返回，上报动作留到锁外
func (p *Player) pendingViewLocked() (Story, bool) {
	story := p.buckets[p.author].Stories[p.story]
	if p.opts.OnView == nil || story.OwnerID == p.opts.ViewerID {
		return Story{}, false
	}
	if _, ok := p.reported[story.ID]; ok {
		return Story{}, false
	}
	p.reported[story.ID] = struct{}{}
	return story, true
}

func (p *Player) fireView(story Story, report bool) {
	if report {
		p.opts.OnView(story.ID, story.OwnerID)
	}
}

func (p *Player) emit(snap Snapshot) {
	if p.opts.OnChange != nil {
		p.opts.OnChange(snap)
	}
}

func (p *Player) fireClose() {
	if p.opts.OnClose != nil {
		p.opts.OnClose()
	}
}

func (p *Player) snapshotLocked() Snapshot {
	if p.closed {
		return Snapshot{Closed: true}
	}
	progress := int(p.elapsed * 100 / p.opts.Duration)
	if progress > 100 {
		progress = 100
	}
	return Snapshot{
		AuthorIndex: p.author,
		StoryIndex:  p.story,
		Progress:    progress,
	}
}

func (p *Player) validIndex(authorIdx, storyIdx int) bool {
	if authorIdx < 0 || authorIdx >= len(p.buckets) {
		return false
	}
	return storyIdx >= 0 && storyIdx < len(p.buckets[authorIdx].Stories)
}
