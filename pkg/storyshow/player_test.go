package storyshow

import (
	"sync"
	"testing"
	"time"
)

func twoBuckets() []Bucket {
	return []Bucket{
		{Author: 1, Stories: []Story{{ID: 11, OwnerID: 1}, {ID: 12, OwnerID: 1}}},
		{Author: 2, Stories: []Story{{ID: 21, OwnerID: 2}}},
	}
}

func TestPlayer_NextAcrossBuckets(t *testing.T) {
	p := NewPlayer(twoBuckets(), Options{ViewerID: 99})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	p.Next()
	snap := p.Snapshot()
	if snap.AuthorIndex != 0 || snap.StoryIndex != 1 {
		t.Fatalf("expected (0,1), got (%d,%d)", snap.AuthorIndex, snap.StoryIndex)
	}

	// 当前作者播完，跳到下一个作者的第一条
	p.Next()
	snap = p.Snapshot()
	if snap.AuthorIndex != 1 || snap.StoryIndex != 0 {
		t.Fatalf("expected (1,0), got (%d,%d)", snap.AuthorIndex, snap.StoryIndex)
	}
}

// 最后一个作者的最后一条再往后必须是 closed，不能越界
func TestPlayer_AdvancePastEndCloses(t *testing.T) {
	closed := false
	p := NewPlayer(twoBuckets(), Options{
		ViewerID: 99,
		OnClose:  func() { closed = true },
	})
	if err := p.Start(1, 0); err != nil {
		t.Fatalf("start: %v", err)
	}

	p.Next()

	snap := p.Snapshot()
	if !snap.Closed {
		t.Fatal("expected closed state")
	}
	if !closed {
		t.Fatal("expected OnClose to fire")
	}
}

// 第一个作者第一条再往前是 no-op
func TestPlayer_PreviousAtStartIsNoop(t *testing.T) {
	p := NewPlayer(twoBuckets(), Options{ViewerID: 99})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	p.Previous()
	snap := p.Snapshot()
	if snap.Closed || snap.AuthorIndex != 0 || snap.StoryIndex != 0 {
		t.Fatalf("expected unchanged (0,0), got %+v", snap)
	}
}

func TestPlayer_PreviousCrossesBucketBoundary(t *testing.T) {
	p := NewPlayer(twoBuckets(), Options{ViewerID: 99})
	if err := p.Start(1, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	p.Previous()
	snap := p.Snapshot()
	if snap.AuthorIndex != 0 || snap.StoryIndex != 1 {
		t.Fatalf("expected (0,1), got (%d,%d)", snap.AuthorIndex, snap.StoryIndex)
	}
}

// 观看上报：同一条只报一次，作者本人不报
func TestPlayer_ViewReportedOnce(t *testing.T) {
	var mu sync.Mutex
	viewed := make(map[int64]int)

	p := NewPlayer(twoBuckets(), Options{
		ViewerID: 1, // 作者 1 本人
		OnView: func(storyID int64, _ uint64) {
			mu.Lock()
			viewed[storyID]++
			mu.Unlock()
		},
	})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	p.Next() // (0,1)
	p.Next() // (1,0)
	p.Previous()
	p.Next() // 回到 (1,0)，不应再报

	mu.Lock()
	defer mu.Unlock()
	if viewed[11] != 0 || viewed[12] != 0 {
		t.Fatalf("own stories must not be reported: %v", viewed)
	}
	if viewed[21] != 1 {
		t.Fatalf("expected story 21 reported exactly once, got %d", viewed[21])
	}
}

// 自动播放：短时长下应自动推进并最终 close
func TestPlayer_TimerAutoAdvances(t *testing.T) {
	done := make(chan struct{})
	p := NewPlayer(twoBuckets(), Options{
		ViewerID: 99,
		Duration: 30 * time.Millisecond,
		Tick:     5 * time.Millisecond,
		OnClose:  func() { close(done) },
	})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("player did not auto-close in time")
	}

	if !p.Snapshot().Closed {
		t.Fatal("expected closed after auto play-through")
	}
}

func TestPlayer_DoubleStartRejected(t *testing.T) {
	p := NewPlayer(twoBuckets(), Options{ViewerID: 99})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer p.Stop()

	if err := p.Start(0, 0); err == nil {
		t.Fatal("expected error on second start")
	}
}

// 消费端掉队时连接层会从 OnChange 回调里直接 Stop，这条路径必须能返回
func TestPlayer_StopFromOnChangeReturns(t *testing.T) {
	var p *Player
	stopped := make(chan struct{})
	changes := 0

	p = NewPlayer(twoBuckets(), Options{
		ViewerID: 99,
		Duration: 30 * time.Millisecond,
		Tick:     5 * time.Millisecond,
		OnChange: func(Snapshot) {
			changes++
			if changes == 2 {
				p.Stop()
				close(stopped)
			}
		},
	})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop called from OnChange did not return")
	}
	if !p.Snapshot().Closed {
		t.Fatal("expected closed after stop")
	}
}

// show_closed 推送失败会再走一次 Close→Stop，OnClose 里重入 Stop 必须直接返回
func TestPlayer_StopFromOnCloseReturns(t *testing.T) {
	var p *Player
	stopped := make(chan struct{})

	p = NewPlayer(twoBuckets(), Options{
		ViewerID: 99,
		OnClose: func() {
			p.Stop()
			close(stopped)
		},
	})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}

	go p.Stop()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop called from OnClose did not return")
	}
}

func TestPlayer_StopIsIdempotent(t *testing.T) {
	closes := 0
	p := NewPlayer(twoBuckets(), Options{
		ViewerID: 99,
		OnClose:  func() { closes++ },
	})
	if err := p.Start(0, 0); err != nil {
		t.Fatalf("start: %v", err)
	}

	p.Stop()
	p.Stop()

	if closes != 1 {
		t.Fatalf("expected OnClose once, got %d", closes)
	}
}
