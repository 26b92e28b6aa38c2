package broadcast

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

const (
	DefaultChannel  = "default"
	DefaultCapacity = 10
)

// Subscription 单个订阅者；队列满或断开后其事件流被关闭
type Subscription struct {
	ID      string
	Channel string

	events chan Event
	b      *Broadcaster
	closed bool
}

func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Close 取消订阅，可重复调用
func (s *Subscription) Close() {
	s.b.remove(s)
}

// Broadcaster 按频道分组的发布/订阅，投递尽力而为，发布方永不阻塞
type Broadcaster struct {
	mu       sync.Mutex
	capacity int
	channels map[string]map[string]*Subscription
}

func New(capacity int) *Broadcaster {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Broadcaster{
		capacity: capacity,
		channels: make(map[string]map[string]*Subscription),
	}
}

func (b *Broadcaster) Subscribe(channel string) *Subscription {
	if channel == "" {
		channel = DefaultChannel
	}
	sub := &Subscription{
		ID:      uuid.NewString(),
		Channel: channel,
		events:  make(chan Event, b.capacity),
		b:       b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	subs, ok := b.channels[channel]
	if !ok {
		subs = make(map[string]*Subscription)
		b.channels[channel] = subs
	}
	subs[sub.ID] = sub
	slog.Debug("subscriber connected", "channel", channel, "subscriber", sub.ID)
	return sub
}

// Publish 向频道内所有订阅者投递；队列已满的订阅者被静默移除
func (b *Broadcaster) Publish(channel string, event Event) {
	if channel == "" {
		channel = DefaultChannel
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.publishLocked(channel, event)
}

// PublishAll 向全部频道投递
func (b *Broadcaster) PublishAll(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for channel := range b.channels {
		b.publishLocked(channel, event)
	}
}

func (b *Broadcaster) publishLocked(channel string, event Event) {
	for _, sub := range b.channels[channel] {
		select {
		case sub.events <- event:
		default:
			slog.Debug("subscriber queue full, dropping", "channel", channel, "subscriber", sub.ID)
			b.removeLocked(sub)
		}
	}
}

func (b *Broadcaster) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(sub)
}

// 发送与关闭都在锁内，不会向已关闭的队列写入
func (b *Broadcaster) removeLocked(sub *Subscription) {
	if sub.closed {
		return
	}
	sub.closed = true
	close(sub.events)

	subs := b.channels[sub.Channel]
	delete(subs, sub.ID)
	if len(subs) == 0 {
		delete(b.channels, sub.Channel)
	}
}

type Stats struct {
	Channels    map[string]int `json:"channels"`
	Subscribers int            `json:"subscribers"`
}

func (b *Broadcaster) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := Stats{Channels: make(map[string]int, len(b.channels))}
	for channel, subs := range b.channels {
		stats.Channels[channel] = len(subs)
		stats.Subscribers += len(subs)
	}
	return stats
}
