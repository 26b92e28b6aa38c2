package controller_catalog

import (
	"io"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/metalvault/metalvault/api/controller"
	"github.com/metalvault/metalvault/broadcast"
)

type EventController struct {
	Broadcaster *broadcast.Broadcaster
	// KeepAlive ping 间隔
	KeepAlive time.Duration
}

func NewEventController(b *broadcast.Broadcaster, keepAlive time.Duration) *EventController {
	if keepAlive <= 0 {
		keepAlive = 10 * time.Minute
	}
	return &EventController{Broadcaster: b, KeepAlive: keepAlive}
}

// Stream SSE 推送进度事件；订阅者队列满被丢弃时连接随之结束
func (c *EventController) Stream(ctx *gin.Context) {
	channel := ctx.DefaultQuery("channel", broadcast.DefaultChannel)
	sub := c.Broadcaster.Subscribe(channel)
	defer sub.Close()

	slog.Debug("event subscriber connected", "channel", channel, "subscriber", sub.ID)

	ticker := time.NewTicker(c.KeepAlive)
	defer ticker.Stop()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("X-Accel-Buffering", "no")

	events := sub.Events()
	ctx.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Request.Context().Done():
			return false
		case event, ok := <-events:
			if !ok {
				return false
			}
			ctx.SSEvent("message", event)
			return true
		case <-ticker.C:
			ctx.SSEvent("ping", gin.H{"time": time.Now().Unix()})
			return true
		}
	})
	slog.Debug("event subscriber disconnected", "channel", channel, "subscriber", sub.ID)
}

func (c *EventController) Stats(ctx *gin.Context) {
	stats := c.Broadcaster.Stats()
	controller.SuccessResponse(ctx, "channels", stats.Channels, stats.Subscribers)
}
