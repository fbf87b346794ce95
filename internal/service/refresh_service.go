package service

import (
	"context"
	"time"

	"cafe-assistant-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IRefreshService drives periodic catalog refreshes over the in-process
// event bus: a ticker publishes refresh events, a consumer rebuilds the
// corpus. Decoupling the trigger from the rebuild keeps the rebuild
// single-flight even if multiple triggers fire.
type IRefreshService interface {
	Consume(ctx context.Context) error
	StartTicker(ctx context.Context)
}

type refreshService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	interval  time.Duration
	assistant IAssistantService
	sysLogger logger.ILogger
}

func NewRefreshService(
	pubSub *gochannel.GoChannel,
	topicName string,
	interval time.Duration,
	assistant IAssistantService,
	sysLogger logger.ILogger,
) IRefreshService {
	return &refreshService{
		pubSub:    pubSub,
		topicName: topicName,
		interval:  interval,
		assistant: assistant,
		sysLogger: sysLogger,
	}
}

func (rs *refreshService) Consume(ctx context.Context) error {
	messages, err := rs.pubSub.Subscribe(ctx, rs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			rs.assistant.RefreshCatalog(ctx)
			msg.Ack()
		}
	}()

	return nil
}

// StartTicker publishes one immediate refresh, then one per interval,
// until the context is cancelled.
func (rs *refreshService) StartTicker(ctx context.Context) {
	publish := func() {
		msg := message.NewMessage(watermill.NewUUID(), []byte("{}"))
		if err := rs.pubSub.Publish(rs.topicName, msg); err != nil {
			rs.sysLogger.Warn("catalog", "failed to publish refresh event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	publish()

	ticker := time.NewTicker(rs.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				publish()
			}
		}
	}()
}
