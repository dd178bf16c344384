package pubsub

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/praveen001/trailmap/internal/config"
)

// AccessChangeEvent is a notification that access to a roadmap changed on
// some instance: an assignment row was inserted, updated or deleted, or a
// roadmap was removed. Other instances drop their cached levels in response.
type AccessChangeEvent struct {
	RoadmapID uuid.UUID
	UserID    uuid.UUID
	Operation string // INSERT, UPDATE, DELETE, RELOAD
}

// AccessChangeHandler is a callback function for access changes
type AccessChangeHandler func(event AccessChangeEvent)

// PubSub handles PostgreSQL LISTEN/NOTIFY for assignment changes
type PubSub struct {
	connStr  string
	listener *pq.Listener
	handlers []AccessChangeHandler
	mu       sync.RWMutex
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewPubSub creates a new PubSub instance
func NewPubSub(conf *config.Config) *PubSub {
	connStr := fmt.Sprintf("postgresql://%v:%v@%v:%v/%v",
		conf.DB_USERNAME, conf.DB_PASSWORD, conf.DB_HOST, conf.DB_PORT, conf.DB_NAME)
	if conf.DISABLE_TLS == "true" {
		connStr = connStr + "?sslmode=disable"
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &PubSub{
		connStr:  connStr,
		handlers: make([]AccessChangeHandler, 0),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Subscribe adds a handler for access change events
func (ps *PubSub) Subscribe(handler AccessChangeHandler) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.handlers = append(ps.handlers, handler)
}

// Start begins listening for notifications
func (ps *PubSub) Start() error {
	reportProblem := func(ev pq.ListenerEventType, err error) {
		if err != nil {
			slog.Error("PubSub listener error", slog.Any("error", err))
		}
		if ev == pq.ListenerEventConnectionAttemptFailed {
			slog.Warn("PubSub connection attempt failed, will retry")
		}
		if ev == pq.ListenerEventDisconnected {
			slog.Warn("PubSub disconnected, will attempt reconnect")
		}
		if ev == pq.ListenerEventReconnected {
			slog.Info("PubSub reconnected, flushing cached access levels")
			// Notifications may have been missed while disconnected, so
			// handlers get a RELOAD with no ids and drop everything.
			ps.notifyHandlers(AccessChangeEvent{Operation: "RELOAD"})
		}
	}

	ps.listener = pq.NewListener(ps.connStr, 10*time.Second, time.Minute, reportProblem)

	if err := ps.listener.Listen("access_changes"); err != nil {
		return fmt.Errorf("failed to listen on access_changes channel: %w", err)
	}

	slog.Info("PubSub started listening for access changes")

	// Start the notification processing goroutine
	go ps.processNotifications()

	return nil
}

// Stop closes the listener
func (ps *PubSub) Stop() {
	ps.cancel()
	if ps.listener != nil {
		ps.listener.Close()
	}
	slog.Info("PubSub stopped")
}

func (ps *PubSub) processNotifications() {
	for {
		select {
		case <-ps.ctx.Done():
			return
		case notification := <-ps.listener.Notify:
			if notification == nil {
				// Connection lost, will be handled by reportProblem callback
				continue
			}

			// Parse the payload: "operation:roadmap_id:user_id"
			parts := strings.SplitN(notification.Extra, ":", 3)
			if len(parts) != 3 {
				slog.Warn("Invalid notification payload", slog.String("payload", notification.Extra))
				continue
			}

			roadmapID, err := uuid.Parse(parts[1])
			if err != nil {
				slog.Warn("Invalid roadmap id in notification", slog.String("payload", notification.Extra))
				continue
			}

			userID, err := uuid.Parse(parts[2])
			if err != nil {
				slog.Warn("Invalid user id in notification", slog.String("payload", notification.Extra))
				continue
			}

			event := AccessChangeEvent{
				RoadmapID: roadmapID,
				UserID:    userID,
				Operation: parts[0],
			}

			slog.Debug("Received access change notification",
				slog.String("roadmap_id", event.RoadmapID.String()),
				slog.String("operation", event.Operation))

			ps.notifyHandlers(event)
		}
	}
}

func (ps *PubSub) notifyHandlers(event AccessChangeEvent) {
	ps.mu.RLock()
	handlers := make([]AccessChangeHandler, len(ps.handlers))
	copy(handlers, ps.handlers)
	ps.mu.RUnlock()

	for _, handler := range handlers {
		// Run handlers in goroutines to avoid blocking the notification loop
		go handler(event)
	}
}
