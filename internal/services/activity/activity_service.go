package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/google/uuid"
)

// ActivityService records mutation events against roadmaps in ClickHouse.
// The whole service is optional; a nil *ActivityService is a no-op recorder.
type ActivityService struct {
	conn driver.Conn
}

func NewActivityService(conn driver.Conn) *ActivityService {
	return &ActivityService{conn: conn}
}

// EnsureSchema creates the activity table when it does not exist yet.
func (s *ActivityService) EnsureSchema(ctx context.Context) error {
	err := s.conn.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS roadmap_activity (
            Timestamp DateTime64(3) DEFAULT now64(3),
            RoadmapId UUID,
            UserId UUID,
            Action LowCardinality(String),
            Detail String
        )
        ENGINE = MergeTree
        ORDER BY (RoadmapId, Timestamp)
        TTL toDateTime(Timestamp) + INTERVAL 90 DAY
    `)
	if err != nil {
		return fmt.Errorf("failed to create activity table: %w", err)
	}

	return nil
}

// Record writes one event. Failures are logged, never surfaced to the
// request path; the activity log is best effort.
func (s *ActivityService) Record(ctx context.Context, roadmapID, userID uuid.UUID, action, detail string) {
	if s == nil {
		return
	}

	err := s.conn.AsyncInsert(ctx, `
        INSERT INTO roadmap_activity (Timestamp, RoadmapId, UserId, Action, Detail)
        VALUES (?, ?, ?, ?, ?)
    `, false, time.Now(), roadmapID, userID, action, detail)
	if err != nil {
		slog.Warn("Failed to record activity", slog.String("action", action), slog.Any("error", err))
	}
}

// List returns a roadmap's most recent events, newest first.
func (s *ActivityService) List(ctx context.Context, roadmapID uuid.UUID, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 1000 {
		limit = 1000
	}

	rows, err := s.conn.Query(ctx, `
        SELECT Timestamp, RoadmapId, UserId, Action, Detail
        FROM roadmap_activity
        WHERE RoadmapId = ?
        ORDER BY Timestamp DESC
        LIMIT ?
    `, roadmapID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Timestamp, &e.RoadmapID, &e.UserID, &e.Action, &e.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}
