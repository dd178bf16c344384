package services

import (
	"context"
	"log/slog"

	"github.com/praveen001/trailmap/internal/config"
	"github.com/praveen001/trailmap/internal/db"
	"github.com/praveen001/trailmap/internal/pubsub"
	access2 "github.com/praveen001/trailmap/internal/services/access"
	activity2 "github.com/praveen001/trailmap/internal/services/activity"
	assembler2 "github.com/praveen001/trailmap/internal/services/assembler"
	assignment2 "github.com/praveen001/trailmap/internal/services/assignment"
	note2 "github.com/praveen001/trailmap/internal/services/note"
	progress2 "github.com/praveen001/trailmap/internal/services/progress"
	roadmap2 "github.com/praveen001/trailmap/internal/services/roadmap"
	user2 "github.com/praveen001/trailmap/internal/services/user"
)

type Services struct {
	Access     *access2.AccessService
	User       *user2.UserService
	Roadmap    *roadmap2.RoadmapService
	Progress   *progress2.ProgressService
	Note       *note2.NoteService
	Assignment *assignment2.AssignmentService
	Assembler  *assembler2.AssemblerService
	Activity   *activity2.ActivityService

	pubsub *pubsub.PubSub
}

func NewServices(conf *config.Config) *Services {
	dbconn := db.NewConn(conf)

	accessCache := access2.NewCache(conf)
	accessSvc := access2.NewAccessService(access2.NewAccessRepo(dbconn), accessCache)

	roadmapRepo := roadmap2.NewRoadmapRepo(dbconn)
	progressRepo := progress2.NewProgressRepo(dbconn)
	noteRepo := note2.NewNoteRepo(dbconn)

	var activitySvc *activity2.ActivityService
	if conf.CLICKHOUSE_HOST != "" {
		chConn, err := activity2.NewClickHouseConn(&activity2.ClickHouseConfig{
			Host:     conf.CLICKHOUSE_HOST,
			Port:     conf.CLICKHOUSE_PORT,
			Database: conf.CLICKHOUSE_DATABASE,
			Username: conf.CLICKHOUSE_USERNAME,
			Password: conf.CLICKHOUSE_PASSWORD,
			UseTLS:   conf.CLICKHOUSE_USE_TLS,
		})
		if err != nil {
			slog.Warn("Failed to connect to ClickHouse for the activity log", slog.Any("error", err))
		} else {
			activitySvc = activity2.NewActivityService(chConn)
			if err := activitySvc.EnsureSchema(context.Background()); err != nil {
				slog.Warn("Failed to prepare activity schema", slog.Any("error", err))
				activitySvc = nil
			} else {
				slog.Info("Connected to ClickHouse for the activity log")
			}
		}
	}

	svc := &Services{
		Access:     accessSvc,
		User:       user2.NewUserService(user2.NewUserRepo(dbconn)),
		Roadmap:    roadmap2.NewRoadmapService(roadmapRepo, accessSvc),
		Progress:   progress2.NewProgressService(progressRepo, accessSvc),
		Note:       note2.NewNoteService(noteRepo, accessSvc),
		Assignment: assignment2.NewAssignmentService(assignment2.NewAssignmentRepo(dbconn), accessSvc),
		Assembler:  assembler2.NewAssemblerService(accessSvc, roadmapRepo, progressRepo, noteRepo),
		Activity:   activitySvc,
	}

	// Cross-instance access-cache invalidation. Only worth the listener when
	// a cache is actually configured.
	if accessCache != nil {
		ps := pubsub.NewPubSub(conf)
		ps.Subscribe(func(event pubsub.AccessChangeEvent) {
			ctx := context.Background()
			if event.Operation == "RELOAD" {
				accessSvc.InvalidateAllCached(ctx)
				return
			}
			accessSvc.InvalidateCached(ctx, event.RoadmapID, event.UserID)
		})
		if err := ps.Start(); err != nil {
			slog.Warn("Failed to start access-change listener", slog.Any("error", err))
		} else {
			svc.pubsub = ps
		}
	}

	return svc
}

// Close stops background listeners.
func (s *Services) Close() {
	if s.pubsub != nil {
		s.pubsub.Stop()
	}
}
