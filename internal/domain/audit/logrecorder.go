package audit

import (
	"context"
	"log/slog"
)

// LogRecorder emits entries as structured log lines instead of persisting
// them. Used where no database is available, e.g. the admin CLI; the server
// still records the authoritative entry on its side.
type LogRecorder struct {
	logger *slog.Logger
}

func NewLogRecorder(logger *slog.Logger) *LogRecorder {
	return &LogRecorder{logger: logger}
}

func (r *LogRecorder) Record(ctx context.Context, entry Entry) error {
	r.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("id", entry.ID),
		slog.String("actor_id", entry.Actor.ID),
		slog.String("actor_name", entry.Actor.Name),
		slog.String("actor_role", entry.Actor.Role),
		slog.String("action", string(entry.Action)),
		slog.String("entity", string(entry.Entity)),
		slog.String("description", entry.Description),
		slog.Bool("success", entry.Success),
		slog.Time("timestamp", entry.Timestamp),
	)
	return nil
}
