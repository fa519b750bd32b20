package archive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/workout"
	"github.com/google/uuid"
)

// Provider imports session archives through the workout service, so every
// imported record passes the same validation and ordering rules as live
// writes.
type Provider struct {
	svc *workout.Service
	log *slog.Logger
}

// NewProvider creates a new archive import provider.
func NewProvider(svc *workout.Service, log *slog.Logger) *Provider {
	return &Provider{svc: svc, log: log}
}

// Ingest parses an archive document and recreates its sessions for the user.
// Sessions matching an existing session's start time and name are skipped, so
// re-importing the same archive is idempotent. Open (unfinished) sessions are
// rejected; archives carry history, not live state.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing archive: %w", err)
	}

	existing, err := p.svc.ListSessions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[sessionKey(s.StartTime, s.Name)] = true
	}

	result := &ingest.Result{SessionsReceived: len(doc.Sessions)}

	for i, sess := range doc.Sessions {
		if sess.EndTime == nil {
			result.SessionsRejected++
			result.Rejected = append(result.Rejected,
				fmt.Sprintf("session %d: open sessions cannot be imported", i))
			continue
		}
		if seen[sessionKey(sess.StartTime, sess.Name)] {
			result.SessionsSkipped++
			continue
		}

		if err := p.importSession(ctx, userID, sess, result); err != nil {
			result.SessionsRejected++
			result.Rejected = append(result.Rejected,
				fmt.Sprintf("session %d (%s): %v", i, sess.Name, err))
			p.log.Warn("session import failed", "session", sess.Name, "error", err)
			continue
		}

		seen[sessionKey(sess.StartTime, sess.Name)] = true
		result.SessionsImported++
	}

	return result, nil
}

func (p *Provider) importSession(ctx context.Context, userID int, sess Session, result *ingest.Result) error {
	in := workout.CreateSessionInput{
		Notes:      sess.Notes,
		Impression: sess.Impression,
		StartTime:  &sess.StartTime,
		EndTime:    sess.EndTime,
	}
	if sess.Name != "" {
		in.Name = &sess.Name
	}

	created, err := p.svc.CreateSession(ctx, userID, in)
	if err != nil {
		return err
	}
	scope := models.SessionScope(created.ID)

	for gi, group := range sess.SetGroups {
		if len(group.Sets) == 0 {
			p.log.Warn("skipping empty set group", "session", sess.Name, "group", gi)
			continue
		}
		if group.Type != "" && group.Type != string(models.SetGroupNormal) {
			// No operation changes a group's type after creation, so
			// non-normal groups come in as NORMAL.
			p.log.Warn("set group type not preserved", "session", sess.Name, "type", group.Type)
		}

		imported, err := p.importGroup(ctx, userID, scope, group)
		if err != nil {
			return fmt.Errorf("set group %d: %w", gi, err)
		}
		result.SetGroupsImported++
		result.SetsImported += imported
	}

	return nil
}

// importGroup creates a group with its first set, appends the remaining sets,
// then patches each set's execution values in order.
func (p *Provider) importGroup(ctx context.Context, userID int, scope models.Scope, group SetGroup) (int, error) {
	created, err := p.svc.CreateSetGroup(ctx, userID, scope, group.Sets[0].ExerciseID, 1)
	if err != nil {
		return 0, err
	}

	ids := []uuid.UUID{created.Sets[0].ID}
	for _, set := range group.Sets[1:] {
		added, err := p.svc.CreateSet(ctx, userID, created.ID, set.ExerciseID)
		if err != nil {
			return 0, err
		}
		ids = append(ids, added.ID)
	}

	for i, set := range group.Sets {
		patch := workout.SetPatch{
			Reps:             &group.Sets[i].Reps,
			Weight:           &group.Sets[i].Weight,
			RestTime:         &group.Sets[i].RestTime,
			Completed:        &group.Sets[i].Completed,
			RepetitionUnitID: set.RepetitionUnitID,
			WeightUnitID:     set.WeightUnitID,
		}
		if set.Type != "" {
			t := models.SetType(set.Type)
			patch.Type = &t
		}
		if _, err := p.svc.UpdateSet(ctx, userID, ids[i], patch); err != nil {
			return 0, err
		}
	}

	if group.Comment != nil {
		if _, err := p.svc.UpdateSetGroupComment(ctx, userID, created.ID, group.Comment); err != nil {
			return 0, err
		}
	}

	return len(group.Sets), nil
}

func sessionKey(start time.Time, name string) string {
	return start.UTC().Format(time.RFC3339) + "|" + name
}
