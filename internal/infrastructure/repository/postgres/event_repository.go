package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	idgen "github.com/chaeyoungson/goalgirls/internal/platform/id"
	qb "github.com/chaeyoungson/goalgirls/internal/platform/querybuilder"
)

// EventRepository persists match events. Public identifiers are generated
// here on create, so callers always get the stored id back.
type EventRepository struct {
	db  *sqlx.DB
	ids idgen.Generator
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db, ids: idgen.NewRandomGenerator("ev_")}
}

func (r *EventRepository) newPublicID() (string, error) {
	id, err := r.ids.NewID()
	if err != nil {
		return "", fmt.Errorf("generate event id: %w", err)
	}
	return id, nil
}

func (r *EventRepository) CreateGoal(ctx context.Context, matchID string, goal matchevent.Goal) (matchevent.Goal, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.Goal{}, err
	}

	row := goalTableModel{
		PublicID: publicID,
		MatchID:  matchID,
		PlayerID: goal.PlayerID,
		Minute:   goal.Minute,
		Type:     goal.Type,
		Note:     goal.Note,
	}
	query, args, err := qb.InsertInto("goals").
		Columns("public_id", "match_public_id", "player_public_id", "minute", "goal_type", "note").
		Values(row.PublicID, row.MatchID, row.PlayerID, row.Minute, row.Type, row.Note).
		ToSQL()
	if err != nil {
		return matchevent.Goal{}, fmt.Errorf("build insert goal query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.Goal{}, fmt.Errorf("insert goal: %w", err)
	}

	goal.ID = publicID
	goal.MatchID = matchID
	return goal, nil
}

func (r *EventRepository) CreateAssist(ctx context.Context, matchID string, assist matchevent.Assist) (matchevent.Assist, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.Assist{}, err
	}

	query, args, err := qb.InsertInto("assists").
		Columns("public_id", "match_public_id", "player_public_id", "goal_public_id", "note").
		Values(publicID, matchID, assist.PlayerID, assist.GoalID, assist.Note).
		ToSQL()
	if err != nil {
		return matchevent.Assist{}, fmt.Errorf("build insert assist query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.Assist{}, fmt.Errorf("insert assist: %w", err)
	}

	assist.ID = publicID
	assist.MatchID = matchID
	return assist, nil
}

func (r *EventRepository) CreateLineupEntry(ctx context.Context, matchID string, entry matchevent.LineupEntry) (matchevent.LineupEntry, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.LineupEntry{}, err
	}

	query, args, err := qb.InsertInto("lineup_entries").
		Columns("public_id", "match_public_id", "player_public_id", "team_public_id", "position", "shirt_number", "minutes_played", "goals_conceded").
		Values(publicID, matchID, entry.PlayerID, entry.TeamID, entry.Position, intPtrToNullInt64(entry.ShirtNumber), entry.MinutesPlayed, intPtrToNullInt64(entry.GoalsConceded)).
		ToSQL()
	if err != nil {
		return matchevent.LineupEntry{}, fmt.Errorf("build insert lineup entry query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.LineupEntry{}, fmt.Errorf("insert lineup entry: %w", err)
	}

	entry.ID = publicID
	entry.MatchID = matchID
	return entry, nil
}

func (r *EventRepository) CreateSubstitution(ctx context.Context, matchID string, sub matchevent.Substitution) (matchevent.Substitution, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.Substitution{}, err
	}

	query, args, err := qb.InsertInto("substitutions").
		Columns("public_id", "match_public_id", "team_public_id", "player_in_public_id", "player_out_public_id", "minute", "note").
		Values(publicID, matchID, sub.TeamID, sub.PlayerInID, sub.PlayerOutID, sub.Minute, sub.Note).
		ToSQL()
	if err != nil {
		return matchevent.Substitution{}, fmt.Errorf("build insert substitution query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.Substitution{}, fmt.Errorf("insert substitution: %w", err)
	}

	sub.ID = publicID
	sub.MatchID = matchID
	return sub, nil
}

func (r *EventRepository) CreatePenaltyAttempt(ctx context.Context, matchID string, attempt matchevent.PenaltyAttempt) (matchevent.PenaltyAttempt, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.PenaltyAttempt{}, err
	}

	query, args, err := qb.InsertInto("penalty_attempts").
		Columns("public_id", "match_public_id", "team_public_id", "kicker_public_id", "goalkeeper_public_id", "scored", "attempt_order").
		Values(publicID, matchID, attempt.TeamID, attempt.KickerID, attempt.GoalkeeperID, attempt.Scored, attempt.Order).
		ToSQL()
	if err != nil {
		return matchevent.PenaltyAttempt{}, fmt.Errorf("build insert penalty attempt query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.PenaltyAttempt{}, fmt.Errorf("insert penalty attempt: %w", err)
	}

	attempt.ID = publicID
	attempt.MatchID = matchID
	return attempt, nil
}

func (r *EventRepository) CreateCoachAssignment(ctx context.Context, matchID string, assignment matchevent.CoachAssignment) (matchevent.CoachAssignment, error) {
	publicID, err := r.newPublicID()
	if err != nil {
		return matchevent.CoachAssignment{}, err
	}

	query, args, err := qb.InsertInto("coach_assignments").
		Columns("public_id", "match_public_id", "team_public_id", "coach_public_id", "role").
		Values(publicID, matchID, assignment.TeamID, assignment.CoachID, assignment.Role).
		ToSQL()
	if err != nil {
		return matchevent.CoachAssignment{}, fmt.Errorf("build insert coach assignment query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return matchevent.CoachAssignment{}, fmt.Errorf("insert coach assignment: %w", err)
	}

	assignment.ID = publicID
	assignment.MatchID = matchID
	return assignment, nil
}

func (r *EventRepository) DeleteCoachAssignment(ctx context.Context, matchID, assignmentID string) error {
	query, args, err := qb.DeleteFrom("coach_assignments").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("public_id", assignmentID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete coach assignment query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete coach assignment: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete coach assignment rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("coach assignment %s does not exist", assignmentID)
	}
	return nil
}

func (r *EventRepository) GoalsByMatch(ctx context.Context, matchID string) ([]matchevent.Goal, error) {
	query, args, err := qb.Select("*").From("goals").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list goals query: %w", err)
	}

	var rows []goalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goals: %w", err)
	}

	out := make([]matchevent.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Goal{
			ID:       row.PublicID,
			MatchID:  row.MatchID,
			PlayerID: row.PlayerID,
			Minute:   row.Minute,
			Type:     row.Type,
			Note:     row.Note,
		})
	}
	return out, nil
}

func (r *EventRepository) AssistsByMatch(ctx context.Context, matchID string) ([]matchevent.Assist, error) {
	query, args, err := qb.Select("*").From("assists").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list assists query: %w", err)
	}

	var rows []assistTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select assists: %w", err)
	}

	out := make([]matchevent.Assist, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Assist{
			ID:       row.PublicID,
			MatchID:  row.MatchID,
			PlayerID: row.PlayerID,
			GoalID:   row.GoalID,
			Note:     row.Note,
		})
	}
	return out, nil
}

func (r *EventRepository) LineupByMatch(ctx context.Context, matchID string) ([]matchevent.LineupEntry, error) {
	query, args, err := qb.Select("*").From("lineup_entries").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("team_public_id", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup query: %w", err)
	}

	var rows []lineupEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select lineup: %w", err)
	}

	out := make([]matchevent.LineupEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.LineupEntry{
			ID:            row.PublicID,
			MatchID:       row.MatchID,
			PlayerID:      row.PlayerID,
			TeamID:        row.TeamID,
			Position:      row.Position,
			ShirtNumber:   nullInt64ToIntPtr(row.ShirtNumber),
			MinutesPlayed: row.MinutesPlayed,
			GoalsConceded: nullInt64ToIntPtr(row.GoalsConceded),
		})
	}
	return out, nil
}

func (r *EventRepository) SubstitutionsByMatch(ctx context.Context, matchID string) ([]matchevent.Substitution, error) {
	query, args, err := qb.Select("*").From("substitutions").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("minute", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list substitutions query: %w", err)
	}

	var rows []substitutionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select substitutions: %w", err)
	}

	out := make([]matchevent.Substitution, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.Substitution{
			ID:          row.PublicID,
			MatchID:     row.MatchID,
			TeamID:      row.TeamID,
			PlayerInID:  row.PlayerInID,
			PlayerOutID: row.PlayerOutID,
			Minute:      row.Minute,
			Note:        row.Note,
		})
	}
	return out, nil
}

func (r *EventRepository) PenaltiesByMatch(ctx context.Context, matchID string) ([]matchevent.PenaltyAttempt, error) {
	query, args, err := qb.Select("*").From("penalty_attempts").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("attempt_order", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list penalty attempts query: %w", err)
	}

	var rows []penaltyAttemptTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select penalty attempts: %w", err)
	}

	out := make([]matchevent.PenaltyAttempt, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.PenaltyAttempt{
			ID:           row.PublicID,
			MatchID:      row.MatchID,
			TeamID:       row.TeamID,
			KickerID:     row.KickerID,
			GoalkeeperID: row.GoalkeeperID.String,
			Scored:       row.Scored,
			Order:        row.AttemptOrder,
		})
	}
	return out, nil
}

func (r *EventRepository) CoachesByMatch(ctx context.Context, matchID string) ([]matchevent.CoachAssignment, error) {
	query, args, err := qb.Select("*").From("coach_assignments").
		Where(qb.Eq("match_public_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list coach assignments query: %w", err)
	}

	var rows []coachAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select coach assignments: %w", err)
	}

	out := make([]matchevent.CoachAssignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchevent.CoachAssignment{
			ID:      row.PublicID,
			MatchID: row.MatchID,
			TeamID:  row.TeamID,
			CoachID: row.CoachID,
			Role:    row.Role,
		})
	}
	return out, nil
}
