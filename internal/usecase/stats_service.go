package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/matchevent"
	"github.com/chaeyoungson/goalgirls/internal/domain/player"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
	"github.com/chaeyoungson/goalgirls/internal/platform/cache"
	"github.com/chaeyoungson/goalgirls/internal/platform/logging"
)

const (
	defaultStatsWorkers  = 8
	defaultTopScorerSize = 10
	defaultFormSize      = 5
)

// TeamStanding is one row of the season table.
type TeamStanding struct {
	TeamID       string
	TeamName     string
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// TopScorer aggregates a player's goals and assists across a season. Own
// goals are never credited to the scorer.
type TopScorer struct {
	PlayerID   string
	PlayerName string
	TeamID     string
	Goals      int
	Assists    int
}

// HeadToHead summarizes every completed meeting of two teams.
type HeadToHead struct {
	TeamAID   string
	TeamBID   string
	Played    int
	TeamAWins int
	TeamBWins int
	Draws     int
	GoalsA    int
	GoalsB    int
}

// StatsService derives the public read models from completed matches. All
// derivations are recomputed from stored events; nothing is persisted, the
// cache in front is the only materialization.
type StatsService struct {
	matchRepo  match.Repository
	eventRepo  matchevent.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	readCache  *cache.Store
	logger     *logging.Logger
	workers    int
}

func NewStatsService(
	matchRepo match.Repository,
	eventRepo matchevent.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	readCache *cache.Store,
	logger *logging.Logger,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		readCache:  readCache,
		logger:     logger,
		workers:    defaultStatsWorkers,
	}
}

// Standings computes the season table from completed matches. Three points
// for a win, one for a draw; ties break on goal difference, then goals
// scored, then team name.
func (s *StatsService) Standings(ctx context.Context, season int) ([]TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Standings")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	value, err := s.cached(ctx, fmt.Sprintf("stats:standings:%d", season), func(ctx context.Context) (any, error) {
		return s.computeStandings(ctx, season)
	})
	if err != nil {
		return nil, err
	}
	return value.([]TeamStanding), nil
}

func (s *StatsService) computeStandings(ctx context.Context, season int) ([]TeamStanding, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.completedMatches(ctx, season)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*TeamStanding, len(teams))
	for _, item := range teams {
		rows[item.ID] = &TeamStanding{TeamID: item.ID, TeamName: item.Name}
	}

	for _, m := range matches {
		home, homeOK := rows[m.HomeTeamID]
		away, awayOK := rows[m.AwayTeamID]
		if !homeOK || !awayOK {
			s.logger.WarnContext(ctx, "completed match references unknown team",
				"match_id", m.ID, "home_team_id", m.HomeTeamID, "away_team_id", m.AwayTeamID)
			continue
		}

		home.Played++
		away.Played++
		home.GoalsFor += m.HomeScore
		home.GoalsAgainst += m.AwayScore
		away.GoalsFor += m.AwayScore
		away.GoalsAgainst += m.HomeScore

		switch {
		case m.HomeScore > m.AwayScore:
			home.Wins++
			home.Points += 3
			away.Losses++
		case m.HomeScore < m.AwayScore:
			away.Wins++
			away.Points += 3
			home.Losses++
		default:
			home.Draws++
			away.Draws++
			home.Points++
			away.Points++
		}
	}

	out := make([]TeamStanding, 0, len(rows))
	for _, row := range rows {
		row.GoalDiff = row.GoalsFor - row.GoalsAgainst
		out = append(out, *row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		if out[i].GoalDiff != out[j].GoalDiff {
			return out[i].GoalDiff > out[j].GoalDiff
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].TeamName < out[j].TeamName
	})
	return out, nil
}

// TopScorers aggregates goals and assists per player across the season's
// completed matches. Per-match event reads fan out over a worker pool.
func (s *StatsService) TopScorers(ctx context.Context, season, limit int) ([]TopScorer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopScorers")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultTopScorerSize
	}

	value, err := s.cached(ctx, fmt.Sprintf("stats:topscorers:%d", season), func(ctx context.Context) (any, error) {
		return s.computeTopScorers(ctx, season)
	})
	if err != nil {
		return nil, err
	}

	scorers := value.([]TopScorer)
	if len(scorers) > limit {
		scorers = scorers[:limit]
	}
	return scorers, nil
}

type matchEvents struct {
	goals   []matchevent.Goal
	assists []matchevent.Assist
}

func (s *StatsService) computeTopScorers(ctx context.Context, season int) ([]TopScorer, error) {
	matches, err := s.completedMatches(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return []TopScorer{}, nil
	}

	collected, err := s.collectEvents(ctx, matches)
	if err != nil {
		return nil, err
	}

	goals := make(map[string]int)
	assists := make(map[string]int)
	for _, events := range collected {
		for _, goal := range events.goals {
			if goal.Type == matchevent.GoalTypeOwnGoal {
				continue
			}
			goals[goal.PlayerID]++
		}
		for _, assist := range events.assists {
			assists[assist.PlayerID]++
		}
	}

	playerIDs := make([]string, 0, len(goals))
	for id := range goals {
		playerIDs = append(playerIDs, id)
	}
	sort.Strings(playerIDs)

	players, err := s.playerRepo.GetByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("get players by ids: %w", err)
	}
	playersByID := make(map[string]player.Player, len(players))
	for _, item := range players {
		playersByID[item.ID] = item
	}

	out := make([]TopScorer, 0, len(playerIDs))
	for _, id := range playerIDs {
		row := TopScorer{
			PlayerID: id,
			Goals:    goals[id],
			Assists:  assists[id],
		}
		if item, ok := playersByID[id]; ok {
			row.PlayerName = item.Name
			row.TeamID = item.TeamID
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		if out[i].Assists != out[j].Assists {
			return out[i].Assists > out[j].Assists
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}

// collectEvents loads the goal and assist lists of every match through a
// bounded worker pool.
func (s *StatsService) collectEvents(ctx context.Context, matches []match.Match) ([]matchEvents, error) {
	workerCount := s.workers
	if workerCount > len(matches) {
		workerCount = len(matches)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	collected := make([]matchEvents, len(matches))
	errs := make([]error, len(matches))

	var workers sync.WaitGroup
	for i, m := range matches {
		i, m := i, m
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			goals, goalErr := s.eventRepo.GoalsByMatch(ctx, m.ID)
			if goalErr != nil {
				errs[i] = fmt.Errorf("list goals for %s: %w", m.ID, goalErr)
				return
			}
			matchAssists, assistErr := s.eventRepo.AssistsByMatch(ctx, m.ID)
			if assistErr != nil {
				errs[i] = fmt.Errorf("list assists for %s: %w", m.ID, assistErr)
				return
			}
			collected[i] = matchEvents{goals: goals, assists: matchAssists}
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return collected, nil
}

// RecentForm returns the outcomes of a team's most recent completed
// matches, newest first, as W, D or L.
func (s *StatsService) RecentForm(ctx context.Context, teamID string, size int) ([]string, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if size <= 0 {
		size = defaultFormSize
	}

	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	played := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if !match.IsCompletedStatus(m.Status) {
			continue
		}
		if m.HomeTeamID != teamID && m.AwayTeamID != teamID {
			continue
		}
		played = append(played, m)
	}
	sort.SliceStable(played, func(i, j int) bool {
		return played[i].KickoffAt.After(played[j].KickoffAt)
	})
	if len(played) > size {
		played = played[:size]
	}

	form := make([]string, 0, len(played))
	for _, m := range played {
		ours, theirs := m.HomeScore, m.AwayScore
		if m.AwayTeamID == teamID {
			ours, theirs = theirs, ours
		}
		switch {
		case ours > theirs:
			form = append(form, "W")
		case ours < theirs:
			form = append(form, "L")
		default:
			form = append(form, "D")
		}
	}
	return form, nil
}

// HeadToHeadRecord aggregates every completed meeting of the two teams
// across all seasons.
func (s *StatsService) HeadToHeadRecord(ctx context.Context, teamAID, teamBID string) (HeadToHead, error) {
	teamAID = strings.TrimSpace(teamAID)
	teamBID = strings.TrimSpace(teamBID)
	if teamAID == "" || teamBID == "" {
		return HeadToHead{}, fmt.Errorf("%w: both team ids are required", ErrInvalidInput)
	}
	if teamAID == teamBID {
		return HeadToHead{}, fmt.Errorf("%w: teams must differ", ErrInvalidInput)
	}

	for _, id := range []string{teamAID, teamBID} {
		_, exists, err := s.teamRepo.GetByID(ctx, id)
		if err != nil {
			return HeadToHead{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return HeadToHead{}, fmt.Errorf("%w: team=%s", ErrNotFound, id)
		}
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return HeadToHead{}, fmt.Errorf("list matches: %w", err)
	}

	record := HeadToHead{TeamAID: teamAID, TeamBID: teamBID}
	for _, m := range matches {
		if !match.IsCompletedStatus(m.Status) {
			continue
		}

		var goalsA, goalsB int
		switch {
		case m.HomeTeamID == teamAID && m.AwayTeamID == teamBID:
			goalsA, goalsB = m.HomeScore, m.AwayScore
		case m.HomeTeamID == teamBID && m.AwayTeamID == teamAID:
			goalsA, goalsB = m.AwayScore, m.HomeScore
		default:
			continue
		}

		record.Played++
		record.GoalsA += goalsA
		record.GoalsB += goalsB
		switch {
		case goalsA > goalsB:
			record.TeamAWins++
		case goalsA < goalsB:
			record.TeamBWins++
		default:
			record.Draws++
		}
	}
	return record, nil
}

func (s *StatsService) completedMatches(ctx context.Context, season int) ([]match.Match, error) {
	matches, err := s.matchRepo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}

	completed := matches[:0]
	for _, m := range matches {
		if match.IsCompletedStatus(m.Status) {
			completed = append(completed, m)
		}
	}
	return completed, nil
}

func (s *StatsService) cached(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if s.readCache == nil {
		return loader(ctx)
	}
	return s.readCache.GetOrLoad(ctx, key, loader)
}
