package memory

import (
	"time"

	"github.com/chaeyoungson/goalgirls/internal/domain/coach"
	"github.com/chaeyoungson/goalgirls/internal/domain/match"
	"github.com/chaeyoungson/goalgirls/internal/domain/player"
	"github.com/chaeyoungson/goalgirls/internal/domain/team"
)

const (
	TeamIDWildcats   = "team-wildcats"
	TeamIDStarlights = "team-starlights"
	TeamIDComets     = "team-comets"
	TeamIDHarriers   = "team-harriers"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: TeamIDWildcats, Name: "FC Wildcats", Short: "WLD", Captain: "Yoon Sera"},
		{ID: TeamIDStarlights, Name: "Starlight United", Short: "STL", Captain: "Im Dahye"},
		{ID: TeamIDComets, Name: "Comet Strikers", Short: "CMT", Captain: "Baek Jiwoo"},
		{ID: TeamIDHarriers, Name: "Harrier City", Short: "HAR", Captain: "Oh Minji"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-wld-01", TeamID: TeamIDWildcats, Name: "Kang Haneul", Position: player.PositionGoalkeeper, ShirtNumber: 1},
		{ID: "pl-wld-02", TeamID: TeamIDWildcats, Name: "Yoon Sera", Position: player.PositionForward, ShirtNumber: 9},
		{ID: "pl-wld-03", TeamID: TeamIDWildcats, Name: "Moon Chaewon", Position: player.PositionMidfielder, ShirtNumber: 8},
		{ID: "pl-wld-04", TeamID: TeamIDWildcats, Name: "Seo Yuna", Position: player.PositionDefender, ShirtNumber: 4},
		{ID: "pl-stl-01", TeamID: TeamIDStarlights, Name: "Han Bora", Position: player.PositionGoalkeeper, ShirtNumber: 1},
		{ID: "pl-stl-02", TeamID: TeamIDStarlights, Name: "Im Dahye", Position: player.PositionMidfielder, ShirtNumber: 10},
		{ID: "pl-stl-03", TeamID: TeamIDStarlights, Name: "Jung Soyeon", Position: player.PositionForward, ShirtNumber: 11},
		{ID: "pl-stl-04", TeamID: TeamIDStarlights, Name: "Cha Eunbi", Position: player.PositionDefender, ShirtNumber: 3},
		{ID: "pl-cmt-01", TeamID: TeamIDComets, Name: "Noh Jihyun", Position: player.PositionGoalkeeper, ShirtNumber: 21},
		{ID: "pl-cmt-02", TeamID: TeamIDComets, Name: "Baek Jiwoo", Position: player.PositionForward, ShirtNumber: 7},
		{ID: "pl-cmt-03", TeamID: TeamIDComets, Name: "Ahn Sujin", Position: player.PositionMidfielder, ShirtNumber: 6},
		{ID: "pl-cmt-04", TeamID: TeamIDComets, Name: "Kwon Narae", Position: player.PositionDefender, ShirtNumber: 5},
		{ID: "pl-har-01", TeamID: TeamIDHarriers, Name: "Shin Dasom", Position: player.PositionGoalkeeper, ShirtNumber: 31},
		{ID: "pl-har-02", TeamID: TeamIDHarriers, Name: "Oh Minji", Position: player.PositionDefender, ShirtNumber: 2},
		{ID: "pl-har-03", TeamID: TeamIDHarriers, Name: "Lee Garam", Position: player.PositionMidfielder, ShirtNumber: 14},
		{ID: "pl-har-04", TeamID: TeamIDHarriers, Name: "Hwang Yeji", Position: player.PositionForward, ShirtNumber: 17},
	}
}

func SeedCoaches() []coach.Coach {
	return []coach.Coach{
		{ID: "coach-01", Name: "Choi Jinhee"},
		{ID: "coach-02", Name: "Park Sungmin"},
		{ID: "coach-03", Name: "Kim Taeyong"},
		{ID: "coach-04", Name: "Lee Hyori"},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:         "match-s3e01",
			Season:     3,
			Episode:    1,
			HomeTeamID: TeamIDWildcats,
			AwayTeamID: TeamIDStarlights,
			KickoffAt:  time.Date(2026, 8, 5, 20, 0, 0, 0, time.UTC),
			Venue:      "Goyang Dome",
			Status:     match.StatusScheduled,
		},
		{
			ID:         "match-s3e02",
			Season:     3,
			Episode:    2,
			HomeTeamID: TeamIDComets,
			AwayTeamID: TeamIDHarriers,
			KickoffAt:  time.Date(2026, 8, 12, 20, 0, 0, 0, time.UTC),
			Venue:      "Goyang Dome",
			Status:     match.StatusScheduled,
		},
		{
			ID:         "match-s3e03",
			Season:     3,
			Episode:    3,
			HomeTeamID: TeamIDWildcats,
			AwayTeamID: TeamIDComets,
			KickoffAt:  time.Date(2026, 8, 19, 20, 0, 0, 0, time.UTC),
			Venue:      "Paju Training Center",
			Status:     match.StatusScheduled,
		},
		{
			ID:         "match-s3e04",
			Season:     3,
			Episode:    4,
			HomeTeamID: TeamIDStarlights,
			AwayTeamID: TeamIDHarriers,
			KickoffAt:  time.Date(2026, 8, 26, 20, 0, 0, 0, time.UTC),
			Venue:      "Paju Training Center",
			Status:     match.StatusScheduled,
		},
		{
			ID:         "match-s2e12",
			Season:     2,
			Episode:    12,
			HomeTeamID: TeamIDStarlights,
			AwayTeamID: TeamIDComets,
			KickoffAt:  time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC),
			Venue:      "Goyang Dome",
			HomeScore:  2,
			AwayScore:  2,
			Status:     match.StatusCompleted,
		},
	}
}
