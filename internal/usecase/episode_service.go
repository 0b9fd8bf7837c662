package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// ExternalEpisode is one broadcast slot from the network's schedule feed.
type ExternalEpisode struct {
	Season     int
	Episode    int
	Title      string
	AirsAt     time.Time
	ChannelTag string
}

// EpisodeLister fetches the broadcast schedule from the network's API.
type EpisodeLister interface {
	ListEpisodes(ctx context.Context, season int) ([]ExternalEpisode, error)
}

// EpisodeService exposes the TV schedule alongside the match data so the
// site can show when each fixture airs. Schedule reads go through the
// external feed on every call; the client below it does its own guarding.
type EpisodeService struct {
	lister EpisodeLister
}

func NewEpisodeService(lister EpisodeLister) *EpisodeService {
	return &EpisodeService{lister: lister}
}

func (s *EpisodeService) ListBySeason(ctx context.Context, season int) ([]ExternalEpisode, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EpisodeService.ListBySeason")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}
	if s.lister == nil {
		return nil, fmt.Errorf("%w: broadcast schedule feed is not configured", ErrDependencyUnavailable)
	}

	episodes, err := s.lister.ListEpisodes(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("%w: list episodes: %v", ErrDependencyUnavailable, err)
	}

	sort.SliceStable(episodes, func(i, j int) bool { return episodes[i].Episode < episodes[j].Episode })
	return episodes, nil
}
