package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/leyuan/sportdesk/internal/domain/favorite"
	"github.com/leyuan/sportdesk/internal/domain/match"
	"github.com/leyuan/sportdesk/internal/platform/logging"
)

type matchProvider interface {
	FetchMatches(ctx context.Context, sport match.SportType, force bool) (match.Snapshot, error)
}

type FavoriteService struct {
	favoriteRepo favorite.Repository
	matches      matchProvider
	logger       *logging.Logger
	now          func() time.Time
}

func NewFavoriteService(favoriteRepo favorite.Repository, matches matchProvider, logger *logging.Logger) *FavoriteService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		matches:      matches,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *FavoriteService) List(ctx context.Context) ([]favorite.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.List")
	defer span.End()

	items, err := s.favoriteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return items, nil
}

func (s *FavoriteService) Add(ctx context.Context, item favorite.Item) (favorite.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Add")
	defer span.End()

	item.ID = strings.TrimSpace(item.ID)
	item.Name = strings.TrimSpace(item.Name)
	if item.ID == "" {
		return favorite.Item{}, fmt.Errorf("%w: favorite id is required", ErrInvalidInput)
	}
	if item.Name == "" {
		return favorite.Item{}, fmt.Errorf("%w: favorite name is required", ErrInvalidInput)
	}
	if _, ok := match.ParseSportType(string(item.SportType)); !ok {
		return favorite.Item{}, fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, item.SportType)
	}
	switch item.Type {
	case favorite.TypeTeam, favorite.TypePlayer, favorite.TypeMatch:
	default:
		return favorite.Item{}, fmt.Errorf("%w: unknown favorite type %q", ErrInvalidInput, item.Type)
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = s.now()
	}

	if err := s.favoriteRepo.Add(ctx, item); err != nil {
		return favorite.Item{}, fmt.Errorf("add favorite: %w", err)
	}
	return item, nil
}

func (s *FavoriteService) Remove(ctx context.Context, id string, sport match.SportType) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Remove")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%w: favorite id is required", ErrInvalidInput)
	}
	if _, ok := match.ParseSportType(string(sport)); !ok {
		return fmt.Errorf("%w: unknown sport %q", ErrInvalidInput, sport)
	}

	if err := s.favoriteRepo.Remove(ctx, id, sport); err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	return nil
}

// MatchesForFavorites resolves every favorite against the current
// snapshots. Team and player favorites match by team name on either
// side, case-insensitively; match favorites resolve by id and fall back
// to the snapshot frozen at favorite time when the event has dropped out
// of the feed. Results are deduped by match id.
func (s *FavoriteService) MatchesForFavorites(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.MatchesForFavorites")
	defer span.End()

	favorites, err := s.favoriteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return []match.Match{}, nil
	}

	bySport := make(map[match.SportType][]favorite.Item)
	for _, item := range favorites {
		bySport[item.SportType] = append(bySport[item.SportType], item)
	}

	seen := make(map[string]bool)
	out := make([]match.Match, 0)
	for _, sport := range match.AllSports {
		items, ok := bySport[sport]
		if !ok {
			continue
		}

		snapshot, err := s.matches.FetchMatches(ctx, sport, false)
		if err != nil {
			s.logger.WarnContext(ctx, "fetch matches for favorites failed", "sport", sport, "error", err)
			snapshot = match.Snapshot{Sport: sport}
		}

		for _, item := range items {
			for _, m := range matchesForFavorite(item, snapshot.Matches) {
				if seen[m.ID] {
					continue
				}
				seen[m.ID] = true
				out = append(out, m)
			}
		}
	}

	match.Sort(out)
	return out, nil
}

// PartitionByFavorites splits matches into the favorite partition and
// the remainder, each ordered rank-then-start.
func (s *FavoriteService) PartitionByFavorites(matches []match.Match, favorites []favorite.Item) ([]match.Match, []match.Match) {
	pinned := make([]match.Match, 0)
	rest := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if matchIsFavorite(m, favorites) {
			pinned = append(pinned, m)
		} else {
			rest = append(rest, m)
		}
	}
	match.Sort(pinned)
	match.Sort(rest)
	return pinned, rest
}

func matchesForFavorite(item favorite.Item, pool []match.Match) []match.Match {
	switch item.Type {
	case favorite.TypeMatch:
		for _, m := range pool {
			if m.ID == item.ID {
				return []match.Match{m}
			}
		}
		if item.MatchData != nil {
			return []match.Match{*item.MatchData}
		}
		return nil
	default:
		name := favoriteTeamName(item)
		if name == "" {
			return nil
		}
		out := make([]match.Match, 0)
		for _, m := range pool {
			if strings.EqualFold(m.HomeTeam, name) || strings.EqualFold(m.AwayTeam, name) {
				out = append(out, m)
			}
		}
		return out
	}
}

// favoriteTeamName is the name used for pool matching: the favorite's
// own name for teams, the frozen team attribute for players.
func favoriteTeamName(item favorite.Item) string {
	if item.Type == favorite.TypePlayer {
		if team, ok := item.Extra["team"].(string); ok && strings.TrimSpace(team) != "" {
			return strings.TrimSpace(team)
		}
		return ""
	}
	return strings.TrimSpace(item.Name)
}

func matchIsFavorite(m match.Match, favorites []favorite.Item) bool {
	for _, item := range favorites {
		if item.SportType != m.SportType {
			continue
		}
		if item.Type == favorite.TypeMatch {
			if item.ID == m.ID {
				return true
			}
			continue
		}
		name := favoriteTeamName(item)
		if name == "" {
			continue
		}
		if strings.EqualFold(m.HomeTeam, name) || strings.EqualFold(m.AwayTeam, name) {
			return true
		}
	}
	return false
}
