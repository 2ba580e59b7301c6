package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/dto"
	"github.com/heinhtoo/quicktask-api/internal/logger"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTeamNotFound   = errors.New("team not found")
	ErrNotTeamCreator = errors.New("only the team creator can manage the team")
	ErrNoMemberIDs    = errors.New("at least one member ID is required")
	ErrInvalidMember  = errors.New("one or more users do not exist")
)

// TeamService handles team and membership business logic and the per-owner
// team report.
type TeamService struct {
	teams repository.TeamRepository
	cache cache.Cache
}

// NewTeamService creates a new TeamService
func NewTeamService(teams repository.TeamRepository, c cache.Cache) *TeamService {
	return &TeamService{
		teams: teams,
		cache: c,
	}
}

// Report returns every team the user owns or belongs to with member arrays
// and incomplete task counts, read through the cache.
func (s *TeamService) Report(ctx context.Context, ownerID uint64) ([]dto.TeamReport, error) {
	key := cache.TeamListsKey(ownerID)

	if value, err := s.cache.Get(ctx, key); err == nil {
		var cached []dto.TeamReport
		if unmarshalErr := json.Unmarshal([]byte(value), &cached); unmarshalErr == nil {
			return cached, nil
		}
	} else if !errors.Is(err, cache.ErrMiss) {
		logger.Warn("team report cache read failed", "owner_id", ownerID, "error", err)
	}

	rows, err := s.teams.ReportRows(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to build team report: %w", err)
	}

	reports := dto.FoldTeamReports(rows)

	if value, err := json.Marshal(reports); err == nil {
		if setErr := s.cache.Set(ctx, key, string(value)); setErr != nil {
			logger.Warn("team report cache write failed", "owner_id", ownerID, "error", setErr)
		}
	}

	return reports, nil
}

// Create creates a team and adds the creator as its first member in one
// transaction.
func (s *TeamService) Create(ctx context.Context, ownerID uint64, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	team := &models.Team{
		Name:            name,
		CreatedByUserID: ownerID,
	}
	if err := s.teams.CreateWithCreatorMembership(team); err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	// Invalidation set: teamLists:<owner>
	s.invalidate(ctx, cache.TeamListsKey(ownerID))
	return nil
}

// Rename updates the team name. The ownership predicate makes a rename by
// anyone but the creator a silent no-op.
func (s *TeamService) Rename(ctx context.Context, ownerID, teamID uint64, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	affected, err := s.teams.Rename(teamID, ownerID, name)
	if err != nil {
		return fmt.Errorf("failed to rename team: %w", err)
	}

	// Invalidation set: teamLists:<owner>, plus every member's report when
	// the rename landed, since member reports embed the team name.
	keys := []string{cache.TeamListsKey(ownerID)}
	if affected > 0 {
		keys = append(keys, s.memberReportKeys(teamID)...)
	}
	s.invalidate(ctx, keys...)
	return nil
}

// Delete removes the team and its memberships. Tasks attached to the team
// keep a dangling team id.
func (s *TeamService) Delete(ctx context.Context, ownerID, teamID uint64) error {
	// Capture member keys before the membership rows go away.
	memberKeys := s.memberReportKeys(teamID)

	affected, err := s.teams.Delete(teamID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	// Invalidation set: teamLists:<owner>, plus every former member's
	// report when the delete landed.
	keys := []string{cache.TeamListsKey(ownerID)}
	if affected > 0 {
		keys = append(keys, memberKeys...)
	}
	s.invalidate(ctx, keys...)
	return nil
}

// AddMembers idempotently adds users to a team. Only the creator may manage
// membership; members gain task visibility but no edit rights.
func (s *TeamService) AddMembers(ctx context.Context, ownerID, teamID uint64, memberIDs []uint64) error {
	if len(memberIDs) == 0 {
		return ErrNoMemberIDs
	}

	team, err := s.teams.FindByID(teamID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to find team: %w", err)
	}

	if team.CreatedByUserID != ownerID {
		return ErrNotTeamCreator
	}

	uniqueIDs := uniqueUint64(memberIDs)

	count, err := s.teams.CountUsersByIDs(uniqueIDs)
	if err != nil {
		return fmt.Errorf("failed to verify members: %w", err)
	}
	if int(count) != len(uniqueIDs) {
		return ErrInvalidMember
	}

	// Existing members' cached reports embed the member arrays, so they go
	// just as stale as the owner's and the newcomers'.
	existingKeys := s.memberReportKeys(teamID)

	if err := s.teams.AddMembers(teamID, uniqueIDs); err != nil {
		return fmt.Errorf("failed to add members: %w", err)
	}

	// Invalidation set: teamLists:<owner>, teamLists:<member> for every
	// member the team already had, and teamLists:<member> for each added
	// member, whose reports now include this team.
	keys := []string{cache.TeamListsKey(ownerID)}
	keys = append(keys, existingKeys...)
	for _, id := range uniqueIDs {
		if id != ownerID {
			keys = append(keys, cache.TeamListsKey(id))
		}
	}
	s.invalidate(ctx, keys...)
	return nil
}

// memberReportKeys returns the team report cache keys of a team's current
// members. Lookup failures degrade to no extra keys.
func (s *TeamService) memberReportKeys(teamID uint64) []string {
	memberIDs, err := s.teams.ListMemberIDs(teamID)
	if err != nil {
		logger.Warn("failed to list team members for invalidation", "team_id", teamID, "error", err)
		return nil
	}

	keys := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		keys = append(keys, cache.TeamListsKey(id))
	}
	return keys
}

func (s *TeamService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.Warn("cache invalidation failed", "keys", keys, "error", err)
	}
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
