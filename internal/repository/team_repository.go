package repository

import (
	"github.com/heinhtoo/quicktask-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTeamRepository is a GORM implementation of TeamRepository
type GormTeamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new TeamRepository
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &GormTeamRepository{db: db}
}

// CreateWithCreatorMembership creates the team and the creator's membership
// row atomically. A half-created team with no membership is never visible.
func (r *GormTeamRepository) CreateWithCreatorMembership(team *models.Team) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member := models.TeamMember{
			TeamID: team.ID,
			UserID: team.CreatedByUserID,
		}
		return tx.Create(&member).Error
	})
}

// FindByID finds a team by ID
func (r *GormTeamRepository) FindByID(id uint64) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// Rename updates the team name scoped by the ownership predicate
func (r *GormTeamRepository) Rename(id, ownerID uint64, name string) (int64, error) {
	result := r.db.Model(&models.Team{}).
		Where("id = ? AND created_by_user_id = ?", id, ownerID).
		Update("name", name)
	return result.RowsAffected, result.Error
}

// Delete removes the team and its membership rows in a single transaction.
// Tasks attached to the team are left untouched and keep a dangling team id,
// matching the schema which defines no foreign key on tasks.team_id.
func (r *GormTeamRepository) Delete(id, ownerID uint64) (int64, error) {
	var affected int64

	err := r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND created_by_user_id = ?", id, ownerID).
			Delete(&models.Team{})
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		if affected == 0 {
			return nil
		}

		return tx.Where("team_id = ?", id).Delete(&models.TeamMember{}).Error
	})

	return affected, err
}

// AddMembers inserts memberships idempotently. Duplicate rows are skipped
// via ON CONFLICT DO NOTHING rather than raising an error.
func (r *GormTeamRepository) AddMembers(teamID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	members := make([]models.TeamMember, len(userIDs))
	for i, userID := range userIDs {
		members[i] = models.TeamMember{
			TeamID: teamID,
			UserID: userID,
		}
	}

	return r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&members).Error
}

// ListMemberIDs returns the user ids of a team's members
func (r *GormTeamRepository) ListMemberIDs(teamID uint64) ([]uint64, error) {
	var userIDs []uint64
	err := r.db.Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

// ReportRows returns the flattened team report join for every team the user
// owns or belongs to. One row per (team, member) pair; teams without members
// still produce a single row with NULL member columns.
func (r *GormTeamRepository) ReportRows(ownerID uint64) ([]TeamReportRow, error) {
	rows := []TeamReportRow{}

	err := r.db.Raw(`
		SELECT
			tm.id AS team_id,
			tm.name AS team_name,
			cu.username AS created_by,
			u.id AS user_id,
			u.username AS username,
			(SELECT COUNT(*) FROM tasks t
				WHERE t.team_id = tm.id AND t.is_complete = ?) AS no_of_incompleted_tasks
		FROM teams tm
		JOIN users cu ON tm.created_by_user_id = cu.id
		LEFT JOIN team_members m ON tm.id = m.team_id
		LEFT JOIN users u ON m.user_id = u.id
		WHERE tm.created_by_user_id = ?
			OR tm.id IN (SELECT team_id FROM team_members WHERE user_id = ?)
		ORDER BY tm.created_at DESC, tm.id DESC, u.id`,
		false, ownerID, ownerID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// CountUsersByIDs counts how many of the given user IDs exist
func (r *GormTeamRepository) CountUsersByIDs(userIDs []uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("id IN ?", userIDs).
		Count(&count).Error
	return count, err
}
