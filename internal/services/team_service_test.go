package services

import (
	"context"
	"sort"
	"testing"

	"github.com/heinhtoo/quicktask-api/internal/cache"
	"github.com/heinhtoo/quicktask-api/internal/models"
	"github.com/heinhtoo/quicktask-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type TeamServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	cache   *recordingCache
	service *TeamService
	tasks   *TaskService
}

func (suite *TeamServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.TaskList{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	suite.cache = newRecordingCache()
	suite.service = NewTeamService(repository.NewTeamRepository(suite.db), suite.cache)
	suite.tasks = NewTaskService(repository.NewTaskRepository(suite.db), suite.cache)
}

func (suite *TeamServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TeamServiceTestSuite) createUser(username string) *models.User {
	user := &models.User{Username: username}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TeamServiceTestSuite) createTeam(name string, ownerID uint64) *models.Team {
	err := suite.service.Create(context.Background(), ownerID, name)
	suite.Require().NoError(err)

	var team models.Team
	suite.Require().NoError(suite.db.Where("name = ?", name).First(&team).Error)
	return &team
}

func (suite *TeamServiceTestSuite) memberIDs(teamID uint64) []uint64 {
	var ids []uint64
	err := suite.db.Model(&models.TeamMember{}).
		Where("team_id = ?", teamID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	suite.Require().NoError(err)
	return ids
}

func (suite *TeamServiceTestSuite) TestCreate_AddsCreatorMembership() {
	user := suite.createUser("alice")
	team := suite.createTeam("Platform", user.ID)

	suite.Equal([]uint64{user.ID}, suite.memberIDs(team.ID))
}

func (suite *TeamServiceTestSuite) TestReport_IncludesMembersAndCounts() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID})
	suite.Require().NoError(err)

	err = suite.tasks.Create(context.Background(), alice.ID, TaskInput{
		Name:     "ship it",
		Priority: 1,
		Parent:   models.TeamParent(team.ID),
	})
	suite.Require().NoError(err)

	reports, err := suite.service.Report(context.Background(), alice.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.Equal("Platform", reports[0].Name)
	suite.Equal("alice", reports[0].CreatedBy)
	suite.ElementsMatch([]string{"alice", "bob"}, reports[0].Users)
	suite.ElementsMatch([]uint64{alice.ID, bob.ID}, reports[0].UserIDs)
	suite.Equal(int64(1), reports[0].NoOfIncompletedTasks)
}

func (suite *TeamServiceTestSuite) TestReport_MembersSeeTeamsTheyBelongTo() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID})
	suite.Require().NoError(err)

	reports, err := suite.service.Report(context.Background(), bob.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.Equal("Platform", reports[0].Name)
}

func (suite *TeamServiceTestSuite) TestAddMembers_IsIdempotent() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	for i := 0; i < 2; i++ {
		err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID, bob.ID})
		suite.Require().NoError(err)
	}

	ids := suite.memberIDs(team.ID)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	suite.Equal([]uint64{alice.ID, bob.ID}, ids)
}

func (suite *TeamServiceTestSuite) TestAddMembers_CreatorOnly() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	carol := suite.createUser("carol")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), bob.ID, team.ID, []uint64{carol.ID})
	suite.ErrorIs(err, ErrNotTeamCreator)
	suite.Equal([]uint64{alice.ID}, suite.memberIDs(team.ID))
}

func (suite *TeamServiceTestSuite) TestAddMembers_RejectsUnknownUsers() {
	alice := suite.createUser("alice")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{9999})
	suite.ErrorIs(err, ErrInvalidMember)
}

func (suite *TeamServiceTestSuite) TestAddMembers_UnknownTeam() {
	alice := suite.createUser("alice")

	err := suite.service.AddMembers(context.Background(), alice.ID, 9999, []uint64{alice.ID})
	suite.ErrorIs(err, ErrTeamNotFound)
}

func (suite *TeamServiceTestSuite) TestAddMembers_RequiresIDs() {
	alice := suite.createUser("alice")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, nil)
	suite.ErrorIs(err, ErrNoMemberIDs)
}

func (suite *TeamServiceTestSuite) TestDelete_RemovesMembershipsKeepsTasks() {
	alice := suite.createUser("alice")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.tasks.Create(context.Background(), alice.ID, TaskInput{
		Name:     "ship it",
		Priority: 1,
		Parent:   models.TeamParent(team.ID),
	})
	suite.Require().NoError(err)

	err = suite.service.Delete(context.Background(), alice.ID, team.ID)
	suite.Require().NoError(err)

	suite.Empty(suite.memberIDs(team.ID))

	// Tasks have no enforced reference to teams; the row survives still
	// pointing at the deleted team's id.
	var task models.Task
	suite.Require().NoError(suite.db.Where("name = ?", "ship it").First(&task).Error)
	suite.Require().NotNil(task.TeamID)
	suite.Equal(team.ID, *task.TeamID)
}

func (suite *TeamServiceTestSuite) TestDelete_NonCreatorIsNoOp() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.Delete(context.Background(), bob.ID, team.ID)
	suite.Require().NoError(err)

	var reloaded models.Team
	suite.Require().NoError(suite.db.First(&reloaded, team.ID).Error)
	suite.Equal([]uint64{alice.ID}, suite.memberIDs(team.ID))
}

func (suite *TeamServiceTestSuite) TestRename_InvalidatesEveryMember() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID})
	suite.Require().NoError(err)

	suite.cache.reset()
	err = suite.service.Rename(context.Background(), alice.ID, team.ID, "Core Platform")
	suite.Require().NoError(err)

	// Owner key first, then each member's report key; alice appears twice
	// because she is both owner and member.
	suite.ElementsMatch([]string{
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(bob.ID),
	}, suite.cache.deleted)
}

func (suite *TeamServiceTestSuite) TestRename_NoOpSkipsMemberInvalidation() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	team := suite.createTeam("Platform", alice.ID)

	suite.cache.reset()
	err := suite.service.Rename(context.Background(), bob.ID, team.ID, "Hijacked")
	suite.Require().NoError(err)
	suite.Equal([]string{cache.TeamListsKey(bob.ID)}, suite.cache.deleted)

	var reloaded models.Team
	suite.Require().NoError(suite.db.First(&reloaded, team.ID).Error)
	suite.Equal("Platform", reloaded.Name)
}

func (suite *TeamServiceTestSuite) TestAddMembers_InvalidatesEveryMember() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	carol := suite.createUser("carol")
	team := suite.createTeam("Platform", alice.ID)

	// Owner key, alice's existing membership, and the newcomer.
	suite.cache.reset()
	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID})
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(bob.ID),
	}, suite.cache.deleted)

	// Adding carol must also purge bob, whose cached report embeds the
	// member arrays.
	suite.cache.reset()
	err = suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{carol.ID})
	suite.Require().NoError(err)
	suite.ElementsMatch([]string{
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(alice.ID),
		cache.TeamListsKey(bob.ID),
		cache.TeamListsKey(carol.ID),
	}, suite.cache.deleted)
}

func (suite *TeamServiceTestSuite) TestAddMembers_RefreshesExistingMemberReports() {
	alice := suite.createUser("alice")
	bob := suite.createUser("bob")
	carol := suite.createUser("carol")
	team := suite.createTeam("Platform", alice.ID)

	err := suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{bob.ID})
	suite.Require().NoError(err)

	// Warm bob's cached report while the team is {alice, bob}.
	reports, err := suite.service.Report(context.Background(), bob.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.ElementsMatch([]string{"alice", "bob"}, reports[0].Users)

	err = suite.service.AddMembers(context.Background(), alice.ID, team.ID, []uint64{carol.ID})
	suite.Require().NoError(err)

	// There is no TTL, so only the invalidation can refresh bob's view.
	reports, err = suite.service.Report(context.Background(), bob.ID)
	suite.Require().NoError(err)
	suite.Require().Len(reports, 1)
	suite.ElementsMatch([]string{"alice", "bob", "carol"}, reports[0].Users)
}

func TestTeamServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TeamServiceTestSuite))
}
