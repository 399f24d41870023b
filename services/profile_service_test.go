package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"findteam/models"
)

func TestCreateDefaultProfile(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := seedUser(t, db, "alice", "alice@example.com", true)

	require.NoError(t, profiles.CreateDefault(user))

	info, err := profiles.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", info.Username)
	assert.Equal(t, "images/default.jpg", info.ImagePath)
	assert.Equal(t, "Your description", info.Description)
	assert.Equal(t, "Sport, Lifestyle, Work", info.Hobby)
	assert.Equal(t, "alice@example.com", info.ContactEmail)

	// Second provisioning is a no-op, not a duplicate row.
	require.NoError(t, profiles.CreateDefault(user))
	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestGetProfileNotFound(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)

	_, err := profiles.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := seedUser(t, db, "alice", "alice@example.com", true)
	require.NoError(t, profiles.CreateDefault(user))

	in := UpdateProfileInput{
		Username:        "alice_dev",
		ImagePath:       "images/custom.png",
		Description:     "golang developer",
		Hobby:           "climbing",
		City:            "Kazan",
		ContactEmail:    "work@example.com",
		ContactTelegram: "@alice",
	}
	require.NoError(t, profiles.Update(user.ID, in))

	info, err := profiles.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice_dev", info.Username)
	assert.Equal(t, "images/custom.png", info.ImagePath)
	assert.Equal(t, "@alice", info.ContactTelegram)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	alice := seedUser(t, db, "alice", "alice@example.com", true)
	seedUser(t, db, "bob", "bob@example.com", true)
	require.NoError(t, profiles.CreateDefault(alice))

	err := profiles.Update(alice.ID, UpdateProfileInput{Username: "bob"})
	assert.ErrorIs(t, err, ErrDuplicateUsername)

	// Keeping your own username is not a collision.
	require.NoError(t, profiles.Update(alice.ID, UpdateProfileInput{Username: "alice"}))
}

func TestUpdateProfileValidation(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	user := seedUser(t, db, "alice", "alice@example.com", true)
	require.NoError(t, profiles.CreateDefault(user))

	assert.ErrorIs(t, profiles.Update(user.ID, UpdateProfileInput{}), ErrInvalidData)
	assert.ErrorIs(t, profiles.Update(uuid.New(), UpdateProfileInput{Username: "ghost"}), ErrNotFound)
}

func TestDeleteAccountCascades(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	teams := NewTeamService(db, true)

	owner := seedUser(t, db, "alice", "alice@example.com", true)
	member := seedUser(t, db, "bob", "bob@example.com", true)
	require.NoError(t, profiles.CreateDefault(owner))
	require.NoError(t, profiles.CreateDefault(member))

	team, err := teams.Create(owner.ID, sampleTeam("rockets"))
	require.NoError(t, err)
	require.NoError(t, teams.Apply(member.ID, team.ID, ""))
	require.NoError(t, teams.Accept(owner.ID, member.ID, team.ID))

	// Deleting the owner takes the owned team and its memberships along.
	require.NoError(t, profiles.Delete(owner.ID))

	assert.ErrorIs(t, db.First(&models.User{}, "id = ?", owner.ID).Error, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, db.First(&models.Team{}, "id = ?", team.ID).Error, gorm.ErrRecordNotFound)

	var count int64
	db.Model(&models.Membership{}).Where("team_id = ?", team.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	// The member's own account and profile survive.
	_, err = profiles.Get(member.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, profiles.Delete(uuid.New()), ErrNotFound)
}

func TestDeleteMemberAccountKeepsTeam(t *testing.T) {
	db := setupTestDB(t)
	profiles := NewProfileService(db)
	teams := NewTeamService(db, true)

	owner := seedUser(t, db, "alice", "alice@example.com", true)
	member := seedUser(t, db, "bob", "bob@example.com", true)
	require.NoError(t, profiles.CreateDefault(member))

	team, err := teams.Create(owner.ID, sampleTeam("rockets"))
	require.NoError(t, err)
	require.NoError(t, teams.Apply(member.ID, team.ID, ""))
	require.NoError(t, teams.Accept(owner.ID, member.ID, team.ID))

	require.NoError(t, profiles.Delete(member.ID))

	// The team stands, only the membership is gone.
	require.NoError(t, db.First(&models.Team{}, "id = ?", team.ID).Error)
	members, err := teams.Members(team.ID, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}
