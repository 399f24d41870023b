// services/team_service.go - Team registry and membership workflow
package services

import (
	"errors"
	"time"

	"findteam/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamService owns team metadata and the join-request state machine.
// Per (user, team) pair the states are NONE -> APPLIED -> MEMBER, with
// APPLIED -> NONE on reject and MEMBER -> NONE on leave or exclude.
type TeamService struct {
	db *gorm.DB

	// singleOwner rejects a second owned team per user.
	singleOwner bool
}

func NewTeamService(db *gorm.DB, singleOwner bool) *TeamService {
	return &TeamService{db: db, singleOwner: singleOwner}
}

type TagsInput struct {
	Tag1 string `json:"tag1"`
	Tag2 string `json:"tag2"`
	Tag3 string `json:"tag3"`
	Tag4 string `json:"tag4"`
	Tag5 string `json:"tag5"`
	Tag6 string `json:"tag6"`
	Tag7 string `json:"tag7"`
}

type TeamInput struct {
	Title           string    `json:"title"`
	TypeTeam        string    `json:"type_team"`
	NumberOfMembers int       `json:"number_of_members"`
	Description     string    `json:"team_description"`
	DeadlineAt      time.Time `json:"team_deadline_at"`
	City            string    `json:"team_city"`
	Tags            TagsInput `json:"tags"`
}

// Member is the projection of a membership row for member lists.
type Member struct {
	UserID   uuid.UUID `json:"user_id"`
	TeamID   uuid.UUID `json:"team_id"`
	Username string    `json:"username"`
}

// ApplicationInfo is a pending join request as shown to the team owner.
type ApplicationInfo struct {
	UserID      uuid.UUID `json:"user_id"`
	TeamID      uuid.UUID `json:"team_id"`
	Username    string    `json:"username"`
	CoverLetter string    `json:"cover_letter"`
}

// TeamSummary is the browsing projection of a team.
type TeamSummary struct {
	ID              uuid.UUID        `json:"id"`
	Title           string           `json:"title"`
	TypeTeam        string           `json:"type_team"`
	NumberOfMembers int              `json:"number_of_members"`
	DeadlineAt      time.Time        `json:"team_deadline_at"`
	City            string           `json:"team_city"`
	Tags            *models.TeamTags `json:"tags,omitempty"`
}

// TeamDetail is the full team page: metadata, owner name, tags, members.
type TeamDetail struct {
	models.Team
	OwnerName string   `json:"owner_name"`
	Members   []Member `json:"members"`
}

// ================== TEAM REGISTRY ==================

// Create inserts the team and its tags in one transaction.
func (s *TeamService) Create(ownerID uuid.UUID, in TeamInput) (*models.Team, error) {
	if in.Title == "" || in.NumberOfMembers <= 0 {
		return nil, ErrInvalidData
	}

	if s.singleOwner {
		var count int64
		s.db.Model(&models.Team{}).Where("owner_id = ?", ownerID).Count(&count)
		if count > 0 {
			return nil, ErrDuplicateOwnership
		}
	}

	team := &models.Team{
		OwnerID:         ownerID,
		Title:           in.Title,
		TypeTeam:        in.TypeTeam,
		NumberOfMembers: in.NumberOfMembers,
		Description:     in.Description,
		DeadlineAt:      in.DeadlineAt,
		City:            in.City,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}
		tags := tagsFromInput(team.ID, in.Tags)
		return tx.Create(tags).Error
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Update mutates a team after an explicit existence and ownership
// check, so a non-owner gets ErrForbidden rather than a silent no-op.
func (s *TeamService) Update(teamID, requesterID uuid.UUID, in TeamInput) error {
	team, err := s.requireOwner(teamID, requesterID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":             in.Title,
			"type_team":         in.TypeTeam,
			"number_of_members": in.NumberOfMembers,
			"description":       in.Description,
			"deadline_at":       in.DeadlineAt,
			"city":              in.City,
		}
		if err := tx.Model(team).Updates(updates).Error; err != nil {
			return err
		}
		tags := tagsFromInput(teamID, in.Tags)
		return tx.Model(&models.TeamTags{}).Where("team_id = ?", teamID).Updates(map[string]interface{}{
			"tag1": tags.Tag1, "tag2": tags.Tag2, "tag3": tags.Tag3,
			"tag4": tags.Tag4, "tag5": tags.Tag5, "tag6": tags.Tag6,
			"tag7": tags.Tag7,
		}).Error
	})
}

// Delete removes a team and everything attached to it.
func (s *TeamService) Delete(teamID, requesterID uuid.UUID) error {
	if _, err := s.requireOwner(teamID, requesterID); err != nil {
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return purgeTeam(tx, teamID)
	})
}

// DeleteAny removes a team without an ownership check (admin surface).
func (s *TeamService) DeleteAny(teamID uuid.UUID) error {
	var team models.Team
	if err := s.db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		return purgeTeam(tx, teamID)
	})
}

// purgeTeam deletes a team's tags, memberships and applications along
// with the team row itself, inside the caller's transaction.
func purgeTeam(tx *gorm.DB, teamID uuid.UUID) error {
	if err := tx.Where("team_id = ?", teamID).Delete(&models.Membership{}).Error; err != nil {
		return err
	}
	if err := tx.Where("team_id = ?", teamID).Delete(&models.Application{}).Error; err != nil {
		return err
	}
	if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamTags{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Team{}, "id = ?", teamID).Error
}

// Get resolves the full team page.
func (s *TeamService) Get(teamID uuid.UUID) (*TeamDetail, error) {
	var team models.Team
	err := s.db.Preload("Tags").Preload("Owner").First(&team, "id = ?", teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	members, err := s.membersOf(teamID)
	if err != nil {
		return nil, err
	}

	detail := &TeamDetail{Team: team, Members: members}
	if team.Owner != nil {
		detail.OwnerName = team.Owner.Username
	}
	return detail, nil
}

// List returns the browsing projection of every team.
func (s *TeamService) List() ([]TeamSummary, error) {
	var teams []models.Team
	if err := s.db.Preload("Tags").Order("created_at DESC").Find(&teams).Error; err != nil {
		return nil, err
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, summaryOf(t))
	}
	return summaries, nil
}

// OwnedTeam returns the requester's own team page.
func (s *TeamService) OwnedTeam(ownerID uuid.UUID) (*TeamDetail, error) {
	var team models.Team
	if err := s.db.First(&team, "owner_id = ?", ownerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(team.ID)
}

// MemberTeams returns the teams the user belongs to.
func (s *TeamService) MemberTeams(userID uuid.UUID) ([]TeamSummary, error) {
	var teams []models.Team
	err := s.db.Preload("Tags").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, summaryOf(t))
	}
	return summaries, nil
}

// OwnedTeams returns the teams the user owns.
func (s *TeamService) OwnedTeams(userID uuid.UUID) ([]TeamSummary, error) {
	var teams []models.Team
	if err := s.db.Preload("Tags").Where("owner_id = ?", userID).Find(&teams).Error; err != nil {
		return nil, err
	}

	summaries := make([]TeamSummary, 0, len(teams))
	for _, t := range teams {
		summaries = append(summaries, summaryOf(t))
	}
	return summaries, nil
}

// ================== MEMBERSHIP WORKFLOW ==================

// Apply submits a join request. Valid only from the NONE state: a
// pending application, an existing membership, or being the owner all
// fail with ErrInvalidData.
func (s *TeamService) Apply(userID, teamID uuid.UUID, coverLetter string) error {
	var team models.Team
	if err := s.db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if team.OwnerID == userID {
		return ErrInvalidData
	}

	var count int64
	s.db.Model(&models.Membership{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).Count(&count)
	if count > 0 {
		return ErrInvalidData
	}

	application := models.Application{
		UserID:      userID,
		TeamID:      teamID,
		CoverLetter: coverLetter,
	}
	// The composite primary key turns a duplicate application into a
	// constraint violation, remapped instead of leaked.
	if err := s.db.Create(&application).Error; err != nil {
		return ErrInvalidData
	}
	return nil
}

// Accept moves APPLIED -> MEMBER: the membership insert and the
// application delete commit together or not at all.
func (s *TeamService) Accept(ownerID, comradeID, teamID uuid.UUID) error {
	if _, err := s.requireOwner(teamID, ownerID); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND team_id = ?", comradeID, teamID).
			Delete(&models.Application{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrInvalidData
		}

		member := models.Membership{UserID: comradeID, TeamID: teamID}
		if err := tx.Create(&member).Error; err != nil {
			return ErrInvalidData
		}
		return nil
	})
}

// Reject moves APPLIED -> NONE.
func (s *TeamService) Reject(ownerID, comradeID, teamID uuid.UUID) error {
	if _, err := s.requireOwner(teamID, ownerID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND team_id = ?", comradeID, teamID).
		Delete(&models.Application{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidData
	}
	return nil
}

// Exclude removes a member on the owner's request.
func (s *TeamService) Exclude(ownerID, comradeID, teamID uuid.UUID) error {
	if _, err := s.requireOwner(teamID, ownerID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND team_id = ?", comradeID, teamID).
		Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInvalidData
	}
	return nil
}

// Leave removes the departing user's own membership.
func (s *TeamService) Leave(userID, teamID uuid.UUID) error {
	result := s.db.Where("user_id = ? AND team_id = ?", userID, teamID).
		Delete(&models.Membership{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNoSuchMembership
	}
	return nil
}

// Members lists a team's members. Only the owner and current members
// may see the list.
func (s *TeamService) Members(teamID, requesterID uuid.UUID) ([]Member, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if team.OwnerID != requesterID && !s.isMember(requesterID, teamID) {
		return nil, ErrForbidden
	}
	return s.membersOf(teamID)
}

// Applications lists pending join requests. Owner only.
func (s *TeamService) Applications(teamID, requesterID uuid.UUID) ([]ApplicationInfo, error) {
	if _, err := s.requireOwner(teamID, requesterID); err != nil {
		return nil, err
	}

	var applications []ApplicationInfo
	err := s.db.Model(&models.Application{}).
		Select("applications_to_join.user_id, applications_to_join.team_id, applications_to_join.cover_letter, auth_users.username").
		Joins("JOIN auth_users ON auth_users.id = applications_to_join.user_id").
		Where("applications_to_join.team_id = ?", teamID).
		Scan(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// ================== HELPERS ==================

// requireOwner distinguishes a missing team from an ownership failure.
func (s *TeamService) requireOwner(teamID, requesterID uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if team.OwnerID != requesterID {
		return nil, ErrForbidden
	}
	return &team, nil
}

func (s *TeamService) isMember(userID, teamID uuid.UUID) bool {
	var count int64
	s.db.Model(&models.Membership{}).
		Where("user_id = ? AND team_id = ?", userID, teamID).Count(&count)
	return count > 0
}

func (s *TeamService) membersOf(teamID uuid.UUID) ([]Member, error) {
	var members []Member
	err := s.db.Model(&models.Membership{}).
		Select("team_members.user_id, team_members.team_id, auth_users.username").
		Joins("JOIN auth_users ON auth_users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func tagsFromInput(teamID uuid.UUID, in TagsInput) *models.TeamTags {
	return &models.TeamTags{
		TeamID: teamID,
		Tag1:   in.Tag1, Tag2: in.Tag2, Tag3: in.Tag3,
		Tag4: in.Tag4, Tag5: in.Tag5, Tag6: in.Tag6, Tag7: in.Tag7,
	}
}

func summaryOf(t models.Team) TeamSummary {
	return TeamSummary{
		ID:              t.ID,
		Title:           t.Title,
		TypeTeam:        t.TypeTeam,
		NumberOfMembers: t.NumberOfMembers,
		DeadlineAt:      t.DeadlineAt,
		City:            t.City,
		Tags:            t.Tags,
	}
}
