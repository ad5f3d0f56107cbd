package dto

import "github.com/swapnilgupta14/synapse-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	ID             uint64          `json:"id"`
	Username       string          `json:"username"`
	Email          string          `json:"email"`
	Role           models.UserRole `json:"role"`
	OrganizationID *uint64         `json:"organization_id,omitempty"`
	TeamIDs        []uint64        `json:"team_ids,omitempty"`
}

// NewUserDTO converts a user model to its response form
func NewUserDTO(user *models.User) UserDTO {
	d := UserDTO{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		OrganizationID: user.OrganizationID,
	}
	for _, t := range user.Teams {
		d.TeamIDs = append(d.TeamIDs, t.ID)
	}
	return d
}

// NewUserDTOs converts a slice of user models
func NewUserDTOs(users []models.User) []UserDTO {
	out := make([]UserDTO, len(users))
	for i := range users {
		out[i] = NewUserDTO(&users[i])
	}
	return out
}
