package api

import (
	"time"

	"iot-web/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID         int       `json:"id" example:"1"`
	Name       string    `json:"name" example:"ann"`
	LastName   string    `json:"last_name" example:"lee"`
	Email      string    `json:"email" example:"ann@example.com"`
	CreateDate time.Time `json:"create_date" example:"2025-05-01T15:04:05Z"`
	IsActive   bool      `json:"is_active" example:"true"`
	IsAdmin    bool      `json:"is_admin" example:"false"`
}

func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		LastName:   u.LastName,
		Email:      u.Email,
		CreateDate: u.CreateDate,
		IsActive:   u.IsActive,
		IsAdmin:    u.IsAdmin,
	}
}

func NewUserListResponse(users []model.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
