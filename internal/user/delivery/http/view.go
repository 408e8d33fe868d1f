package http

import (
	"time"

	"github.com/connectchain/admin-api/internal/user/domain"
)

// UserView is the outbound shape of a supplier or customer account
type UserView struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	FullName    string `json:"fullName"`
	CompanyName string `json:"companyName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	IsVerified  bool   `json:"isVerified"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// NewUserView maps a user to its response shape
func NewUserView(u domain.User) UserView {
	status := "inactive"
	if u.IsActive {
		status = "active"
	}
	return UserView{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FullName:    u.FullName,
		CompanyName: u.CompanyName,
		Phone:       u.Phone,
		Address:     u.Address,
		Role:        u.Role,
		Status:      status,
		IsVerified:  u.IsVerified,
		CreatedAt:   formatTime(u.CreatedAt),
		UpdatedAt:   formatTime(u.UpdatedAt),
	}
}

// NewUserViews maps a user page
func NewUserViews(users []domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	return views
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
