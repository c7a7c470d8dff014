package response

import (
	"time"
	"wonderchain/internal/core/domain/user"
)

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Email = string(du.Email)
	u.CreatedAt = du.CreatedAt
	if du.LastLoginAt.IsPresent {
		lastLoginAt := du.LastLoginAt.Value
		u.LastLoginAt = &lastLoginAt
	}
}
