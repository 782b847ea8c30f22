package domain

import (
	"time"
)

type Role string

const (
	RoleEmployee    Role = "员工"
	RoleShiftLeader Role = "领班"
	RoleManager     Role = "经理"
	RoleOwner       Role = "店长"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// 经理及以上才能管理班次和审批请假
func (u *User) IsManagerOrAbove() bool {
	return u.Role == RoleManager || u.Role == RoleOwner
}
