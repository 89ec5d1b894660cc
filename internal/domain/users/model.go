package users

import "time"

// PrivilegeLevel 0 is a regular student account. Levels at or above the
// configured admin threshold bypass content-access restrictions.
type User struct {
	ID       uint    `gorm:"primaryKey"`
	Name     string  `gorm:"not null"`
	Lastname string  `gorm:"not null"`
	Email    string  `gorm:"not null;uniqueIndex:idx_users_email"`
	Password *string `gorm:""`

	PrivilegeLevel int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin reports whether the user clears the administrative threshold.
func (u User) IsAdmin(adminLevel int) bool {
	return u.PrivilegeLevel >= adminLevel
}
