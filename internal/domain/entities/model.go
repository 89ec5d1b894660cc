package entities

import (
	"time"

	"classroom-app/internal/apperr"
)

// Entity type strings as they appear in content rows and API queries.
const (
	TypeClasses = "classes"
	TypeNotices = "notices"
	TypeQuizzes = "quizzes"
	TypeGames   = "games"
)

func ValidType(entityType string) bool {
	switch entityType {
	case TypeClasses, TypeNotices, TypeQuizzes, TypeGames:
		return true
	}
	return false
}

// MustValidType returns a ValidationError for unknown entity types.
func MustValidType(entityType string) error {
	if !ValidType(entityType) {
		return apperr.Validationf("unknown entity type %q", entityType)
	}
	return nil
}

type Class struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassEnrollment scopes eligible-user listings for class-owned content.
type ClassEnrollment struct {
	ID      uint `gorm:"primaryKey"`
	ClassID uint `gorm:"not null;uniqueIndex:idx_class_enrollments_pair"`
	UserID  uint `gorm:"not null;uniqueIndex:idx_class_enrollments_pair"`

	CreatedAt time.Time
}

type Notice struct {
	ID    uint   `gorm:"primaryKey"`
	Title string `gorm:"not null"`
	Body  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Quiz struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Game struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"not null"`
	Description string

	CreatedAt time.Time
	UpdatedAt time.Time
}
