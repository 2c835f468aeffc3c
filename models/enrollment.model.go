package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment links a user to a course. The composite unique index backs the
// one-enrollment-per-user-per-course invariant at the storage level.
type Enrollment struct {
	gorm.Model
	UserID     uint      `json:"user_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	CourseID   uint      `json:"course_id" gorm:"index;not null;uniqueIndex:idx_user_course"`
	EnrolledAt time.Time `json:"enrolled_at"`
	User       User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course     Course    `json:"course,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
