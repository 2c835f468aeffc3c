package models

import "gorm.io/gorm"

// Course represents a course offering with a fixed seat capacity
type Course struct {
	gorm.Model
	Name       string `json:"name" gorm:"not null"`
	Instructor string `json:"instructor" gorm:"not null"`
	Capacity   int    `json:"capacity" gorm:"not null"`
}
