package services

import "gorm.io/gorm"

// Global service instances, wired once at startup.
var (
	Users       *UserService
	Courses     *CourseService
	Enrollments *EnrollmentService
)

// InitServices builds the service singletons on top of the given database.
func InitServices(db *gorm.DB, hashCost int) {
	Users = NewUserService(db, hashCost)
	Courses = NewCourseService(db)
	Enrollments = NewEnrollmentService(db)
}
