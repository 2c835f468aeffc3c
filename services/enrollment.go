package services

import (
	"campus/models"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAlreadyEnrolled = errors.New("user is already enrolled in this course")
	ErrCourseFull      = errors.New("course has reached its maximum capacity")
	ErrNotEnrolled     = errors.New("user is not enrolled in this course")
)

// EnrollmentService enforces the enrollment invariants: a user holds at most
// one enrollment per course, and a course never exceeds its capacity.
type EnrollmentService struct {
	db    *gorm.DB
	locks sync.Map // course ID -> *sync.Mutex
}

func NewEnrollmentService(db *gorm.DB) *EnrollmentService {
	return &EnrollmentService{db: db}
}

// courseLock returns the mutex guarding check-then-insert for one course.
// Serializing per course closes the capacity race; the composite unique
// index on (user_id, course_id) remains as the storage-level backstop.
func (s *EnrollmentService) courseLock(courseID uint) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(courseID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Enroll registers the user in the course. The caller must have resolved
// both records already.
func (s *EnrollmentService) Enroll(user *models.User, course *models.Course) (*models.Enrollment, error) {
	lock := s.courseLock(course.ID)
	lock.Lock()
	defer lock.Unlock()

	var enrollment models.Enrollment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Enrollment{}).
			Where("user_id = ? AND course_id = ?", user.ID, course.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrAlreadyEnrolled
		}

		var enrolled int64
		if err := tx.Model(&models.Enrollment{}).
			Where("course_id = ?", course.ID).
			Count(&enrolled).Error; err != nil {
			return err
		}
		if enrolled >= int64(course.Capacity) {
			return ErrCourseFull
		}

		enrollment = models.Enrollment{
			UserID:     user.ID,
			CourseID:   course.ID,
			EnrolledAt: time.Now(),
		}
		return tx.Create(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}

	return &enrollment, nil
}

// Withdraw removes the user's enrollment in the course. The delete is
// unscoped so a withdrawn pair can enroll again later.
func (s *EnrollmentService) Withdraw(user *models.User, course *models.Course) error {
	result := s.db.Unscoped().
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Delete(&models.Enrollment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotEnrolled
	}
	return nil
}

// CountEnrolled returns the number of enrollments held against the course.
func (s *EnrollmentService) CountEnrolled(course *models.Course) (int64, error) {
	var count int64
	err := s.db.Model(&models.Enrollment{}).
		Where("course_id = ?", course.ID).
		Count(&count).Error
	return count, err
}

// HasCapacity reports whether the course can accept another enrollment.
func (s *EnrollmentService) HasCapacity(course *models.Course) (bool, error) {
	count, err := s.CountEnrolled(course)
	if err != nil {
		return false, err
	}
	return count < int64(course.Capacity), nil
}

// IsEnrolled reports whether the user holds an enrollment in the course.
func (s *EnrollmentService) IsEnrolled(user *models.User, course *models.Course) (bool, error) {
	var count int64
	err := s.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's enrollments with their courses loaded.
func (s *EnrollmentService) ListByUser(user *models.User) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.Where("user_id = ?", user.ID).
		Preload("Course").
		Order("enrolled_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

// ListByCourse returns the course's enrollments with their users loaded.
func (s *EnrollmentService) ListByCourse(course *models.Course) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := s.db.Where("course_id = ?", course.ID).
		Preload("User").
		Order("enrolled_at asc").
		Find(&enrollments).Error
	return enrollments, err
}

// RemoveByCourse deletes every enrollment of a course inside the caller's
// transaction. Used by course deletion to cascade explicitly.
func RemoveByCourse(tx *gorm.DB, courseID uint) error {
	return tx.Unscoped().Where("course_id = ?", courseID).Delete(&models.Enrollment{}).Error
}

// RemoveByUser deletes every enrollment of a user inside the caller's
// transaction. Used by user deletion to cascade explicitly.
func RemoveByUser(tx *gorm.DB, userID uint) error {
	return tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Enrollment{}).Error
}
