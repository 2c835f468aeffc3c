package services

import (
	"campus/models"

	"gorm.io/gorm"
)

// CourseService handles catalog CRUD. Field validation happens in the
// request validators before a record reaches this service.
type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// List returns all courses.
func (s *CourseService) List() ([]models.Course, error) {
	var courses []models.Course
	err := s.db.Order("id asc").Find(&courses).Error
	return courses, err
}

// FindByID returns the course or gorm.ErrRecordNotFound.
func (s *CourseService) FindByID(id uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// Create persists a new course.
func (s *CourseService) Create(course *models.Course) error {
	return s.db.Create(course).Error
}

// Update saves changes to an existing course.
func (s *CourseService) Update(course *models.Course) error {
	return s.db.Save(course).Error
}

// Delete removes the course and all its enrollments in one transaction.
func (s *CourseService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := RemoveByCourse(tx, id); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.Course{}, id).Error
	})
}
