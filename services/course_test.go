package services

import (
	"campus/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCourseCRUD(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseService(db)

	course := &models.Course{Name: "Algebra", Instructor: "Prof. Smith", Capacity: 30}
	require.NoError(t, svc.Create(course))
	require.NotZero(t, course.ID)

	found, err := svc.FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", found.Name)
	assert.Equal(t, "Prof. Smith", found.Instructor)
	assert.Equal(t, 30, found.Capacity)

	found.Name = "Linear Algebra"
	found.Capacity = 25
	require.NoError(t, svc.Update(found))

	updated, err := svc.FindByID(course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Linear Algebra", updated.Name)
	assert.Equal(t, 25, updated.Capacity)

	courses, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	require.NoError(t, svc.Delete(course.ID))

	_, err = svc.FindByID(course.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCourseFindByIDMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCourseService(db)

	_, err := svc.FindByID(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCourseDeleteCascadesEnrollments(t *testing.T) {
	db := setupTestDB(t)
	courses := NewCourseService(db)
	enrollments := NewEnrollmentService(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	algebra := createTestCourse(t, db, "Algebra", 10)
	biology := createTestCourse(t, db, "Biology", 10)

	_, err := enrollments.Enroll(alice, algebra)
	require.NoError(t, err)
	_, err = enrollments.Enroll(bob, algebra)
	require.NoError(t, err)
	_, err = enrollments.Enroll(alice, biology)
	require.NoError(t, err)

	require.NoError(t, courses.Delete(algebra.ID))

	count, err := enrollments.CountEnrolled(algebra)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	enrolled, err := enrollments.IsEnrolled(alice, algebra)
	require.NoError(t, err)
	assert.False(t, enrolled)

	// Enrollments in other courses are untouched
	count, err = enrollments.CountEnrolled(biology)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
