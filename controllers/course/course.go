package controllers

import (
	"campus/middleware"
	"campus/models"
	"campus/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists the catalog
func GetAllCourses(c *fiber.Ctx) error {
	courses, err := services.Courses.List()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// GetCourseDetails returns one course with its enrollments and seat status
func GetCourseDetails(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := services.Courses.FindByID(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollments, err := services.Enrollments.ListByCourse(course)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	for i := range enrollments {
		enrollments[i].User.Password = ""
	}

	hasCapacity, err := services.Enrollments.HasCapacity(course)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check course capacity!", nil)
	}

	response := fiber.Map{
		"course":       course,
		"enrollments":  enrollments,
		"enrolled":     len(enrollments),
		"has_capacity": hasCapacity,
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", response)
}

// CreateCourse adds a new course to the catalog
func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name       string `json:"name"`
		Instructor string `json:"instructor"`
		Capacity   *int   `json:"capacity"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := models.Course{
		Name:       reqData.Name,
		Instructor: reqData.Instructor,
		Capacity:   *reqData.Capacity,
	}

	if err := services.Courses.Create(&course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits an existing course
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := services.Courses.FindByID(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Name       string `json:"name"`
		Instructor string `json:"instructor"`
		Capacity   *int   `json:"capacity"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Name = reqData.Name
	course.Instructor = reqData.Instructor
	course.Capacity = *reqData.Capacity

	if err := services.Courses.Update(course); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// DeleteCourse removes a course and its enrollments
func DeleteCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	course, err := services.Courses.FindByID(uint(courseID))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if err := services.Courses.Delete(course.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
