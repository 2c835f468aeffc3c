package courseRoutes

import (
	controllers "campus/controllers/course"
	"campus/middleware"
	validators "campus/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog and enrollment routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Catalog
	courseGroup.Get("/list", middleware.JWTMiddleware, controllers.GetAllCourses)
	courseGroup.Post("/create", middleware.JWTMiddleware, validators.CourseBody(), controllers.CreateCourse)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Put("/:id/update", middleware.JWTMiddleware, validators.CourseID(), validators.CourseBody(), controllers.UpdateCourse)
	courseGroup.Delete("/:id/delete", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Post("/:id/withdraw", middleware.JWTMiddleware, validators.CourseID(), controllers.WithdrawFromCourse)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, validators.EnrollmentList(), controllers.GetEnrollments)
}
