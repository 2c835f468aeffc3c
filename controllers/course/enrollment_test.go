package controllers_test

import (
	"bytes"
	"campus/config"
	"campus/models"
	"campus/routers/authRoutes"
	"campus/routers/courseRoutes"
	"campus/services"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:      "0",
		JWTKey:    "test-secret",
		SaltRound: bcrypt.MinCost,
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Course{}, &models.Enrollment{}))

	services.InitServices(db, bcrypt.MinCost)

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func signupAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	status, _ := doRequest(t, app, http.MethodPost, "/auth/signup", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, resp := doRequest(t, app, http.MethodPost, "/auth/login", "", fiber.Map{
		"username": username,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createCourse(t *testing.T, app *fiber.App, token, name string, capacity int) uint {
	t.Helper()

	status, resp := doRequest(t, app, http.MethodPost, "/course/create", token, fiber.Map{
		"name":       name,
		"instructor": "Prof. Smith",
		"capacity":   capacity,
	})
	require.Equal(t, http.StatusCreated, status)

	var course struct {
		ID uint `json:"ID"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &course))
	require.NotZero(t, course.ID)
	return course.ID
}

func TestEnrollmentRoutes(t *testing.T) {
	app := setupTestApp(t)

	alice := signupAndLogin(t, app, "alice")
	bob := signupAndLogin(t, app, "bob")

	courseID := createCourse(t, app, alice, "Algebra", 1)
	enrollPath := fmt.Sprintf("/course/%d/enroll", courseID)
	withdrawPath := fmt.Sprintf("/course/%d/withdraw", courseID)

	// Alice takes the only seat
	status, _ := doRequest(t, app, http.MethodPost, enrollPath, alice, nil)
	assert.Equal(t, http.StatusOK, status)

	// Enrolling twice is rejected
	status, resp := doRequest(t, app, http.MethodPost, enrollPath, alice, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, resp.Message, "already enrolled")

	// The course is full for Bob
	status, resp = doRequest(t, app, http.MethodPost, enrollPath, bob, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Contains(t, resp.Message, "capacity")

	// Alice frees the seat
	status, _ = doRequest(t, app, http.MethodPost, withdrawPath, alice, nil)
	assert.Equal(t, http.StatusOK, status)

	// Withdrawing again reports not enrolled
	status, _ = doRequest(t, app, http.MethodPost, withdrawPath, alice, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Bob can now enroll
	status, _ = doRequest(t, app, http.MethodPost, enrollPath, bob, nil)
	assert.Equal(t, http.StatusOK, status)

	// Bob sees his enrollment
	status, resp = doRequest(t, app, http.MethodGet, "/user/enrollments", bob, nil)
	assert.Equal(t, http.StatusOK, status)

	var list struct {
		Enrollments []struct {
			CourseID uint `json:"course_id"`
		} `json:"enrollments"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	require.Len(t, list.Enrollments, 1)
	assert.Equal(t, courseID, list.Enrollments[0].CourseID)
}

func TestCourseDetailsReportsSeatStatus(t *testing.T) {
	app := setupTestApp(t)

	alice := signupAndLogin(t, app, "alice")

	courseID := createCourse(t, app, alice, "Algebra", 2)
	enrollPath := fmt.Sprintf("/course/%d/enroll", courseID)

	status, _ := doRequest(t, app, http.MethodPost, enrollPath, alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d", courseID), alice, nil)
	require.Equal(t, http.StatusOK, status)

	var detail struct {
		Enrolled    int  `json:"enrolled"`
		HasCapacity bool `json:"has_capacity"`
		Course      struct {
			Name     string `json:"name"`
			Capacity int    `json:"capacity"`
		} `json:"course"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &detail))
	assert.Equal(t, 1, detail.Enrolled)
	assert.True(t, detail.HasCapacity)
	assert.Equal(t, "Algebra", detail.Course.Name)
	assert.Equal(t, 2, detail.Course.Capacity)
}

func TestEnrollUnknownCourse(t *testing.T) {
	app := setupTestApp(t)

	alice := signupAndLogin(t, app, "alice")

	status, _ := doRequest(t, app, http.MethodPost, "/course/999/enroll", alice, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestEnrollRequiresAuth(t *testing.T) {
	app := setupTestApp(t)

	status, _ := doRequest(t, app, http.MethodPost, "/course/1/enroll", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestCourseValidation(t *testing.T) {
	app := setupTestApp(t)

	alice := signupAndLogin(t, app, "alice")

	status, _ := doRequest(t, app, http.MethodPost, "/course/create", alice, fiber.Map{
		"name":       "",
		"instructor": "Prof. Smith",
		"capacity":   0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestDeleteCourseRemovesEnrollments(t *testing.T) {
	app := setupTestApp(t)

	alice := signupAndLogin(t, app, "alice")

	courseID := createCourse(t, app, alice, "Algebra", 5)
	enrollPath := fmt.Sprintf("/course/%d/enroll", courseID)

	status, _ := doRequest(t, app, http.MethodPost, enrollPath, alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, http.MethodDelete, fmt.Sprintf("/course/%d/delete", courseID), alice, nil)
	require.Equal(t, http.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodGet, "/user/enrollments", alice, nil)
	require.Equal(t, http.StatusOK, status)

	var list struct {
		Enrollments []json.RawMessage `json:"enrollments"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Empty(t, list.Enrollments)
}
