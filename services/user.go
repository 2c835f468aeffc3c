package services

import (
	"campus/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration and user lookups.
type UserService struct {
	db       *gorm.DB
	hashCost int
}

func NewUserService(db *gorm.DB, hashCost int) *UserService {
	return &UserService{db: db, hashCost: hashCost}
}

// ExistsByUsername reports whether the username is already taken.
func (s *UserService) ExistsByUsername(username string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail reports whether the email is already registered.
func (s *UserService) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// Register hashes the plaintext password and persists the user. A duplicate
// username or email is rejected by the unique columns and surfaces as an
// error from the insert.
func (s *UserService) Register(username, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns the user or gorm.ErrRecordNotFound.
func (s *UserService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user or gorm.ErrRecordNotFound.
func (s *UserService) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the user and all their enrollments in one transaction.
func (s *UserService) Delete(user *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := RemoveByUser(tx, user.ID); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, user.ID).Error
	})
}
