package services

import (
	"errors"
	"strings"
	"time"

	"github.com/COMFACA/Creditos-Backend/src/middleware"
	"github.com/COMFACA/Creditos-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetAllUsers retrieves all User records from the database
func (s *UserService) GetAllUsers() ([]models.UserModel, error) {
	var users []models.UserModel
	result := s.db.Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}

// GetUserByUsername retrieves a User record by username
func (s *UserService) GetUserByUsername(username string) (*models.UserModel, error) {
	var user models.UserModel
	if err := s.db.First(&user, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUsuarioNoEncontrado
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser creates a new User record in the database
func (s *UserService) CreateUser(user *models.UserModel) (*models.UserModel, error) {
	if strings.TrimSpace(user.Username) == "" {
		return nil, nuevaValidacion("el username es obligatorio")
	}
	if user.Password == "" {
		return nil, nuevaValidacion("la contraseña es obligatoria")
	}
	if len(user.Roles) == 0 {
		user.Roles = models.Roles{models.RolUserTrabajador}
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashedPassword)

	result := s.db.Create(user)
	if result.Error != nil {
		return nil, result.Error
	}
	return user, nil
}

// UpdateRoles reemplaza el conjunto de roles de un usuario.
func (s *UserService) UpdateRoles(username string, roles models.Roles) (*models.UserModel, error) {
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(user).Update("roles", roles).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a User record by ID
func (s *UserService) DeleteUser(id int) error {
	result := s.db.Delete(&models.UserModel{}, id)
	return result.Error
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(username, password string) (string, *models.UserModel, error) {
	var user models.UserModel
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", nil, errors.New("invalid username or password")
		}
		return "", nil, result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":       user.Id,
		"username": user.Username,
		"roles":    user.Roles,
		"exp":      time.Now().Add(time.Hour * 12).Unix(), // Token expires in 12 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", nil, err
	}

	return tokenString, &user, nil
}
