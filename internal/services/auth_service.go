package services

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/smarttransit/bus-ticketing-backend/internal/models"
	"github.com/smarttransit/bus-ticketing-backend/pkg/jwt"
)

// AuthService authenticates counter employees and issues session tokens
type AuthService struct {
	employees EmployeeStore
	jwtSvc    *jwt.Service
	logger    *logrus.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(employees EmployeeStore, jwtSvc *jwt.Service, logger *logrus.Logger) *AuthService {
	return &AuthService{
		employees: employees,
		jwtSvc:    jwtSvc,
		logger:    logger,
	}
}

// Login verifies credentials and returns a session token. Unknown usernames
// and wrong passwords produce the same error.
func (s *AuthService) Login(req *models.LoginRequest) (string, *models.Employee, error) {
	employee, err := s.employees.GetByUsername(req.Username)
	if err != nil {
		if err == models.ErrEmployeeNotFound {
			return "", nil, models.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if employee.Status != models.EmployeeStatusActive {
		s.logger.WithField("username", req.Username).Warn("Login attempt on non-active employee account")
		return "", nil, models.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.jwtSvc.GenerateToken(employee.ID, employee.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"username":    employee.Username,
	}).Info("Employee logged in")

	return token, employee, nil
}

// HashPassword hashes a password for storage
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
