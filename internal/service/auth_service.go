package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	errs "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
)

const bcryptCost = 10

// SignupInput is the data needed to create a user with its employee profile.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Contact  string
}

// AuthService handles signup, login and logout.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*model.User, *model.Employee, error)
	Login(ctx context.Context, identifier, password string) (token string, user *model.User, err error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// Signup creates the User and its Employee profile atomically. Employee name
// falls back to the username and contact to the email.
func (s *authService) Signup(ctx context.Context, in SignupInput) (*model.User, *model.Employee, error) {
	if _, err := s.userRepo.FindByEmail(ctx, in.Email); err == nil {
		return nil, nil, errs.Conflict("email already registered")
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, errs.Internal(err)
	}

	if _, err := s.userRepo.FindByUsername(ctx, in.Username); err == nil {
		return nil, nil, errs.Conflict("username already taken")
	} else if err != gorm.ErrRecordNotFound {
		return nil, nil, errs.Internal(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, nil, errs.Internal(err)
	}

	name := in.Name
	if name == "" {
		name = in.Username
	}
	contact := in.Contact
	if contact == "" {
		contact = in.Email
	}

	user := &model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hashed),
		Role:         model.RoleEmployee,
	}
	employee := &model.Employee{
		Name:         name,
		Contact:      contact,
		MaxTasks:     model.DefaultMaxTasks,
		Availability: model.AvailabilityAvailable,
	}

	if err := s.userRepo.CreateWithEmployee(ctx, user, employee); err != nil {
		return nil, nil, errs.Internal(err)
	}
	return user, employee, nil
}

// Login authenticates by email or username and returns a signed session token.
func (s *authService) Login(ctx context.Context, identifier, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, identifier)
	if err == gorm.ErrRecordNotFound {
		user, err = s.userRepo.FindByUsername(ctx, identifier)
	}
	if err == gorm.ErrRecordNotFound {
		return "", nil, errs.NotFound("user not found")
	}
	if err != nil {
		return "", nil, errs.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errs.Authentication("invalid password")
	}

	var employeeID uint
	if user.Employee != nil {
		employeeID = user.Employee.ID
	}

	token, _, err := s.jwtService.GenerateToken(user.ID, employeeID, user.Email)
	if err != nil {
		return "", nil, errs.Internal(err)
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return "", nil, errs.Internal(err)
	}
	user.LastLogin = &now

	return token, user, nil
}

// Logout blacklists the token until its natural expiry.
func (s *authService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return errs.Authentication("invalid token")
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.tokenStore.RevokeToken(ctx, claims.ID, ttl); err != nil {
		return errs.Internal(err)
	}
	return nil
}
