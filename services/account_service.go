package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"motodealer-api/auth"
	"motodealer-api/models"
	"motodealer-api/repositories"
	"motodealer-api/utils"
)

const (
	msgUserNotFound  = "User not found"
	msgEmailTaken    = "Email already registered"
	msgShortPassword = "Password must be at least 6 characters"
)

// AuthResult is returned by registration and login.
type AuthResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
}

type CreateUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// UpdateUserCommand replaces name, email and role. The password is rehashed only when
// a new one is given, and an empty role keeps the current one.
type UpdateUserCommand struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type AccountService struct {
	users  *repositories.UserRepository
	tokens *auth.TokenIssuer
	mailer Mailer
}

func NewAccountService(db *gorm.DB, tokens *auth.TokenIssuer, mailer Mailer) *AccountService {
	return &AccountService{
		users:  repositories.NewUserRepository(db),
		tokens: tokens,
		mailer: mailer,
	}
}

func (s *AccountService) Register(ctx context.Context, cmd RegisterCommand) (*AuthResult, error) {
	user, err := s.createAccount(ctx, cmd.Name, cmd.Email, cmd.Password, models.RoleUser)
	if err != nil {
		return nil, err
	}

	if s.mailer != nil {
		email, name := user.Email, user.Name
		sendAsync("welcome", func() error { return s.mailer.SendWelcomeEmail(email, name) })
	}

	return s.issue(user)
}

// Login answers an unknown email and a wrong password identically.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if utils.IsBlank(email) || password == "" {
		return nil, utils.NewValidationError("Email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrInvalidCredentials
		}
		return nil, utils.NewInternalError("Failed to look up account", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, utils.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AccountService) Get(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewNotFoundError(msgUserNotFound)
		}
		return nil, utils.NewInternalError("Failed to fetch user", err)
	}
	return user, nil
}

func (s *AccountService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, utils.NewInternalError("Failed to fetch users", err)
	}
	return users, nil
}

// Create is the administrator path for adding accounts; the role defaults to user.
func (s *AccountService) Create(ctx context.Context, cmd CreateUserCommand) (*models.User, error) {
	role := cmd.Role
	if role == "" {
		role = models.RoleUser
	}
	return s.createAccount(ctx, cmd.Name, cmd.Email, cmd.Password, role)
}

func (s *AccountService) Update(ctx context.Context, id string, cmd UpdateUserCommand) (*models.User, error) {
	if utils.IsBlank(cmd.Name) || utils.IsBlank(cmd.Email) {
		return nil, utils.NewValidationError("Name and email are required")
	}
	email := utils.NormalizeEmail(cmd.Email)
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("Invalid email address")
	}
	if cmd.Role != "" && !cmd.Role.Valid() {
		return nil, utils.NewValidationError("role must be user or admin")
	}
	if cmd.Password != "" && !utils.IsValidPassword(cmd.Password) {
		return nil, utils.NewValidationError(msgShortPassword)
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.users.EmailTaken(ctx, email, id)
	if err != nil {
		return nil, utils.NewInternalError("Failed to check email", err)
	}
	if taken {
		return nil, utils.NewConflictError(msgEmailTaken)
	}

	user.Name = cmd.Name
	user.Email = email
	if cmd.Role != "" {
		user.Role = cmd.Role
	}
	if cmd.Password != "" {
		hashed, err := auth.HashPassword(cmd.Password)
		if err != nil {
			return nil, utils.NewInternalError("Failed to hash password", err)
		}
		user.Password = hashed
	}

	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError(msgEmailTaken)
		}
		return nil, utils.NewInternalError("Failed to update user", err)
	}
	return user, nil
}

func (s *AccountService) Delete(ctx context.Context, id string) error {
	rows, err := s.users.Delete(ctx, id)
	if err != nil {
		return utils.NewInternalError("Failed to delete user", err)
	}
	if rows == 0 {
		return utils.NewNotFoundError(msgUserNotFound)
	}
	return nil
}

func (s *AccountService) createAccount(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	if utils.IsBlank(name) || utils.IsBlank(email) || password == "" {
		return nil, utils.NewValidationError("Name, email and password are required")
	}
	email = utils.NormalizeEmail(email)
	if !utils.IsValidEmail(email) {
		return nil, utils.NewValidationError("Invalid email address")
	}
	if !utils.IsValidPassword(password) {
		return nil, utils.NewValidationError(msgShortPassword)
	}
	if !role.Valid() {
		return nil, utils.NewValidationError("role must be user or admin")
	}

	taken, err := s.users.EmailTaken(ctx, email, "")
	if err != nil {
		return nil, utils.NewInternalError("Failed to check email", err)
	}
	if taken {
		return nil, utils.NewConflictError(msgEmailTaken)
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return nil, utils.NewInternalError("Failed to hash password", err)
	}

	user := &models.User{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Unique index catches a registration racing the check above
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.NewConflictError(msgEmailTaken)
		}
		return nil, utils.NewInternalError("Failed to create user", err)
	}

	log.WithFields(log.Fields{"user_id": user.ID, "role": user.Role}).Info("Account created")
	return user, nil
}

func (s *AccountService) issue(user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(auth.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, utils.NewInternalError("Failed to generate token", err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}
