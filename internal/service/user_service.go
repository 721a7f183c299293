package service

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"notely/internal/model"
)

const (
	bcryptCost        = 12
	minPasswordLength = 8
)

// UserService covers the admin-only account surface. Accounts are created
// by administrators (no self-registration) and deactivated rather than
// deleted, so a disabled user keeps their notes.
type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (model.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" {
		return model.User{}, errValidation("email is required", "email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.User{}, errValidation("email is not a valid address", "email")
	}

	if err := validatePassword(req.Password); err != nil {
		return model.User{}, err
	}

	role := model.RoleRegular
	if strings.TrimSpace(req.Role) != "" {
		parsed, ok := model.ParseRole(req.Role)
		if !ok {
			return model.User{}, errValidation("role must be one of: regular, admin", "role")
		}
		role = parsed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}

	return user, nil
}

// Update applies role and/or active changes. The new state is read by the
// target's next login or refresh; access tokens already in flight keep
// their issued claims until natural expiry.
func (s *UserService) Update(ctx context.Context, p model.Principal, id string, req model.UpdateUserRequest) (model.User, error) {
	if req.Role == nil && req.Active == nil {
		return model.User{}, errValidation("at least one of role or active is required", "")
	}

	now := time.Now().UTC()

	if req.Role != nil {
		role, ok := model.ParseRole(*req.Role)
		if !ok {
			return model.User{}, errValidation("role must be one of: regular, admin", "role")
		}

		// Self-demotion is allowed but worth a trace: the admin's current
		// session keeps its admin claim until the token expires.
		if p.UserID == id && role != model.RoleAdmin {
			slog.Warn("admin self-demotion", "user_id", id, "new_role", string(role))
		}

		if err := s.users.UpdateRole(ctx, id, role, now); err != nil {
			return model.User{}, err
		}
	}

	if req.Active != nil {
		if err := s.users.SetActive(ctx, id, *req.Active, now); err != nil {
			return model.User{}, err
		}
	}

	return s.users.FindByID(ctx, id)
}

// ResetPassword stores an admin-supplied credential. Telling the user about
// it is a human process, not a system one.
func (s *UserService) ResetPassword(ctx context.Context, id string, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	return s.users.UpdatePassword(ctx, id, string(hash), time.Now().UTC())
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return errValidation("password must be at least 8 characters", "password")
	}
	return nil
}
