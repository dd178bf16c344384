package user

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/praveen001/trailmap/internal/services/access"
)

type UserService struct {
	repo *UserRepo
}

func NewUserService(repo *UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a user with a bcrypt password hash. New users get the
// learner and planner roles; admin is only granted out of band.
func (s *UserService) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, req.Name, strings.TrimSpace(req.Email), string(hash), []string{access.RoleLearner, access.RolePlanner})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("invalid password")
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByEmail resolves the local account behind an external login.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// List returns the directory of users, shown to planners and admins when
// assigning roadmaps.
func (s *UserService) List(ctx context.Context) ([]*Directory, error) {
	return s.repo.List(ctx)
}
