package application

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/borrowspace/service-sharing/internal/domain"
	userDomain "github.com/borrowspace/service-sharing/internal/domain/user"
)

// CreateUserRequest is the request DTO for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateUserRequest is the request DTO for partially updating a user.
type UpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserDTO is the API response representation of a user.
type UserDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// UserService implements use cases for the user directory.
type UserService struct {
	repo   userDomain.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

// CreateUser registers a new user. Email addresses are unique.
func (s *UserService) CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.NewConflictError("user with email %s is already registered", req.Email)
	}

	u, err := userDomain.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, u); err != nil {
		s.logger.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", u.ID().String()))
	result := toUserDTO(u)
	return &result, nil
}

// UpdateUser applies a partial update. Changing the email to one registered
// by another user is rejected.
func (s *UserService) UpdateUser(ctx context.Context, req UpdateUserRequest, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != "" {
		existing, err := s.repo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID() != userID {
			return nil, domain.NewConflictError("user with email %s is already registered", req.Email)
		}
	}

	u.Update(req.Name, req.Email)
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error("failed to update user", zap.Error(err))
		return nil, err
	}

	result := toUserDTO(u)
	return &result, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := toUserDTO(u)
	return &result, nil
}

// DeleteUser removes a user by id.
func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return s.repo.Delete(ctx, userID)
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:    u.ID(),
		Name:  u.Name(),
		Email: u.Email(),
	}
}
