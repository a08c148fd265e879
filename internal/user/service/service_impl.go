package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/warungkit/warungpos/internal/clock"
	"github.com/warungkit/warungpos/internal/db"
	"github.com/warungkit/warungpos/internal/user/domain"
	"github.com/warungkit/warungpos/internal/user/password"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.UserResponse, error) {
	users, err := s.repo.List(ctx, s.db)
	if err != nil {
		return nil, err
	}

	out := make([]domain.UserResponse, 0, len(users))
	for _, user := range users {
		out = append(out, toUserResponse(user))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user, err := s.repo.FindByID(ctx, s.db, userID)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if user == nil {
		return domain.UserResponse{}, domain.ErrNotFound
	}
	return toUserResponse(*user), nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateUserRequest) (domain.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.UserResponse{}, domain.ErrInvalidUsername
	}
	if len(req.Password) < minPasswordLen {
		return domain.UserResponse{}, domain.ErrInvalidPassword
	}
	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return domain.UserResponse{}, err
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	now := s.clock.Now()
	user := domain.User{
		ID:           s.genID.Generate(),
		Username:     username,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByUsername(ctx, tx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUsernameTaken
		}
		if err := s.repo.Insert(ctx, tx, &user); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return domain.UserResponse{}, err
	}

	s.log.Info("user created",
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)
	return toUserResponse(user), nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateUserRequest) (domain.UserResponse, error) {
	userID, err := parseID(id)
	if err != nil {
		return domain.UserResponse{}, err
	}

	var role *domain.Role
	if req.Role != nil {
		parsed, err := domain.ParseRole(*req.Role)
		if err != nil {
			return domain.UserResponse{}, err
		}
		role = &parsed
	}

	var user *domain.User
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err = s.repo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}

		losesAdmin := user.Role == domain.RoleAdmin && user.IsActive &&
			((role != nil && *role != domain.RoleAdmin) || (req.IsActive != nil && !*req.IsActive))
		if losesAdmin {
			admins, err := s.repo.CountActiveAdmins(ctx, tx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.ErrLastAdmin
			}
		}

		if req.FullName != nil {
			user.FullName = strings.TrimSpace(*req.FullName)
		}
		if role != nil {
			user.Role = *role
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}
		user.UpdatedAt = s.clock.Now()

		return s.repo.Save(ctx, tx, user)
	})
	if err != nil {
		return domain.UserResponse{}, err
	}
	return toUserResponse(*user), nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) (domain.DeleteResult, error) {
	targetID, err := parseID(id)
	if err != nil {
		return domain.DeleteResult{}, err
	}
	actor, err := parseID(actorID)
	if err != nil {
		return domain.DeleteResult{}, err
	}

	var result domain.DeleteResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		performer, err := s.repo.FindByID(ctx, tx, actor)
		if err != nil {
			return err
		}
		if performer == nil {
			return domain.ErrNotFound
		}
		if performer.Role != domain.RoleAdmin {
			return domain.ErrNotAdmin
		}
		if actor == targetID {
			return domain.ErrSelfDelete
		}

		user, err := s.repo.FindByIDForUpdate(ctx, tx, targetID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}

		if !user.IsActive {
			if err := s.repo.Delete(ctx, tx, user.ID); err != nil {
				return err
			}
			result = domain.DeleteResult{
				Outcome: domain.DeleteOutcomeDeleted,
				Message: "user permanently deleted",
			}
			return nil
		}

		if user.Role == domain.RoleAdmin {
			admins, err := s.repo.CountActiveAdmins(ctx, tx)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return domain.ErrLastAdmin
			}
		}

		user.IsActive = false
		user.UpdatedAt = s.clock.Now()
		if err := s.repo.Save(ctx, tx, user); err != nil {
			return err
		}
		result = domain.DeleteResult{
			Outcome: domain.DeleteOutcomeDeactivated,
			Message: "user deactivated; delete again to remove permanently",
		}
		return nil
	})
	if err != nil {
		return domain.DeleteResult{}, err
	}

	s.log.Info("user delete",
		zap.String("user_id", targetID.String()),
		zap.String("outcome", string(result.Outcome)),
	)
	return result, nil
}

func (s *Service) ResetPassword(ctx context.Context, id string, req domain.ResetPasswordRequest) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}
	if len(req.NewPassword) < minPasswordLen {
		return domain.ErrInvalidPassword
	}

	hash, err := password.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	// Resets are allowed on deactivated accounts so an admin can fix
	// credentials before reactivating.
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := s.repo.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return domain.ErrNotFound
		}
		user.PasswordHash = hash
		user.UpdatedAt = s.clock.Now()
		return s.repo.Save(ctx, tx, user)
	})
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func toUserResponse(user domain.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
