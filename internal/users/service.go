package users

import (
	"context"
	"errors"
	"strings"

	"github.com/deelmap/admin-backend/pkg/db/models"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListParams filters the moderation table.
type ListParams struct {
	Blocked *bool
	Active  *bool
	Search  string
	Page    pagination.Params
}

// ListResult is one page of users.
type ListResult struct {
	Users      []models.User `json:"users"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

// Service exposes buyer moderation operations.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error)
}

type service struct {
	repo Repository
}

// NewService wires user moderation dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "users repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find user")
	}
	return user, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	cursor, err := pagination.ParseCursor(params.Page.Cursor)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	limit := pagination.NormalizeLimit(params.Page.Limit)
	users, err := s.repo.List(ctx, listFilter{
		Blocked: params.Blocked,
		Active:  params.Active,
		Search:  strings.TrimSpace(params.Search),
	}, cursor, pagination.LimitWithBuffer(params.Page.Limit))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}

	result := &ListResult{Users: users}
	if len(users) > limit {
		result.Users = users[:limit]
		last := result.Users[limit-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	return result, nil
}

// SetBlocked flips the block flag. Blocking also deactivates the account so a
// blocked buyer cannot keep an active session.
func (s *service) SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Blocked = blocked
	if blocked {
		user.Active = false
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user block flag")
	}
	return user, nil
}

// SetActive flips the active flag. A blocked account cannot be reactivated
// without unblocking it first.
func (s *service) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if active && user.Blocked {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "unblock the user before reactivating")
	}

	user.Active = active
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user active flag")
	}
	return user, nil
}
