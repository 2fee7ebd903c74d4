package store

import (
	"context"

	"github.com/Adv-2005/DocuGenAI/core/db/sqlc"
	"github.com/Adv-2005/DocuGenAI/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByWorkOSID(ctx context.Context, workosUserID string) (*model.User, error) {
	row, err := s.queries.GetUserByWorkOSID(ctx, &workosUserID)
	if err != nil {
		return nil, mapError(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row, err := s.queries.CreateUser(ctx, sqlc.CreateUserParams{
		ID:           user.ID,
		WorkosUserID: user.WorkOSUserID,
		Name:         user.Name,
		Email:        user.Email,
		AvatarUrl:    user.AvatarURL,
		IsGuest:      user.IsGuest,
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) UpsertByWorkOSID(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUserByWorkOSID(ctx, sqlc.UpsertUserByWorkOSIDParams{
		ID:           user.ID,
		WorkosUserID: user.WorkOSUserID,
		Name:         user.Name,
		Email:        user.Email,
		AvatarUrl:    user.AvatarURL,
	})
	if err != nil {
		return mapError(err)
	}
	*user = *toUserModel(row)
	return nil
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:           row.ID,
		WorkOSUserID: row.WorkosUserID,
		Name:         row.Name,
		Email:        row.Email,
		AvatarURL:    row.AvatarUrl,
		IsGuest:      row.IsGuest,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}
