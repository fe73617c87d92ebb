package dao

import (
	"context"
	"errors"
	"weft/internal/common"
	"weft/internal/server/model"

	"gorm.io/gorm"
)

type UserDAO interface {
	// create user
	Create(ctx context.Context, user *model.User) error
	// get user by username
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type userDAO struct {
}

func NewUserDAO() UserDAO {
	return &userDAO{}
}

func (d *userDAO) Create(ctx context.Context, user *model.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (d *userDAO) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := db.WithContext(ctx).Where("username = ?", username).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewErrNo(common.UserNotExists)
		}
		return nil, err
	}
	return &user, nil
}
