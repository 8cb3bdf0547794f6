package fixturedb

import (
	"github.com/qemer/lms/core/user"
)

type userRepository struct {
	db *DB
}

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	return append([]user.User(nil), repo.db.users...), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	for _, u := range repo.db.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}
