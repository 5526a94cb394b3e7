package jsondb

import (
	"github.com/edwebhq/edweb/core/user"
)

type userRepository struct {
	store *Store
}

func NewUserRepository(store *Store) user.Repository {
	return &userRepository{store: store}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	rec, err := toRecord(usr)
	if err != nil {
		return user.User{}, err
	}
	created, err := repo.store.Create(CollectionUsers, rec)
	if err != nil {
		return user.User{}, err
	}
	if err := fromRecord(created, &usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	recs, err := repo.store.FindAll(CollectionUsers)
	if err != nil {
		return nil, err
	}
	var users []user.User
	if err := fromRecords(recs, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	rec, err := repo.store.FindByID(CollectionUsers, id)
	if err != nil {
		if err == ErrNotFound {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	var usr user.User
	if err := fromRecord(rec, &usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	rec, err := repo.store.FindOne(CollectionUsers, Filter{"email": email})
	if err != nil {
		if err == ErrNotFound {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	var usr user.User
	if err := fromRecord(rec, &usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(id string, fields user.UpdateFields) (user.User, error) {
	rec := Record{}
	if fields.Name != nil {
		rec["name"] = *fields.Name
	}
	if fields.Avatar != nil {
		rec["avatar"] = *fields.Avatar
	}
	if fields.PasswordHash != nil {
		rec["password"] = *fields.PasswordHash
	}
	if fields.Role != nil {
		rec["role"] = *fields.Role
	}
	if fields.Badges != nil {
		rec["badges"] = fields.Badges
	}
	if fields.CourseProgress != nil {
		rec["courseProgress"] = fields.CourseProgress
	}

	updated, err := repo.store.Update(CollectionUsers, id, rec)
	if err != nil {
		if err == ErrNotFound {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	var usr user.User
	if err := fromRecord(updated, &usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}
