package service

import (
	"context"
	"log"

	"demo/ordertrace/internal/model"
	"demo/ordertrace/internal/store"
)

// UserService is the user directory. It has no cross-entity rules.
type UserService struct {
	repo store.UserRepository
}

func NewUserService(repo store.UserRepository) *UserService { return &UserService{repo: repo} }

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	log.Printf("users: list")
	return s.repo.ListUsers(ctx)
}

func (s *UserService) GetUser(ctx context.Context, id int64) (model.User, bool, error) {
	log.Printf("users: get id=%d", id)
	return s.repo.GetUser(ctx, id)
}

// CreateUser ignores any id on u; the store assigns one.
func (s *UserService) CreateUser(ctx context.Context, u model.User) (model.User, error) {
	log.Printf("users: create email=%s", u.Email)
	u.ID = 0
	return s.repo.CreateUser(ctx, u)
}

// UpdateUser overwrites name, email and city of user id with the values in
// patch and returns the stored result. ok is false when id does not exist.
func (s *UserService) UpdateUser(ctx context.Context, id int64, patch model.User) (model.User, bool, error) {
	log.Printf("users: update id=%d", id)
	return s.repo.UpdateUser(ctx, model.User{
		ID:    id,
		Name:  patch.Name,
		Email: patch.Email,
		City:  patch.City,
	})
}

func (s *UserService) DeleteUser(ctx context.Context, id int64) (bool, error) {
	log.Printf("users: delete id=%d", id)
	return s.repo.DeleteUser(ctx, id)
}
