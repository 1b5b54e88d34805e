package repotest

import (
	"context"
	"strings"
	"sync"

	"memories-server/internal/models"
	"memories-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type FakeUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

var _ repository.UserStore = (*FakeUserStore)(nil)

func NewFakeUserStore() *FakeUserStore {
	return &FakeUserStore{users: map[string]models.User{}}
}

func (s *FakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}

func (s *FakeUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if _, ok := s.users[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	if user.ID.IsZero() {
		user.ID = bson.NewObjectID()
	}
	s.users[user.Email] = *user
	return nil
}
