// Package repotest provides in-memory stores for handler and service tests.
package repotest

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"memories-server/internal/models"
	"memories-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FakePostStore implements repository.PostStore over a map. Calls counts
// every method invocation so tests can assert the store was not touched.
type FakePostStore struct {
	mu    sync.Mutex
	posts map[bson.ObjectID]models.Post
	Calls int
	// Err, when set, is returned by every method.
	Err error
}

var _ repository.PostStore = (*FakePostStore)(nil)

func NewFakePostStore(seed ...models.Post) *FakePostStore {
	s := &FakePostStore{posts: map[bson.ObjectID]models.Post{}}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = bson.NewObjectID()
		}
		p.Normalize()
		s.posts[p.ID] = p
	}
	return s
}

func (s *FakePostStore) begin() error {
	s.mu.Lock()
	s.Calls++
	return s.Err
}

func clone(p models.Post) *models.Post {
	p.Tags = append([]string{}, p.Tags...)
	p.Likes = append([]string{}, p.Likes...)
	p.Comments = append([]string{}, p.Comments...)
	return &p
}

func (s *FakePostStore) FindByID(_ context.Context, id bson.ObjectID) (*models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	return clone(p), nil
}

func (s *FakePostStore) Count(context.Context) (int64, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return 0, err
	}
	return int64(len(s.posts)), nil
}

func (s *FakePostStore) sorted() []models.Post {
	out := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, *clone(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() > out[j].ID.Hex() })
	return out
}

func (s *FakePostStore) FindPage(_ context.Context, skip, limit int64) ([]models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	all := s.sorted()
	if skip >= int64(len(all)) {
		return []models.Post{}, nil
	}
	end := skip + limit
	if end > int64(len(all)) {
		end = int64(len(all))
	}
	return all[skip:end], nil
}

func (s *FakePostStore) Search(_ context.Context, titlePattern string, tags []string) ([]models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	re, err := regexp.Compile("(?i)" + titlePattern)
	if err != nil {
		return nil, err
	}
	want := map[string]bool{}
	for _, t := range tags {
		want[t] = true
	}

	out := []models.Post{}
	for _, p := range s.sorted() {
		if re.MatchString(p.Title) {
			out = append(out, p)
			continue
		}
		for _, t := range p.Tags {
			if want[t] {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *FakePostStore) Insert(_ context.Context, post *models.Post) error {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	post.Normalize()
	s.posts[post.ID] = *clone(*post)
	return nil
}

func (s *FakePostStore) Update(_ context.Context, id bson.ObjectID, fields bson.M) (*models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	for k, v := range fields {
		switch strings.ToLower(k) {
		case "title":
			p.Title = v.(string)
		case "message":
			p.Message = v.(string)
		case "name":
			p.Name = v.(string)
		case "selectedfile":
			p.SelectedFile = v.(string)
		case "tags":
			p.Tags = v.([]string)
		}
	}
	s.posts[id] = p
	return clone(p), nil
}

func (s *FakePostStore) Delete(_ context.Context, id bson.ObjectID) error {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}
	delete(s.posts, id)
	return nil
}

func (s *FakePostStore) ToggleLike(_ context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	if p.LikedBy(userID) {
		kept := []string{}
		for _, l := range p.Likes {
			if l != userID {
				kept = append(kept, l)
			}
		}
		p.Likes = kept
	} else {
		p.Likes = append(append([]string{}, p.Likes...), userID)
	}
	s.posts[id] = p
	return clone(p), nil
}

func (s *FakePostStore) AppendComment(_ context.Context, id bson.ObjectID, value string) (*models.Post, error) {
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}
	p, ok := s.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}
	p.Comments = append(append([]string{}, p.Comments...), value)
	s.posts[id] = p
	return clone(p), nil
}
