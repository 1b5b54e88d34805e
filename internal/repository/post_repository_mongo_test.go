package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"memories-server/internal/models"
	"memories-server/internal/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mongoRepo connects to MONGO_TEST_URI and returns a repository over a
// throwaway database. Tests are skipped when the variable is unset.
func mongoRepo(t *testing.T) *repository.MongoPostRepository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping: %v", err)
	}

	db := client.Database(fmt.Sprintf("memories_test_%s", bson.NewObjectID().Hex()))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return repository.NewMongoPostRepository(db)
}

func TestMongoToggleLike(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	p := &models.Post{Title: "Hello"}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}

	liked, err := repo.ToggleLike(ctx, p.ID, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != "u1" {
		t.Fatalf("likes = %v, want [u1]", liked.Likes)
	}
	unliked, err := repo.ToggleLike(ctx, p.ID, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(unliked.Likes) != 0 {
		t.Errorf("likes = %v, want []", unliked.Likes)
	}

	// ids that look like field paths are compared as plain strings
	weird, err := repo.ToggleLike(ctx, p.ID, "$title")
	if err != nil {
		t.Fatal(err)
	}
	if len(weird.Likes) != 1 || weird.Likes[0] != "$title" {
		t.Errorf("likes = %v, want [$title]", weird.Likes)
	}

	if _, err := repo.ToggleLike(ctx, bson.NewObjectID(), "u1"); !errors.Is(err, repository.ErrPostNotFound) {
		t.Errorf("missing post err = %v, want ErrPostNotFound", err)
	}
}

func TestMongoConcurrentLikesAreNotLost(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	p := &models.Post{Title: "busy"}
	if err := repo.Insert(ctx, p); err != nil {
		t.Fatal(err)
	}

	const users = 20
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := repo.ToggleLike(ctx, p.ID, fmt.Sprintf("u%d", i)); err != nil {
				t.Errorf("toggle u%d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Likes) != users {
		t.Errorf("got %d likes, want %d", len(got.Likes), users)
	}
}

func TestMongoSearch(t *testing.T) {
	repo := mongoRepo(t)
	ctx := context.Background()

	for _, p := range []*models.Post{
		{Title: "Test Post"},
		{Title: "TESTING"},
		{Title: "other", Tags: []string{"go"}},
		{Title: "unrelated", Tags: []string{"rust"}},
	} {
		if err := repo.Insert(ctx, p); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		pattern string
		tags    []string
		want    int
	}{
		{"test", []string{"go", "mongo"}, 3},
		{"test", nil, 2},
		{"", nil, 4},
		{"", []string{"nomatch"}, 4},
		{"zzz", []string{"rust"}, 1},
	}
	for _, tc := range cases {
		got, err := repo.Search(ctx, tc.pattern, tc.tags)
		if err != nil {
			t.Fatal(err)
		}
		if len(got) != tc.want {
			t.Errorf("Search(%q, %v) = %d posts, want %d", tc.pattern, tc.tags, len(got), tc.want)
		}
	}
}
