package services_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"memories-server/dto"
	"memories-server/internal/models"
	"memories-server/internal/repository/repotest"
	"memories-server/internal/services"

	"go.mongodb.org/mongo-driver/v2/bson"
)

func strPtr(s string) *string { return &s }

func newService(pageSize int64, seed ...models.Post) (*services.PostService, *repotest.FakePostStore) {
	store := repotest.NewFakePostStore(seed...)
	svc := services.NewPostService(store, pageSize)
	svc.Now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store
}

func seedPosts(n int) []models.Post {
	out := make([]models.Post, n)
	for i := range out {
		out[i] = models.Post{ID: bson.NewObjectID(), Title: "post"}
	}
	return out
}

func TestCreateLikeScenario(t *testing.T) {
	svc, _ := newService(8)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, "U", dto.PostInput{Title: "Hello"})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	if post.Creator != "U" || post.ID.IsZero() || post.CreatedAt.IsZero() {
		t.Fatalf("unexpected post: %+v", post)
	}
	if post.Likes == nil || len(post.Likes) != 0 || post.Comments == nil || len(post.Comments) != 0 {
		t.Fatalf("likes/comments should be empty non-nil, got %v %v", post.Likes, post.Comments)
	}

	liked, err := svc.LikePost(ctx, post.ID.Hex(), "U")
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if !reflect.DeepEqual(liked.Likes, []string{"U"}) {
		t.Errorf("after like: %v, want [U]", liked.Likes)
	}

	unliked, err := svc.LikePost(ctx, post.ID.Hex(), "U")
	if err != nil {
		t.Fatalf("LikePost: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Errorf("after unlike: %v, want []", unliked.Likes)
	}
}

func TestLikeKeepsOtherUsers(t *testing.T) {
	p := models.Post{ID: bson.NewObjectID(), Likes: []string{"a", "b"}}
	svc, _ := newService(8, p)

	got, err := svc.LikePost(context.Background(), p.ID.Hex(), "c")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.Likes, []string{"a", "b", "c"}) {
		t.Errorf("Likes = %v", got.Likes)
	}
	got, _ = svc.LikePost(context.Background(), p.ID.Hex(), "a")
	if !reflect.DeepEqual(got.Likes, []string{"b", "c"}) {
		t.Errorf("Likes = %v", got.Likes)
	}
}

func TestLikeRequiresUserBeforeID(t *testing.T) {
	svc, store := newService(8)

	for _, id := range []string{"not-an-id", bson.NewObjectID().Hex()} {
		if _, err := svc.LikePost(context.Background(), id, ""); !errors.Is(err, services.ErrUnauthenticated) {
			t.Errorf("LikePost(%q, \"\") = %v, want ErrUnauthenticated", id, err)
		}
	}
	if store.Calls != 0 {
		t.Errorf("store called %d times, want 0", store.Calls)
	}
}

func TestInvalidIDSkipsStore(t *testing.T) {
	svc, store := newService(8)
	ctx := context.Background()

	if _, err := svc.UpdatePost(ctx, "123", dto.UpdatePostInput{Title: strPtr("x")}); !errors.Is(err, services.ErrInvalidID) {
		t.Errorf("UpdatePost: %v", err)
	}
	if err := svc.DeletePost(ctx, "123"); !errors.Is(err, services.ErrInvalidID) {
		t.Errorf("DeletePost: %v", err)
	}
	if _, err := svc.GetPost(ctx, "zzz"); !errors.Is(err, services.ErrInvalidID) {
		t.Errorf("GetPost: %v", err)
	}
	if _, err := svc.CommentPost(ctx, "zzz", "hi"); !errors.Is(err, services.ErrInvalidID) {
		t.Errorf("CommentPost: %v", err)
	}
	if store.Calls != 0 {
		t.Errorf("store called %d times, want 0", store.Calls)
	}
}

func TestDeleteThenGetIsNotFound(t *testing.T) {
	p := models.Post{ID: bson.NewObjectID(), Title: "bye"}
	svc, _ := newService(8, p)
	ctx := context.Background()

	if err := svc.DeletePost(ctx, p.ID.Hex()); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := svc.GetPost(ctx, p.ID.Hex()); !errors.Is(err, services.ErrPostNotFound) {
		t.Errorf("GetPost after delete = %v, want ErrPostNotFound", err)
	}
	// deleting again is still fine
	if err := svc.DeletePost(ctx, p.ID.Hex()); err != nil {
		t.Errorf("second DeletePost: %v", err)
	}
}

func TestListPostsPageSizeOne(t *testing.T) {
	svc, _ := newService(1, seedPosts(3)...)

	for page := int64(1); page <= 4; page++ {
		res, err := svc.ListPosts(context.Background(), page)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(res.Data) > 1 {
			t.Errorf("page %d: %d posts, want at most 1", page, len(res.Data))
		}
		if res.NumberOfPages != 3 {
			t.Errorf("page %d: numberOfPages = %d, want 3", page, res.NumberOfPages)
		}
		if res.CurrentPage != page {
			t.Errorf("currentPage = %d, want %d", res.CurrentPage, page)
		}
	}
}

func TestListPostsNewestFirst(t *testing.T) {
	posts := seedPosts(10)
	svc, _ := newService(8, posts...)

	first, err := svc.ListPosts(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(first.Data) != 8 || first.NumberOfPages != 2 {
		t.Fatalf("got %d posts / %d pages, want 8 / 2", len(first.Data), first.NumberOfPages)
	}
	if first.Data[0].ID != posts[9].ID {
		t.Errorf("first post should be the newest")
	}

	second, _ := svc.ListPosts(context.Background(), 2)
	if len(second.Data) != 2 || second.Data[1].ID != posts[0].ID {
		t.Errorf("second page should end with the oldest post")
	}
}

func TestListPostsClampsPage(t *testing.T) {
	svc, _ := newService(8)
	res, err := svc.ListPosts(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.CurrentPage != 1 || res.Data == nil || res.NumberOfPages != 0 {
		t.Errorf("unexpected empty page: %+v", res)
	}
}

func TestSearchPostsUnion(t *testing.T) {
	seed := []models.Post{
		{ID: bson.NewObjectID(), Title: "Test Post"},
		{ID: bson.NewObjectID(), Title: "TESTING"},
		{ID: bson.NewObjectID(), Title: "other", Tags: []string{"go"}},
		{ID: bson.NewObjectID(), Title: "unrelated", Tags: []string{"rust"}},
	}
	svc, _ := newService(8, seed...)

	res, err := svc.SearchPosts(context.Background(), "test", "go,mongo")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Data) != 3 {
		t.Fatalf("got %d matches, want 3: %+v", len(res.Data), res.Data)
	}
	for _, p := range res.Data {
		if p.Title == "unrelated" {
			t.Errorf("unexpected match %q", p.Title)
		}
	}
}

func TestSearchPostsTreatsQueryLiterally(t *testing.T) {
	seed := []models.Post{
		{ID: bson.NewObjectID(), Title: "a+b"},
		{ID: bson.NewObjectID(), Title: "aab"},
	}
	svc, _ := newService(8, seed...)

	res, err := svc.SearchPosts(context.Background(), "a+b", "")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Data) != 1 || res.Data[0].Title != "a+b" {
		t.Errorf("got %+v, want only a+b", res.Data)
	}
}

func TestSearchPostsEmptyQueryMatchesEveryTitle(t *testing.T) {
	svc, store := newService(8, seedPosts(2)...)
	ctx := context.Background()

	for _, tags := range []string{"", "nomatch"} {
		calls := store.Calls
		res, err := svc.SearchPosts(ctx, "", tags)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.Data) != 2 {
			t.Errorf("tags %q: got %d posts, want 2", tags, len(res.Data))
		}
		if store.Calls != calls+1 {
			t.Errorf("tags %q: store calls %d -> %d, want one search", tags, calls, store.Calls)
		}
	}
}

func TestSearchPostsNoMatches(t *testing.T) {
	svc, _ := newService(8, seedPosts(2)...)
	res, err := svc.SearchPosts(context.Background(), "zzz", "nomatch")
	if err != nil {
		t.Fatal(err)
	}
	if res.Data == nil || len(res.Data) != 0 {
		t.Errorf("got %v, want empty non-nil slice", res.Data)
	}
}

func TestCommentPostAppends(t *testing.T) {
	p := models.Post{ID: bson.NewObjectID(), Comments: []string{"a"}}
	svc, _ := newService(8, p)
	ctx := context.Background()

	got, err := svc.CommentPost(ctx, p.ID.Hex(), "b")
	if err != nil {
		t.Fatal(err)
	}
	got, _ = svc.CommentPost(ctx, p.ID.Hex(), "b")
	if !reflect.DeepEqual(got.Comments, []string{"a", "b", "b"}) {
		t.Errorf("Comments = %v, want [a b b]", got.Comments)
	}
}

func TestUpdatePostPartial(t *testing.T) {
	p := models.Post{ID: bson.NewObjectID(), Title: "old", Message: "keep", Creator: "U", Likes: []string{"x"}}
	svc, _ := newService(8, p)
	ctx := context.Background()

	got, err := svc.UpdatePost(ctx, p.ID.Hex(), dto.UpdatePostInput{Title: strPtr("new")})
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "new" || got.Message != "keep" || got.Creator != "U" || len(got.Likes) != 1 {
		t.Errorf("unexpected update result: %+v", got)
	}

	same, err := svc.UpdatePost(ctx, p.ID.Hex(), dto.UpdatePostInput{})
	if err != nil || same.Title != "new" {
		t.Errorf("empty update = %+v, %v", same, err)
	}

	if _, err := svc.UpdatePost(ctx, bson.NewObjectID().Hex(), dto.UpdatePostInput{Title: strPtr("x")}); !errors.Is(err, services.ErrPostNotFound) {
		t.Errorf("update of missing post = %v, want ErrPostNotFound", err)
	}
}
