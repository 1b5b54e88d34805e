package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"memories-server/config"
	"memories-server/dto"
	"memories-server/internal/models"
	"memories-server/internal/repository"
	"memories-server/internal/utils"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrInvalidID       = errors.New("invalid post id")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrPostNotFound    = repository.ErrPostNotFound
)

type PostService struct {
	Store    repository.PostStore
	PageSize int64
	Now      func() time.Time
}

func NewPostService(store repository.PostStore, pageSize int64) *PostService {
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	return &PostService{Store: store, PageSize: pageSize, Now: time.Now}
}

func parseID(idHex string) (bson.ObjectID, error) {
	id, err := utils.Oid(idHex)
	if err != nil {
		return bson.NilObjectID, ErrInvalidID
	}
	return id, nil
}

func (s *PostService) GetPost(ctx context.Context, idHex string) (*models.Post, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	return s.Store.FindByID(ctx, id)
}

// ListPosts returns one page, newest first. Pages are 1-based; anything
// below 1 is read as the first page.
func (s *PostService) ListPosts(ctx context.Context, page int64) (*dto.PostsPage, error) {
	if page < 1 {
		page = 1
	}
	startIndex := (page - 1) * s.PageSize

	total, err := s.Store.Count(ctx)
	if err != nil {
		return nil, err
	}

	posts, err := s.Store.FindPage(ctx, startIndex, s.PageSize)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return &dto.PostsPage{
		Data:          posts,
		CurrentPage:   page,
		NumberOfPages: (total + s.PageSize - 1) / s.PageSize,
	}, nil
}

// SearchPosts matches titles containing searchQuery (case-insensitive, taken
// literally) OR posts carrying any of the comma separated tags.
func (s *PostService) SearchPosts(ctx context.Context, searchQuery, tags string) (*dto.SearchResult, error) {
	posts, err := s.Store.Search(ctx, regexp.QuoteMeta(searchQuery), utils.SplitTags(tags))
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return &dto.SearchResult{Data: posts}, nil
}

func (s *PostService) CreatePost(ctx context.Context, creator string, in dto.PostInput) (*models.Post, error) {
	post := &models.Post{
		Title:        in.Title,
		Message:      in.Message,
		Name:         in.Name,
		Creator:      creator,
		Tags:         utils.CleanTags(in.Tags),
		SelectedFile: in.SelectedFile,
		Likes:        []string{},
		Comments:     []string{},
		CreatedAt:    s.Now().UTC(),
	}
	if err := s.Store.Insert(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// updateFields maps the non-nil fields of in to their document keys.
func updateFields(in dto.UpdatePostInput) bson.M {
	fields := bson.M{}
	if in.Title != nil {
		fields["title"] = *in.Title
	}
	if in.Message != nil {
		fields["message"] = *in.Message
	}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Tags != nil {
		fields["tags"] = utils.CleanTags(*in.Tags)
	}
	if in.SelectedFile != nil {
		fields["selectedFile"] = *in.SelectedFile
	}
	return fields
}

func (s *PostService) UpdatePost(ctx context.Context, idHex string, in dto.UpdatePostInput) (*models.Post, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	fields := updateFields(in)
	if len(fields) == 0 {
		return s.Store.FindByID(ctx, id)
	}
	return s.Store.Update(ctx, id, fields)
}

func (s *PostService) DeletePost(ctx context.Context, idHex string) error {
	id, err := parseID(idHex)
	if err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}

// LikePost flips userID's membership in the post's likers set.
func (s *PostService) LikePost(ctx context.Context, idHex, userID string) (*models.Post, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	return s.Store.ToggleLike(ctx, id, userID)
}

func (s *PostService) CommentPost(ctx context.Context, idHex, value string) (*models.Post, error) {
	id, err := parseID(idHex)
	if err != nil {
		return nil, err
	}
	return s.Store.AppendComment(ctx, id, value)
}
