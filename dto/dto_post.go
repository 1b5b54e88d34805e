package dto

import "memories-server/internal/models"

// PostInput is the body of POST /posts. creator, createdAt, likes and
// comments are server owned and not accepted here.
type PostInput struct {
	Title        string   `json:"title"`
	Message      string   `json:"message"`
	Name         string   `json:"name"`
	Tags         []string `json:"tags"`
	SelectedFile string   `json:"selectedFile"`
}

// UpdatePostInput is the body of PATCH /posts/:id. Nil fields are left as is.
type UpdatePostInput struct {
	Title        *string   `json:"title,omitempty"`
	Message      *string   `json:"message,omitempty"`
	Name         *string   `json:"name,omitempty"`
	Tags         *[]string `json:"tags,omitempty"`
	SelectedFile *string   `json:"selectedFile,omitempty"`
}

type CommentInput struct {
	Value string `json:"value"`
}

type PostsPage struct {
	Data          []models.Post `json:"data"`
	CurrentPage   int64         `json:"currentPage"`
	NumberOfPages int64         `json:"numberOfPages"`
}

type SearchResult struct {
	Data []models.Post `json:"data"`
}
