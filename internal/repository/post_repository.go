package repository

import (
	"context"
	"errors"
	"fmt"

	"memories-server/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var ErrPostNotFound = errors.New("post not found")

// PostStore is the persistence boundary of the posts resource.
type PostStore interface {
	FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error)
	Count(ctx context.Context) (int64, error)
	FindPage(ctx context.Context, skip, limit int64) ([]models.Post, error)
	Search(ctx context.Context, titlePattern string, tags []string) ([]models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Post, error)
	Delete(ctx context.Context, id bson.ObjectID) error
	ToggleLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error)
	AppendComment(ctx context.Context, id bson.ObjectID, value string) (*models.Post, error)
}

type MongoPostRepository struct {
	Col *mongo.Collection
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{Col: db.Collection("posts")}
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Post, error) {
	var p models.Post
	if err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *MongoPostRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.Col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// FindPage returns posts newest first. ObjectIDs grow with insertion time so
// sorting on _id descending is the recency order.
func (r *MongoPostRepository) FindPage(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	return r.findAll(ctx, bson.M{}, opts)
}

func (r *MongoPostRepository) Search(ctx context.Context, titlePattern string, tags []string) ([]models.Post, error) {
	return r.findAll(ctx, SearchFilter(titlePattern, tags))
}

func (r *MongoPostRepository) Insert(ctx context.Context, post *models.Post) error {
	if post.ID.IsZero() {
		post.ID = bson.NewObjectID()
	}
	post.Normalize()
	if _, err := r.Col.InsertOne(ctx, post); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) Update(ctx context.Context, id bson.ObjectID, fields bson.M) (*models.Post, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$set": fields})
}

// Delete removes the post if present. A missing post is not an error.
func (r *MongoPostRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	if _, err := r.Col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

func (r *MongoPostRepository) ToggleLike(ctx context.Context, id bson.ObjectID, userID string) (*models.Post, error) {
	return r.findOneAndUpdate(ctx, id, ToggleLikePipeline(userID))
}

func (r *MongoPostRepository) AppendComment(ctx context.Context, id bson.ObjectID, value string) (*models.Post, error) {
	return r.findOneAndUpdate(ctx, id, bson.M{"$push": bson.M{"comments": value}})
}

func (r *MongoPostRepository) findOneAndUpdate(ctx context.Context, id bson.ObjectID, update any) (*models.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var p models.Post
	if err := r.Col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}
	p.Normalize()
	return &p, nil
}

func (r *MongoPostRepository) findAll(ctx context.Context, filter bson.M, opts ...options.Lister[options.FindOptions]) ([]models.Post, error) {
	cur, err := r.Col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := []models.Post{}
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}
