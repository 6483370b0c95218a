package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/montech/articles-api/internal/core/domain"
)

const collectionArticles = "articles"

type ArticleRepository struct {
	col *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles)}
}

type articleDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Status    string             `bson:"status"`
	User      primitive.ObjectID `bson:"user"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *articleDocument) toDomain() *domain.Article {
	return &domain.Article{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		Status:    domain.ArticleStatus(d.Status),
		UserID:    d.User.Hex(),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create inserts a new article document.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	userID, ok := objectID(a.UserID)
	if !ok {
		return nil, fmt.Errorf("insert article: invalid user id %q", a.UserID)
	}

	now := time.Now().UTC()
	doc := articleDocument{
		ID:        primitive.NewObjectID(),
		Title:     a.Title,
		Content:   a.Content,
		Status:    string(a.Status),
		User:      userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrArticleNotFound
	}

	var doc articleDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByIDs loads the given articles, preserving the order of ids.
func (r *ArticleRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Article, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return []*domain.Article{}, nil
	}

	docs, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, options.Find())
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*articleDocument, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}

	out := make([]*domain.Article, 0, len(docs))
	for _, oid := range oids {
		if doc, ok := byID[oid]; ok {
			out = append(out, doc.toDomain())
		}
	}
	return out, nil
}

// List returns every article, oldest first.
func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	docs, err := r.find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Article, len(docs))
	for i := range docs {
		out[i] = docs[i].toDomain()
	}
	return out, nil
}

func (r *ArticleRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]articleDocument, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}
	defer cur.Close(ctx)

	var docs []articleDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	return docs, nil
}

// UpdateContent sets title and content, leaving status untouched.
func (r *ArticleRepository) UpdateContent(ctx context.Context, id, title, content string) (*domain.Article, error) {
	return r.set(ctx, id, bson.M{"title": title, "content": content})
}

// UpdateStatus sets status, leaving title and content untouched.
func (r *ArticleRepository) UpdateStatus(ctx context.Context, id string, status domain.ArticleStatus) (*domain.Article, error) {
	return r.set(ctx, id, bson.M{"status": string(status)})
}

// set applies fields plus updatedAt and returns the updated document.
func (r *ArticleRepository) set(ctx context.Context, id string, fields bson.M) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrArticleNotFound
	}

	fields["updatedAt"] = time.Now().UTC()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc articleDocument
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": fields}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, fmt.Errorf("update article: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, ok := objectID(id)
	if !ok {
		return domain.ErrArticleNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by per-user lookups.
func (r *ArticleRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	return err
}
