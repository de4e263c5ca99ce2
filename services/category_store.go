package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"adventure-us/logger"
	"adventure-us/models"
)

// CategoryStore backs the category catalog.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	ByID(ctx context.Context, id int) (models.Category, bool, error)
	BySlug(ctx context.Context, slug string) (models.Category, bool, error)
}

// MemoryCategoryStore serves the catalog from memory.
type MemoryCategoryStore struct {
	categories []models.Category
	byID       map[int]models.Category
	bySlug     map[string]models.Category
}

func NewMemoryCategoryStore(categories []models.Category) *MemoryCategoryStore {
	s := &MemoryCategoryStore{
		categories: append([]models.Category(nil), categories...),
		byID:       make(map[int]models.Category, len(categories)),
		bySlug:     make(map[string]models.Category, len(categories)),
	}
	sort.Slice(s.categories, func(i, j int) bool { return s.categories[i].Name < s.categories[j].Name })
	for _, c := range s.categories {
		s.byID[c.ID] = c
		s.bySlug[c.Slug] = c
	}
	return s
}

func (s *MemoryCategoryStore) List(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), s.categories...), nil
}

func (s *MemoryCategoryStore) ByID(_ context.Context, id int) (models.Category, bool, error) {
	c, ok := s.byID[id]
	return c, ok, nil
}

func (s *MemoryCategoryStore) BySlug(_ context.Context, slug string) (models.Category, bool, error) {
	c, ok := s.bySlug[slug]
	return c, ok, nil
}

// MongoCategoryStore keeps the catalog in a MongoDB collection, seeded on
// first start.
type MongoCategoryStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// NewMongoCategoryStore connects to uri, ensures the slug index and seeds the
// collection when it is empty.
func NewMongoCategoryStore(ctx context.Context, uri, database string, seed []models.Category) (*MongoCategoryStore, error) {
	log := logger.L().WithContext(ctx)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("MongoDB connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("database", database))

	collection := client.Database(database).Collection("categories")
	s := &MongoCategoryStore{client: client, collection: collection}

	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		log.Warn("failed to create unique index on categories", zap.Error(err))
	}

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to count categories: %w", err)
	}
	if count == 0 {
		if err := s.seed(ctx, seed); err != nil {
			client.Disconnect(ctx)
			return nil, err
		}
		log.Info("seeded categories into MongoDB", zap.Int("count", len(seed)))
	}
	return s, nil
}

func (s *MongoCategoryStore) seed(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	docs := make([]any, 0, len(categories))
	for _, c := range categories {
		docs = append(docs, c)
	}
	if _, err := s.collection.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}
	return nil
}

func (s *MongoCategoryStore) List(ctx context.Context) ([]models.Category, error) {
	cursor, err := s.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

func (s *MongoCategoryStore) ByID(ctx context.Context, id int) (models.Category, bool, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *MongoCategoryStore) BySlug(ctx context.Context, slug string) (models.Category, bool, error) {
	return s.findOne(ctx, bson.M{"slug": bson.M{"$eq": slug}})
}

func (s *MongoCategoryStore) findOne(ctx context.Context, filter bson.M) (models.Category, bool, error) {
	var c models.Category
	err := s.collection.FindOne(ctx, filter).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Category{}, false, nil
	}
	if err != nil {
		return models.Category{}, false, err
	}
	return c, true, nil
}

// Drop removes the collection. Used by tests.
func (s *MongoCategoryStore) Drop(ctx context.Context) error {
	return s.collection.Drop(ctx)
}

// Close disconnects from MongoDB.
func (s *MongoCategoryStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
