package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dcode-github/property_chatbot/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps listings in a MongoDB collection, one document per
// listing, ordered by id.
type MongoStore struct {
	collection *mongo.Collection

	// mu serializes id assignment within this process.
	mu sync.Mutex
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) List(ctx context.Context) ([]models.Property, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := []models.Property{}
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, fmt.Errorf("decode properties: %w", err)
	}
	return properties, nil
}

func (s *MongoStore) Get(ctx context.Context, id int) (models.Property, error) {
	var p models.Property
	err := s.collection.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Property{}, fmt.Errorf("property %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Property{}, fmt.Errorf("find property %d: %w", id, err)
	}
	return p, nil
}

func (s *MongoStore) Add(ctx context.Context, p models.Property) (models.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maxID, err := s.maxID(ctx)
	if err != nil {
		return models.Property{}, err
	}
	p.ID = maxID + 1

	if _, err := s.collection.InsertOne(ctx, p); err != nil {
		return models.Property{}, fmt.Errorf("insert property: %w", err)
	}
	return p, nil
}

func (s *MongoStore) Remove(ctx context.Context, id int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.collection.DeleteMany(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("delete property %d: %w", id, err)
	}
	return int(res.DeletedCount), nil
}

func (s *MongoStore) maxID(ctx context.Context) (int, error) {
	findOptions := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})

	var top models.Property
	err := s.collection.FindOne(ctx, bson.M{}, findOptions).Decode(&top)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("find max property id: %w", err)
	}
	return top.ID, nil
}
