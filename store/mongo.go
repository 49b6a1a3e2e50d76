package store

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/raushankrgupta/price-watcher/models"
)

const (
	databaseName       = "pricewatcher"
	productsCollection = "products"
	settingsCollection = "settings"
	languageKey        = "language"
)

// MongoStore persists products one document per record.
type MongoStore struct {
	products *mongo.Collection
	settings *mongo.Collection
}

// ConnectMongo dials MongoDB and returns a store backed by it.
func ConnectMongo(uri string) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	log.Println("Connected to MongoDB!")
	db := client.Database(databaseName)
	return &MongoStore{
		products: db.Collection(productsCollection),
		settings: db.Collection(settingsCollection),
	}, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (models.Product, error) {
	var p models.Product
	err := s.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Product{}, ErrNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to load product %s: %w", id, err)
	}
	return p, nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.Product, error) {
	cur, err := s.products.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"added_date": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Product
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Put(ctx context.Context, p models.Product) error {
	_, err := s.products.ReplaceOne(ctx, bson.M{"_id": p.ID}, p, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save product %s: %w", p.ID, err)
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	_, err := s.products.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product %s: %w", id, err)
	}
	return nil
}

type settingDoc struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

func (s *MongoStore) Language(ctx context.Context) (string, error) {
	var doc settingDoc
	err := s.settings.FindOne(ctx, bson.M{"_id": languageKey}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load language setting: %w", err)
	}
	return doc.Value, nil
}

func (s *MongoStore) SetLanguage(ctx context.Context, lang string) error {
	_, err := s.settings.ReplaceOne(ctx, bson.M{"_id": languageKey},
		settingDoc{ID: languageKey, Value: lang}, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save language setting: %w", err)
	}
	return nil
}
