package corpus

import (
	"context"
	"fmt"
	"time"

	"github.com/speechscaling/scaling_engine/config"
	"github.com/speechscaling/scaling_engine/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoClient struct {
	Client *mongo.Client
	DB     *mongo.Database
	cfg    *config.MongoConfig
}

func NewMongoClient(ctx context.Context, cfg *config.MongoConfig) (*MongoClient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.DBName)

	return &MongoClient{
		Client: client,
		DB:     db,
		cfg:    cfg,
	}, nil
}

func (m *MongoClient) AddBatchDocuments(docs []*models.Document) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	coll := m.DB.Collection(m.cfg.CorpusColl)

	records := make([]interface{}, len(docs))
	now := primitive.NewDateTimeFromTime(time.Now())
	for i, doc := range docs {
		if doc.ID.IsZero() {
			doc.CreatedAt = now
		}
		doc.UpdatedAt = now
		records[i] = doc
	}

	_, err := coll.InsertMany(ctx, records)
	if err != nil {
		return fmt.Errorf("failed to insert documents: %w", err)
	}
	return nil
}

func (m *MongoClient) GetBatchDocuments(
	batchSize int,
	lastID *primitive.ObjectID,
) ([]models.Document, *primitive.ObjectID, error) {

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	collection := m.DB.Collection(m.cfg.CorpusColl)
	filter := bson.M{}

	if lastID != nil {
		filter["_id"] = bson.M{"$gt": *lastID}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(batchSize))

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, nil, fmt.Errorf("failed to decode documents: %w", err)
	}

	var newLastID *primitive.ObjectID
	if len(docs) > 0 {
		lastDocID := docs[len(docs)-1].ID
		newLastID = &lastDocID
	}

	return docs, newLastID, nil
}

// LoadAll pages the whole corpus collection into memory for a scaling run.
func (m *MongoClient) LoadAll(batchSize int) (*Corpus, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	corpus := &Corpus{}
	var lastID *primitive.ObjectID
	for {
		docs, newLastID, err := m.GetBatchDocuments(batchSize, lastID)
		if err != nil {
			return nil, err
		}
		if len(docs) == 0 {
			break
		}
		corpus.Documents = append(corpus.Documents, docs...)
		lastID = newLastID
	}
	if corpus.Size() == 0 {
		return nil, fmt.Errorf("corpus collection %s is empty", m.cfg.CorpusColl)
	}
	return corpus, nil
}

func (m *MongoClient) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}

	return nil
}
