package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Ghazanfar1991/youtube-app/internal/config"
	"github.com/Ghazanfar1991/youtube-app/internal/models"
)

type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	listings *mongo.Collection
	ttl      time.Duration
}

func NewMongoDB(cfg *config.MongoDBConfig, ttl time.Duration) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(cfg.Database)

	mongodb := &MongoDB{
		client:   client,
		database: db,
		listings: db.Collection("stream_listings"),
		ttl:      ttl,
	}

	// Create indexes
	if err := mongodb.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	return mongodb, nil
}

func (m *MongoDB) createIndexes(ctx context.Context) error {
	listingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "video_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "cached_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(m.ttl.Seconds())),
		},
	}

	if _, err := m.listings.Indexes().CreateMany(ctx, listingIndexes); err != nil {
		return fmt.Errorf("failed to create listing indexes: %w", err)
	}

	return nil
}

// GetListing returns a cached listing younger than the TTL, or nil. The
// TTL monitor runs about once a minute, so age is also checked here.
func (m *MongoDB) GetListing(ctx context.Context, videoID string) (*models.FormatListResponse, error) {
	filter := bson.M{
		"video_id":  videoID,
		"cached_at": bson.M{"$gt": time.Now().Add(-m.ttl)},
	}

	var cached models.CachedListing
	err := m.listings.FindOne(ctx, filter).Decode(&cached)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached listing: %w", err)
	}
	return &cached.Listing, nil
}

// SaveListing upserts the listing for videoID.
func (m *MongoDB) SaveListing(ctx context.Context, videoID string, listing *models.FormatListResponse) error {
	doc := models.CachedListing{
		VideoID:  videoID,
		Listing:  *listing,
		CachedAt: time.Now(),
	}

	_, err := m.listings.ReplaceOne(ctx,
		bson.M{"video_id": videoID},
		doc,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to cache listing: %w", err)
	}
	return nil
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoDB) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx, readpref.Primary())
}
