package mongostore

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Handle es lo que comparte el proceso: el client y la colección de animes.
type Handle struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

const collectionName = "animes"

// Open conecta y hace ping. La base sale del path de la URI; si no hay, se usa defaultDB.
func Open(ctx context.Context, uri, defaultDB string) (*Handle, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := databaseName(uri, defaultDB)
	return &Handle{
		Client:     client,
		Collection: client.Database(db).Collection(collectionName),
	}, nil
}

func (h *Handle) Close() error {
	return h.Client.Disconnect(context.Background())
}

func databaseName(uri, fallback string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return fallback
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return fallback
}
