package mongostore

import (
	"context"
	"errors"
	"strings"
	"time"

	"anime-tracker/internal/adapters/storage/conn"
	"anime-tracker/internal/domain/animes"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// animeDoc es el documento tal como queda en la colección (mismos nombres que el front usa).
type animeDoc struct {
	ID              bson.ObjectID `bson:"_id,omitempty"`
	Name            string        `bson:"name"`
	ImageURL        string        `bson:"imageUrl"`
	Status          string        `bson:"status"`
	TotalEpisodes   int           `bson:"totalEpisodes"`
	WatchedEpisodes int           `bson:"watchedEpisodes"`
	Score           int           `bson:"score"`
	CreatedAt       time.Time     `bson:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt"`
}

type AnimesRepo struct {
	conn *conn.Lazy[*Handle]
}

func NewAnimesRepo(c *conn.Lazy[*Handle]) *AnimesRepo {
	return &AnimesRepo{conn: c}
}

func (r *AnimesRepo) collection(ctx context.Context) (*mongo.Collection, error) {
	h, err := r.conn.Connect(ctx)
	if err != nil {
		return nil, animes.Persistence("connect", err)
	}
	return h.Collection, nil
}

func (r *AnimesRepo) Ping(ctx context.Context) error {
	h, err := r.conn.Connect(ctx)
	if err != nil {
		return animes.Persistence("connect", err)
	}
	return animes.Persistence("ping", h.Client.Ping(ctx, readpref.Primary()))
}

func (r *AnimesRepo) List(ctx context.Context) ([]animes.Anime, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, animes.Persistence("list", err)
	}

	var docs []animeDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, animes.Persistence("list", err)
	}

	out := make([]animes.Anime, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toAnime())
	}
	return out, nil
}

func (r *AnimesRepo) GetByID(ctx context.Context, id string) (animes.Anime, error) {
	oid, ok := parseID(id)
	if !ok {
		return animes.Anime{}, animes.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return animes.Anime{}, err
	}

	var d animeDoc
	if err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return animes.Anime{}, animes.ErrNotFound
		}
		return animes.Anime{}, animes.Persistence("get", err)
	}
	return d.toAnime(), nil
}

func (r *AnimesRepo) Create(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	coll, err := r.collection(ctx)
	if err != nil {
		return animes.Anime{}, err
	}

	d := fromAnime(a)
	d.ID = bson.NewObjectID()
	if _, err := coll.InsertOne(ctx, d); err != nil {
		return animes.Anime{}, animes.Persistence("create", err)
	}
	return d.toAnime(), nil
}

func (r *AnimesRepo) Update(ctx context.Context, a animes.Anime) (animes.Anime, error) {
	oid, ok := parseID(a.ID)
	if !ok {
		return animes.Anime{}, animes.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return animes.Anime{}, err
	}

	d := fromAnime(a)
	res, err := coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "name", Value: d.Name},
			{Key: "imageUrl", Value: d.ImageURL},
			{Key: "status", Value: d.Status},
			{Key: "totalEpisodes", Value: d.TotalEpisodes},
			{Key: "watchedEpisodes", Value: d.WatchedEpisodes},
			{Key: "score", Value: d.Score},
			{Key: "updatedAt", Value: d.UpdatedAt},
		}}},
	)
	if err != nil {
		return animes.Anime{}, animes.Persistence("update", err)
	}
	if res.MatchedCount == 0 {
		return animes.Anime{}, animes.ErrNotFound
	}
	return a, nil
}

func (r *AnimesRepo) Delete(ctx context.Context, id string) error {
	oid, ok := parseID(id)
	if !ok {
		return animes.ErrNotFound
	}

	coll, err := r.collection(ctx)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return animes.Persistence("delete", err)
	}
	if res.DeletedCount == 0 {
		return animes.ErrNotFound
	}
	return nil
}

// parseID: un id que no es ObjectID no puede existir en la colección.
func parseID(id string) (bson.ObjectID, bool) {
	oid, err := bson.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return bson.ObjectID{}, false
	}
	return oid, true
}

func fromAnime(a animes.Anime) animeDoc {
	return animeDoc{
		Name:            a.Name,
		ImageURL:        a.ImageURL,
		Status:          string(a.Status),
		TotalEpisodes:   a.TotalEpisodes,
		WatchedEpisodes: a.WatchedEpisodes,
		Score:           a.Score,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

func (d animeDoc) toAnime() animes.Anime {
	return animes.Anime{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		ImageURL:        d.ImageURL,
		Status:          animes.Status(d.Status),
		TotalEpisodes:   d.TotalEpisodes,
		WatchedEpisodes: d.WatchedEpisodes,
		Score:           d.Score,
		CreatedAt:       d.CreatedAt.UTC(),
		UpdatedAt:       d.UpdatedAt.UTC(),
	}
}
