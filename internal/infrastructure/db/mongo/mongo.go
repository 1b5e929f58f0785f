package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 10 * time.Second

const (
	collectionBooks = "books"
	collectionUsers = "users"
	collectionLoans = "loans"
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// replaceAll swaps the whole content of coll for docs. Documents are written to
// a staging collection which is then renamed over coll with dropTarget, so a
// failed write leaves the previous content in place. Ordering lives in each
// document's position field.
func replaceAll(ctx context.Context, coll *mongo.Collection, docs []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	db := coll.Database()
	staging := db.Collection(stagingName(coll.Name()))

	if err := staging.Drop(ctx); err != nil {
		return fmt.Errorf("reset staging for %s: %w", coll.Name(), err)
	}
	if err := db.CreateCollection(ctx, staging.Name()); err != nil {
		return fmt.Errorf("create staging for %s: %w", coll.Name(), err)
	}
	if _, err := staging.Indexes().CreateOne(ctx, positionIndex()); err != nil {
		return fmt.Errorf("index staging for %s: %w", coll.Name(), err)
	}
	if len(docs) > 0 {
		if _, err := staging.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
			_ = staging.Drop(ctx)
			return fmt.Errorf("insert %s: %w", coll.Name(), err)
		}
	}

	rename := bson.D{
		{Key: "renameCollection", Value: db.Name() + "." + staging.Name()},
		{Key: "to", Value: db.Name() + "." + coll.Name()},
		{Key: "dropTarget", Value: true},
	}
	if err := db.Client().Database("admin").RunCommand(ctx, rename).Err(); err != nil {
		_ = staging.Drop(ctx)
		return fmt.Errorf("swap %s: %w", coll.Name(), err)
	}
	return nil
}

func stagingName(name string) string {
	return name + "_staging"
}

func positionIndex() mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: "position", Value: 1}}}
}

// findAll decodes every document of coll in position order into out.
func findAll(ctx context.Context, coll *mongo.Collection, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	if err != nil {
		return fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	if err := cur.All(ctx, out); err != nil {
		return fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return nil
}

// EnsureIndexes creates the position indexes used for ordered loads.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, name := range []string{collectionBooks, collectionUsers, collectionLoans} {
		if _, err := db.Collection(name).Indexes().CreateOne(ctx, positionIndex()); err != nil {
			return fmt.Errorf("index %s: %w", name, err)
		}
	}
	return nil
}

// HealthChecker pings the MongoDB deployment.
type HealthChecker struct {
	db *mongo.Database
}

func NewHealthChecker(db *mongo.Database) *HealthChecker {
	return &HealthChecker{db: db}
}

func (h *HealthChecker) Name() string { return "mongodb" }

func (h *HealthChecker) Ping(ctx context.Context) error {
	return h.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}
