package docstore

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoCredentials struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	AuthSource string `json:"authSource"`
}

// MongoStore writes documents to a MongoDB database. Inserts are pipeline
// upserts so the server's $$NOW can fill timestamp fields.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects with the credentials file and pings the primary.
func OpenMongo(ctx context.Context, opts Options) (*MongoStore, error) {
	var creds mongoCredentials
	if err := decodeCredentialFile(BackendMongo, opts.CredentialsFile, &creds); err != nil {
		return nil, err
	}

	clientOpts := options.Client().ApplyURI(opts.DatabaseURL)
	if creds.Username != "" {
		clientOpts.SetAuth(options.Credential{
			Username:   creds.Username,
			Password:   creds.Password,
			AuthSource: creds.AuthSource,
		})
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, &CredentialError{Backend: BackendMongo, Path: opts.CredentialsFile, Reason: ReasonRejected, Err: err}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(context.Background())
		return nil, &CredentialError{Backend: BackendMongo, Path: opts.CredentialsFile, Reason: ReasonRejected, Err: err}
	}

	dbName := opts.MongoDatabase
	if dbName == "" {
		dbName = "attendance"
	}
	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (s *MongoStore) Add(ctx context.Context, collection string, doc Document) (string, error) {
	id := primitive.NewObjectID()
	update := mongo.Pipeline{{{Key: "$set", Value: setExpression(doc)}}}

	_, err := s.db.Collection(collection).UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", &WriteError{Collection: collection, Err: err}
	}
	return id.Hex(), nil
}

func (s *MongoStore) Close() error {
	if err := s.client.Disconnect(context.Background()); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// setExpression turns doc into an aggregation expression. Plain values are
// wrapped in $literal so strings starting with "$" are never read as field paths.
func setExpression(doc map[string]any) bson.D {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(bson.D, 0, len(keys))
	for _, k := range keys {
		out = append(out, bson.E{Key: k, Value: expressionValue(doc[k])})
	}
	return out
}

func expressionValue(v any) any {
	switch val := v.(type) {
	case serverTimestamp:
		return "$$NOW"
	case Document:
		return mapExpression(val)
	case map[string]any:
		return mapExpression(val)
	case []any:
		out := make(bson.A, len(val))
		for i, item := range val {
			out[i] = expressionValue(item)
		}
		return out
	default:
		return bson.D{{Key: "$literal", Value: v}}
	}
}

// An empty object is not a valid expression.
func mapExpression(m map[string]any) any {
	if len(m) == 0 {
		return bson.D{{Key: "$literal", Value: bson.D{}}}
	}
	return setExpression(m)
}
