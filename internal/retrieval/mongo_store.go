package retrieval

import (
	"context"
	"time"

	"waste-retrieval-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// retrievalDocument mirrors the document in the wasteRetrievals collection.
type retrievalDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Type      string             `bson:"type"`
	Location  string             `bson:"location"`
	Timestamp time.Time          `bson:"timestamp"`
	UserID    string             `bson:"userId"`
	UserEmail string             `bson:"userEmail,omitempty"`
}

func (d retrievalDocument) toRecord() models.RetrievalRecord {
	return models.RetrievalRecord{
		ID:        d.ID.Hex(),
		WasteType: models.WasteType(d.Type),
		Location:  d.Location,
		Timestamp: d.Timestamp.UTC(),
		UserID:    d.UserID,
		UserEmail: d.UserEmail,
	}
}

// MongoStore lưu các bản ghi thu gom vào MongoDB.
type MongoStore struct {
	collection *mongo.Collection
	clock      Clock
}

func NewMongoStore(collection *mongo.Collection, clock Clock) *MongoStore {
	return &MongoStore{collection: collection, clock: clock}
}

func (s *MongoStore) Insert(ctx context.Context, rec models.RetrievalRecord) (models.RetrievalRecord, error) {
	doc := retrievalDocument{
		ID:        primitive.NewObjectID(),
		Type:      string(rec.WasteType),
		Location:  rec.Location,
		Timestamp: storedTime(s.clock.now()),
		UserID:    rec.UserID,
		UserEmail: rec.UserEmail,
	}
	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return models.RetrievalRecord{}, err
	}
	return doc.toRecord(), nil
}

func (s *MongoStore) CountSince(ctx context.Context, location string, since time.Time) (int64, error) {
	filter := bson.M{
		"location":  location,
		"timestamp": bson.M{"$gte": since},
	}
	return s.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
}

func (s *MongoStore) ListNewestFirst(ctx context.Context) ([]models.RetrievalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []retrievalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]models.RetrievalRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, doc.toRecord())
	}
	return records, nil
}
