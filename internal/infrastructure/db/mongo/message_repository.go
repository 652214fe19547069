package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aleramosAR/Autenticacion-1/internal/core/domain"
)

const messageCollection = "mensajes"

// MongoMessageRepository holds the message board collection.
type MongoMessageRepository struct {
	coll *mongo.Collection
}

func NewMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{coll: db.Collection(messageCollection)}
}

type mongoMessage struct {
	ID    string    `bson:"_id"`
	Email string    `bson:"email"`
	Text  string    `bson:"texto"`
	Date  time.Time `bson:"fecha"`
}

// List returns messages in posting order, oldest first.
func (r *MongoMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer cur.Close(ctx)

	messages := make([]domain.Message, 0)
	for cur.Next(ctx) {
		var mm mongoMessage
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode message: %w", err)
		}
		messages = append(messages, domain.Message{
			ID:    mm.ID,
			Email: mm.Email,
			Text:  mm.Text,
			Date:  mm.Date.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	return messages, nil
}

func (r *MongoMessageRepository) Insert(ctx context.Context, message *domain.Message) error {
	doc := mongoMessage{ID: message.ID, Email: message.Email, Text: message.Text, Date: message.Date}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}
