package counters

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CounterMongoRepository struct {
	Collection *mongo.Collection
}

func NewCounterMongoRepository(db *mongo.Client, dbName string) contracts.CounterRepository {
	return &CounterMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCounters),
	}
}

func (r *CounterMongoRepository) NextSequence(ctx context.Context, name string, year int) (int, error) {
	filter := bson.M{"name": name, "year": year}
	update := bson.M{"$inc": bson.M{"seq": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter models.Counter
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return counter.Seq, nil
}

func (r *CounterMongoRepository) CurrentSequence(ctx context.Context, name string, year int) (int, error) {
	var counter models.Counter
	err := r.Collection.FindOne(ctx, bson.M{"name": name, "year": year}).Decode(&counter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, nil
		}
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return counter.Seq, nil
}
