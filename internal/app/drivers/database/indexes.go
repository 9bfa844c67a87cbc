package database

import (
	"context"
	"patholab-service/internal/app/config"
	"patholab-service/internal/pkg/constvars"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the case engine relies on for
// correctness under load. Uniqueness on case_code, approval_code and the
// counter identity is load-bearing, not just a performance concern.
func EnsureIndexes(ctx context.Context, client *mongo.Client, driverConfig *config.DriverConfig, log *logrus.Logger) {
	db := client.Database(driverConfig.MongoDB.DbName)

	createIndexes(ctx, db.Collection(constvars.MongoCollectionCases), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "case_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "state", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_pathologist.id", Value: 1}}},
		{Keys: bson.D{{Key: "patient_info.patient_code", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
		{Keys: bson.D{{Key: "signed_at", Value: 1}}},
		{Keys: bson.D{{Key: "samples.tests.id", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionPatients), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{{Key: "identification_type", Value: 1}, {Key: "identification_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetPartialFilterExpression(bson.M{
				"identification_number": bson.M{"$exists": true, "$type": "string"},
			}),
		},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionApprovals), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "approval_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "original_case_code", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionCounters), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}, {Key: "year", Value: 1}}, Options: options.Index().SetUnique(true)},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionUnreadCases), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "case_code", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "entry_date", Value: 1}}},
	})

	createIndexes(ctx, db.Collection(constvars.MongoCollectionUsers), log, []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	})
}

func createIndexes(ctx context.Context, collection *mongo.Collection, log *logrus.Logger, indexes []mongo.IndexModel) {
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		log.Fatalf("Failed to create indexes on %s: %s", collection.Name(), err.Error())
	}
}
