package unreadcases

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/dto/requests"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UnreadCaseMongoRepository struct {
	Collection *mongo.Collection
}

func NewUnreadCaseMongoRepository(db *mongo.Client, dbName string) contracts.UnreadCaseRepository {
	return &UnreadCaseMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionUnreadCases),
	}
}

func (r *UnreadCaseMongoRepository) CreateUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) (string, error) {
	result, err := r.Collection.InsertOne(ctx, unreadCase)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrCaseCodeAlreadyExists(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *UnreadCaseMongoRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.UnreadCase, error) {
	var unreadCase models.UnreadCase
	err := r.Collection.FindOne(ctx, bson.M{"case_code": caseCode}).Decode(&unreadCase)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &unreadCase, nil
}

func (r *UnreadCaseMongoRepository) FindUnreadCases(ctx context.Context, filter *requests.UnreadCaseFilter) ([]models.UnreadCase, int, error) {
	query := bson.M{}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"case_code": pattern},
			{"patient_name": pattern},
			{"patient_code": pattern},
		}
	}
	if filter.Institution != "" {
		query["institution"] = filter.Institution
	}
	if filter.TestGroupType != "" {
		query["test_groups.type"] = filter.TestGroupType
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.EntryDateFrom != nil || filter.EntryDateTo != nil {
		dateQuery := bson.M{}
		if filter.EntryDateFrom != nil {
			dateQuery["$gte"] = *filter.EntryDateFrom
		}
		if filter.EntryDateTo != nil {
			dateQuery["$lt"] = *filter.EntryDateTo
		}
		query["entry_date"] = dateQuery
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	sortField := "created_at"
	if filter.SortBy != "" {
		sortField = filter.SortBy
	}
	sortOrder := -1
	if filter.SortOrder == "asc" {
		sortOrder = 1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: sortOrder}}).
		SetSkip(int64(filter.Skip))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var unreadCases []models.UnreadCase
	if err := cursor.All(ctx, &unreadCases); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return unreadCases, int(total), nil
}

func (r *UnreadCaseMongoRepository) ReplaceUnreadCase(ctx context.Context, unreadCase *models.UnreadCase) error {
	result, err := r.Collection.ReplaceOne(ctx, bson.M{"case_code": unreadCase.CaseCode}, unreadCase)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrUnreadCaseNotFound(nil)
	}
	return nil
}

func (r *UnreadCaseMongoRepository) MarkDelivered(ctx context.Context, caseCodes []string, deliveredTo string, deliveryDate time.Time) ([]models.UnreadCase, error) {
	now := time.Now().UTC()
	updated := make([]models.UnreadCase, 0, len(caseCodes))

	for _, caseCode := range caseCodes {
		filter := bson.M{
			"case_code": caseCode,
			"status":    constvars.UnreadCaseStatusInProcess,
		}
		update := bson.M{"$set": bson.M{
			"status":        constvars.UnreadCaseStatusCompleted,
			"delivered_to":  deliveredTo,
			"delivery_date": deliveryDate,
			"updated_at":    now,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		var unreadCase models.UnreadCase
		err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&unreadCase)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return updated, exceptions.ErrMongoDBUpdateDocument(err)
		}
		updated = append(updated, unreadCase)
	}
	return updated, nil
}
