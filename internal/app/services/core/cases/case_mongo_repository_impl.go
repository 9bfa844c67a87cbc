package cases

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

type CaseMongoRepository struct {
	Collection *mongo.Collection
}

func NewCaseMongoRepository(db *mongo.Client, dbName string) contracts.CaseRepository {
	return &CaseMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCases),
	}
}

func (r *CaseMongoRepository) CreateCase(ctx context.Context, caseModel *models.Case) (string, error) {
	result, err := r.Collection.InsertOne(ctx, caseModel)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", exceptions.ErrCaseCodeAlreadyExists(err)
		}
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *CaseMongoRepository) FindByCaseCode(ctx context.Context, caseCode string) (*models.Case, error) {
	var caseModel models.Case
	err := r.Collection.FindOne(ctx, bson.M{"case_code": caseCode}).Decode(&caseModel)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &caseModel, nil
}

func (r *CaseMongoRepository) FindCases(ctx context.Context, filter *requests.CaseFilter) ([]models.Case, int, error) {
	query := buildCaseQuery(filter)

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

	var caseModels []models.Case
	if err := cursor.All(ctx, &caseModels); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return caseModels, int(total), nil
}

func (r *CaseMongoRepository) ReplaceCase(ctx context.Context, caseModel *models.Case, expectedUpdatedAt time.Time) error {
	filter := bson.M{
		"case_code":  caseModel.CaseCode,
		"updated_at": expectedUpdatedAt,
	}

	result, err := r.Collection.ReplaceOne(ctx, filter, caseModel)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		// Guard miss: the document either moved on concurrently or is gone.
		count, countErr := r.Collection.CountDocuments(ctx, bson.M{"case_code": caseModel.CaseCode})
		if countErr != nil {
			return exceptions.ErrMongoDBFindDocument(countErr)
		}
		if count > 0 {
			return exceptions.ErrCaseUpdateConflict(nil)
		}
		return exceptions.ErrCaseNotFound(nil)
	}
	return nil
}

func (r *CaseMongoRepository) DeleteByCaseCode(ctx context.Context, caseCode string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"case_code": caseCode})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	if result.DeletedCount == 0 {
		return exceptions.ErrCaseNotFound(nil)
	}
	return nil
}

func (r *CaseMongoRepository) FindPending(ctx context.Context, createdBefore time.Time, pathologistID string, limit int) ([]models.Case, error) {
	query := bson.M{
		"state":      bson.M{"$ne": constvars.CaseStateCompleted},
		"created_at": bson.M{"$lte": createdBefore},
	}
	if pathologistID != "" {
		query["assigned_pathologist.id"] = pathologistID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var caseModels []models.Case
	if err := cursor.All(ctx, &caseModels); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return caseModels, nil
}

func (r *CaseMongoRepository) BulkUpdatePathologistName(ctx context.Context, pathologistID, name string) (int64, error) {
	filter := bson.M{
		"assigned_pathologist.id":   pathologistID,
		"assigned_pathologist.name": bson.M{"$ne": name},
	}
	update := bson.M{"$set": bson.M{"assigned_pathologist.name": name}}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.ModifiedCount, nil
}

func buildCaseQuery(filter *requests.CaseFilter) bson.M {
	query := bson.M{}

	if filter.Search != "" {
		pattern := primitive.Regex{Pattern: filter.Search, Options: "i"}
		query["$or"] = []bson.M{
			{"case_code": pattern},
			{"patient_info.name": pattern},
			{"patient_info.patient_code": pattern},
		}
	}
	if filter.State != "" {
		query["state"] = filter.State
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	if filter.PathologistID != "" {
		query["assigned_pathologist.id"] = filter.PathologistID
	}
	if filter.EntityID != "" {
		query["patient_info.entity_info.id"] = filter.EntityID
	}
	if filter.EntityName != "" {
		query["patient_info.entity_info.name"] = filter.EntityName
	}
	if filter.PatientCode != "" {
		query["patient_info.patient_code"] = filter.PatientCode
	}
	if filter.TestID != "" {
		query["samples.tests.id"] = filter.TestID
	}

	if filter.DateFrom != nil || filter.DateTo != nil {
		dateField := "created_at"
		if filter.SignedDateRange {
			dateField = "signed_at"
		}
		dateQuery := bson.M{}
		if filter.DateFrom != nil {
			dateQuery["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			dateQuery["$lt"] = *filter.DateTo
		}
		query[dateField] = dateQuery
	}

	return query
}
