package statistics

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// statsProjection trims case documents to the fields the statistics engine
// reads; results and notes never travel here.
var statsProjection = bson.M{
	"case_code":            1,
	"patient_info":         1,
	"samples":              1,
	"assigned_pathologist": 1,
	"state":                1,
	"priority":             1,
	"business_days":        1,
	"signed_at":            1,
	"delivered_at":         1,
	"created_at":           1,
	"updated_at":           1,
}

type StatisticsMongoRepository struct {
	Collection *mongo.Collection
}

func NewStatisticsMongoRepository(db *mongo.Client, dbName string) contracts.StatisticsRepository {
	return &StatisticsMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCases),
	}
}

func (r *StatisticsMongoRepository) CountAllCases(ctx context.Context) (int, error) {
	total, err := r.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return int(total), nil
}

func (r *StatisticsMongoRepository) CountCasesCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error) {
	query := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	if pathologistID != "" {
		query["assigned_pathologist.id"] = pathologistID
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return int(total), nil
}

func (r *StatisticsMongoRepository) CountCasesByState(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$state", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		State string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.State] = row.Count
	}
	return counts, nil
}

// distinctPatientKey dedupes by patient_code, falling back to the
// identification pair for documents snapshotted before codes existed, then
// to the bare identification number.
var distinctPatientKey = bson.M{"$switch": bson.M{
	"branches": []bson.M{
		{
			"case": bson.M{"$gt": []interface{}{"$patient_info.patient_code", ""}},
			"then": "$patient_info.patient_code",
		},
		{
			"case": bson.M{"$gt": []interface{}{"$patient_info.identification_type", ""}},
			"then": bson.M{"$concat": []interface{}{
				"$patient_info.identification_type",
				"-",
				"$patient_info.identification_number",
			}},
		},
	},
	"default": "$patient_info.identification_number",
}}

func (r *StatisticsMongoRepository) CountDistinctPatientsBetween(ctx context.Context, from, to time.Time, pathologistID string) (int, error) {
	match := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	if pathologistID != "" {
		match["assigned_pathologist.id"] = pathologistID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{"_id": distinctPatientKey}}},
		{{Key: "$count", Value: "patients"}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Patients int `bson:"patients"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Patients, nil
}

func (r *StatisticsMongoRepository) MonthlyCreatedCounts(ctx context.Context, year int, pathologistID string) ([]int, error) {
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := yearStart.AddDate(1, 0, 0)

	match := bson.M{"created_at": bson.M{"$gte": yearStart, "$lt": yearEnd}}
	if pathologistID != "" {
		match["assigned_pathologist.id"] = pathologistID
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"$month": "$created_at"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.Collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, exceptions.ErrMongoDBAggregate(err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month int `bson:"_id"`
		Count int `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}

	counts := make([]int, 12)
	for _, row := range rows {
		if row.Month >= 1 && row.Month <= 12 {
			counts[row.Month-1] = row.Count
		}
	}
	return counts, nil
}

func (r *StatisticsMongoRepository) FindCompletedSignedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error) {
	query := bson.M{
		"state":     constvars.CaseStateCompleted,
		"signed_at": bson.M{"$gte": from, "$lt": to},
	}
	if pathologistID != "" {
		query["assigned_pathologist.id"] = pathologistID
	}
	return r.findProjected(ctx, query)
}

func (r *StatisticsMongoRepository) FindCreatedBetween(ctx context.Context, from, to time.Time, pathologistID string) ([]models.Case, error) {
	query := bson.M{"created_at": bson.M{"$gte": from, "$lt": to}}
	if pathologistID != "" {
		query["assigned_pathologist.id"] = pathologistID
	}
	return r.findProjected(ctx, query)
}

func (r *StatisticsMongoRepository) FindCasesWithTest(ctx context.Context, testID string) ([]models.Case, error) {
	return r.findProjected(ctx, bson.M{"samples.tests.id": testID})
}

func (r *StatisticsMongoRepository) FindCasesForPathologist(ctx context.Context, pathologistID string) ([]models.Case, error) {
	return r.findProjected(ctx, bson.M{"assigned_pathologist.id": pathologistID})
}

func (r *StatisticsMongoRepository) FindCasesWithEntity(ctx context.Context, entityName string) ([]models.Case, error) {
	return r.findProjected(ctx, bson.M{"patient_info.entity_info.name": entityName})
}

func (r *StatisticsMongoRepository) findProjected(ctx context.Context, query bson.M) ([]models.Case, error) {
	opts := options.Find().
		SetProjection(statsProjection).
		SetSort(bson.D{{Key: "created_at", Value: 1}})

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
