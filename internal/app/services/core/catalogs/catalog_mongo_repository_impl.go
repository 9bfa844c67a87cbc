package catalogs

import (
	"context"
	"patholab-service/internal/app/contracts"
	"patholab-service/internal/app/models"
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EntityMongoRepository struct {
	Collection *mongo.Collection
}

func NewEntityMongoRepository(db *mongo.Client, dbName string) contracts.EntityRepository {
	return &EntityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEntities),
	}
}

func (r *EntityMongoRepository) FindByEntityCode(ctx context.Context, entityCode string) (*models.Entity, error) {
	var entity models.Entity
	err := r.Collection.FindOne(ctx, bson.M{"entity_code": entityCode}).Decode(&entity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &entity, nil
}

func (r *EntityMongoRepository) FindEntities(ctx context.Context, activeOnly bool) ([]models.Entity, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}

	cursor, err := r.Collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var entities []models.Entity
	if err := cursor.All(ctx, &entities); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return entities, nil
}

type TestMongoRepository struct {
	Collection *mongo.Collection
}

func NewTestMongoRepository(db *mongo.Client, dbName string) contracts.TestRepository {
	return &TestMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionTests),
	}
}

func (r *TestMongoRepository) FindByTestCode(ctx context.Context, testCode string) (*models.Test, error) {
	var test models.Test
	err := r.Collection.FindOne(ctx, bson.M{"test_code": testCode}).Decode(&test)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &test, nil
}

func (r *TestMongoRepository) FindTests(ctx context.Context, activeOnly bool) ([]models.Test, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}

	cursor, err := r.Collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var tests []models.Test
	if err := cursor.All(ctx, &tests); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return tests, nil
}

type PathologistMongoRepository struct {
	Collection *mongo.Collection
}

func NewPathologistMongoRepository(db *mongo.Client, dbName string) contracts.PathologistRepository {
	return &PathologistMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPathologists),
	}
}

func (r *PathologistMongoRepository) CreatePathologist(ctx context.Context, pathologist *models.Pathologist) (string, error) {
	result, err := r.Collection.InsertOne(ctx, pathologist)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *PathologistMongoRepository) FindByPathologistCode(ctx context.Context, pathologistCode string) (*models.Pathologist, error) {
	var pathologist models.Pathologist
	err := r.Collection.FindOne(ctx, bson.M{"pathologist_code": pathologistCode}).Decode(&pathologist)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &pathologist, nil
}

func (r *PathologistMongoRepository) FindPathologists(ctx context.Context, activeOnly bool) ([]models.Pathologist, error) {
	query := bson.M{}
	if activeOnly {
		query["is_active"] = true
	}

	cursor, err := r.Collection.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var pathologists []models.Pathologist
	if err := cursor.All(ctx, &pathologists); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return pathologists, nil
}

func (r *PathologistMongoRepository) UpdateSignatureRef(ctx context.Context, pathologistCode, signatureRef string) error {
	filter := bson.M{"pathologist_code": pathologistCode}
	update := bson.M{"$set": bson.M{
		"signature_ref": signatureRef,
		"updated_at":    time.Now().UTC(),
	}}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrPathologistNotFound(nil)
	}
	return nil
}

// PersonnelMongoRepository reads the non-signing staff collections; the role
// picks the backing collection.
type PersonnelMongoRepository struct {
	Database *mongo.Database
}

func NewPersonnelMongoRepository(db *mongo.Client, dbName string) contracts.PersonnelRepository {
	return &PersonnelMongoRepository{
		Database: db.Database(dbName),
	}
}

func (r *PersonnelMongoRepository) FindByRole(ctx context.Context, role string) ([]models.Personnel, error) {
	var collectionName string
	switch role {
	case constvars.RoleResident:
		collectionName = constvars.MongoCollectionResidents
	case constvars.RoleAuxiliary:
		collectionName = constvars.MongoCollectionAuxiliaries
	case constvars.RoleBilling:
		collectionName = constvars.MongoCollectionBilling
	default:
		return nil, exceptions.ErrRoleNotAllowed(nil)
	}

	cursor, err := r.Database.Collection(collectionName).Find(ctx, bson.M{"is_active": true}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var personnel []models.Personnel
	if err := cursor.All(ctx, &personnel); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return personnel, nil
}
