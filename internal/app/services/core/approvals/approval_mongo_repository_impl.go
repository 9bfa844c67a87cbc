package approvals

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

type ApprovalMongoRepository struct {
	Collection *mongo.Collection
}

func NewApprovalMongoRepository(db *mongo.Client, dbName string) contracts.ApprovalRepository {
	return &ApprovalMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionApprovals),
	}
}

func (r *ApprovalMongoRepository) CreateApproval(ctx context.Context, approval *models.Approval) (string, error) {
	result, err := r.Collection.InsertOne(ctx, approval)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *ApprovalMongoRepository) FindByApprovalCode(ctx context.Context, approvalCode string) (*models.Approval, error) {
	var approval models.Approval
	err := r.Collection.FindOne(ctx, bson.M{"approval_code": approvalCode}).Decode(&approval)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &approval, nil
}

func (r *ApprovalMongoRepository) FindActiveByOriginalCase(ctx context.Context, originalCaseCode string) (*models.Approval, error) {
	filter := bson.M{
		"original_case_code": originalCaseCode,
		"approval_state": bson.M{"$in": []string{
			constvars.ApprovalStateRequestMade,
			constvars.ApprovalStatePendingApproval,
		}},
	}

	var approval models.Approval
	err := r.Collection.FindOne(ctx, filter).Decode(&approval)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &approval, nil
}

func (r *ApprovalMongoRepository) FindApprovals(ctx context.Context, filter *requests.ApprovalFilter) ([]models.Approval, int, error) {
	query := bson.M{}
	if filter.State != "" {
		query["approval_state"] = filter.State
	}
	if filter.OriginalCaseCode != "" {
		query["original_case_code"] = filter.OriginalCaseCode
	}

	total, err := r.Collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(filter.Skip))
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := r.Collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var approvals []models.Approval
	if err := cursor.All(ctx, &approvals); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return approvals, int(total), nil
}

func (r *ApprovalMongoRepository) ReplaceApproval(ctx context.Context, approval *models.Approval, expectedUpdatedAt time.Time) error {
	filter := bson.M{
		"approval_code": approval.ApprovalCode,
		"updated_at":    expectedUpdatedAt,
	}

	result, err := r.Collection.ReplaceOne(ctx, filter, approval)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		count, countErr := r.Collection.CountDocuments(ctx, bson.M{"approval_code": approval.ApprovalCode})
		if countErr != nil {
			return exceptions.ErrMongoDBFindDocument(countErr)
		}
		if count > 0 {
			return exceptions.ErrCaseUpdateConflict(nil)
		}
		return exceptions.ErrApprovalNotFound(nil)
	}
	return nil
}

func (r *ApprovalMongoRepository) DeleteByApprovalCode(ctx context.Context, approvalCode string) error {
	result, err := r.Collection.DeleteOne(ctx, bson.M{"approval_code": approvalCode})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	if result.DeletedCount == 0 {
		return exceptions.ErrApprovalNotFound(nil)
	}
	return nil
}
