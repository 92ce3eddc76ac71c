package campaign

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) CreateCampaignAssignment(instanceID string, assignment campaignTypes.CampaignAssignment) (campaignTypes.CampaignAssignment, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	if assignment.Status == "" {
		assignment.Status = campaignTypes.ASSIGNMENT_STATUS_NOT_STARTED
	}

	res, err := dbService.collectionCampaignAssignments(instanceID).InsertOne(ctx, assignment)
	if err != nil {
		return assignment, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		assignment.ID = oid
	}
	return assignment, nil
}

func (dbService *CampaignDBService) GetCampaignAssignmentByID(instanceID string, assignmentID string) (assignment campaignTypes.CampaignAssignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return assignment, err
	}

	err = dbService.collectionCampaignAssignments(instanceID).FindOne(ctx, bson.M{"_id": _id}).Decode(&assignment)
	return assignment, err
}

// get paginated campaign assignments by query
func (dbService *CampaignDBService) GetCampaignAssignments(instanceID string, filter bson.M, sort bson.M, page int64, limit int64) (assignments []campaignTypes.CampaignAssignment, paginationInfo *PaginationInfos, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	totalCount, err := dbService.GetCampaignAssignmentsCount(instanceID, filter)
	if err != nil {
		return assignments, nil, err
	}

	paginationInfo = prepPaginationInfos(
		totalCount,
		page,
		limit,
	)

	skip := (paginationInfo.CurrentPage - 1) * paginationInfo.PageSize

	opts := options.Find().SetSort(sort).SetSkip(skip).SetLimit(paginationInfo.PageSize)
	cursor, err := dbService.collectionCampaignAssignments(instanceID).Find(ctx, filter, opts)
	if err != nil {
		return assignments, nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &assignments)
	if err != nil {
		return assignments, nil, err
	}

	return assignments, paginationInfo, nil
}

func (dbService *CampaignDBService) GetCampaignAssignmentsCount(instanceID string, filter bson.M) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionCampaignAssignments(instanceID).CountDocuments(ctx, filter)
}

// UpdateAssignmentStatus applies a status change with an optimistic guard on
// the expected current status, so concurrent lifecycle events cannot race
// past each other.
func (dbService *CampaignDBService) UpdateAssignmentStatus(instanceID string, assignmentID string, expectedStatus string, newStatus string, extraFields bson.M) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return err
	}

	filter := bson.M{
		"_id":    _id,
		"status": expectedStatus,
	}
	set := bson.M{"status": newStatus}
	for k, v := range extraFields {
		set[k] = v
	}

	res, err := dbService.collectionCampaignAssignments(instanceID).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// BumpAssignmentRevision increments the assignment's revision counter and
// returns the assignment as it was before the bump. Response writes call this
// first: the revision acts as the per-assignment serialisation point so a
// visibility recomputation always observes a consistent answer snapshot.
func (dbService *CampaignDBService) BumpAssignmentRevision(instanceID string, assignmentID string) (assignment campaignTypes.CampaignAssignment, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(assignmentID)
	if err != nil {
		return assignment, err
	}

	err = dbService.collectionCampaignAssignments(instanceID).FindOneAndUpdate(
		ctx,
		bson.M{"_id": _id},
		bson.M{"$inc": bson.M{"revision": 1}},
	).Decode(&assignment)
	return assignment, err
}
