package campaign

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	campaignTypes "github.com/esg-framework/esg-backend/pkg/campaign/types"
)

func (dbService *CampaignDBService) CreateDelegation(instanceID string, delegation campaignTypes.Delegation) (campaignTypes.Delegation, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	delegation.IsActive = true
	delegation.CreatedAt = time.Now().Unix()
	delegation.CompletedAt = 0

	res, err := dbService.collectionDelegations(instanceID).InsertOne(ctx, delegation)
	if err != nil {
		return delegation, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		delegation.ID = oid
	}
	return delegation, nil
}

func (dbService *CampaignDBService) GetDelegationsByAssignment(instanceID string, assignmentID string) (delegations []campaignTypes.Delegation, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"campaignAssignmentID": assignmentID}
	cursor, err := dbService.collectionDelegations(instanceID).Find(ctx, filter)
	if err != nil {
		return delegations, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &delegations)
	return delegations, err
}

// SetDelegationCompletedAt updates the derived completion flag of the active
// delegation held by one user on one question. completedAt == 0 marks the
// delegation as not completed again (response was cleared).
func (dbService *CampaignDBService) SetDelegationCompletedAt(instanceID string, assignmentID string, questionID string, toUserID string, completedAt int64) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"campaignAssignmentID": assignmentID,
		"questionID":           questionID,
		"toUserID":             toUserID,
		"isActive":             true,
	}
	update := bson.M{"$set": bson.M{"completedAt": completedAt}}

	_, err := dbService.collectionDelegations(instanceID).UpdateMany(ctx, filter, update)
	return err
}

func (dbService *CampaignDBService) CancelDelegation(instanceID string, delegationID string) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_id, err := primitive.ObjectIDFromHex(delegationID)
	if err != nil {
		return err
	}

	res, err := dbService.collectionDelegations(instanceID).UpdateOne(
		ctx,
		bson.M{"_id": _id, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
