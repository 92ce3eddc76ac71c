package campaign

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Permission grants a platform user an action on a resource of the campaign platform.
// ResourceKey is the key of the resource e.g., the campaign id, or * for all.
// Limiter is an optional additional criteria for the permission e.g., questionnaire keys.
type Permission struct {
	ID           primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	SubjectID    string              `json:"subjectId,omitempty" bson:"subjectId,omitempty"`
	SubjectType  string              `json:"subjectType,omitempty" bson:"subjectType,omitempty"`
	ResourceType string              `json:"resourceType,omitempty" bson:"resourceType,omitempty"`
	ResourceKey  string              `json:"resourceKey,omitempty" bson:"resourceKey,omitempty"`
	Action       string              `json:"action,omitempty" bson:"action,omitempty"`
	Limiter      []map[string]string `json:"limiter,omitempty" bson:"limiter,omitempty"`
}

func (dbService *CampaignDBService) CreatePermission(
	instanceID string,
	subjectID string,
	subjectType string,
	resourceType string,
	resourceKey string,
	action string,
	limiter []map[string]string,
) (*Permission, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	permission := &Permission{
		SubjectID:    subjectID,
		SubjectType:  subjectType,
		ResourceType: resourceType,
		ResourceKey:  resourceKey,
		Action:       action,
		Limiter:      limiter,
	}

	res, err := dbService.collectionPermissions(instanceID).InsertOne(ctx, permission)
	if err != nil {
		return nil, err
	}
	permission.ID = res.InsertedID.(primitive.ObjectID)
	return permission, nil
}

// Find permissions by subject id and type
func (dbService *CampaignDBService) GetPermissionBySubject(
	instanceID string,
	subjectID string,
	subjectType string,
) ([]*Permission, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var permissions []*Permission
	cursor, err := dbService.collectionPermissions(instanceID).Find(ctx, bson.M{"subjectId": subjectID, "subjectType": subjectType})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var permission Permission
		if err := cursor.Decode(&permission); err != nil {
			return nil, err
		}
		permissions = append(permissions, &permission)
	}
	return permissions, nil
}

// Find permissions by subject id and type and resource type
func (dbService *CampaignDBService) GetPermissionBySubjectAndResourceForAction(
	instanceID string,
	subjectID string,
	subjectType string,
	resourceType string,
	resourceKeys []string,
	action string,
) ([]*Permission, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	var permissions []*Permission

	actions := []string{action}
	if action != "*" {
		actions = append(actions, "*")
	}
	cursor, err := dbService.collectionPermissions(instanceID).Find(ctx,
		bson.M{"subjectId": subjectID, "subjectType": subjectType, "resourceType": resourceType,
			"resourceKey": bson.M{"$in": resourceKeys}, "action": bson.M{"$in": actions}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	for cursor.Next(ctx) {
		var permission Permission
		if err := cursor.Decode(&permission); err != nil {
			return nil, err
		}
		permissions = append(permissions, &permission)
	}
	return permissions, nil
}

func (dbService *CampaignDBService) DeletePermission(
	instanceID string,
	permissionID string,
) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(permissionID)
	if err != nil {
		return err
	}
	_, err = dbService.collectionPermissions(instanceID).DeleteOne(ctx, bson.M{"_id": objID})
	return err
}

func (dbService *CampaignDBService) DeletePermissionsBySubject(
	instanceID string,
	subjectID string,
	subjectType string,
) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionPermissions(instanceID).DeleteMany(ctx, bson.M{"subjectId": subjectID, "subjectType": subjectType})
	return err
}
