package permissionchecker

import (
	"testing"

	campaignDB "github.com/esg-framework/esg-backend/pkg/db/campaign"
)

type mockCampaignDBConnector struct {
	permissions []*campaignDB.Permission
}

func (m *mockCampaignDBConnector) GetPermissionBySubjectAndResourceForAction(instanceID string, subjectID string, subjectType string, resourceType string, resourceKeys []string, action string) ([]*campaignDB.Permission, error) {
	// return permissions after filtering
	filteredPermissions := make([]*campaignDB.Permission, 0)
	for _, p := range m.permissions {
		if p.SubjectID == subjectID && p.SubjectType == subjectType && p.ResourceType == resourceType && p.Action == action {
			for _, key := range resourceKeys {
				if p.ResourceKey == key {
					filteredPermissions = append(filteredPermissions, p)
					break
				}
			}
		}
	}
	return filteredPermissions, nil
}

func TestIsAuthorized(t *testing.T) {
	t.Parallel()

	mockConnector := &mockCampaignDBConnector{
		permissions: []*campaignDB.Permission{
			{
				SubjectID:    "user1",
				SubjectType:  SUBJECT_TYPE_PLATFORM_USER,
				ResourceType: RESOURCE_TYPE_CAMPAIGN,
				ResourceKey:  "campaign1",
				Action:       ACTION_MANAGE_ASSIGNMENTS,
			},
			{
				SubjectID:    "user2",
				SubjectType:  SUBJECT_TYPE_PLATFORM_USER,
				ResourceType: RESOURCE_TYPE_CAMPAIGN,
				ResourceKey:  "campaign1",
				Action:       ACTION_READ_RESPONSES,
				Limiter: []map[string]string{
					{"questionnaireKey": "env2026"},
				},
			},
			{
				SubjectID:    "user3",
				SubjectType:  SUBJECT_TYPE_PLATFORM_USER,
				ResourceType: RESOURCE_TYPE_CAMPAIGN,
				ResourceKey:  RESOURCE_KEY_ALL,
				Action:       ACTION_MANAGE_REVIEWS,
			},
		},
	}

	tests := []struct {
		name           string
		isAdmin        bool
		subjectID      string
		resourceType   string
		resourceKeys   []string
		action         string
		infoForLimiter map[string]string
		expected       bool
	}{
		{
			name:         "admin is always authorized",
			isAdmin:      true,
			subjectID:    "unknown",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_MANAGE_ASSIGNMENTS,
			expected:     true,
		},
		{
			name:         "direct permission",
			subjectID:    "user1",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_MANAGE_ASSIGNMENTS,
			expected:     true,
		},
		{
			name:         "no permission for resource",
			subjectID:    "user1",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign2"},
			action:       ACTION_MANAGE_ASSIGNMENTS,
			expected:     false,
		},
		{
			name:         "no permission for action",
			subjectID:    "user1",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_MANAGE_REVIEWS,
			expected:     false,
		},
		{
			name:         "limiter matches",
			subjectID:    "user2",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_READ_RESPONSES,
			infoForLimiter: map[string]string{
				"questionnaireKey": "env2026",
			},
			expected: true,
		},
		{
			name:         "limiter does not match",
			subjectID:    "user2",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_READ_RESPONSES,
			infoForLimiter: map[string]string{
				"questionnaireKey": "social2026",
			},
			expected: false,
		},
		{
			name:         "limiter ignored when no info provided",
			subjectID:    "user2",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign1"},
			action:       ACTION_READ_RESPONSES,
			expected:     true,
		},
		{
			name:         "wildcard resource key",
			subjectID:    "user3",
			resourceType: RESOURCE_TYPE_CAMPAIGN,
			resourceKeys: []string{"campaign2", RESOURCE_KEY_ALL},
			action:       ACTION_MANAGE_REVIEWS,
			expected:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAuthorized(
				mockConnector,
				tt.isAdmin,
				"testInstance",
				tt.subjectID,
				SUBJECT_TYPE_PLATFORM_USER,
				tt.resourceType,
				tt.resourceKeys,
				tt.action,
				tt.infoForLimiter,
			)
			if got != tt.expected {
				t.Errorf("unexpected result: got %t, want %t", got, tt.expected)
			}
		})
	}
}
