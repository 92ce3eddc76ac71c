package jwthandling

import (
	"testing"
	"time"
)

func TestPlatformUserToken(t *testing.T) {
	signKey := "test-sign-key"

	t.Run("roundtrip preserves claims", func(t *testing.T) {
		token, err := GenerateNewPlatformUserToken(time.Minute, "user-1", "esg-test", "org-9", false, true, nil, signKey)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
			return
		}

		claims, valid, err := ValidatePlatformUserToken(token, signKey)
		if err != nil || !valid {
			t.Errorf("token should be valid, got: %v", err)
			return
		}
		if claims.Subject != "user-1" || claims.InstanceID != "esg-test" || claims.OrgID != "org-9" {
			t.Errorf("unexpected claims: %+v", claims)
		}
		if claims.IsPlatformAdmin || !claims.IsOrgAdmin {
			t.Errorf("unexpected role flags: %+v", claims)
		}
	})

	t.Run("wrong key fails validation", func(t *testing.T) {
		token, err := GenerateNewPlatformUserToken(time.Minute, "user-1", "esg-test", "", false, false, nil, signKey)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
			return
		}
		_, valid, _ := ValidatePlatformUserToken(token, "other-key")
		if valid {
			t.Error("token must not validate with a different key")
		}
	})

	t.Run("expired token fails validation", func(t *testing.T) {
		token, err := GenerateNewPlatformUserToken(-time.Minute, "user-1", "esg-test", "", false, false, nil, signKey)
		if err != nil {
			t.Errorf("unexpected error: %s", err.Error())
			return
		}
		_, valid, _ := ValidatePlatformUserToken(token, signKey)
		if valid {
			t.Error("expired token must not validate")
		}
	})
}
