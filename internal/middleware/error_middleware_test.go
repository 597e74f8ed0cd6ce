package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/winshaurya/alumnet/internal/pkg/apperrors"
)

func TestHandleAPIError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", apperrors.ErrValidationFailed, http.StatusBadRequest, "VAL_001"},
		{"bad request", apperrors.NewBadRequestError("nope"), http.StatusBadRequest, "VAL_001"},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, "AUTH_001"},
		{"disabled account", apperrors.ErrAccountDisabled, http.StatusUnauthorized, "AUTH_008"},
		{"used reset token", apperrors.ErrPasswordResetTokenUsed, http.StatusUnauthorized, "AUTH_004"},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, "AUTHZ_001"},
		{"profile incomplete", apperrors.NewProfileIncompleteError(50), http.StatusForbidden, "PRF_001"},
		{"job not found", apperrors.ErrJobNotFound, http.StatusNotFound, "RES_001"},
		{"application not found", apperrors.ErrApplicationNotFound, http.StatusNotFound, "RES_001"},
		{"company not found", apperrors.ErrCompanyNotFound, http.StatusNotFound, "RES_001"},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict, "APP_001"},
		{"capacity exceeded", apperrors.ErrCapacityExceeded, http.StatusConflict, "APP_002"},
		{"duplicate email", apperrors.ErrEmailAlreadyExists, http.StatusConflict, "RES_002"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "SRV_001"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			HandleAPIError(c, tc.err)

			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			var body map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if success, _ := body["success"].(bool); success {
				t.Error("error envelope should carry success=false")
			}
			errObj, _ := body["error"].(map[string]interface{})
			if errObj["code"] != tc.wantCode {
				t.Errorf("error code = %v, want %s", errObj["code"], tc.wantCode)
			}
		})
	}
}

func TestHandleAPIError_ProfileIncompleteCarriesScore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.NewProfileIncompleteError(50))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	errObj, _ := body["error"].(map[string]interface{})
	details, _ := errObj["details"].(map[string]interface{})
	if details["completion"] != float64(50) {
		t.Errorf("completion detail = %v, want 50", details["completion"])
	}
}
