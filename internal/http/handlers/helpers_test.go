package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// performRequest runs handler against a test context. setup may add params or context values.
func performRequest(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}, setup func(*gin.Context)) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	if setup != nil {
		setup(c)
	}

	handler(c)

	var responseBody map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &responseBody); err != nil {
			t.Fatalf("failed to unmarshal response body: %v", err)
		}
	}
	return w, responseBody
}

func withParam(key, value string) func(*gin.Context) {
	return func(c *gin.Context) {
		c.Params = append(c.Params, gin.Param{Key: key, Value: value})
	}
}

func assertResponse(t *testing.T, w *httptest.ResponseRecorder, body map[string]interface{}, expectedStatus int, expectedBody map[string]interface{}) {
	t.Helper()
	if w.Code != expectedStatus {
		t.Errorf("expected status %d, got %d (body %s)", expectedStatus, w.Code, w.Body.String())
	}
	for key, expectedValue := range expectedBody {
		if actualValue, exists := body[key]; !exists {
			t.Errorf("expected key %s not found in response", key)
		} else {
			validateValue(t, key, expectedValue, actualValue)
		}
	}
}

// validateValue compares nested maps and values
func validateValue(t *testing.T, key string, expected, actual interface{}) {
	t.Helper()

	expectedMap, expectedIsMap := expected.(map[string]interface{})
	actualMap, actualIsMap := actual.(map[string]interface{})

	if expectedIsMap && actualIsMap {
		for nestedKey, nestedExpected := range expectedMap {
			if nestedActual, exists := actualMap[nestedKey]; !exists {
				t.Errorf("expected key %s.%s not found in response", key, nestedKey)
			} else {
				validateValue(t, key+"."+nestedKey, nestedExpected, nestedActual)
			}
		}
	} else if expected != actual {
		t.Errorf("for key %s, expected %v, got %v", key, expected, actual)
	}
}
