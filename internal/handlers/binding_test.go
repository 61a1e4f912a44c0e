package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	FirstName string `json:"first_name"`
	CI        string `json:"ci"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "wrapped payload",
			key:      "neighbor",
			body:     `{"neighbor": {"first_name": "Juan", "ci": "4567890"}}`,
			expected: bindTarget{FirstName: "Juan", CI: "4567890"},
		},
		{
			name:     "flat payload",
			key:      "neighbor",
			body:     `{"first_name": "María", "ci": "1234567"}`,
			expected: bindTarget{FirstName: "María", CI: "1234567"},
		},
		{
			name:     "wrapper key absent falls back to flat",
			key:      "neighbor",
			body:     `{"other": "x", "first_name": "Carlos", "ci": "7654321"}`,
			expected: bindTarget{FirstName: "Carlos", CI: "7654321"},
		},
		{
			name:     "different wrapper key",
			key:      "payment",
			body:     `{"payment": {"first_name": "Rosa", "ci": "9988776"}}`,
			expected: bindTarget{FirstName: "Rosa", CI: "9988776"},
		},
		{
			name:        "flat payload with wrong field type",
			key:         "neighbor",
			body:        `{"first_name": "Eva", "ci": 123}`,
			expectError: true,
		},
		{
			name:        "wrapped payload with wrong field type",
			key:         "neighbor",
			body:        `{"neighbor": {"first_name": "Luis", "ci": 123}}`,
			expectError: true,
		},
		{
			name:        "wrapper key holds a scalar",
			key:         "neighbor",
			body:        `{"neighbor": "not an object"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result bindTarget
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
