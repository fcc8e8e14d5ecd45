package apiclient

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		typ     ErrorType
		message string
	}{
		{
			name:    "empty body",
			status:  500,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 500",
		},
		{
			name:    "plain text body",
			status:  502,
			body:    "Bad gateway",
			typ:     ErrorGeneric,
			message: "HTTP error! status: 502 - Bad gateway",
		},
		{
			name:    "plain text no department",
			status:  404,
			body:    "User is not assigned to any department",
			typ:     ErrorNoDepartment,
			message: noDepartmentHint,
		},
		{
			name:    "plain text phrase on other status",
			status:  403,
			body:    "not assigned to any department",
			typ:     ErrorGeneric,
			message: "HTTP error! status: 403 - not assigned to any department",
		},
		{
			name:    "json error field prefers message",
			status:  404,
			body:    `{"error":"You are not assigned to any department","message":"Ask an admin for access"}`,
			typ:     ErrorNoDepartment,
			message: "Ask an admin for access",
		},
		{
			name:    "json error field alone",
			status:  404,
			body:    `{"error":"You are not assigned to any department"}`,
			typ:     ErrorNoDepartment,
			message: "You are not assigned to any department",
		},
		{
			name:    "json message contains phrase",
			status:  404,
			body:    `{"message":"User 7 is not assigned to any department"}`,
			typ:     ErrorNoDepartment,
			message: "User 7 is not assigned to any department",
		},
		{
			name:    "json phrase only in another field",
			status:  404,
			body:    `{"info":"not assigned to any department"}`,
			typ:     ErrorNoDepartment,
			message: noDepartmentHint,
		},
		{
			name:    "json 404 unrelated",
			status:  404,
			body:    `{"detail":"Not found."}`,
			typ:     ErrorGeneric,
			message: `HTTP error! status: 404 - "Not found."`,
		},
		{
			name:    "validation detail",
			status:  422,
			body:    `{"detail":[{"loc":["body","title"],"msg":"field required"}]}`,
			typ:     ErrorGeneric,
			message: `Validation Error: [{"loc":["body","title"],"msg":"field required"}]`,
		},
		{
			name:    "422 without detail",
			status:  422,
			body:    `{"message":"nope"}`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 422 - nope",
		},
		{
			name:    "bad request object",
			status:  400,
			body:    `{"title": ["This field is required."]}`,
			typ:     ErrorGeneric,
			message: `Bad Request: {"title":["This field is required."]}`,
		},
		{
			name:    "bad request plain text",
			status:  400,
			body:    "bad",
			typ:     ErrorGeneric,
			message: "Bad Request: {}",
		},
		{
			name:    "bad request array",
			status:  400,
			body:    `["bad", "worse"]`,
			typ:     ErrorGeneric,
			message: `Bad Request: ["bad","worse"]`,
		},
		{
			name:    "array body on server error",
			status:  500,
			body:    `["x"]`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 500",
		},
		{
			name:    "scalar body on server error",
			status:  502,
			body:    `"gateway"`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 502",
		},
		{
			name:    "null body on not found",
			status:  404,
			body:    `null`,
			typ:     ErrorNoDepartment,
			message: noDepartmentHint,
		},
		{
			name:    "null body on server error",
			status:  500,
			body:    `null`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 500",
		},
		{
			name:    "detail on server error",
			status:  500,
			body:    `{"detail":"boom"}`,
			typ:     ErrorGeneric,
			message: `HTTP error! status: 500 - "boom"`,
		},
		{
			name:    "message on server error",
			status:  503,
			body:    `{"message":"maintenance"}`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 503 - maintenance",
		},
		{
			name:    "falsy detail ignored",
			status:  500,
			body:    `{"detail":null,"message":"down"}`,
			typ:     ErrorGeneric,
			message: "HTTP error! status: 500 - down",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyResponse(tt.status, []byte(tt.body), nil)
			assert.Equal(t, tt.typ, err.Type)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.status, err.Status)
			assert.Equal(t, tt.body, err.Body)
		})
	}
}

func TestClassifyResponse_ReadFailure(t *testing.T) {
	readErr := errors.New("connection reset")

	err := classifyResponse(404, nil, readErr)
	assert.Equal(t, ErrorNoDepartment, err.Type)
	assert.Equal(t, noDepartmentHint, err.Message)
	assert.ErrorIs(t, err, readErr)

	err = classifyResponse(500, nil, readErr)
	assert.Equal(t, ErrorGeneric, err.Type)
	assert.Equal(t, "HTTP error! status: 500", err.Message)
}

func TestIsNoDepartment(t *testing.T) {
	wrapped := errors.Join(errors.New("loading department"), &APIError{Type: ErrorNoDepartment})
	assert.True(t, IsNoDepartment(wrapped))
	assert.False(t, IsNoDepartment(&APIError{Type: ErrorGeneric}))
	assert.False(t, IsNoDepartment(errors.New("other")))
}

func TestCheckID(t *testing.T) {
	require.NoError(t, CheckID("task", 1))

	err := CheckID("task", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.Equal(t, "invalid task ID: 0", err.Error())

	err = CheckID("department", -3)
	assert.Equal(t, "invalid department ID: -3", err.Error())
}
