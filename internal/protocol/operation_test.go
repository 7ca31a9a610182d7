package protocol

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationName(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"mutation Login($input: LoginInput!) { login(input: $input) { accessToken } }", "Login"},
		{"\n  query GetProject($projectId: ID!) { project(id: $projectId) { id } }", "GetProject"},
		{"{ me { id } }", "anonymous"},
		{"query { me { id } }", "anonymous"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NewOperation(tt.text, nil).Name())
	}
}

func TestOperationBody(t *testing.T) {
	op := NewOperation("query Me { me { id } }", NewObject(
		F("projectId", String("p1")),
		F("limit", Int(10)),
	))

	body, err := op.Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"query Me { me { id } }","variables":{"projectId":"p1","limit":10}}`, string(body))
}

func TestOperationBodyWithoutVariables(t *testing.T) {
	body, err := NewOperation("query Me { me { id } }", nil).Body()
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"query Me { me { id } }","variables":{}}`, string(body))
}

func TestOperationIsImmutable(t *testing.T) {
	vars := NewObject(F("a", Int(1)))
	op := NewOperation("query Q { x }", vars)

	vars.Set("b", Int(2))
	op.Variables().Set("c", Int(3))

	assert.Equal(t, []string{"a"}, op.Variables().Keys())
}

func TestOperationBodyRejectsInvalidVariables(t *testing.T) {
	op := NewOperation("query Q { x }", NewObject(F("n", Number(math.Inf(1)))))
	_, err := op.Body()
	assert.Error(t, err)
}
