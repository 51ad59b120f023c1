package salesforce

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "sfdc-gateway/pkg/errors"
)

func TestAuthErrorMatchesUnauthorizedSentinel(t *testing.T) {
	err := fmt.Errorf("acquire session: %w", &AuthError{StatusCode: 401, Body: "invalid_client"})

	assert.True(t, errors.Is(err, pkgerrors.ErrUnauthorized))
	assert.False(t, errors.Is(err, pkgerrors.ErrNotFound))
}

func TestNotFoundErrorMatchesSentinel(t *testing.T) {
	err := fmt.Errorf("retrieve: %w", &NotFoundError{ObjectType: "Case", ID: "5003000000D8cuI"})

	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	assert.Contains(t, err.Error(), "Case 5003000000D8cuI not found")
}
