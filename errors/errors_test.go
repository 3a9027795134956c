package errors

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassString(t *testing.T) {
	assert.Equal(t, "request", ClassRequest.String())
	assert.Equal(t, "integrity", ClassIntegrity.String())
	assert.Equal(t, "gateway", ClassGateway.String())
	assert.Equal(t, "unknown", Class(42).String())
}

func TestRequest(t *testing.T) {
	err := Request("explore_mode", ErrInvalidValue, "%q not in [undirected source target]", "sideways")

	assert.Equal(t, `invalid explore_mode: "sideways" not in [undirected source target]`, err.Error())
	assert.Equal(t, "explore_mode", err.Field)
	assert.True(t, IsRequest(err))
	assert.False(t, IsIntegrity(err))
	assert.True(t, Is(err, ErrInvalidValue))
}

func TestIntegrity(t *testing.T) {
	err := Integrity("normalize", "node", ErrUnknownKind, "element %s has labels %v", "4:abc:1", []string{"Disease"})

	assert.Equal(t, "normalize.node: element 4:abc:1 has labels [Disease]", err.Error())
	assert.True(t, IsIntegrity(err))
	assert.True(t, Is(err, ErrUnknownKind))
}

func TestWrapGateway(t *testing.T) {
	assert.NoError(t, WrapGateway(nil, "Neo4jGateway", "Run", "read query"))

	err := WrapGateway(context.DeadlineExceeded, "Neo4jGateway", "Run", "read query")
	require.Error(t, err)
	assert.True(t, IsGateway(err))
	assert.True(t, Is(err, context.DeadlineExceeded))
	assert.Equal(t, "Neo4jGateway.Run: read query failed: context deadline exceeded", err.Error())
}

func TestWrapKeepsClass(t *testing.T) {
	inner := Request("max_length", ErrInvalidValue, "must be at least 1")
	err := Wrap(inner, "Explorer", "Explore", "compile")

	assert.True(t, IsRequest(err))
	var ce *ClassifiedError
	require.True(t, As(err, &ce))
	assert.Equal(t, "max_length", ce.Field)
	assert.Nil(t, Wrap(nil, "a", "b", "c"))
}

func TestClassOfPlainError(t *testing.T) {
	_, ok := ClassOf(fmt.Errorf("plain"))
	assert.False(t, ok)
	assert.False(t, IsRequest(nil))
}
