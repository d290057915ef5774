package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBearer(t *testing.T) {
	ctx, err := FromBearer("Bearer abc123", "Frank")
	require.NoError(t, err)
	assert.Equal(t, "abc123", ctx.Token)
	assert.Equal(t, "Frank", ctx.AdminName)
	assert.True(t, ctx.Authenticated())
	assert.False(t, ctx.IssuedAt.IsZero())
}

func TestFromBearer_Rejects(t *testing.T) {
	cases := []string{
		"",
		"abc123",
		"Basic abc123",
		"Bearer ",
		"Bearer    ",
	}
	for _, header := range cases {
		_, err := FromBearer(header, "Frank")
		assert.ErrorIs(t, err, ErrMissingToken, "header %q", header)
	}
}

func TestAuthenticated_ZeroValue(t *testing.T) {
	assert.False(t, Context{}.Authenticated())
}
