package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	_, err := options(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)

	opts, err := options(Config{URL: "redis://:secret@cache.internal"})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Nil(t, opts.TLSConfig)

	opts, err = options(Config{URL: "rediss://cache.internal:6380", Password: "override"})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, "override", opts.Password)
	assert.NotNil(t, opts.TLSConfig)
}
