package types

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampLayouts(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"rfc3339 with offset", "2026-01-02T03:04:05Z", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"no offset with micros", "2025-01-15T10:30:00.123456", time.Date(2025, 1, 15, 10, 30, 0, 123456000, time.UTC)},
		{"space separator", "2025-01-15 10:30:00", time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", "2025-01-15", time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := ParseTimestamp(tt.raw)
			require.True(t, ok)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestampUnknownLayoutDoesNotFailPayload(t *testing.T) {
	var user User
	require.NoError(t, sonic.UnmarshalString(`{"id":"u1","createdAt":"last tuesday"}`, &user))
	require.NotNil(t, user.CreatedAt)
	assert.True(t, user.CreatedAt.IsZero())
	assert.Equal(t, "last tuesday", user.CreatedAt.Raw)
}

func TestTimestampNullAndRoundTrip(t *testing.T) {
	var user User
	require.NoError(t, sonic.UnmarshalString(`{"id":"u1","createdAt":null}`, &user))
	assert.Nil(t, user.CreatedAt)

	require.NoError(t, sonic.UnmarshalString(`{"id":"u1","createdAt":"2025-01-15T10:30:00.123456"}`, &user))
	out, err := sonic.MarshalString(user)
	require.NoError(t, err)
	assert.Contains(t, out, `"createdAt":"2025-01-15T10:30:00.123456"`)
}
