package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_Cost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cost int
		want int
	}{
		{"below minimum is raised", 4, MinCost},
		{"minimum", MinCost, MinCost},
		{"above minimum kept", 11, 11},
		{"above maximum is capped", 40, bcrypt.MaxCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewHasher(tt.cost).cost)
		})
	}
}

func TestHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	h := NewHasher(MinCost)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	assert.NotEqual(t, "pw", hash, "password must not be stored in plain text")
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, cost, 10)

	assert.True(t, h.Compare(hash, "pw"))
	assert.False(t, h.Compare(hash, "wrong"))
	assert.False(t, h.Compare("not-a-hash", "pw"))
}

func TestHasher_Salted(t *testing.T) {
	t.Parallel()

	h := NewHasher(MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
