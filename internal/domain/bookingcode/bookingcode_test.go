package bookingcode

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCode_UsesAlphabet(t *testing.T) {
	g := NewGenerator()

	for i := 0; i < 200; i++ {
		code, err := g.Code()
		require.NoError(t, err)
		require.Len(t, code, DefaultLength)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected %q in %s", r, code)
		}
	}
}

func TestUnique_RetriesOnCollision(t *testing.T) {
	g := NewGenerator()
	calls := 0

	code, err := g.Unique(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return calls < 3, nil
	})

	require.NoError(t, err)
	assert.Len(t, code, DefaultLength)
	assert.Equal(t, 3, calls)
}

func TestUnique_GivesUp(t *testing.T) {
	g := &Generator{Length: 4, Retries: 5}
	calls := 0

	_, err := g.Unique(context.Background(), func(ctx context.Context, code string) (bool, error) {
		calls++
		return true, nil
	})

	assert.ErrorIs(t, err, ErrExhausted)
	assert.Equal(t, 5, calls)
}

func TestCode_DeterministicSource(t *testing.T) {
	g := &Generator{Length: 3, Random: func(n int) (int, error) { return 0, nil }}

	code, err := g.Code()
	require.NoError(t, err)
	assert.Equal(t, "AAA", code)
}
