package chore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input   string
		want    Difficulty
		wantErr bool
	}{
		{input: "easy", want: DifficultyEasy},
		{input: "medium", want: DifficultyMedium},
		{input: "hard", want: DifficultyHard},
		{input: "EASY", want: DifficultyEasy},
		{input: " hard ", want: DifficultyHard},
		{input: "extreme", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDifficulty(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewChore(t *testing.T) {
	t.Run("creates unassigned incomplete chore", func(t *testing.T) {
		c, err := NewChore("dishes", DifficultyEasy)

		require.NoError(t, err)
		assert.Equal(t, "dishes", c.Name())
		assert.Equal(t, DifficultyEasy, c.Difficulty())
		assert.False(t, c.IsAssigned())
		assert.False(t, c.IsCompleted())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewChore("", DifficultyEasy)

		assert.ErrorIs(t, err, ErrEmptyName)
	})
}

func TestChore_Assign(t *testing.T) {
	c, _ := NewChore("bathroom", DifficultyHard)

	c.Assign(42)

	require.True(t, c.IsAssigned())
	assert.Equal(t, int64(42), *c.AssignedTo())
	assert.False(t, c.IsCompleted())
}

func TestChore_Complete(t *testing.T) {
	t.Run("completes an assigned chore", func(t *testing.T) {
		c, _ := NewChore("trash", DifficultyEasy)
		c.Assign(42)

		require.NoError(t, c.Complete())
		assert.True(t, c.IsCompleted())
	})

	t.Run("rejects unassigned chore", func(t *testing.T) {
		c, _ := NewChore("trash", DifficultyEasy)

		assert.ErrorIs(t, c.Complete(), ErrNotAssigned)
	})

	t.Run("rejects double completion", func(t *testing.T) {
		c, _ := NewChore("trash", DifficultyEasy)
		c.Assign(42)
		require.NoError(t, c.Complete())

		assert.ErrorIs(t, c.Complete(), ErrAlreadyCompleted)
	})
}

func TestChore_ResetCycle(t *testing.T) {
	c, _ := NewChore("vacuum", DifficultyMedium)
	c.Assign(42)
	require.NoError(t, c.Complete())

	c.ResetCycle()

	assert.False(t, c.IsAssigned())
	assert.False(t, c.IsCompleted())
}
