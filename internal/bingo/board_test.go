package bingo

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFree = "FREE SPACE"

func testPool(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("question %02d", i)
	}
	return out
}

func seeded(seed uint64) *rand.Rand { return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }

func TestGenerateBoardShape(t *testing.T) {
	pool := testPool(40)
	for seed := uint64(0); seed < 50; seed++ {
		b, err := GenerateBoard(pool, testFree, seeded(seed))
		require.NoError(t, err)

		inPool := make(map[string]bool, len(pool))
		for _, q := range pool {
			inPool[q] = true
		}
		seen := map[string]bool{}
		free := 0
		for i, sq := range b {
			assert.Equal(t, i, sq.ID, "id must match position")
			if sq.IsFreeSpace {
				free++
				assert.Equal(t, Center, sq.ID)
				assert.True(t, sq.IsMarked, "free space starts marked")
				assert.Equal(t, testFree, sq.Text)
				continue
			}
			assert.False(t, sq.IsMarked)
			assert.True(t, inPool[sq.Text], "text %q not from pool", sq.Text)
			assert.False(t, seen[sq.Text], "duplicate text %q", sq.Text)
			seen[sq.Text] = true
		}
		assert.Equal(t, 1, free)
		assert.Len(t, seen, Prompts)
	}
}

func TestGenerateBoardCenterIs12(t *testing.T) {
	assert.Equal(t, 12, Center)
}

func TestGenerateBoardDoesNotModifyPool(t *testing.T) {
	pool := testPool(30)
	before := append([]string(nil), pool...)
	_, err := GenerateBoard(pool, testFree, seeded(7))
	require.NoError(t, err)
	assert.Equal(t, before, pool)
}

func TestGenerateBoardSeedDeterminism(t *testing.T) {
	pool := testPool(60)
	a, err := GenerateBoard(pool, testFree, seeded(42))
	require.NoError(t, err)
	b, err := GenerateBoard(pool, testFree, seeded(42))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := GenerateBoard(pool, testFree, seeded(43))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestGenerateBoardExactPoolUsesEveryQuestion(t *testing.T) {
	pool := testPool(Prompts)
	b, err := GenerateBoard(pool, testFree, nil)
	require.NoError(t, err)
	got := map[string]bool{}
	for _, sq := range b {
		if !sq.IsFreeSpace {
			got[sq.Text] = true
		}
	}
	for _, q := range pool {
		assert.True(t, got[q], "missing %q", q)
	}
}

func TestGenerateBoardInsufficientPool(t *testing.T) {
	_, err := GenerateBoard(testPool(10), testFree, seeded(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInsufficientPool))

	var ipe *InsufficientPoolError
	require.True(t, errors.As(err, &ipe))
	assert.Equal(t, 10, ipe.Have)
	assert.Equal(t, Prompts, ipe.Need)
}

func TestGenerateBoardCountsDistinctEntries(t *testing.T) {
	pool := append(testPool(Prompts-1), "question 00", "question 01", "question 02")
	_, err := GenerateBoard(pool, testFree, seeded(1))
	assert.ErrorIs(t, err, ErrInsufficientPool)

	pool = append(pool, "one more")
	_, err = GenerateBoard(pool, testFree, seeded(1))
	assert.NoError(t, err)
}

func TestToggleFreeSpaceIsImmune(t *testing.T) {
	for seed := uint64(0); seed < 10; seed++ {
		b, err := GenerateBoard(testPool(30), testFree, seeded(seed))
		require.NoError(t, err)
		got := Toggle(b, Center)
		assert.Equal(t, b, got)
		assert.True(t, got[Center].IsMarked)
	}
}

func TestToggleRoundTrip(t *testing.T) {
	b, err := GenerateBoard(testPool(30), testFree, seeded(3))
	require.NoError(t, err)
	for id := 0; id < Cells; id++ {
		if id == Center {
			continue
		}
		once := Toggle(b, id)
		assert.NotEqual(t, b[id].IsMarked, once[id].IsMarked, "square %d", id)
		assert.Equal(t, b, Toggle(once, id), "square %d", id)
	}
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	b, err := GenerateBoard(testPool(30), testFree, seeded(3))
	require.NoError(t, err)
	orig := b
	_ = Toggle(b, 0)
	assert.Equal(t, orig, b)
	assert.False(t, b[0].IsMarked)
}

func TestToggleOutOfRangeIsNoop(t *testing.T) {
	b, err := GenerateBoard(testPool(30), testFree, seeded(3))
	require.NoError(t, err)
	for _, id := range []int{-1, Cells, 100} {
		assert.Equal(t, b, Toggle(b, id), "id %d", id)
	}
}

func TestDeckDeal(t *testing.T) {
	d := NewDeck(testPool(30), testFree, seeded(9))
	assert.Equal(t, 30, d.Size())
	assert.Equal(t, testFree, d.FreeSpace())
	b, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, testFree, b[Center].Text)

	_, err = NewDeck(testPool(5), testFree, nil).Deal()
	assert.ErrorIs(t, err, ErrInsufficientPool)
}

func TestBoardRowsAndMarkedCount(t *testing.T) {
	b, err := GenerateBoard(testPool(30), testFree, seeded(5))
	require.NoError(t, err)
	assert.Equal(t, 1, b.MarkedCount())

	rows := b.Rows()
	require.Len(t, rows, Size)
	for r, row := range rows {
		require.Len(t, row, Size)
		for c, sq := range row {
			assert.Equal(t, r*Size+c, sq.ID)
		}
	}

	b = Toggle(Toggle(b, 0), 1)
	assert.Equal(t, 3, b.MarkedCount())
}

func TestGenerateBoardSinglePromptRepeated(t *testing.T) {
	pool := make([]string, Prompts)
	for i := range pool {
		pool[i] = "same"
	}
	_, err := GenerateBoard(pool, testFree, seeded(1))
	var ipe *InsufficientPoolError
	require.ErrorAs(t, err, &ipe)
	assert.Equal(t, 1, ipe.Have)
}
