package questions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/socops/bingo/internal/bingo"
)

func TestLoadEmbedded(t *testing.T) {
	p, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "embedded", p.Source())
	assert.Equal(t, DefaultFreeSpace, p.FreeSpace())
	assert.GreaterOrEqual(t, p.Len(), bingo.Prompts)
	for _, q := range p.Questions() {
		assert.NotEmpty(t, q)
		assert.False(t, strings.HasPrefix(q, "#"))
	}
}

func TestLoadFile(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("# header\n\n")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "  prompt %d  \n", i)
	}
	sb.WriteString("prompt 3\n") // duplicate
	path := filepath.Join(t.TempDir(), "q.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	p, err := Load(path, "Center")
	require.NoError(t, err)
	assert.Equal(t, path, p.Source())
	assert.Equal(t, "Center", p.FreeSpace())
	assert.Equal(t, 30, p.Len())
	assert.Equal(t, "prompt 0", p.Questions()[0])
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), "")
	assert.Error(t, err)
}

func TestNewRejectsSmallPool(t *testing.T) {
	list := make([]string, 10)
	for i := range list {
		list[i] = fmt.Sprintf("q%d", i)
	}
	_, err := New(list, "", "test")
	assert.ErrorIs(t, err, bingo.ErrInsufficientPool)
}

func TestNewDropsFreeSpaceLabelAndBlanks(t *testing.T) {
	list := []string{"FREE SPACE", " ", ""}
	for i := 0; i < bingo.Prompts; i++ {
		list = append(list, fmt.Sprintf("q%d", i))
	}
	p, err := New(list, "", "test")
	require.NoError(t, err)
	assert.Equal(t, bingo.Prompts, p.Len())
	assert.NotContains(t, p.Questions(), "FREE SPACE")
}

func TestQuestionsReturnsCopy(t *testing.T) {
	p, err := Load("", "")
	require.NoError(t, err)
	qs := p.Questions()
	qs[0] = "changed"
	assert.NotEqual(t, "changed", p.Questions()[0])
}

func TestDeckDealsFromPool(t *testing.T) {
	p, err := Load("", "Middle")
	require.NoError(t, err)
	b, err := p.Deck(nil).Deal()
	require.NoError(t, err)
	assert.Equal(t, "Middle", b[bingo.Center].Text)

	in := map[string]bool{}
	for _, q := range p.Questions() {
		in[q] = true
	}
	for _, sq := range b {
		if !sq.IsFreeSpace {
			assert.True(t, in[sq.Text])
		}
	}
}
