package wordlist

import (
	"os"
	"path/filepath"
	"testing"

	"avkuzmin/finaudit/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStructuredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	content := "words:\n  - штраф\n  - пени\n  - \"  неустойка  \"\n  - ШТРАФ\n  - \"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"штраф", "пени", "неустойка"}, words)
}

func TestLoadBareList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	content := "- штраф\n- пени\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	words, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"штраф", "пени"}, words)
}

func TestLoadMissingFile(t *testing.T) {
	words, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSeed(t *testing.T) {
	s, err := store.Create(filepath.Join(t.TempDir(), "audit.db"))
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	n, err := Seed(s, []string{"штраф", "пени"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Seeding again must not duplicate anything.
	_, err = Seed(s, []string{"штраф", "пени"})
	require.NoError(t, err)

	words, err := s.SuspiciousWords()
	require.NoError(t, err)
	assert.Len(t, words, 2)
}
