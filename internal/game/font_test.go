package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/tonal-tangents/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/goregular"
)

func TestLabelFaceDefaultsToGoRegular(t *testing.T) {
	log, recorded := logger.NewTestLogger()
	face, unicode := loadLabelFace("", log)
	assert.NotNil(t, face)
	assert.False(t, unicode)
	assert.Zero(t, recorded.Len())
}

func TestLabelFaceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))

	log, _ := logger.NewTestLogger()
	face, unicode := loadLabelFace(path, log)
	assert.NotNil(t, face)
	assert.True(t, unicode)
}

func TestLabelFaceFallsBackOnBadFont(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	require.NoError(t, os.WriteFile(garbage, []byte("not a font"), 0o644))

	for _, path := range []string{filepath.Join(dir, "missing.ttf"), garbage} {
		log, recorded := logger.NewTestLogger()
		face, unicode := loadLabelFace(path, log)
		assert.NotNil(t, face, path)
		assert.False(t, unicode, path)
		assert.Equal(t, 1, recorded.FilterMessage("failed to load the label font").FilterLevelExact(zap.WarnLevel).Len(), path)
	}
}

func TestLabelTextFollowsFont(t *testing.T) {
	g, _ := newTestGame(t)
	g.unicodeLabels = false
	assert.Equal(t, "C#\nDb", g.labelText("C♯/D♭"))
	g.unicodeLabels = true
	assert.Equal(t, "C♯\nD♭", g.labelText("C♯/D♭"))
}
