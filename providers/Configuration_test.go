package providers

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vantaboard/class-fold/fold"
	"github.com/vantaboard/class-fold/scanner"
)

func TestLoadConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "class-fold.yaml")
	text := "locale: uk\nlanguages: [html]\nstyle: false\nediting_delay: 20\nfold_direction: down\n"

	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))

	config, err := LoadConfiguration(path)
	require.NoError(t, err)

	assert.Equal(t, "uk", config.Locale)
	assert.Equal(t, []string{"html"}, config.Languages)
	assert.True(t, config.Class)
	assert.False(t, config.Style)
	assert.Equal(t, 500, config.MatchTimeout)

	options, err := config.Options()
	require.NoError(t, err)

	assert.Equal(t, []scanner.Kind{scanner.Class}, options.Kinds)
	assert.Equal(t, 20*time.Millisecond, options.EditingDelay)
	assert.Equal(t, fold.Down, options.FoldDirection)
	assert.Equal(t, 1, options.FoldLevels)

	_, err = LoadConfiguration(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	config, err = LoadConfiguration("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfiguration(), config)
}

func TestConfiguration_Merge(t *testing.T) {
	base := DefaultConfiguration()

	var src map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"fold_levels": 2, "languages": ["html"], "match_timeout": "100"}`), &src))

	config, err := base.Merge(src)
	require.NoError(t, err)

	assert.Equal(t, 2, config.FoldLevels)
	assert.Equal(t, []string{"html"}, config.Languages)
	assert.Equal(t, 100, config.MatchTimeout)
	assert.True(t, config.Class)
	assert.Equal(t, fold.DefaultLanguages, base.Languages)

	config, err = base.Merge(map[string]any{"class": false})
	require.NoError(t, err)
	assert.Equal(t, base.Languages, config.Languages)
	assert.False(t, config.Class)

	config, err = base.Merge(nil)
	require.NoError(t, err)
	assert.Equal(t, base, config)

	_, err = base.Merge(map[string]any{"fold_levels": "many"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid configuration")
}

func TestConfiguration_Options(t *testing.T) {
	config := DefaultConfiguration()
	config.FoldDirection = "left"

	_, err := config.Options()
	assert.EqualError(t, err, "Unknown fold direction left, expected up or down")

	config = DefaultConfiguration()
	config.EditingDelay = 0
	config.FoldLevels = 0

	options, err := config.Options()
	require.NoError(t, err)

	assert.Equal(t, fold.DefaultOptions().EditingDelay, options.EditingDelay)
	assert.Equal(t, fold.DefaultFoldLevels, options.FoldLevels)
	assert.Equal(t, scanner.Kinds, options.Kinds)
}

func TestUnwrapSettings(t *testing.T) {
	nested := map[string]any{"class": false}

	assert.Equal(t, nested, unwrapSettings(map[string]any{"classFold": nested}))
	assert.Equal(t, nested, unwrapSettings(nested))
	assert.Nil(t, unwrapSettings(nil))
}

func TestSession_Configure(t *testing.T) {
	s, err := NewSession(DefaultConfiguration())
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, s.Configure(map[string]any{"locale": "en"}))
	})

	require.NoError(t, s.Configure(map[string]any{"style": false, "locale": "ru", "editing_delay": 30}))

	assert.Equal(t, []scanner.Kind{scanner.Class}, s.Controller.Options().Kinds)
	assert.Equal(t, 30*time.Millisecond, s.Controller.Gate.EditingDelay())
	assert.Equal(t, "ru", s.Config().Locale)

	err = s.Configure(map[string]any{"fold_direction": "left", "class": false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left")
	assert.True(t, s.Config().Class)

	err = s.Configure(map[string]any{"locale": "xx"})
	require.Error(t, err)
	assert.Equal(t, "ru", s.Config().Locale)
}
