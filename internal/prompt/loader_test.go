package prompt

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maic/internal/modes"
)

const testPromptsYAML = `
version: 3
modes:
  grammar:
    persona: "문법 선생님"
    system_instructions: "규칙→근거→예문 순서로 설명"
    citations_policy: "[이유문법], [AI지식]"
    guardrails:
      tone: "존댓말"
    routing_hints:
      model: tutor-small
      max_tokens: 800
  sentence:
    persona: "구문 분석가"
    system_instructions: "괄호규칙 기준 분석"
    citations_policy: "[이유문법], [문법책], [AI지식]"
`

func writePrompts(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ParsesFile(t *testing.T) {
	path := writePrompts(t, testPromptsYAML)

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, f.Version)
	assert.Len(t, f.Modes, 2)

	entry, ok := f.Entry(modes.ModeGrammar)
	require.True(t, ok)
	assert.Equal(t, "문법 선생님", entry.Persona)
	assert.Equal(t, "존댓말", entry.Guardrails["tone"])
	assert.Equal(t, "tutor-small", entry.RoutingHints.Model)
	require.NotNil(t, entry.RoutingHints.MaxTokens)
	assert.Equal(t, 800, *entry.RoutingHints.MaxTokens)
	assert.Nil(t, entry.RoutingHints.Temperature)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)

	path := writePrompts(t, "modes: [not, a, map]")
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadOrDefault_FallsBack(t *testing.T) {
	// Missing file → embedded defaults.
	f := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NotNil(t, f)
	assert.NotEmpty(t, f.Modes)

	// Broken file → embedded defaults.
	path := writePrompts(t, ":::not yaml{{{")
	f = LoadOrDefault(path)
	assert.NotEmpty(t, f.Modes)

	// Healthy file wins.
	path = writePrompts(t, testPromptsYAML)
	f = LoadOrDefault(path)
	assert.Equal(t, 3, f.Version)
}

func TestDefaults_ComposeForAllEnabledModes(t *testing.T) {
	f := Defaults()
	c := modes.New()

	for _, spec := range c.EnabledModes() {
		entry, ok := f.Entry(spec.Key)
		require.True(t, ok, "defaults missing entry for %s", spec.Key)

		out, err := Compose(spec.Key, entry)
		require.NoError(t, err, "defaults for %s must compose", spec.Key)
		assert.Contains(t, out, "[ROLE]")
		assert.Contains(t, out, "[MODE] "+spec.Key.Key())
	}
}

func TestSource_PreferenceOrder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	promptsPath := filepath.Join(dir, "prompts.yaml")
	store, err := OpenStore(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer store.Close()

	// No file, empty cache → defaults.
	src := NewSource(promptsPath, store)
	require.NotNil(t, src.Current())
	assert.NotEmpty(t, src.Current().Modes)

	// Healthy file → served and cached.
	require.NoError(t, os.WriteFile(promptsPath, []byte(testPromptsYAML), 0644))
	src.Reload(ctx)
	assert.Equal(t, 3, src.Current().Version)

	// File breaks → last good set survives via the cache.
	require.NoError(t, os.WriteFile(promptsPath, []byte("{{{"), 0644))
	src.Reload(ctx)
	assert.Equal(t, 3, src.Current().Version)
	_, ok := src.Current().Entry(modes.ModeSentence)
	assert.True(t, ok)
}
