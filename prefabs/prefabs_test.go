package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEmbeddedSpecsLoad(t *testing.T) {
	t.Chdir(t.TempDir())

	scene, err := LoadSceneSpec()
	require.NoError(t, err)
	assert.Equal(t, 40.0, scene.Camera.FOV)
	assert.Equal(t, time.Second, scene.Camera.IdleDelay)
	assert.Equal(t, 200*time.Millisecond, scene.Scroll.WheelSnapDelay)
	assert.NotEmpty(t, scene.Entities)

	icons, err := LoadIconsSpec()
	require.NoError(t, err)
	labels := make([]string, 0, len(icons.Icons))
	for _, icon := range icons.Icons {
		labels = append(labels, icon.Label)
		src, err := icon.Source()
		require.NoError(t, err, icon.Label)
		assert.NotEmpty(t, src, icon.Label)
	}
	assert.Equal(t, []string{"Experience", "Projects", "Resume", "Contact Me", "GitHub", "LinkedIn"}, labels)

	panels, err := LoadPanelsSpec()
	require.NoError(t, err)
	assert.Equal(t, "Noah Mendoza", panels.Home.Name)
	counts := map[string]int{}
	for _, p := range panels.Panels {
		counts[p.Label] = len(p.Items)
	}
	assert.Equal(t, 4, counts["Experience"])
	assert.Equal(t, 3, counts["Projects"])
}

func TestDiskOverridesEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.MkdirAll(filepath.Join("prefabs", "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("prefabs", "panels.yaml"), []byte("home:\n  name: Someone Else\npanels:\n  - label: About\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("prefabs", "scripts", "social.tengo"), []byte(`open_url("x")`), 0o644))

	panels, err := LoadPanelsSpec()
	require.NoError(t, err)
	assert.Equal(t, "Someone Else", panels.Home.Name)

	src, err := LoadScript("prefabs/scripts/social.tengo")
	require.NoError(t, err)
	assert.Equal(t, `open_url("x")`, string(src))

	assert.ElementsMatch(t, []string{"prefabs", filepath.Join("prefabs", "scripts")}, Dirs())
}

func TestLoadPanelsRejectsUnknownKind(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("prefabs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("prefabs", "panels.yaml"), []byte("panels:\n  - label: X\n    kind: carousel\n"), 0o644))

	_, err := LoadPanelsSpec()
	assert.ErrorContains(t, err, "carousel")
}

func TestLoadRejectsEmptySpecs(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll("prefabs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("prefabs", "panels.yaml"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join("prefabs", "icons.yaml"), []byte("icons: []\n"), 0o644))

	_, err := LoadPanelsSpec()
	assert.ErrorContains(t, err, "no panels")
	_, err = LoadIconsSpec()
	assert.ErrorContains(t, err, "no icons")
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		A *YAMLColor `yaml:"a"`
		B *YAMLColor `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: \"#ff8000\"\nb: \"10203040\"\n"), &out))
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, A: 0xff}, out.A.NRGBA(color.NRGBA{}))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, out.B.NRGBA(color.NRGBA{}))

	var missing *YAMLColor
	fallback := color.NRGBA{R: 1, G: 2, B: 3, A: 4}
	assert.Equal(t, fallback, missing.NRGBA(fallback))

	var bad struct {
		C YAMLColor `yaml:"c"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("c: \"#12\"\n"), &bad))
}

func TestDecodeComponentSpec(t *testing.T) {
	raw := map[string]any{"x": 1.5, "y": -2, "scale": 0.5}
	spec, err := DecodeComponentSpec[TransformComponentSpec](raw)
	require.NoError(t, err)
	assert.Equal(t, TransformComponentSpec{X: 1.5, Y: -2, Scale: 0.5}, spec)

	empty, err := DecodeComponentSpec[TransformComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty)
}

func TestWatcherReportsEditsAndCloses(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)

	target := filepath.Join(dir, "panels.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("home: {}\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	for range w.Events {
	}
}

func TestWatcherReportsOnlyAfterWritesSettle(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "icons.yaml")
	burst := []string{"", "icons:\n", "icons:\n  - label: Final\n"}
	var lastWrite time.Time
	for i, content := range burst {
		if i > 0 {
			time.Sleep(20 * time.Millisecond)
		}
		lastWrite = time.Now()
		require.NoError(t, os.WriteFile(target, []byte(content), 0o644))
	}

	select {
	case name := <-w.Events:
		assert.Equal(t, target, name)
		assert.GreaterOrEqual(t, time.Since(lastWrite), w.debounce, "reported before the burst went quiet")
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Final")
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("second event for %s", name)
	case <-time.After(3 * w.debounce):
	}
	require.NoError(t, w.Close())
}

func TestSettledTakesOnlyQuietFiles(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 1, 0, time.UTC)
	pending := map[string]time.Time{
		"b.yaml":       now.Add(-150 * time.Millisecond),
		"a.yaml":       now.Add(-100 * time.Millisecond),
		"social.tengo": now.Add(-10 * time.Millisecond),
	}

	assert.Equal(t, []string{"a.yaml", "b.yaml"}, settled(pending, now, 100*time.Millisecond))
	assert.Equal(t, map[string]time.Time{"social.tengo": now.Add(-10 * time.Millisecond)}, pending)
	assert.Empty(t, settled(pending, now, 100*time.Millisecond))
}
