package levels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/tileswap/internal/config"
)

type fixedRand struct{ n int }

func (r fixedRand) Intn(n int) int { return r.n % n }

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsParse(t *testing.T) {
	list := Defaults()
	if len(list) < 5 {
		t.Fatalf("len(Defaults()) = %d, expected a full campaign", len(list))
	}
	for i, l := range list {
		if l.ID != i+1 {
			t.Errorf("level %d has ID %d", i, l.ID)
		}
		if l.Cols <= 0 || l.Rows <= 0 {
			t.Errorf("level %d has grid %s", l.ID, l.GridLabel())
		}
		if l.ImageURL == "" && len(l.ImageList) == 0 {
			t.Errorf("level %d has no image", l.ID)
		}
	}
}

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected int
	}{
		{"json array", `[{"level":1,"cols":4,"rows":2,"imageUrl":"a.png"},{"level":2}]`, 2},
		{"yaml list", "- name: One\n- name: Two\n- name: Three\n", 3},
		{"wrapped", "levels:\n  - name: Only\n", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			list, err := Parse([]byte(tc.data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(list) != tc.expected {
				t.Errorf("len = %d, expected %d", len(list), tc.expected)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, data := range []string{"", "[]", "levels: []", "just a string", "[{"} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("Parse(%q) expected error", data)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	list := normalize([]Level{{Name: "a"}, {ID: 7, Cols: 5, Diff: " HARD "}}, "x.yaml")

	if list[0].ID != 1 || list[0].Cols != 3 || list[0].Rows != 3 {
		t.Errorf("first = %+v, expected ID 1 and 3x3", list[0])
	}
	if list[1].ID != 7 || list[1].Cols != 5 || list[1].Rows != 3 {
		t.Errorf("second = %+v, expected ID 7 and 5x3", list[1])
	}
	if list[1].Diff != "hard" {
		t.Errorf("Diff = %q, expected hard", list[1].Diff)
	}
	if list[0].FilePath != "x.yaml" {
		t.Errorf("FilePath = %q", list[0].FilePath)
	}
}

func TestLoaderDirectory(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "pack")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir, "b.yaml", "- level: 3\n  name: Three\n")
	writeFile(t, sub, "a.json", `[{"level":1,"name":"One"},{"level":2,"name":"Two"}]`)
	writeFile(t, dir, "broken.yml", "- [")
	writeFile(t, dir, "notes.txt", "ignored")

	list, err := NewLoader(dir).LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("len = %d, expected 3", len(list))
	}
	for i, l := range list {
		if l.ID != i+1 {
			t.Errorf("list[%d].ID = %d, expected %d", i, l.ID, i+1)
		}
	}

	lvl, err := NewLoader(dir).LoadByID(context.Background(), 2)
	if err != nil || lvl.Name != "Two" {
		t.Errorf("LoadByID(2) = %+v, %v", lvl, err)
	}
	if _, err := NewLoader(dir).LoadByID(context.Background(), 9); err == nil {
		t.Error("LoadByID(9) expected error")
	}
}

func TestLoaderURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/levels" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"level":1,"name":"Remote","cols":2,"rows":2,"imageUrl":"https://example.com/{rand}.jpg","randomize":true}]`)) //nolint:errcheck
	}))
	defer srv.Close()

	list, err := NewLoader(srv.URL + "/api/levels").LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(list) != 1 || list[0].Name != "Remote" || !list[0].Randomize {
		t.Errorf("list = %+v", list)
	}

	if _, err := NewLoader(srv.URL + "/missing").LoadAll(context.Background()); err == nil {
		t.Error("expected error for 404 feed")
	}
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	list, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), nil)
	if err == nil {
		t.Error("expected error for missing source")
	}
	if len(list) != len(Defaults()) {
		t.Errorf("len = %d, expected embedded campaign", len(list))
	}
}

func TestLoadExplicitFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "levels.yaml", "levels:\n  - name: Solo\n    cols: 2\n    rows: 5\n")

	list, err := Load(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(list) != 1 || list[0].GridLabel() != "2x5" {
		t.Errorf("list = %+v", list)
	}
}

func TestResolveImage(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		name     string
		level    Level
		rng      fixedRand
		expected string
	}{
		{"plain", Level{ImageURL: "/assets/a.jpg"}, fixedRand{0}, "/assets/a.jpg"},
		{"list pick", Level{ImageURL: "x", ImageList: []string{"a", "b", "c"}}, fixedRand{1}, "b"},
		{"rand placeholder", Level{ImageURL: "img/{rand}/{rand}.png"}, fixedRand{42}, "img/42/42.png"},
		{"randomize query", Level{ImageURL: "pic.png", Randomize: true}, fixedRand{7}, "pic.png?cb=1700000000123_7"},
		{"relative to level file", Level{ImageURL: "img/a.png", FilePath: filepath.Join("packs", "one.yaml")}, fixedRand{0}, filepath.Join("packs", "img", "a.png")},
		{"pattern ignores level file", Level{ImageURL: "pattern:rings", FilePath: filepath.Join("packs", "one.yaml")}, fixedRand{0}, "pattern:rings"},
		{"embedded stays relative", Level{ImageURL: "img/a.png", FilePath: "embedded"}, fixedRand{0}, "img/a.png"},
		{"randomize amp", Level{ImageURL: "pattern:plasma?seed=1", Randomize: true}, fixedRand{3}, "pattern:plasma?seed=1&cb=1700000000123_3"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ResolveImage(tc.level, tc.rng, now); got != tc.expected {
				t.Errorf("ResolveImage = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	cfg := config.DefaultTileSwapConfig()

	tests := []struct {
		name     string
		level    Level
		expected int
	}{
		{"explicit limit", Level{Cols: 3, Rows: 3, Diff: "easy", TimeLimit: 42}, 42},
		{"tier", Level{Cols: 3, Rows: 3, Diff: "hard"}, 90},
		{"per tile", Level{Cols: 4, Rows: 2}, 8 * 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Duration(tc.level, cfg, nil, config.Progress{}); got != tc.expected {
				t.Errorf("Duration = %d, expected %d", got, tc.expected)
			}
		})
	}

	cfg.Timer.Untimed = true
	if got := Duration(Level{TimeLimit: 10}, cfg, nil, config.Progress{}); got != 0 {
		t.Errorf("untimed Duration = %d, expected 0", got)
	}
}

func TestCampaignScalesLaterLevels(t *testing.T) {
	cfg := config.DefaultTileSwapConfig()
	list := []Level{
		{ID: 1, Name: "a", Cols: 3, Rows: 3, TimeLimit: 200},
		{ID: 2, Name: "b", Cols: 3, Rows: 3, TimeLimit: 200},
	}
	cfg.Difficulty.Progression.MaxAt = 1

	camp := Campaign(list, cfg)
	if camp[0].Seconds != 200 {
		t.Errorf("first level Seconds = %d, expected 200", camp[0].Seconds)
	}
	if camp[1].Seconds != 120 {
		t.Errorf("last level Seconds = %d, expected 120", camp[1].Seconds)
	}
	if camp[1].Name != "b" || camp[1].Cols != 3 {
		t.Errorf("camp[1] = %+v", camp[1])
	}
}

func TestTitle(t *testing.T) {
	if got := (Level{ID: 2, Name: "Ripples"}).Title(); got != "Level 2: Ripples" {
		t.Errorf("Title = %q", got)
	}
	if got := (Level{ID: 3}).Title(); !strings.HasPrefix(got, "Level 3") {
		t.Errorf("Title = %q", got)
	}
}
