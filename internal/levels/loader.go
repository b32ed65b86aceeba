package levels

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tileswap/internal/config"
)

//go:embed defaults/levels.yaml
var defaultLevelsYAML []byte

// ErrNoLevels is returned when a source holds no level records.
var ErrNoLevels = errors.New("levels: no levels found")

// maxFeedSize bounds remote level feeds.
const maxFeedSize = 1 << 20

// Loader reads levels from a file, a directory tree or an http(s) feed.
type Loader struct {
	Root   string
	Client *http.Client
	Logger *log.Logger
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{
		Root:   root,
		Client: &http.Client{Timeout: 10 * time.Second},
		Logger: log.New(io.Discard),
	}
}

// LoadAll loads every level under Root. Directory trees are scanned
// recursively and the result is sorted by level number.
func (l *Loader) LoadAll(ctx context.Context) ([]Level, error) {
	if isURL(l.Root) {
		return l.LoadURL(ctx, l.Root)
	}

	info, err := os.Stat(l.Root)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	if !info.IsDir() {
		return l.LoadFile(l.Root)
	}

	var all []Level
	err = filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(filepath.Ext(path))) {
			return nil
		}

		list, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			l.Logger.Warn("skipping level file", "path", path, "err", err)
			return nil
		}
		all = append(all, list...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking directory %s: %w", l.Root, err)
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLevels, l.Root)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// LoadFile loads the levels in a single YAML or JSON file.
func (l *Loader) LoadFile(path string) ([]Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("levels: reading file %s: %w", path, err)
	}

	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing file %s: %w", path, err)
	}
	return normalize(list, path), nil
}

// LoadURL fetches a level feed.
func (l *Loader) LoadURL(ctx context.Context, url string) ([]Level, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("levels: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("levels: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("levels: fetching %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedSize))
	if err != nil {
		return nil, fmt.Errorf("levels: reading %s: %w", url, err)
	}

	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: parsing %s: %w", url, err)
	}
	return normalize(list, url), nil
}

// LoadByID loads a specific level by its level number.
func (l *Loader) LoadByID(ctx context.Context, id int) (Level, error) {
	list, err := l.LoadAll(ctx)
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range list {
		if lvl.ID == id {
			return lvl, nil
		}
	}
	return Level{}, fmt.Errorf("levels: level not found: %d", id)
}

// Parse decodes a level document: either a bare list of records or a
// mapping with a "levels" list. JSON documents are accepted as YAML.
func Parse(data []byte) ([]Level, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(root.Content) == 0 {
		return nil, ErrNoLevels
	}

	var list []Level
	doc := root.Content[0]
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&list); err != nil {
			return nil, fmt.Errorf("yaml decode: %w", err)
		}
	case yaml.MappingNode:
		var wrapped struct {
			Levels []Level `yaml:"levels"`
		}
		if err := doc.Decode(&wrapped); err != nil {
			return nil, fmt.Errorf("yaml decode: %w", err)
		}
		list = wrapped.Levels
	default:
		return nil, fmt.Errorf("unexpected document kind %d", doc.Kind)
	}

	if len(list) == 0 {
		return nil, ErrNoLevels
	}
	return list, nil
}

// Defaults returns the embedded campaign.
func Defaults() []Level {
	list, err := Parse(defaultLevelsYAML)
	if err != nil {
		return Fallback()
	}
	return normalize(list, embeddedSource)
}

// Load resolves the campaign.
// Search order: src -> ~/.tileswap/levels -> ./levels -> embedded default.
// When an explicit src cannot be read the embedded campaign is returned
// together with the error so the caller can report it and keep playing.
func Load(ctx context.Context, src string, logger *log.Logger) ([]Level, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if src != "" {
		loader := NewLoader(src)
		loader.Logger = logger
		list, err := loader.LoadAll(ctx)
		if err != nil {
			return Defaults(), err
		}
		return list, nil
	}

	candidates := []string{config.UserPath("levels"), "levels"}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		loader := NewLoader(path)
		loader.Logger = logger
		list, err := loader.LoadAll(ctx)
		if err == nil {
			return list, nil
		}
		logger.Warn("ignoring level directory", "path", path, "err", err)
	}

	return Defaults(), nil
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".json"}
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}
