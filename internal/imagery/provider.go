// Package imagery turns level image references into square canvases.
//
// A reference is one of:
//
//	pattern:<name>[?params]   procedural image, see ParsePattern
//	http://... or https://... remote image
//	anything else             file path, relative to Provider.BaseDir
//
// PNG, JPEG, GIF, WebP and BMP sources are decoded.
package imagery

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
)

// DefaultSize is the square canvas every level image is fitted to.
const DefaultSize = 600

// maxImageBytes bounds remote downloads.
const maxImageBytes = 32 << 20

// ErrEmptyRef is returned for a blank image reference.
var ErrEmptyRef = errors.New("imagery: empty image reference")

// Provider loads and fits level images.
type Provider struct {
	BaseDir string
	Size    int
	Client  *http.Client
	Logger  *log.Logger
}

// NewProvider creates a provider fitting images to size x size pixels.
func NewProvider(baseDir string, size int, logger *log.Logger) *Provider {
	if size <= 0 {
		size = DefaultSize
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Provider{
		BaseDir: baseDir,
		Size:    size,
		Client:  &http.Client{Timeout: 15 * time.Second},
		Logger:  logger,
	}
}

// Load resolves ref and returns it fitted to the provider's canvas.
func (p *Provider) Load(ctx context.Context, ref string) (*image.RGBA, error) {
	src, err := p.decode(ctx, strings.TrimSpace(ref))
	if err != nil {
		return nil, err
	}
	return Fit(src, p.Size), nil
}

// LoadOrPlaceholder is Load that never fails: on error it logs a warning
// and returns the grey placeholder canvas together with the error.
func (p *Provider) LoadOrPlaceholder(ctx context.Context, ref string) (*image.RGBA, error) {
	img, err := p.Load(ctx, ref)
	if err != nil {
		p.Logger.Warn("image load failed, using placeholder", "ref", ref, "err", err)
		return Placeholder(p.Size, "image failed to load"), err
	}
	return img, nil
}

func (p *Provider) decode(ctx context.Context, ref string) (image.Image, error) {
	switch {
	case ref == "":
		return nil, ErrEmptyRef
	case strings.HasPrefix(ref, PatternScheme):
		return ParsePattern(ref, p.Size)
	case isRemote(ref):
		return p.fetch(ctx, ref)
	default:
		return p.open(ref)
	}
}

func (p *Provider) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("imagery: %w", err)
	}
	req.Header.Set("Accept", "image/*")

	client := p.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("imagery: fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("imagery: fetching %s: status %d", url, resp.StatusCode)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("imagery: decoding %s: %w", url, err)
	}
	p.Logger.Debug("image fetched", "url", url, "format", format, "bounds", img.Bounds())
	return img, nil
}

func (p *Provider) open(path string) (image.Image, error) {
	path = strings.TrimPrefix(path, "file://")
	// Local files ignore cache-busting queries
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if !filepath.IsAbs(path) && p.BaseDir != "" {
		path = filepath.Join(p.BaseDir, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imagery: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imagery: decoding %s: %w", path, err)
	}
	return img, nil
}

func isRemote(ref string) bool {
	lower := strings.ToLower(ref)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
