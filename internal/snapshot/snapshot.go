// Package snapshot saves rendered frames as PNG screenshots.
package snapshot

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/internal/hud"
	"github.com/gogpu/fractal/nav"
)

// Save writes raster to dir/nav.ScreenshotName(now) and returns the path.
// When labeler is not nil and label is not empty the label is drawn in the
// top-left corner of the image; the raster itself is not modified.
//
// Screenshots taken within the same second share a name, the later one
// replaces the earlier.
func Save(dir string, raster *fractal.Raster, label string, labeler *hud.Labeler, now time.Time) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	path := filepath.Join(dir, nav.ScreenshotName(now))
	if err := Write(path, raster, label, labeler); err != nil {
		return "", err
	}
	return path, nil
}

// Write PNG-encodes raster to path, drawing label like Save does.
func Write(path string, raster *fractal.Raster, label string, labeler *hud.Labeler) (err error) {
	if raster == nil {
		return fmt.Errorf("snapshot: %w: nil raster", fractal.ErrInvalidSize)
	}

	img := raster.ToImage()
	if labeler != nil && label != "" {
		labeler.Draw(img, label)
	}

	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("snapshot: %w", cerr)
		}
	}()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}

	fractal.Logger().Info("snapshot: saved",
		slog.String("path", path),
		slog.Int("width", raster.Width()),
		slog.Int("height", raster.Height()))
	return nil
}
