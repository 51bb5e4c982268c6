package capture

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// ReadySelector is rendered by the landing page once its content is in
// place; capture waits for it before taking the screenshot.
const ReadySelector = `[data-ready="true"]`

// Options defines parameters for a Chromium-based screenshot capture.
type Options struct {
	// URL to capture, e.g. "http://127.0.0.1:8080/".
	URL string

	// OutputPath is where the PNG is written.
	OutputPath string

	// Width and Height are the viewport dimensions in pixels.
	Width  int
	Height int

	// Timeout bounds the entire capture operation.
	Timeout time.Duration
}

func (o Options) validate() error {
	switch {
	case o.URL == "":
		return errors.New("capture: URL is required")
	case o.OutputPath == "":
		return errors.New("capture: OutputPath is required")
	case o.Width <= 0 || o.Height <= 0:
		return fmt.Errorf("capture: invalid viewport %dx%d", o.Width, o.Height)
	case o.Timeout <= 0:
		return errors.New("capture: Timeout is required")
	}
	return nil
}

// PNG navigates a headless Chromium to opts.URL, waits for ReadySelector
// and writes a viewport screenshot to opts.OutputPath. The file is replaced
// atomically so a concurrent reader never sees a partial image.
func PNG(parentCtx context.Context, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}

	ctx, cancel := chromedp.NewContext(parentCtx)
	defer cancel()

	ctx, timeoutCancel := context.WithTimeout(ctx, opts.Timeout)
	defer timeoutCancel()

	var png []byte
	tasks := chromedp.Tasks{
		chromedp.EmulateViewport(int64(opts.Width), int64(opts.Height)),
		chromedp.Navigate(opts.URL),
		chromedp.WaitVisible(ReadySelector, chromedp.ByQuery),
		// Let web fonts and the Tailwind runtime finish painting.
		chromedp.Sleep(500 * time.Millisecond),
		chromedp.CaptureScreenshot(&png),
	}

	if err := chromedp.Run(ctx, tasks); err != nil {
		return fmt.Errorf("capture: chromedp run failed: %w", err)
	}

	return writeFileAtomic(opts.OutputPath, png)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("capture: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".capture-*.png")
	if err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("capture: failed to write PNG: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("capture: %w", err)
	}
	return os.Rename(tmpName, path)
}
