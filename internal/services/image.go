package services

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"sync/atomic"
	"time"

	"photo-wall/internal/logger"
	"photo-wall/internal/models"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ImageOptions controls how frame presentations are produced
type ImageOptions struct {
	PixelsPerUnit float64
	BorderWidth   int
	BorderColor   color.Color
	CacheSize     int
}

func DefaultImageOptions() ImageOptions {
	return ImageOptions{
		PixelsPerUnit: 10,
		BorderWidth:   10,
		BorderColor:   color.Black,
		CacheSize:     128,
	}
}

// ImageService decodes sources and renders framed presentations.
// It satisfies models.SourceLoader and models.Renderer.
type ImageService struct {
	options ImageOptions
	cache   *lru.Cache[sourceKey, image.Image]
	logger  logger.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// sourceKey identifies one version of a file on disk
type sourceKey struct {
	path    string
	size    int64
	modTime time.Time
}

// NewImageService creates an image service with a bounded cache of decoded sources
func NewImageService(options ImageOptions, log logger.Logger) (*ImageService, error) {
	if options.PixelsPerUnit <= 0 {
		options.PixelsPerUnit = DefaultImageOptions().PixelsPerUnit
	}
	if options.BorderWidth < 0 {
		options.BorderWidth = 0
	}
	if options.BorderColor == nil {
		options.BorderColor = color.Black
	}
	if options.CacheSize <= 0 {
		options.CacheSize = DefaultImageOptions().CacheSize
	}
	if log == nil {
		log = logger.NoOpLogger{}
	}

	cache, err := lru.New[sourceKey, image.Image](options.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}

	return &ImageService{
		options: options,
		cache:   cache,
		logger:  log,
	}, nil
}

// Load decodes the image at path, applying EXIF orientation. Decoded images
// are cached per path, size and modification time, so a changed or removed
// file is never served from the cache.
func (is *ImageService) Load(path string) (image.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	key := sourceKey{path: path, size: info.Size(), modTime: info.ModTime()}

	if img, ok := is.cache.Get(key); ok {
		is.hits.Add(1)
		return img, nil
	}
	is.misses.Add(1)

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	is.cache.Add(key, img)
	is.logger.Debug("ImageService", "source decoded", map[string]interface{}{
		"path":   path,
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	})
	return img, nil
}

// Render center-crops src to the frame's aspect ratio, scales it to the frame's
// pixel size with Lanczos and draws the border inside the edges.
func (is *ImageService) Render(src image.Image, frame models.Dimensions) image.Image {
	width := max(int(frame.Width*is.options.PixelsPerUnit), 1)
	height := max(int(frame.Height*is.options.PixelsPerUnit), 1)

	cropped := imaging.Crop(src, CenterCropRect(src.Bounds(), frame.Aspect()))
	scaled := imaging.Resize(cropped, width, height, imaging.Lanczos)

	DrawBorder(scaled, is.options.BorderWidth, is.options.BorderColor)
	return scaled
}

// Purge drops every cached source
func (is *ImageService) Purge() {
	is.cache.Purge()
}

// CacheStats returns cache hits, misses and current entry count
func (is *ImageService) CacheStats() (hits, misses int64, entries int) {
	return is.hits.Load(), is.misses.Load(), is.cache.Len()
}

func (is *ImageService) Shutdown() {
	hits, misses, entries := is.CacheStats()
	is.logger.Info("ImageService", "releasing source cache", map[string]interface{}{
		"hits":    hits,
		"misses":  misses,
		"entries": entries,
	})
	is.Purge()
}

// CenterCropRect returns the largest rectangle with the given aspect ratio
// (width/height) centered inside bounds.
func CenterCropRect(bounds image.Rectangle, aspect float64) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || aspect <= 0 {
		return bounds
	}

	if float64(w)/float64(h) > aspect {
		cropW := min(max(int(math.Round(float64(h)*aspect)), 1), w)
		x0 := bounds.Min.X + (w-cropW)/2
		return image.Rect(x0, bounds.Min.Y, x0+cropW, bounds.Max.Y)
	}

	cropH := min(max(int(math.Round(float64(w)/aspect)), 1), h)
	y0 := bounds.Min.Y + (h-cropH)/2
	return image.Rect(bounds.Min.X, y0, bounds.Max.X, y0+cropH)
}

// DrawBorder paints an outline of the given width along the inside edges of img
func DrawBorder(img draw.Image, width int, c color.Color) {
	if width <= 0 {
		return
	}

	b := img.Bounds()
	fill := image.NewUniform(c)
	bands := []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+width),
		image.Rect(b.Min.X, b.Max.Y-width, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, b.Min.Y, b.Min.X+width, b.Max.Y),
		image.Rect(b.Max.X-width, b.Min.Y, b.Max.X, b.Max.Y),
	}
	for _, band := range bands {
		draw.Draw(img, band.Intersect(b), fill, image.Point{}, draw.Src)
	}
}
