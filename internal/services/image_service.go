package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"hvac-backend/internal/config"
	"hvac-backend/internal/metrics"
	"hvac-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// extensions maps accepted (sniffed) content types to stored file extensions.
var extensions = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

type ImageOptions struct {
	MaxBytes            int64
	MaxWidth            int
	MaxHeight           int
	MaxPixels           int
	Quality             int
	FailOnCompressError bool
	DefaultFolder       string
}

func ImageOptionsFromConfig(cfg *config.Config) ImageOptions {
	return ImageOptions{
		MaxBytes:            int64(cfg.Images.MaxUploadMB) << 20,
		MaxWidth:            cfg.Images.MaxWidth,
		MaxHeight:           cfg.Images.MaxHeight,
		MaxPixels:           cfg.Images.MaxPixels,
		Quality:             cfg.Images.Quality,
		FailOnCompressError: cfg.Images.FailOnCompressError,
		DefaultFolder:       "pmoc",
	}
}

type ImageService struct {
	Store ObjectStore
	Opts  ImageOptions
	Now   func() time.Time
	NewID func() string
}

func NewImageService(store ObjectStore, opts ImageOptions) *ImageService {
	return &ImageService{
		Store: store,
		Opts:  opts,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// Validate checks size and sniffs the content type from the bytes
// themselves; the client-declared type is ignored.
func (s *ImageService) Validate(data []byte) (string, error) {
	if len(data) == 0 {
		return "", missingFields("file")
	}
	if s.Opts.MaxBytes > 0 && int64(len(data)) > s.Opts.MaxBytes {
		return "", &FieldError{
			Kind:    ErrTooLarge,
			Field:   "file",
			Message: fmt.Sprintf("Arquivo muito grande. Tamanho máximo: %dMB", s.Opts.MaxBytes>>20),
		}
	}

	contentType := http.DetectContentType(data)
	if _, ok := extensions[contentType]; !ok {
		return "", &FieldError{
			Kind:    ErrUnsupportedType,
			Field:   "file",
			Message: "Tipo de arquivo não permitido. Use JPEG, PNG ou WebP",
		}
	}
	if err := s.checkDimensions(data); err != nil {
		return "", err
	}
	return contentType, nil
}

// checkDimensions reads only the image header and rejects images whose
// decoded size would exceed MaxPixels. Unreadable headers are left to Compress.
func (s *ImageService) checkDimensions(data []byte) error {
	if s.Opts.MaxPixels <= 0 {
		return nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	if int64(cfg.Width)*int64(cfg.Height) > int64(s.Opts.MaxPixels) {
		return &FieldError{
			Kind:    ErrTooLarge,
			Field:   "file",
			Message: fmt.Sprintf("Imagem muito grande: %dx%d pixels", cfg.Width, cfg.Height),
		}
	}
	return nil
}

// Compress scales the image to fit the configured box and re-encodes it,
// JPEG at the configured quality and PNG losslessly. WebP is returned as is
// because there is no encoder for it. compressed reports whether the returned
// bytes are the server rendition.
func (s *ImageService) Compress(data []byte, contentType string) (out []byte, compressed bool, err error) {
	if contentType == "image/webp" {
		return data, false, nil
	}

	if err := s.checkDimensions(data); err != nil {
		return nil, false, err
	}

	src, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", contentType, err)
	}

	bounds := src.Bounds()
	w, h := fitWithin(bounds.Dx(), bounds.Dy(), s.Opts.MaxWidth, s.Opts.MaxHeight)
	resized := w != bounds.Dx() || h != bounds.Dy()

	var img image.Image = src
	if resized {
		dst := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	switch format {
	case "jpeg":
		quality := s.Opts.Quality
		if quality <= 0 || quality > 100 {
			quality = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	case "png":
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		err = enc.Encode(&buf, img)
	default:
		return nil, false, fmt.Errorf("no encoder for format %s", format)
	}
	if err != nil {
		return nil, false, fmt.Errorf("encode %s: %w", format, err)
	}

	// Re-encoding an already small image can grow it; keep the original then.
	if !resized && buf.Len() >= len(data) {
		return data, false, nil
	}
	return buf.Bytes(), true, nil
}

// Upload validates, compresses and stores one image under
// {folder}/{unixMillis}-{random}.{ext}.
func (s *ImageService) Upload(ctx context.Context, data []byte, folder string) (*models.UploadedImage, error) {
	contentType, err := s.Validate(data)
	if err != nil {
		return nil, err
	}

	body, compressed, err := s.Compress(data, contentType)
	if err != nil {
		if s.Opts.FailOnCompressError {
			zap.S().Warnw("[Images] Compression failed, rejecting upload", "content_type", contentType, "error", err)
			return nil, &FieldError{
				Kind:    ErrImageProcessing,
				Field:   "file",
				Message: "Não foi possível processar a imagem",
			}
		}
		zap.S().Warnw("[Images] Compression failed, storing original", "content_type", contentType, "error", err)
		body, compressed = data, false
	}

	filename := fmt.Sprintf("%d-%s.%s", s.Now().UnixMilli(), s.NewID(), extensions[contentType])
	key := sanitizeFolder(folder, s.Opts.DefaultFolder) + "/" + filename

	if err := s.Store.Put(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	metrics.ImageUploads.WithLabelValues(contentType, strconv.FormatBool(compressed)).Inc()
	metrics.ImageUploadBytes.Add(float64(len(body)))

	return &models.UploadedImage{
		URL:         s.Store.URL(key),
		Path:        key,
		Filename:    filename,
		Size:        int64(len(body)),
		ContentType: contentType,
		Compressed:  compressed,
	}, nil
}

// Delete removes a stored object by its path.
func (s *ImageService) Delete(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return missingFields("path")
	}
	if strings.HasPrefix(path, "/") || strings.Contains(path, "..") {
		return invalidValue("path", path)
	}
	if err := s.Store.Delete(ctx, path); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// fitWithin scales w×h down to fit maxW×maxH keeping the aspect ratio.
// Images already inside the box are left alone.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if maxW <= 0 || maxH <= 0 || (w <= maxW && h <= maxH) {
		return w, h
	}
	ratio := math.Min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	nw := int(math.Round(float64(w) * ratio))
	nh := int(math.Round(float64(h) * ratio))
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return nw, nh
}

// sanitizeFolder keeps lower-case letters, digits, '-' and '_' in each path
// segment and drops empty or relative segments.
func sanitizeFolder(folder, fallback string) string {
	var segments []string
	for _, seg := range strings.Split(folder, "/") {
		var b strings.Builder
		for _, c := range strings.ToLower(strings.TrimSpace(seg)) {
			if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' || c == '_' {
				b.WriteRune(c)
			}
		}
		if b.Len() > 0 {
			segments = append(segments, b.String())
		}
	}
	if len(segments) == 0 {
		return fallback
	}
	return strings.Join(segments, "/")
}
