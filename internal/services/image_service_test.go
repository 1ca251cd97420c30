package services

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8((x + y) * 3), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

func newTestImageService(opts ImageOptions) (*ImageService, *memObjectStore) {
	store := newMemObjectStore()
	svc := NewImageService(store, opts)
	svc.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	svc.NewID = func() string { return "abc" }
	return svc, store
}

func defaultTestOptions() ImageOptions {
	return ImageOptions{MaxBytes: 1 << 20, MaxWidth: 64, MaxHeight: 64, Quality: 80, DefaultFolder: "pmoc"}
}

func TestValidate(t *testing.T) {
	svc, _ := newTestImageService(ImageOptions{MaxBytes: 1024})

	ct, err := svc.Validate(testPNG(t, 4, 4))
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)

	_, err = svc.Validate([]byte("%PDF-1.4 not an image"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = svc.Validate(nil)
	assert.ErrorIs(t, err, ErrMissingField)

	big := append(testPNG(t, 4, 4), make([]byte, 2048)...)
	_, err = svc.Validate(big)
	assert.ErrorIs(t, err, ErrTooLarge)
}

// pngWithHeaderSize rewrites the IHDR of a small PNG so it declares w x h.
func pngWithHeaderSize(t *testing.T, w, h uint32) []byte {
	t.Helper()
	data := testPNG(t, 2, 2)
	binary.BigEndian.PutUint32(data[16:20], w)
	binary.BigEndian.PutUint32(data[20:24], h)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))
	return data
}

func TestValidate_RejectsOversizedDimensions(t *testing.T) {
	opts := defaultTestOptions()
	opts.MaxPixels = 40_000_000
	svc, store := newTestImageService(opts)

	bomb := pngWithHeaderSize(t, 12000, 12000)
	cfg, err := png.DecodeConfig(bytes.NewReader(bomb))
	require.NoError(t, err)
	require.Equal(t, 12000, cfg.Width)

	_, err = svc.Validate(bomb)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, _, err = svc.Compress(bomb, "image/png")
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = svc.Upload(context.Background(), bomb, "")
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, store.objects)
}

func TestValidate_PixelBudget(t *testing.T) {
	opts := defaultTestOptions()
	opts.MaxPixels = 100 * 100
	svc, _ := newTestImageService(opts)

	_, err := svc.Validate(testPNG(t, 100, 100))
	assert.NoError(t, err)

	_, err = svc.Validate(testPNG(t, 200, 100))
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "file", fe.Field)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestUpload_ResizesLargePNG(t *testing.T) {
	svc, store := newTestImageService(defaultTestOptions())

	up, err := svc.Upload(context.Background(), testPNG(t, 200, 100), "")
	require.NoError(t, err)

	assert.Equal(t, "pmoc/1700000000000-abc.png", up.Path)
	assert.Equal(t, "1700000000000-abc.png", up.Filename)
	assert.Equal(t, "https://cdn.example.com/pmoc/1700000000000-abc.png", up.URL)
	assert.Equal(t, "image/png", up.ContentType)
	assert.True(t, up.Compressed)

	stored := store.objects[up.Path]
	assert.Equal(t, int64(len(stored)), up.Size)
	cfg, format, err := image.DecodeConfig(bytes.NewReader(stored))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 64, cfg.Width)
	assert.Equal(t, 32, cfg.Height)
}

func TestUpload_JPEGIntoFolder(t *testing.T) {
	svc, store := newTestImageService(defaultTestOptions())

	up, err := svc.Upload(context.Background(), testJPEG(t, 128, 128), "Relatórios/../Março")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Path, "relatrios/maro/"), up.Path)
	assert.True(t, strings.HasSuffix(up.Path, ".jpg"))
	assert.Equal(t, "image/jpeg", store.types[up.Path])
	assert.True(t, up.Compressed)
}

func TestUpload_WebPStoredAsIs(t *testing.T) {
	svc, store := newTestImageService(defaultTestOptions())
	webp := append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 32)...)

	up, err := svc.Upload(context.Background(), webp, "pmoc")
	require.NoError(t, err)

	assert.False(t, up.Compressed)
	assert.Equal(t, "image/webp", up.ContentType)
	assert.Equal(t, webp, store.objects[up.Path])
}

func TestUpload_UndecodableImage(t *testing.T) {
	corrupt := append([]byte("\x89PNG\r\n\x1a\n"), []byte("garbage")...)

	t.Run("stores original by default", func(t *testing.T) {
		svc, store := newTestImageService(defaultTestOptions())

		up, err := svc.Upload(context.Background(), corrupt, "")
		require.NoError(t, err)
		assert.False(t, up.Compressed)
		assert.Equal(t, corrupt, store.objects[up.Path])
	})

	t.Run("rejects when configured", func(t *testing.T) {
		opts := defaultTestOptions()
		opts.FailOnCompressError = true
		svc, store := newTestImageService(opts)

		_, err := svc.Upload(context.Background(), corrupt, "")
		assert.ErrorIs(t, err, ErrImageProcessing)
		assert.Empty(t, store.objects)
	})
}

func TestUpload_StoreFailure(t *testing.T) {
	svc, store := newTestImageService(defaultTestOptions())
	store.putErr = errors.New("bucket unavailable")

	_, err := svc.Upload(context.Background(), testPNG(t, 8, 8), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket unavailable")
}

func TestDelete(t *testing.T) {
	svc, store := newTestImageService(defaultTestOptions())

	require.NoError(t, svc.Delete(context.Background(), "pmoc/1-a.jpg"))
	assert.Equal(t, []string{"pmoc/1-a.jpg"}, store.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), " "), ErrMissingField)
	assert.ErrorIs(t, svc.Delete(context.Background(), "../secrets"), ErrInvalidValue)
	assert.ErrorIs(t, svc.Delete(context.Background(), "/etc/passwd"), ErrInvalidValue)
}

func TestFitWithin(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 50, 200, 200, 100, 50},
		{4000, 3000, 1920, 1080, 1440, 1080},
		{3000, 1000, 1920, 1080, 1920, 640},
		{10, 10, 0, 0, 10, 10},
		{5000, 1, 100, 100, 100, 1},
	}
	for _, tt := range tests {
		w, h := fitWithin(tt.w, tt.h, tt.maxW, tt.maxH)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestSanitizeFolder(t *testing.T) {
	assert.Equal(t, "pmoc", sanitizeFolder("", "pmoc"))
	assert.Equal(t, "pmoc", sanitizeFolder("../..", "pmoc"))
	assert.Equal(t, "receipts/2024", sanitizeFolder("/Receipts//2024/", "pmoc"))
}
