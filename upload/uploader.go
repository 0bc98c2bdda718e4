// Package upload publishes local deck assets to an S3 compatible object
// store. The remote document service fetches media by address and cannot see
// the local filesystem, so every local reference is prepared for remote use -
// vector art rasterized, oversized rasters downscaled, wasteful JPEG
// recompressed - uploaded, and the reference rewritten in place to the
// resulting address.
package upload

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gosimple/slug"
	"github.com/h2non/filetype"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"slidec/config"
	"slidec/deck"
	"slidec/jpegquality"
	"slidec/utils/images"
)

// objectStore is the part of the store client the uploader needs. Tests
// substitute a recording fake.
type objectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	EndpointURL() *url.URL
}

// sleeper paces uploads. Tests substitute a recording fake for the real
// clock.
type sleeper interface {
	sleep(ctx context.Context, d time.Duration) error
}

type clockSleeper struct{}

func (clockSleeper) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Uploader struct {
	cfg   *config.UploadConfig
	thr   *config.ThrottleConfig
	store objectStore
	cache *cache
	rpt   *config.Report
	log   *zap.Logger
	sleep sleeper

	seen map[string]*cacheEntry
	sent int
}

// New creates an uploader for the configured object store. A cache open
// failure is not fatal, the cache only saves repeated transfers.
func New(cfg *config.UploadConfig, thr *config.ThrottleConfig, rpt *config.Report, log *zap.Logger) (*Uploader, error) {

	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, string(cfg.SecretKey), ""),
		Secure: cfg.UseTLS,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create object store client: %w", err)
	}

	u := &Uploader{
		cfg:   cfg,
		thr:   thr,
		store: mc,
		rpt:   rpt,
		log:   log.Named("upload"),
		sleep: clockSleeper{},
	}

	if len(cfg.CachePath) > 0 {
		if u.cache, err = openCache(cfg.CachePath); err != nil {
			u.log.Warn("Unable to open upload cache, continuing without",
				zap.String("path", cfg.CachePath), zap.Error(err))
		}
	}
	return u, nil
}

// Close releases the upload cache. The store client itself holds no
// resources worth closing.
func (u *Uploader) Close() error {
	return u.cache.close()
}

// Process uploads every local image reference of the deck and rewrites it to
// the remote address. Image definitions without natural dimensions get them
// filled in from the prepared pixels, the placement pass depends on that.
func (u *Uploader) Process(ctx context.Context, d *deck.Deck) error {

	if err := ctx.Err(); err != nil {
		return err
	}

	type item struct {
		slide int
		img   *deck.ImageDefinition
		path  string
	}
	var work []item
	for _, s := range d.Slides {
		for _, img := range s.Images() {
			if p, ok := localRef(img.URL); ok {
				work = append(work, item{slide: s.Index, img: img, path: p})
			}
		}
	}
	if len(work) == 0 {
		u.log.Debug("No local images to upload")
		return nil
	}

	if ok, err := u.store.BucketExists(ctx, u.cfg.Bucket); err != nil {
		return fmt.Errorf("unable to check bucket %q: %w", u.cfg.Bucket, err)
	} else if !ok {
		return fmt.Errorf("bucket %q does not exist", u.cfg.Bucket)
	}

	start := time.Now()
	u.seen = make(map[string]*cacheEntry)
	manifest := make(map[string]string, len(work))

	for _, it := range work {
		if err := u.place(ctx, it.path, it.img, manifest); err != nil {
			return fmt.Errorf("slide %d: %w", it.slide, err)
		}
	}

	if data, err := json.MarshalIndent(manifest, "", "  "); err == nil {
		u.rpt.StoreData("upload/manifest.json", data)
	}
	u.log.Info("Upload completed",
		zap.Int("images", len(work)),
		zap.Int("transferred", u.sent),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// place moves one local image to the store, reusing an earlier transfer of
// identical content when possible, and rewrites the reference.
func (u *Uploader) place(ctx context.Context, path string, img *deck.ImageDefinition, manifest map[string]string) error {

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read image %q: %w", path, err)
	}

	a, err := u.prepare(path, data)
	if err != nil {
		return fmt.Errorf("unable to prepare image %q: %w", path, err)
	}

	sum := sha256.Sum256(a.data)
	hash := hex.EncodeToString(sum[:])

	ent := u.seen[hash]
	if ent == nil {
		if ent, err = u.cache.lookup(hash); err != nil {
			u.log.Warn("Upload cache lookup failed", zap.Error(err))
			ent = nil
		} else if ent != nil {
			u.log.Debug("Upload cache hit", zap.String("image", path), zap.String("address", ent.URL))
		}
	}

	if ent == nil {
		key := remoteKey(path, hash, a.ext)
		if err := u.pace(ctx); err != nil {
			return err
		}
		if _, err := u.store.PutObject(ctx, u.cfg.Bucket, key, bytes.NewReader(a.data), int64(len(a.data)),
			minio.PutObjectOptions{ContentType: a.mime}); err != nil {
			return fmt.Errorf("unable to upload image %q: %w", path, err)
		}
		u.sent++
		ent = &cacheEntry{URL: u.remoteURL(key), Width: a.width, Height: a.height}
		u.log.Info("Uploaded image",
			zap.String("image", path),
			zap.String("address", ent.URL),
			zap.Int("bytes", len(a.data)))
		if err := u.cache.store(hash, ent); err != nil {
			u.log.Warn("Upload cache store failed", zap.Error(err))
		}
	}
	u.seen[hash] = ent

	img.URL = ent.URL
	if img.Width == 0 || img.Height == 0 {
		img.Width, img.Height = ent.Width, ent.Height
	}
	manifest[path] = ent.URL
	return nil
}

// pace sleeps between consecutive transfers, taking the longer break every
// few uploads. The first transfer of a run is never delayed.
func (u *Uploader) pace(ctx context.Context) error {

	if u.sent == 0 {
		return nil
	}
	d := u.thr.UploadDelay.Value()
	if every := u.thr.UploadPauseEvery; every > 0 && u.sent%every == 0 {
		d = u.thr.UploadPause.Value()
		u.log.Debug("Long pause between uploads", zap.Int("uploaded", u.sent), zap.Duration("pause", d))
	}
	if err := u.sleep.sleep(ctx, d); err != nil {
		return fmt.Errorf("pacing interrupted: %w", err)
	}
	return nil
}

// asset is an image prepared for remote use.
type asset struct {
	data   []byte
	mime   string
	ext    string
	width  int
	height int
}

// prepare turns raw file content into something the document service will
// accept: PNG, JPEG or GIF, within the configured raster bounds.
func (u *Uploader) prepare(path string, data []byte) (*asset, error) {

	if isSVG(path, data) {
		img, err := images.RasterizeSVG(data, u.cfg.MaxRaster)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize: %w", err)
		}
		u.log.Debug("Rasterized vector image",
			zap.String("image", path),
			zap.Int("width", img.Bounds().Dx()),
			zap.Int("height", img.Bounds().Dy()))
		return encodeAsset(img, "png", 0)
	}

	t, err := filetype.Match(data)
	if err != nil || t == filetype.Unknown {
		return nil, errors.New("unrecognized image format")
	}

	switch t.Extension {
	case "gif":
		// may be animated, pass through untouched
		cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("unable to decode: %w", err)
		}
		return &asset{data: data, mime: "image/gif", ext: ".gif", width: cfg.Width, height: cfg.Height}, nil
	case "jpg", "png", "webp", "bmp", "tif":
	default:
		return nil, fmt.Errorf("unsupported image format %q", t.Extension)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode: %w", err)
	}

	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	changed := false

	if m := u.cfg.MaxRaster; m > 0 && (w > m || h > m) {
		img = imaging.Fit(img, m, m, imaging.Lanczos)
		u.log.Debug("Downscaled oversized image",
			zap.String("image", path),
			zap.String("original", fmt.Sprintf("%dx%d", w, h)),
			zap.String("scaled", fmt.Sprintf("%dx%d", img.Bounds().Dx(), img.Bounds().Dy())))
		w, h = img.Bounds().Dx(), img.Bounds().Dy()
		changed = true
	}

	switch format {
	case "jpeg":
		if !changed {
			jr, err := jpegquality.NewWithBytes(data)
			switch {
			case err != nil:
				u.log.Warn("Unable to detect JPEG quality level, keeping as is",
					zap.String("image", path), zap.Error(err))
			case jr.Quality() > u.cfg.JPEGQuality:
				u.log.Debug("JPEG quality level higher than requested, reencoding",
					zap.String("image", path),
					zap.Int("detected", jr.Quality()),
					zap.Int("requested", u.cfg.JPEGQuality))
				changed = true
			}
		}
		if !changed {
			return &asset{data: data, mime: "image/jpeg", ext: ".jpg", width: w, height: h}, nil
		}
		return encodeAsset(img, "jpeg", u.cfg.JPEGQuality)
	case "png":
		if !changed {
			return &asset{data: data, mime: "image/png", ext: ".png", width: w, height: h}, nil
		}
		return encodeAsset(img, "png", 0)
	default:
		// service accepts PNG, JPEG and GIF only
		u.log.Debug("Converting image for remote use", zap.String("image", path), zap.String("from", format))
		return encodeAsset(img, "png", 0)
	}
}

func encodeAsset(img image.Image, format string, quality int) (*asset, error) {

	buf := &bytes.Buffer{}
	ext := ".png"
	var err error
	if format == "jpeg" {
		ext = ".jpg"
		err = imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(quality))
	} else {
		err = imaging.Encode(buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression))
	}
	if err != nil {
		return nil, fmt.Errorf("unable to encode: %w", err)
	}
	return &asset{
		data:   buf.Bytes(),
		mime:   "image/" + format,
		ext:    ext,
		width:  img.Bounds().Dx(),
		height: img.Bounds().Dy(),
	}, nil
}

// localRef reports whether the reference points into the local filesystem
// and returns it as a path.
func localRef(ref string) (string, bool) {
	if len(ref) == 0 || strings.HasPrefix(ref, "data:") {
		return "", false
	}
	if rest, ok := strings.CutPrefix(ref, "file://"); ok {
		return filepath.FromSlash(rest), true
	}
	if strings.Contains(ref, "://") {
		return "", false
	}
	return ref, true
}

func isSVG(name string, data []byte) bool {
	if strings.EqualFold(filepath.Ext(name), ".svg") {
		return true
	}
	head := bytes.TrimSpace(data)
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = bytes.ToLower(head)
	return bytes.HasPrefix(head, []byte("<svg")) ||
		(bytes.HasPrefix(head, []byte("<?xml")) && bytes.Contains(head, []byte("<svg")))
}

// remoteKey builds a store object name that is readable and collision free:
// slugged source name plus a content hash prefix.
func remoteKey(name, hash, ext string) string {
	base := slug.Make(strings.TrimSuffix(filepath.Base(name), filepath.Ext(name)))
	if len(base) == 0 {
		base = "image"
	}
	return base + "-" + hash[:16] + ext
}

func (u *Uploader) remoteURL(key string) string {
	if len(u.cfg.PublicURL) > 0 {
		return strings.TrimRight(u.cfg.PublicURL, "/") + "/" + key
	}
	ep := *u.store.EndpointURL()
	ep.Path = path.Join(ep.Path, u.cfg.Bucket, key)
	return ep.String()
}
