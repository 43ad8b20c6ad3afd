// internals/helpers/storage/oss_client.go
package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"

	"enrollku_backend/internals/configs"
)

const maxUploadSize = int64(10 * 1024 * 1024)

// document images get normalized before OCR; anything wider than this is
// downscaled keep-aspect
const (
	maxImageW   = 1600
	maxImageH   = 1600
	webpQuality = 82
)

// OSSService is the document store. Images are recompressed to WebP so the
// OCR provider always sees a bounded, predictable input; PDFs and other
// binary formats pass through untouched.
type OSSService struct {
	bucket   *oss.Bucket
	endpoint string
	prefix   string
}

func NewOSSService(cfg configs.Config) (*OSSService, error) {
	if cfg.OSSEndpoint == "" || cfg.OSSBucket == "" {
		return nil, errors.New("OSS endpoint/bucket not configured")
	}
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSKeyID, cfg.OSSKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss client: %w", err)
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket: %w", err)
	}
	return &OSSService{
		bucket:   bucket,
		endpoint: cfg.OSSEndpoint,
		prefix:   strings.Trim(cfg.OSSPrefix, "/"),
	}, nil
}

// StoredObject describes what landed in the bucket.
type StoredObject struct {
	Key         string
	Checksum    string // sha256 of the stored bytes
	SizeBytes   int64
	ContentType string
}

// UploadDocument stores one uploaded file under
// <prefix>/<application-id>/<doc-type>/<random>.<ext>.
func (s *OSSService) UploadDocument(ctx context.Context, fh *multipart.FileHeader, applicationID uuid.UUID, typeCode string) (*StoredObject, error) {
	if fh.Size > maxUploadSize {
		return nil, fmt.Errorf("file exceeds %d MB limit", maxUploadSize/(1024*1024))
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	all, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if len(all) == 0 {
		return nil, errors.New("empty file")
	}

	contentType := sniffContentType(all)
	ext := strings.ToLower(filepath.Ext(fh.Filename))

	if strings.HasPrefix(contentType, "image/") {
		converted, err := normalizeImage(all, contentType)
		if err == nil {
			all = converted
			contentType = "image/webp"
			ext = ".webp"
		}
		// a decode failure is not fatal: store the original bytes as-is
	}

	key := s.buildKey(applicationID, typeCode, ext)
	opts := []oss.Option{
		oss.ContentType(contentType),
		oss.ContentDisposition("inline"),
		oss.CacheControl("private, max-age=0"),
	}
	if err := s.bucket.PutObject(key, bytes.NewReader(all), opts...); err != nil {
		return nil, fmt.Errorf("oss put: %w", err)
	}
	_ = ctx // aliyun sdk v1 has no ctx-aware PutObject

	sum := sha256.Sum256(all)
	return &StoredObject{
		Key:         key,
		Checksum:    hex.EncodeToString(sum[:]),
		SizeBytes:   int64(len(all)),
		ContentType: contentType,
	}, nil
}

func (s *OSSService) DeleteObject(key string) error {
	return s.bucket.DeleteObject(key)
}

// PublicURL builds the browse URL for a stored key.
func (s *OSSService) PublicURL(key string) string {
	ep := strings.TrimPrefix(strings.TrimPrefix(s.endpoint, "https://"), "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucket.BucketName, ep, key)
}

func (s *OSSService) buildKey(applicationID uuid.UUID, typeCode, ext string) string {
	name := uuid.NewString() + ext
	parts := []string{}
	if s.prefix != "" {
		parts = append(parts, s.prefix)
	}
	parts = append(parts, applicationID.String(), strings.ToLower(typeCode), name)
	return strings.Join(parts, "/")
}

func sniffContentType(all []byte) string {
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	return http.DetectContentType(head)
}

// normalizeImage decodes jpeg/png/webp, downscales to the OCR bound and
// re-encodes as WebP.
func normalizeImage(all []byte, contentType string) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	if strings.Contains(contentType, "webp") {
		img, err = webp.Decode(bytes.NewReader(all))
	} else {
		img, err = imaging.Decode(bytes.NewReader(all))
	}
	if err != nil {
		return nil, err
	}

	img = downscaleIfNeeded(img, maxImageW, maxImageH)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func downscaleIfNeeded(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxW && h <= maxH {
		return src
	}
	ratioW := float64(maxW) / float64(w)
	ratioH := float64(maxH) / float64(h)
	ratio := ratioW
	if ratioH < ratioW {
		ratio = ratioH
	}
	nw := int(float64(w) * ratio)
	nh := int(float64(h) * ratio)
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
