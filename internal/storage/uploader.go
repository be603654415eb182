// Package storage persists uploaded and generated images to S3-compatible
// blob storage and issues long-lived signed read URLs for them.
package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jordan/postboard/internal/config"
)

// Scope separates profile images from post images in the key namespace.
type Scope string

const (
	ScopeProfile Scope = "profile"
	ScopePosts   Scope = "posts"
)

const generatedSuffix = "generated.png"

// SigV4 rejects presigned URLs that claim to be valid for more than 7 days,
// so configured expiries above the cap are clamped instead of passed through.
const maxPresignExpiry = 7 * 24 * time.Hour

// FileSource is the normalized form of an upload: either a direct multipart
// file or a decoded generated-image payload.
type FileSource struct {
	Bytes        []byte
	ContentType  string
	OriginalName string
}

// Object describes a durably stored image. SignedURL is only populated once
// the write has completed; callers must not persist a reference before then.
type Object struct {
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	SignedURL   string    `json:"signedUrl"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

type Uploader struct {
	uploader *manager.Uploader
	presign  *s3.PresignClient
	bucket   string
	urlTTL   time.Duration
}

func NewUploader(ctx context.Context, cfg *config.Config) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
		}
		o.UsePathStyle = cfg.S3UsePathStyle
	})

	urlTTL := cfg.S3URLExpiry
	if urlTTL > maxPresignExpiry {
		urlTTL = maxPresignExpiry
	}

	return &Uploader{
		uploader: manager.NewUploader(client),
		presign:  s3.NewPresignClient(client),
		bucket:   cfg.S3Bucket,
		urlTTL:   urlTTL,
	}, nil
}

// DecodeGeneratedImage turns a base64 payload (optionally a data URI) into a
// FileSource. PNG is assumed unless the data-URI prefix says otherwise.
func DecodeGeneratedImage(payload string) (*FileSource, error) {
	contentType := "image/png"

	if strings.HasPrefix(payload, "data:") {
		prefix, rest, ok := strings.Cut(payload, ",")
		if !ok {
			return nil, fmt.Errorf("malformed data URI")
		}
		mediaType := strings.TrimPrefix(prefix, "data:")
		mediaType = strings.TrimSuffix(mediaType, ";base64")
		if mediaType != "" {
			contentType = mediaType
		}
		payload = rest
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode image payload: %w", err)
	}

	return &FileSource{
		Bytes:        raw,
		ContentType:  contentType,
		OriginalName: generatedSuffix,
	}, nil
}

// Upload streams the source to blob storage and returns the stored object
// with its signed read URL. The key embeds the owner namespace, scope and
// upload instant, so retries land on fresh keys instead of overwriting.
func (u *Uploader) Upload(ctx context.Context, owner string, scope Scope, src *FileSource) (*Object, error) {
	now := time.Now()
	key := fmt.Sprintf("images/%s/%s/%d_%s", sanitizeSegment(owner), scope, now.UnixMilli(), sanitizeSegment(src.OriginalName))

	contentType := src.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(src.Bytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("stream write: %w", err)
	}

	req, err := u.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(u.urlTTL))
	if err != nil {
		return nil, fmt.Errorf("presign read url: %w", err)
	}

	return &Object{
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(src.Bytes)),
		SignedURL:   req.URL,
		UploadedAt:  now,
	}, nil
}

// sanitizeSegment keeps key segments out of trouble with path separators
// and whitespace in user-supplied names.
func sanitizeSegment(s string) string {
	s = strings.TrimSpace(s)
	replacer := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	s = replacer.Replace(s)
	if s == "" {
		return "unnamed"
	}
	return s
}
