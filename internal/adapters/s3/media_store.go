package s3

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/powderline/avalanche-report-service/internal/domain"
	"github.com/powderline/avalanche-report-service/internal/ports"
)

// Config describes the photo bucket and how its objects are addressed publicly.
type Config struct {
	Bucket string
	Region string
	// Endpoint overrides the S3 endpoint for local stacks (minio, localstack).
	Endpoint string
	// PublicBaseURL is the prefix public photo URLs are built from. When empty
	// the virtual-hosted-style AWS URL is used.
	PublicBaseURL string
	// KeyPrefix namespaces all photo objects inside the bucket.
	KeyPrefix string
}

// MediaStore uploads report photos to S3-compatible object storage.
type MediaStore struct {
	client *s3.Client
	cfg    Config
	nowFn  func() time.Time
}

// NewMediaStore builds the store from the ambient AWS config.
func NewMediaStore(ctx context.Context, cfg Config) (*MediaStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: load aws config: %v", domain.ErrDependency, err)
	}
	if cfg.Region == "" {
		cfg.Region = awsCfg.Region
	}

	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: awsCfg.Credentials,
		HTTPClient:  awsCfg.HTTPClient,
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	return &MediaStore{
		client: s3.New(opts),
		cfg:    cfg,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// Store writes a single attachment under a key namespaced by the uploading
// identity plus a millisecond disambiguator. The conditional put refuses to
// overwrite an existing object at the same key.
func (m *MediaStore) Store(ctx context.Context, identityID uuid.UUID, attachment ports.Attachment) (string, error) {
	key := m.objectKey(identityID, attachment.Filename)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(m.cfg.Bucket),
		Key:         aws.String(key),
		Body:        attachment.Body,
		IfNoneMatch: aws.String("*"),
	}
	if attachment.ContentType != "" {
		input.ContentType = aws.String(attachment.ContentType)
	}

	if _, err := m.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%w: put object %s: %v", domain.ErrUploadFailed, key, err)
	}
	return m.publicURL(key), nil
}

func (m *MediaStore) objectKey(identityID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	name := fmt.Sprintf("%s/%d%s", identityID.String(), m.nowFn().UnixMilli(), ext)
	if m.cfg.KeyPrefix != "" {
		return path.Join(m.cfg.KeyPrefix, name)
	}
	return name
}

func (m *MediaStore) publicURL(key string) string {
	if m.cfg.PublicBaseURL != "" {
		return strings.TrimRight(m.cfg.PublicBaseURL, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", m.cfg.Bucket, m.cfg.Region, key)
}
