// internal/utils/portfolio_upload.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

type PortfolioR2Config struct {
	AccountID       string
	AccessKeyID     string
	AccessKeySecret string
	BucketName      string
	PublicURL       string
}

// PortfolioR2Client wraps an S3-compatible client pointed at Cloudflare R2.
// It stores profile pictures and certificate files and hands back public URLs.
type PortfolioR2Client struct {
	client *s3.Client
	config PortfolioR2Config
}

func NewPortfolioR2Client(cfg PortfolioR2Config) (*PortfolioR2Client, error) {
	if cfg.AccountID == "" || cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" || cfg.BucketName == "" {
		return nil, fmt.Errorf("missing required R2 configuration parameters")
	}

	r2Resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID),
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithEndpointResolverWithOptions(r2Resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.AccessKeySecret,
			"",
		)),
		config.WithRetryer(func() aws.Retryer {
			return aws.NopRetryer{}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	// Verify bucket exists and we have permissions
	_, err = client.HeadBucket(context.TODO(), &s3.HeadBucketInput{
		Bucket: aws.String(cfg.BucketName),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") {
			return nil, fmt.Errorf("bucket %s not found or you don't have permission to access it", cfg.BucketName)
		}
		return nil, fmt.Errorf("failed to access bucket: %w", err)
	}

	return &PortfolioR2Client{
		client: client,
		config: cfg,
	}, nil
}

// Upload puts raw content at key with the given content type.
func (r *PortfolioR2Client) Upload(ctx context.Context, key string, content []byte, contentType string) error {
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}
	return nil
}

// UploadProfilePicture stores a profile image under "portfolio/profiles/" and
// returns its public URL.
func (r *PortfolioR2Client) UploadProfilePicture(ctx context.Context, content []byte, originalFileName string) (string, error) {
	return r.uploadWithPrefix(ctx, "portfolio/profiles", content, originalFileName)
}

// UploadCertificateFile stores a credential file under
// "portfolio/certificates/" and returns its public URL.
func (r *PortfolioR2Client) UploadCertificateFile(ctx context.Context, content []byte, originalFileName string) (string, error) {
	return r.uploadWithPrefix(ctx, "portfolio/certificates", content, originalFileName)
}

func (r *PortfolioR2Client) uploadWithPrefix(ctx context.Context, prefix string, content []byte, originalFileName string) (string, error) {
	if len(content) == 0 {
		return "", fmt.Errorf("file content cannot be empty")
	}
	if originalFileName == "" {
		return "", fmt.Errorf("filename cannot be empty")
	}

	ext := filepath.Ext(originalFileName)
	key := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)

	if err := r.Upload(ctx, key, content, ContentTypeForFile(originalFileName)); err != nil {
		return "", err
	}
	return fmt.Sprintf("%s/%s", r.config.PublicURL, key), nil
}

// DeleteFile removes an object from R2 given its key or public URL.
func (r *PortfolioR2Client) DeleteFile(ctx context.Context, fileName string) error {
	if fileName == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	if strings.HasPrefix(fileName, r.config.PublicURL) {
		fileName = strings.TrimPrefix(strings.TrimPrefix(fileName, r.config.PublicURL), "/")
	}

	_, err := r.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.config.BucketName),
		Key:    aws.String(fileName),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from R2: %w", err)
	}
	return nil
}

// ContentTypeForFile guesses a content type from the file extension.
func ContentTypeForFile(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
