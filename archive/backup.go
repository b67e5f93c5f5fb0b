package archive

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupConfig contains the S3 target for archive backups.
// Credentials come from the standard AWS config/credential chain.
type BackupConfig struct {
	Bucket string
	// Region to use for requests. If empty, AWS defaults apply.
	Region string
	// Prefix is prepended to the object key, without leading/trailing slashes.
	Prefix string
}

// Backup uploads the saved archive file to S3 so a fresh host can
// recover the collection history.
type Backup struct {
	client *s3.Client
	bucket string
	key    string
}

// NewBackup creates an S3 backup target using the default AWS
// configuration chain with optional overrides.
func NewBackup(ctx context.Context, cfg BackupConfig) (*Backup, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	key := "items.json"
	if cfg.Prefix != "" {
		key = cfg.Prefix + "/" + key
	}

	return &Backup{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
		key:    key,
	}, nil
}

// Upload copies the archive file at path to the configured bucket/key.
func (b *Backup) Upload(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read archive for backup: %w", err)
	}

	_, err = b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload archive backup: %w", err)
	}
	return nil
}
