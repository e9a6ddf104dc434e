// Package deploy uploads a built Glint project to S3-compatible object
// storage.
package deploy

import (
	"bytes"
	"context"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/glint-dev/glint/internal/errors"
)

// S3API is the slice of the S3 client the deployer needs. *s3.Client
// satisfies it; tests substitute a fake.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Options configures a Deployer.
type Options struct {
	// Bucket is the target bucket. Required.
	Bucket string

	// Prefix is prepended to every object key.
	Prefix string

	// DryRun logs what would be uploaded without calling S3.
	DryRun bool

	// Logger receives per-file progress. Defaults to slog.Default.
	Logger *slog.Logger
}

// Result summarizes a deployment.
type Result struct {
	// Uploaded is the number of objects written (or, in a dry run, the
	// number that would have been).
	Uploaded int

	// Bytes is the total payload size.
	Bytes int64

	// Duration is how long the deployment took.
	Duration time.Duration
}

// Deployer uploads directories to a bucket.
type Deployer struct {
	client S3API
	opts   Options
	logger *slog.Logger
}

// New creates a Deployer. The bucket is validated at Deploy time so a
// Deployer can be built before flags are resolved.
func New(client S3API, opts Options) *Deployer {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Deployer{
		client: client,
		opts:   opts,
		logger: logger.With("component", "deploy"),
	}
}

// Deploy uploads every file under dir, keyed by its slash-separated
// path relative to dir with the configured prefix prepended.
func (d *Deployer) Deploy(ctx context.Context, dir string) (*Result, error) {
	if d.opts.Bucket == "" {
		return nil, errors.New("E612")
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil, errors.New("E611").
			WithDetail("Output directory " + dir + " does not exist").
			WithSuggestion("Run 'glint build' first")
	}

	start := time.Now()
	result := &Result{}

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		key := d.opts.Prefix + filepath.ToSlash(rel)

		if d.opts.DryRun {
			d.logger.Info("would upload", "key", key, "bytes", info.Size())
			result.Uploaded++
			result.Bytes += info.Size()
			return nil
		}

		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		_, err = d.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(d.opts.Bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType(rel)),
		})
		if err != nil {
			return err
		}

		d.logger.Info("uploaded", "key", key, "bytes", len(data))
		result.Uploaded++
		result.Bytes += int64(len(data))
		return nil
	})
	if err != nil {
		return nil, errors.FromError(err, "E611")
	}

	result.Duration = time.Since(start)
	return result, nil
}

// contentType guesses a MIME type from the file extension.
func contentType(rel string) string {
	ext := strings.ToLower(filepath.Ext(rel))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}
