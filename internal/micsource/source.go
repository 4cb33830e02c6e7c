// Package micsource reads mic-array configuration bytes from a local file or
// an S3-compatible object store.
package micsource

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/soundfield/micview/internal/util"
)

const s3ReadTimeout = 30000 * time.Millisecond

// S3Options configures access to an S3-compatible store for s3:// refs.
// Endpoint is optional; when set, path-style addressing is used so
// S3-compatible stores (MinIO, R2) work.
type S3Options struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// IsConfigured reports whether credentials are present.
func (o *S3Options) IsConfigured() bool {
	return o.AccessKeyID != "" && o.SecretAccessKey != ""
}

// Read returns the config bytes behind ref. A ref of the form
// s3://bucket/key is fetched from object storage; anything else is treated
// as a local file path.
func Read(ctx context.Context, ref string, opts S3Options) ([]byte, error) {
	if strings.HasPrefix(ref, "s3://") {
		return readS3(ctx, ref, opts)
	}
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, util.WrapError("read mic config", err)
	}
	return data, nil
}

// ParseRef splits an s3://bucket/key reference.
func ParseRef(ref string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(ref, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 ref: %s", ref)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 ref must be s3://bucket/key, got %s", ref)
	}
	return bucket, key, nil
}

// newClient creates an S3 client with static credentials.
func newClient(opts S3Options) *s3.Client {
	creds := credentials.NewStaticCredentialsProvider(
		opts.AccessKeyID,
		opts.SecretAccessKey,
		"",
	)

	region := opts.Region
	if region == "" {
		region = "auto"
	}

	clientOpts := []func(*s3.Options){
		func(o *s3.Options) {
			o.Credentials = creds
			o.Region = region
		},
	}

	if opts.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		})
	}

	return s3.New(s3.Options{}, clientOpts...)
}

// readS3 fetches an object and returns its full contents.
func readS3(ctx context.Context, ref string, opts S3Options) ([]byte, error) {
	bucket, key, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	if !opts.IsConfigured() {
		return nil, fmt.Errorf("s3 credentials are not configured for %s", ref)
	}

	client := newClient(opts)

	ctx, cancel := context.WithTimeout(ctx, s3ReadTimeout)
	defer cancel()

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, util.WrapError("fetch mic config from s3", err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, util.WrapError("read mic config object body", err)
	}
	return data, nil
}
