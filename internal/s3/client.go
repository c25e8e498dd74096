package s3

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ErrProfileNotFound marks a missing AWS shared-config profile. Callers
// surface it as a configuration error, not a generic failure.
var ErrProfileNotFound = errors.New("aws profile not found")

type Options struct {
	// Profile selects the AWS shared-config profile. Used only when
	// Endpoint is empty.
	Profile string
	Bucket  string
	Region  string

	// Endpoint switches to static-credential mode for S3-compatible
	// stores such as MinIO.
	Endpoint           string
	AccessKey          string
	SecretKey          string
	InsecureSkipVerify bool
}

// ObjectInfo is one stored object as the bucket listing reports it.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
	Size         int64
}

type Client struct {
	client *s3.Client
	bucket string
}

func New(ctx context.Context, opts Options) (*Client, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("bucket is required")
	}
	if opts.Endpoint != "" {
		return newEndpointClient(opts)
	}
	return newProfileClient(ctx, opts)
}

func newProfileClient(ctx context.Context, opts Options) (*Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithSharedConfigProfile(opts.Profile),
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		var notExist awsconfig.SharedConfigProfileNotExistError
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: %q", ErrProfileNotFound, opts.Profile)
		}
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Client{
		client: s3.NewFromConfig(cfg),
		bucket: opts.Bucket,
	}, nil
}

func newEndpointClient(opts Options) (*Client, error) {
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	endpointURL, err := url.Parse(strings.TrimSpace(opts.Endpoint))
	if err != nil {
		return nil, fmt.Errorf("s3 endpoint: %w", err)
	}
	if endpointURL.Scheme == "" {
		endpointURL.Scheme = "https"
		endpointURL, _ = url.Parse(endpointURL.String())
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL:               endpointURL.String(),
			SigningRegion:     region,
			HostnameImmutable: true,
		}, nil
	})

	cfg := aws.Config{
		Region:                      region,
		EndpointResolverWithOptions: resolver,
		Credentials:                 credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
	}

	httpClient := http.DefaultClient
	if opts.InsecureSkipVerify {
		httpClient = &http.Client{
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		}
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
		o.HTTPClient = httpClient
	})

	return &Client{client: client, bucket: opts.Bucket}, nil
}

func (c *Client) Bucket() string {
	return c.bucket
}

// Location renders the fully-qualified remote address of a key.
func (c *Client) Location(key string) string {
	return fmt.Sprintf("s3://%s/%s", c.bucket, key)
}

// ListObjects walks every page of the bucket listing. Completion means all
// pages were consumed, never just the first.
func (c *Client) ListObjects(ctx context.Context) ([]ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(c.bucket),
	}
	var objects []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(c.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, obj := range page.Contents {
			if obj.Key == nil || obj.LastModified == nil {
				continue
			}
			info := ObjectInfo{
				Key:          *obj.Key,
				LastModified: obj.LastModified.UTC(),
			}
			if obj.Size != nil {
				info.Size = *obj.Size
			}
			objects = append(objects, info)
		}
	}
	return objects, nil
}

func (c *Client) DeleteObject(ctx context.Context, key string) error {
	_, err := c.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	return err
}

// UploadFile puts a local file under key, overwriting any existing object
// with that key. onProgress, when non-nil, receives incremental byte counts
// that sum to the file's size.
func (c *Client) UploadFile(ctx context.Context, key, localPath string, metadata map[string]string, onProgress func(int64)) error {
	f, err := os.Open(localPath)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}

	var body io.Reader = f
	if onProgress != nil {
		body = &progressReader{r: f, report: onProgress}
	}

	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(info.Size()),
		Metadata:      metadata,
	})
	return err
}

// CreateBucket is used by integration tests against fresh MinIO instances.
// An already-owned bucket is not an error.
func (c *Client) CreateBucket(ctx context.Context) error {
	_, err := c.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil && strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
		return nil
	}
	return err
}

type progressReader struct {
	r      io.Reader
	report func(int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.report(int64(n))
	}
	return n, err
}
