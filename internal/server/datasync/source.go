package datasync

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/Tao1925/poc-web/internal/common"
	sc "github.com/Tao1925/poc-web/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

//go:embed bundled/*.json
var bundled embed.FS

const (
	fileScheme      = "file:"
	s3Scheme        = "s3://"
	classpathScheme = "classpath:"
)

// ObjectGetter is the part of the S3 client the loader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectGetter {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// Loader fetches the desired-state document from its configured location.
type Loader struct {
	config *sc.Config
}

func NewLoader(config *sc.Config) *Loader {
	return &Loader{config: config}
}

// Load reads the document at location. Supported forms:
//
//	bundled:<name>      document compiled into the binary
//	file:<path>, <path> local file
//	s3://<bucket>/<key> object in the configured S3-compatible store
//
// A location that does not resolve returns common.ErrResourceNotFound; a
// resource that exists but cannot be read returns common.ErrParse.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	switch {
	case location == "":
		return nil, fmt.Errorf("%w: empty location", common.ErrResourceNotFound)
	case strings.HasPrefix(location, common.BundledScheme):
		return loadBundled(strings.TrimPrefix(location, common.BundledScheme))
	case strings.HasPrefix(location, classpathScheme):
		return loadBundled(strings.TrimPrefix(location, classpathScheme))
	case strings.HasPrefix(location, s3Scheme):
		return l.loadS3(ctx, strings.TrimPrefix(location, s3Scheme))
	case strings.HasPrefix(location, fileScheme):
		return loadFile(strings.TrimPrefix(location, fileScheme))
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("%w: unsupported location %q", common.ErrResourceNotFound, location)
	default:
		return loadFile(location)
	}
}

func loadBundled(name string) ([]byte, error) {
	name = strings.TrimPrefix(name, "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("%w: bundled:%s", common.ErrResourceNotFound, name)
	}
	data, err := bundled.ReadFile("bundled/" + name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: bundled:%s", common.ErrResourceNotFound, name)
		}
		return nil, fmt.Errorf("%w: read bundled:%s: %w", common.ErrParse, name, err)
	}
	return data, nil
}

func loadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrResourceNotFound, path)
		}
		return nil, fmt.Errorf("%w: read %s: %w", common.ErrParse, path, err)
	}
	return data, nil
}

func (l *Loader) s3Client(ctx context.Context) (ObjectGetter, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(l.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			l.config.S3RootUser,
			l.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3Client(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(l.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

func (l *Loader) loadS3(ctx context.Context, path string) ([]byte, error) {
	bucket, key, ok := strings.Cut(path, "/")
	if !ok || bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: malformed s3 location %q", common.ErrResourceNotFound, s3Scheme+path)
	}

	client, err := l.s3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: s3 client: %w", common.ErrResourceNotFound, err)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s%s: %w", common.ErrResourceNotFound, s3Scheme, path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s%s: %w", common.ErrParse, s3Scheme, path, err)
	}
	return data, nil
}
