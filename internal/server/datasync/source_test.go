package datasync

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tao1925/poc-web/internal/common"
	sc "github.com/Tao1925/poc-web/internal/server/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return NewLoader(cfg)
}

func TestLoad_Bundled(t *testing.T) {
	l := newTestLoader()
	ctx := context.Background()

	data, err := l.Load(ctx, common.DefaultDataSyncLocation)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"chapters"`)

	alias, err := l.Load(ctx, "classpath:data.json")
	require.NoError(t, err)
	assert.Equal(t, data, alias)

	for _, loc := range []string{"bundled:missing.json", "bundled:../service.go", ""} {
		_, err = l.Load(ctx, loc)
		assert.ErrorIs(t, err, common.ErrResourceNotFound, loc)
	}
}

func TestLoad_File(t *testing.T) {
	l := newTestLoader()
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"users":[]}`), 0o600))

	data, err := l.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(data))

	data, err = l.Load(ctx, "file:"+path)
	require.NoError(t, err)
	assert.Equal(t, `{"users":[]}`, string(data))

	_, err = l.Load(ctx, filepath.Join(dir, "nope.json"))
	assert.ErrorIs(t, err, common.ErrResourceNotFound)

	_, err = l.Load(ctx, dir)
	assert.ErrorIs(t, err, common.ErrParse, "a directory exists but is not readable as a document")

	_, err = l.Load(ctx, "https://example.com/data.json")
	assert.ErrorIs(t, err, common.ErrResourceNotFound)
}

type fakeGetter struct {
	bucket, key string
	body        string
	err         error
}

func (f *fakeGetter) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(f.body))}, nil
}

func stubS3(t *testing.T, g ObjectGetter, cfgErr error) *s3.Options {
	t.Helper()
	origCfg, origClient := loadDefaultAWSConfig, newS3Client
	t.Cleanup(func() { loadDefaultAWSConfig, newS3Client = origCfg, origClient })

	opts := &s3.Options{}
	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*config.LoadOptions) error) (aws.Config, error) {
		if cfgErr != nil {
			return aws.Config{}, cfgErr
		}
		lo := config.LoadOptions{}
		for _, fn := range optFns {
			if err := fn(&lo); err != nil {
				return aws.Config{}, err
			}
		}
		return aws.Config{Region: lo.Region}, nil
	}
	newS3Client = func(cfg aws.Config, optFns ...func(*s3.Options)) ObjectGetter {
		opts.Region = cfg.Region
		for _, fn := range optFns {
			fn(opts)
		}
		return g
	}
	return opts
}

func TestLoad_S3(t *testing.T) {
	g := &fakeGetter{body: `{"chapters":[]}`}
	opts := stubS3(t, g, nil)

	data, err := newTestLoader().Load(context.Background(), "s3://quiz/sync/data.json")
	require.NoError(t, err)
	assert.Equal(t, `{"chapters":[]}`, string(data))
	assert.Equal(t, "quiz", g.bucket)
	assert.Equal(t, "sync/data.json", g.key)
	assert.Equal(t, "us-east-1", opts.Region)
	assert.Equal(t, "http://127.0.0.1:9000/", aws.ToString(opts.BaseEndpoint))
	assert.True(t, opts.UsePathStyle)
}

func TestLoad_S3Errors(t *testing.T) {
	ctx := context.Background()

	stubS3(t, &fakeGetter{err: errors.New("NoSuchKey")}, nil)
	_, err := newTestLoader().Load(ctx, "s3://quiz/missing.json")
	assert.ErrorIs(t, err, common.ErrResourceNotFound)
	assert.ErrorContains(t, err, "NoSuchKey")

	_, err = newTestLoader().Load(ctx, "s3://quiz")
	assert.ErrorIs(t, err, common.ErrResourceNotFound)
	_, err = newTestLoader().Load(ctx, "s3:///key")
	assert.ErrorIs(t, err, common.ErrResourceNotFound)

	stubS3(t, &fakeGetter{}, errors.New("no region"))
	_, err = newTestLoader().Load(ctx, "s3://quiz/data.json")
	assert.ErrorIs(t, err, common.ErrResourceNotFound)
	assert.ErrorContains(t, err, "no region")
}
