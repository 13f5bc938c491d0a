package storage

import (
	"bytes"
	"context"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// S3Config carries everything needed to reach an S3-compatible bucket.
// Supabase storage exposes such an endpoint at
// https://<project>.supabase.co/storage/v1/s3, with public URLs served from
// .../storage/v1/object/public/<bucket>/<path>.
type S3Config struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string // base of public object URLs, without trailing slash
}

// S3Store implements BlobStore against an S3-compatible bucket.
type S3Store struct {
	client *s3.Client
	cfg    S3Config
	logger zerolog.Logger
}

func NewS3Store(ctx context.Context, cfg S3Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		// Supabase (and most non-AWS S3 backends) only speak path-style.
		o.UsePathStyle = true
	})

	return &S3Store{
		client: client,
		cfg:    cfg,
		logger: log.With().Str("component", "s3Store").Str("bucket", cfg.Bucket).Logger(),
	}, nil
}

func (s *S3Store) Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(path.Ext(objectPath))
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(objectPath),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	return s.cfg.PublicBaseURL + "/" + objectPath, nil
}

func (s *S3Store) Remove(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(paths))
	for _, p := range paths {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(p)})
	}

	out, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.cfg.Bucket),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return err
	}

	for _, e := range out.Errors {
		s.logger.Warn().
			Str("key", aws.ToString(e.Key)).
			Str("code", aws.ToString(e.Code)).
			Str("message", aws.ToString(e.Message)).
			Msg("object removal failed")
	}
	return nil
}

func (s *S3Store) List(ctx context.Context, prefix string, limit int) ([]Object, error) {
	if limit <= 0 {
		limit = 100
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(s.cfg.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, err
	}

	objects := make([]Object, 0, len(out.Contents))
	for _, item := range out.Contents {
		key := aws.ToString(item.Key)
		objects = append(objects, Object{
			Name:        path.Base(key),
			Path:        key,
			Size:        aws.ToInt64(item.Size),
			ContentType: mime.TypeByExtension(path.Ext(key)),
			UpdatedAt:   item.LastModified,
		})
	}
	return objects, nil
}

// PathFromURL resolves public URLs minted by Upload (and any older Supabase
// public URL for the same bucket) back to bucket-relative paths.
func (s *S3Store) PathFromURL(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	if p, ok := strings.CutPrefix(rawURL, s.cfg.PublicBaseURL+"/"); ok && p != "" {
		return p
	}
	return PathFromPublicURL(rawURL, s.cfg.Bucket)
}
