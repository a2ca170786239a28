package storage

import (
	"context"
	"errors"
	"time"

	"instructorhub/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage issues presigned upload/download URLs and answers object metadata
// queries. It never proxies file bytes; clients talk to S3 directly.
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	expiry  time.Duration
}

func NewS3Storage(client *s3.Client, bucket string, expiry time.Duration) *S3Storage {
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		expiry:  expiry,
	}
}

func (s *S3Storage) PresignUpload(ctx context.Context, key string) (*types.UploadTarget, error) {
	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return nil, types.NewDependency("storage is unavailable", err)
	}

	headers := make(map[string]string, len(req.SignedHeader))
	for name, values := range req.SignedHeader {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	return &types.UploadTarget{
		URL:     req.URL,
		Method:  req.Method,
		Headers: headers,
	}, nil
}

// StatObject returns the stored object's size and MIME type as recorded by
// S3. A missing object maps to a not-found error, anything else to a
// dependency failure.
func (s *S3Storage) StatObject(ctx context.Context, key string) (*types.ObjectInfo, error) {
	out, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var notFound *s3types.NotFound
		if errors.As(err, &notFound) {
			return nil, types.NewNotFound("object has not been uploaded")
		}
		return nil, types.NewDependency("storage is unavailable", err)
	}

	return &types.ObjectInfo{
		SizeBytes: aws.ToInt64(out.ContentLength),
		MimeType:  aws.ToString(out.ContentType),
	}, nil
}

func (s *S3Storage) PresignDownload(ctx context.Context, key, mimeType string) (string, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}
	if mimeType != "" {
		input.ResponseContentType = aws.String(mimeType)
	}

	req, err := s.presign.PresignGetObject(ctx, input, s3.WithPresignExpires(s.expiry))
	if err != nil {
		return "", types.NewDependency("storage is unavailable", err)
	}

	return req.URL, nil
}
