package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/carelink-app/carelink-backend/internal/logging"
	"github.com/carelink-app/carelink-backend/internal/media/domain"
)

const presignTTL = time.Hour

// S3API is the slice of the S3 client the family-media service uses.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner mints time-limited GET URLs for stored objects.
// *s3.PresignClient satisfies it.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// FamilyMediaService stores family-shared blobs in the S3-compatible bucket
// under a per-family prefix.
type FamilyMediaService struct {
	client    S3API
	presigner Presigner
	bucket    string
	now       func() time.Time
}

func NewFamilyMediaService(client S3API, presigner Presigner, bucket string) *FamilyMediaService {
	return &FamilyMediaService{client: client, presigner: presigner, bucket: bucket, now: time.Now}
}

// Upload stores one blob for the family and returns its key plus a presigned
// GET URL.
func (s *FamilyMediaService) Upload(ctx context.Context, familyID string, file *multipart.FileHeader) (*domain.Object, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, domain.ErrFamilyIDMissing
	}
	if file == nil {
		return nil, domain.ErrMissingFile
	}
	if file.Size > domain.MaxFamilyMediaBytes {
		return nil, domain.ErrFileTooLarge
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("family/%s/%d_%s", familyID, s.now().Unix(), sanitizeName(file.Filename))
	contentType := file.Header.Get("Content-Type")

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          src,
		ContentLength: aws.Int64(file.Size),
		ContentType:   aws.String(contentType),
	}); err != nil {
		return nil, fmt.Errorf("store family media: %w", err)
	}

	url, err := s.presignGet(ctx, key)
	if err != nil {
		return nil, err
	}

	logging.NewLogger(ctx).LogInfo("family_media_upload", "object stored", logging.Fields{
		"family_id": familyID,
		"key":       key,
		"size":      file.Size,
	})
	return &domain.Object{Key: key, SignedURL: url, Size: file.Size}, nil
}

// List returns the family's objects with presigned URLs, as stored order.
func (s *FamilyMediaService) List(ctx context.Context, familyID string) ([]domain.Object, error) {
	if strings.TrimSpace(familyID) == "" {
		return nil, domain.ErrFamilyIDMissing
	}

	prefix := fmt.Sprintf("family/%s/", familyID)
	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, fmt.Errorf("list family media: %w", err)
	}

	objects := make([]domain.Object, 0, len(out.Contents))
	for _, item := range out.Contents {
		key := aws.ToString(item.Key)
		url, err := s.presignGet(ctx, key)
		if err != nil {
			return nil, err
		}
		objects = append(objects, domain.Object{
			Key:       key,
			SignedURL: url,
			Size:      aws.ToInt64(item.Size),
		})
	}
	return objects, nil
}

func (s *FamilyMediaService) presignGet(ctx context.Context, key string) (string, error) {
	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = presignTTL
	})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return req.URL, nil
}
