package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/platemate/platemate-backend/config"
)

// PhotoService stores restaurant and menu item photos in S3 and hands back
// public URLs.
type PhotoService struct {
	s3Config *config.S3Config
}

func NewPhotoService(s3Config *config.S3Config) *PhotoService {
	return &PhotoService{s3Config: s3Config}
}

// Upload writes the photo under folder/ with a generated name and returns
// its public URL. The original filename only contributes its extension.
func (s *PhotoService) Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), path.Ext(filename))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("uploaded photo to %s", publicURL)
	return publicURL, nil
}
