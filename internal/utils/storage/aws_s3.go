package storage

import (
	"Foodgram-Backend/internal/utils"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

const (
	FolderRecipeImages = "recipes/images"
	FolderAvatars      = "users/avatars"
)

type (
	AwsS3 interface {
		UploadFile(ctx context.Context, file *ImageFile, folder string) (string, error)
		DeleteFile(ctx context.Context, objectKey string) error
		GetPublicLinkKey(objectKey string) string
		GetObjectKeyFromLink(link string) string
	}

	awsS3 struct {
		client   *s3.Client
		bucket   string
		region   string
		endpoint string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	endpoint := utils.GetConfig("AWS_S3_ENDPOINT")

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})

	return &awsS3{
		client:   client,
		bucket:   utils.GetConfig("AWS_S3_BUCKET"),
		region:   region,
		endpoint: strings.TrimRight(endpoint, "/"),
	}
}

// UploadFile stores the image under folder with a random name that keeps the
// original extension, and returns the object key.
func (s *awsS3) UploadFile(ctx context.Context, file *ImageFile, folder string) (string, error) {
	objectKey := path.Join(folder, uuid.NewString()+file.Ext)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(file.Data),
		ContentType: aws.String(file.ContentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", objectKey, err)
	}
	return objectKey, nil
}

func (s *awsS3) DeleteFile(ctx context.Context, objectKey string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", objectKey, err)
	}
	return nil
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return s.baseURL() + "/" + objectKey
}

func (s *awsS3) GetObjectKeyFromLink(link string) string {
	prefix := s.baseURL() + "/"
	if !strings.HasPrefix(link, prefix) {
		return ""
	}
	return strings.TrimPrefix(link, prefix)
}

func (s *awsS3) baseURL() string {
	if s.endpoint != "" {
		return s.endpoint + "/" + s.bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.bucket, s.region)
}
