package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client
var s3Bucket string
var s3Region string

// InitS3 configures the shared S3 client used for post images,
// avatars and cover images.
func InitS3(bucket, region, keyID, keySecret string) error {
	s3Bucket = bucket
	s3Region = region

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			keyID,
			keySecret,
			"",
		)),
	)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

func UploadToS3(file multipart.File, filename string, contentType string, folder string) (string, error) {
	if s3Client == nil {
		return "", fmt.Errorf("S3 storage is not configured")
	}
	key := fmt.Sprintf("%s/%s", folder, filename)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s3Bucket, s3Region, key)
	return publicURL, nil
}

func DeleteFromS3(key string) error {
	if s3Client == nil {
		return fmt.Errorf("S3 storage is not configured")
	}
	_, err := s3Client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s3Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("deleting S3 object: %w", err)
	}
	return nil
}

// ObjectKey extracts the bucket key from a public object URL, so an
// old image can be removed when it is replaced or its post deleted.
func ObjectKey(publicURL string) string {
	parts := strings.SplitN(publicURL, ".amazonaws.com/", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
