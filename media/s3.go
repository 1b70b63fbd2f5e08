package media

import (
	"context"
	"fmt"
	"mime/multipart"

	appConfig "medibook/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Uploader stores images in an S3 bucket and returns the object URL.
type S3Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewS3Uploader() (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(appConfig.AWSRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return &S3Uploader{
		client: s3.NewFromConfig(cfg),
		bucket: appConfig.S3Bucket,
		region: appConfig.AWSRegion,
	}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, error) {
	key := folder + "/" + objectName(header)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(header.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key), nil
}
