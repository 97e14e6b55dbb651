// Package storage issues presigned S3 upload URLs for property images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// Options configures an S3-compatible backend (AWS or MinIO).
type Options struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
	Expiry       time.Duration
}

// S3Presigner signs PUT requests so clients upload images directly to the
// bucket without passing bytes through the API.
type S3Presigner struct {
	client *s3.PresignClient
	bucket string
	expiry time.Duration
}

func NewS3Presigner(ctx context.Context, o Options) (*S3Presigner, error) {
	if o.Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
			so.UsePathStyle = true
		}
	})

	expiry := o.Expiry
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}

	return &S3Presigner{client: s3.NewPresignClient(client), bucket: o.Bucket, expiry: expiry}, nil
}

// PresignPut returns a URL accepting a single PUT of key's bytes.
func (p *S3Presigner) PresignPut(ctx context.Context, key string) (string, error) {
	req, err := presignPutObject(p.client, ctx, &s3.PutObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(p.expiry))
	if err != nil {
		return "", fmt.Errorf("presign put: %w", err)
	}

	return req.URL, nil
}

// PropertyImageKey returns a fresh object key under the property's prefix.
func PropertyImageKey(propertyID int64) string {
	return fmt.Sprintf("properties/%d/%s", propertyID, uuid.NewString())
}
