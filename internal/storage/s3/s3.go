package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/alexscarano/QrLinkki/internal/storage"
)

type S3Storage struct {
	client   *s3.Client
	bucket   string
	region   string
	endpoint string
}

type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

func NewS3Storage(ctx context.Context, cfg S3Config) (*S3Storage, error) {
	// Создаем AWS конфигурацию со статическими ключами
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(aws.CredentialsProviderFunc(
			func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			},
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	// Создаем S3 клиент с кастомным endpoint
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true // path-style для совместимости с S3-совместимыми сервисами
		o.Region = cfg.Region
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		region:   cfg.Region,
		endpoint: cfg.Endpoint,
	}, nil
}

func key(code string) string {
	return fmt.Sprintf("qrcodes/%s.png", code)
}

// Save загружает PNG с QR-кодом в S3 и возвращает URL объекта.
func (s *S3Storage) Save(ctx context.Context, code string, png []byte) (string, error) {
	k := key(code)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(k),
		Body:        bytes.NewReader(png),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, k), nil
}

// Load читает PNG с QR-кодом из S3.
func (s *S3Storage) Load(ctx context.Context, code string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(code)),
	})
	var noKey *types.NoSuchKey
	if errors.As(err, &noKey) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get from S3: %w", err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

// Delete удаляет QR-код из S3.
func (s *S3Storage) Delete(ctx context.Context, code string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key(code)),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
