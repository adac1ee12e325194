package media

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Client interface for S3 operations (allows mocking in tests)
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Uploader envia imagens normalizadas para um bucket S3 (ou compatível,
// via endpoint customizado).
type Uploader struct {
	client S3Client
	bucket string
}

type UploaderConfig struct {
	Endpoint  string // vazio usa o endpoint padrão da AWS
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

func NewUploader(cfg UploaderConfig) *Uploader {
	opts := s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}
	return &Uploader{
		client: s3.New(opts),
		bucket: cfg.Bucket,
	}
}

// NewUploaderWithClient injeta um cliente pronto. Usado nos testes.
func NewUploaderWithClient(client S3Client, bucket string) *Uploader {
	return &Uploader{client: client, bucket: bucket}
}

// Upload normaliza a imagem e grava no bucket sob a chave informada.
func (u *Uploader) Upload(ctx context.Context, key string, data []byte) error {
	if u == nil || u.client == nil || u.bucket == "" {
		return fmt.Errorf("media: uploader não configurado")
	}

	normalized, err := NormalizeImage(data)
	if err != nil {
		return err
	}

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(normalized),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return fmt.Errorf("media: upload falhou: %w", err)
	}
	return nil
}
