package bootstrap

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appconfig "github.com/carelink-app/carelink-backend/config"
)

// OpenS3 builds an S3 client pointed at the Supabase storage endpoint.
// Supabase speaks the S3 protocol but needs path-style addressing.
func OpenS3(cfg appconfig.StorageConfig) (*s3.Client, *s3.PresignClient) {
	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: true,
	})
	return client, s3.NewPresignClient(client)
}
