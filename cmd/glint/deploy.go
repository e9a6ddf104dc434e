package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/pkg/deploy"
)

func deployCmd() *cobra.Command {
	var (
		bucket string
		prefix string
		region string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy the build output to S3",
		Long: `Upload the build output directory to an S3 bucket.

Credentials come from the standard AWS environment variables
(AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, and optionally
AWS_SESSION_TOKEN). Bucket, region, and key prefix default to
the deploy section of glint.json.

Examples:
  glint deploy
  glint deploy --bucket=my-site --region=eu-west-1
  glint deploy --prefix=v2/ --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeploy(bucket, prefix, region, dryRun)
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "S3 bucket (default from glint.json)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix for uploaded objects")
	cmd.Flags().StringVar(&region, "region", "", "AWS region (default from glint.json)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List uploads without writing to S3")

	return cmd
}

func runDeploy(bucket, prefix, region string, dryRun bool) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if bucket == "" {
		bucket = cfg.Deploy.Bucket
	}
	if prefix == "" {
		prefix = cfg.Deploy.Prefix
	}
	if region == "" {
		region = cfg.Deploy.Region
	}
	if region == "" {
		region = os.Getenv("AWS_REGION")
	}
	if region == "" {
		region = "us-east-1"
	}

	if dryRun {
		fmt.Println("  Deploying (dry run)...")
	} else {
		fmt.Printf("  Deploying to s3://%s/%s...\n", bucket, prefix)
	}
	fmt.Println()

	deployer := deploy.New(newS3Client(region), deploy.Options{
		Bucket: bucket,
		Prefix: prefix,
		DryRun: dryRun,
		Logger: newLogger(false),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := deployer.Deploy(ctx, cfg.OutputDir())
	if err != nil {
		return err
	}

	fmt.Println()
	if dryRun {
		success("Would upload %d objects (%.1f KB)", result.Uploaded, float64(result.Bytes)/1024)
	} else {
		success("Uploaded %d objects (%.1f KB) in %s", result.Uploaded, float64(result.Bytes)/1024, result.Duration.Round(1000000))
	}
	fmt.Println()

	return nil
}

// newS3Client builds an S3 client from environment credentials. The
// provider is lazy, so a dry run never needs credentials at all.
func newS3Client(region string) *s3.Client {
	creds := aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id := os.Getenv("AWS_ACCESS_KEY_ID")
		secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, fmt.Errorf("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})

	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(creds),
	})
}
