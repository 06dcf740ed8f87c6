package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/tanq16/scenefetch/internal/utils"
)

// objectAPI is the subset of the S3 client the transport needs.
type objectAPI interface {
	manager.DownloadAPIClient
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

func getS3Client(ctx context.Context, profile, region string) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{
		// retries are owned by the fetcher
		config.WithRetryMaxAttempts(1),
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %v", err)
	}
	return s3.NewFromConfig(cfg), nil
}

func parseS3URL(url string) (string, string, error) {
	if !strings.HasPrefix(url, "s3://") {
		return "", "", fmt.Errorf("invalid S3 URL format: %s", url)
	}
	parts := strings.SplitN(strings.TrimPrefix(url, "s3://"), "/", 2)
	if parts[0] == "" {
		return "", "", fmt.Errorf("invalid S3 URL format: %s", url)
	}
	key := ""
	if len(parts) > 1 {
		key = parts[1]
	}
	if key == "" {
		return "", "", fmt.Errorf("S3 URL has no object key: %s", url)
	}
	return parts[0], key, nil
}

func classifyS3Error(url string, err error) error {
	fe := &utils.FetchError{Kind: utils.KindTransport, URL: url, Err: err}
	var noKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noKey) || errors.As(err, &notFound) {
		fe.Kind = utils.KindNotFound
	}
	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) {
		fe.Status = respErr.HTTPStatusCode()
		switch fe.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			fe.Kind = utils.KindUnauthorized
		case http.StatusNotFound:
			fe.Kind = utils.KindNotFound
		}
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		fe.Message = apiErr.ErrorMessage()
		switch apiErr.ErrorCode() {
		case "AccessDenied", "InvalidAccessKeyId", "ExpiredToken", "SignatureDoesNotMatch":
			fe.Kind = utils.KindUnauthorized
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			fe.Kind = utils.KindNotFound
		}
	}
	if fe.Kind == utils.KindTransport && errors.Is(err, io.ErrUnexpectedEOF) {
		fe.Kind = utils.KindTruncated
	}
	return fe
}

func objectSize(head *s3.HeadObjectOutput) int64 {
	if head == nil {
		return -1
	}
	return aws.ToInt64(head.ContentLength)
}
