package s3

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
	"github.com/tanq16/scenefetch/internal/utils"
)

// Transport fetches s3://bucket/key URLs, one attempt per call.
type Transport struct {
	client     objectAPI
	downloader *manager.Downloader
}

// NewTransport loads the default AWS configuration for profile and region.
// Both may be empty.
func NewTransport(ctx context.Context, profile, region string) (*Transport, error) {
	client, err := getS3Client(ctx, profile, region)
	if err != nil {
		return nil, err
	}
	return newTransport(client), nil
}

func newTransport(client objectAPI) *Transport {
	return &Transport{
		client: client,
		downloader: manager.NewDownloader(client, func(d *manager.Downloader) {
			d.PartSize = 2 * utils.DefaultBufferSize
			d.Concurrency = 1
			d.PartBodyMaxRetries = 0
		}),
	}
}

func (t *Transport) Fetch(ctx context.Context, url, outputPath string) error {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		return utils.NewFetchError(utils.KindTransport, url, err)
	}
	head, err := t.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return classifyS3Error(url, err)
	}
	size := objectSize(head)

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error creating output directory: %w", err))
	}
	tempPath := outputPath + utils.PartSuffix
	file, err := os.Create(tempPath)
	if err != nil {
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error creating file: %w", err))
	}
	written, err := t.downloader.Download(ctx, file, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	closeErr := file.Close()
	if err != nil {
		utils.RemoveIfExists(tempPath)
		return classifyS3Error(url, err)
	}
	if closeErr != nil {
		utils.RemoveIfExists(tempPath)
		return utils.NewFetchError(utils.KindTransport, url, closeErr)
	}
	if size >= 0 && written < size {
		utils.RemoveIfExists(tempPath)
		return &utils.FetchError{Kind: utils.KindTruncated, URL: url, Message: fmt.Sprintf("received %d of %d bytes", written, size)}
	}
	if err := os.Rename(tempPath, outputPath); err != nil {
		utils.RemoveIfExists(tempPath)
		return utils.NewFetchError(utils.KindTransport, url, fmt.Errorf("error renaming (finalizing) output file: %w", err))
	}
	log.Debug().Str("op", "s3/transport").Int64("bytes", written).Msgf("fetched s3://%s/%s", bucket, key)
	return nil
}

// Exists performs a HeadObject call.
func (t *Transport) Exists(ctx context.Context, url string) bool {
	bucket, key, err := parseS3URL(url)
	if err != nil {
		log.Warn().Str("op", "s3/transport").Err(err).Msg("invalid probe URL")
		return false
	}
	_, err = t.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Debug().Str("op", "s3/transport").Err(err).Msgf("probe failed for %s", url)
		return false
	}
	return true
}
