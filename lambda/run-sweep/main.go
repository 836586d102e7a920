package main

import (
	"benritz/bonds/internal/sweep"
	"benritz/bonds/internal/types"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

var (
	ENV_BUCKET_NAME   = "BONDS_SWEEP_BUCKET_NAME"
	ENV_BUCKET_PREFIX = "BONDS_SWEEP_BUCKET_PREFIX"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	return l
}

func runSweeps(ctx context.Context) error {
	bucketName := os.Getenv(ENV_BUCKET_NAME)
	if bucketName == "" {
		return fmt.Errorf("%s is not set", ENV_BUCKET_NAME)
	}

	bucketPrefix := os.Getenv(ENV_BUCKET_PREFIX)

	path := &sweep.S3Path{
		Bucket: bucketName,
		Prefix: bucketPrefix,
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	s3Client := s3.NewFromConfig(cfg)
	now := time.Now()

	for _, bondType := range []types.BondType{
		types.FixedRate,
		types.ZeroCoupon,
		types.FloatingRate,
		types.PartiallyAmortizing,
	} {
		sweeper, err := sweep.PresetSweeper(bondType, logger)
		if err != nil {
			return err
		}

		result, err := sweeper.Run(ctx, now)
		if err != nil {
			return fmt.Errorf("sweep %s: %w", bondType, err)
		}

		outPath, err := sweep.StoreToS3(ctx, result, s3Client, path)
		if err != nil {
			return err
		}

		logger.WithField("path", outPath).Info("stored sweep")
	}

	return nil
}

func responseWithFailure(rec events.SQSMessage) events.SQSEventResponse {
	return events.SQSEventResponse{
		BatchItemFailures: []events.SQSBatchItemFailure{
			{
				ItemIdentifier: rec.MessageId,
			},
		},
	}
}

func handler(ctx context.Context, request events.SQSEvent) (events.SQSEventResponse, error) {
	err := runSweeps(ctx)

	if err != nil && len(request.Records) > 0 {
		// should just have a single record, ignore the rest
		rec := request.Records[0]
		return responseWithFailure(rec), fmt.Errorf("failed to run sweeps: %v", err)
	}

	return events.SQSEventResponse{}, nil
}

func main() {
	lambda.Start(handler)
}
