package main

import (
	"benritz/bonds/internal/sweep"
	"benritz/bonds/internal/types"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
)

func getAwsConfig(ctx context.Context, profile string) (aws.Config, error) {
	if profile == "default" {
		return config.LoadDefaultConfig(ctx)
	}
	return config.LoadDefaultConfig(ctx, config.WithSharedConfigProfile(profile))
}

func storeToS3(
	ctx context.Context,
	result *sweep.Result,
	profile string,
	s3Path *sweep.S3Path,
) (string, error) {
	cfg, err := getAwsConfig(ctx, profile)
	if err != nil {
		return "", fmt.Errorf("failed to load AWS config: %v", err)
	}

	s3Client := s3.NewFromConfig(cfg)

	outPath, err := sweep.StoreToS3(ctx, result, s3Client, s3Path)
	if err != nil {
		return "", fmt.Errorf("failed to store data to S3: %v", err)
	}

	return outPath, nil
}

func main() {
	ctx := context.Background()

	profile := flag.String("profile", "default", "the AWS profile to use")
	bondName := flag.String("bond", string(types.FixedRate), "bond type to sweep: fixed-rate, zero-coupon, floating-rate, partially-amortizing")
	vasicekSeed := flag.Int64("vasicek-seed", -1, "add a simulated Vasicek scenario with this seed")
	nominal := flag.Bool("nominal", false, "record nominal rather than present-valued profit")
	helpFlag := flag.Bool("help", false, "print this help message")
	flag.Parse()
	args := flag.Args()

	if len(args) != 1 || *helpFlag {
		fmt.Printf("Usage: %s <flags> <destination>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(1)
	}

	dst := args[0]

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	bondType, err := types.ParseBondType(*bondName)
	if err != nil {
		logger.WithError(err).Fatal("invalid bond type")
	}

	sweeper, err := sweep.PresetSweeper(bondType, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build sweep")
	}
	sweeper.PresentValue = !*nominal

	if *vasicekSeed >= 0 {
		sc, err := sweep.VasicekScenario(uint64(*vasicekSeed))
		if err != nil {
			logger.WithError(err).Fatal("failed to simulate Vasicek scenario")
		}
		sweeper.Scenarios = append(sweeper.Scenarios, sc)
	}

	result, err := sweeper.Run(ctx, time.Now())
	if err != nil {
		if errors.Is(err, types.ErrDataUnavailable) {
			logger.Fatal("no grid point could be valued")
		}
		logger.WithError(err).Fatal("failed to run sweep")
	}

	var outPath string
	if s3Path, _ := sweep.ParseS3(dst); s3Path != nil {
		outPath, err = storeToS3(ctx, result, *profile, s3Path)
	} else {
		outPath, err = sweep.StoreToPath(ctx, result, dst)
	}

	if err != nil {
		logger.WithError(err).Fatal("failed to store data")
	}

	logger.WithFields(logrus.Fields{
		"rows":     len(result.Rows),
		"failures": len(result.Failures),
		"path":     outPath,
	}).Info("stored sweep")
}
