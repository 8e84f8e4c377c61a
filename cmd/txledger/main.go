package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/simaogato/txledger/internal/adapter/csvio"
	"github.com/simaogato/txledger/internal/adapter/events"
	"github.com/simaogato/txledger/internal/adapter/events/kafka"
	"github.com/simaogato/txledger/internal/config"
	"github.com/simaogato/txledger/internal/domain"
	"github.com/simaogato/txledger/internal/usecase/ledger"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: txledger <transactions.csv>")
		os.Exit(2)
	}

	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatalf("Cannot read file %s: %v", os.Args[1], err)
	}
	defer file.Close()

	// Events are off unless brokers are configured.
	var publisher domain.EventPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	ledgerService := ledger.NewLedger(logger, publisher, cfg.EnforceLocks)

	ctx := context.Background()
	reader := csvio.NewReader(file)

	for {
		tx, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var decodeErr *csvio.DecodeError
		if errors.As(err, &decodeErr) {
			if cfg.StrictDecode {
				logger.Fatalf("Aborting replay: %v", decodeErr)
			}
			logger.Warnw("skipping undecodable row",
				"line", decodeErr.Line,
				"error", decodeErr.Err,
			)
			continue
		}
		if err != nil {
			logger.Fatalf("Reading input: %v", err)
		}

		ledgerService.Process(ctx, tx)
	}

	if err := csvio.WriteSnapshot(os.Stdout, ledgerService.Accounts()); err != nil {
		logger.Fatalf("Writing account snapshot: %v", err)
	}
}

// newLogger builds the diagnostics logger. All diagnostics go to stderr so
// stdout carries nothing but the final snapshot.
func newLogger() *zap.SugaredLogger {
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.ErrorOutputPaths = []string{"stderr"}
	zapCfg.DisableStacktrace = true

	zapLogger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	return zapLogger.Sugar()
}
