// Package cmd implements the command-line interface of brb. It turns flags
// into a validated Config, runs the export pipeline and reports the result.
package cmd

import (
	"context"
	"io"
	"time"

	"brb/internal/config"
	"brb/internal/log"
	"brb/internal/pipeline"
	"brb/share"
)

func executeBrb(ctx context.Context, cfg *config.Config, out, errOut io.Writer) error {
	startTime := time.Now()

	logger := log.New(cfg, out, errOut)

	result, err := pipeline.Run(ctx, pipeline.Options{
		Input:         cfg.Input,
		Headers:       cfg.Headers,
		HeaderNames:   cfg.HeaderNames,
		Defaults:      share.FS,
		DefaultName:   share.DefaultHeaderNames,
		NoStandardize: cfg.NoStandardize,
		Format:        cfg.Format,
		OutputDir:     cfg.OutputDir,
		Describe:      cfg.IsVerbose(),
		Logger:        logger,
	})

	logger.SetProcessingTime(time.Since(startTime))
	if reportErr := logger.WriteReport(result, err); reportErr != nil && err == nil {
		return reportErr
	}
	return err
}
