// Package main implements the main entry point for a Game Boy SM83 disassembler
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/gbgodisasm/internal/cli"
	"github.com/retroenv/gbgodisasm/internal/config"
	"github.com/retroenv/gbgodisasm/internal/fileprocessor"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, disasmOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	err = fileprocessor.ProcessFiles(ctx, logger, opts, disasmOptions, files)
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		logger.Info("Operation cancelled")
		os.Exit(1)
	default:
		logger.Error("Disassembling failed", log.Err(err))
		os.Exit(1)
	}
}
