// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"

	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/gbgodisasm/internal/pipeline"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/sync/errgroup"
)

// ProcessFiles processes all files in parallel. In batch mode or for multiple files
// the output files are named after the input files. Failing files are logged
// and do not stop the processing of the others, a cancelled context does.
func ProcessFiles(ctx context.Context, logger *log.Logger, opts options.Program, disasmOptions options.Disassembler,
	files []string) error {

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	var failed atomic.Int32
	for _, file := range files {
		fileOpts := opts
		fileOpts.Input = file
		if opts.Batch != "" || len(files) > 1 {
			fileOpts.Output = GenerateOutputFilename(file)
		}

		g.Go(func() error {
			err := ProcessFile(ctx, logger, fileOpts, disasmOptions)
			switch {
			case err == nil:
				return nil
			case errors.Is(err, context.Canceled):
				return err
			default:
				logger.Error("Disassembling failed", log.String("file", file), log.Err(err))
				failed.Add(1)
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("processing files: %w", err)
	}
	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d files failed", n, len(files))
	}
	return nil
}

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	disasmOptions options.Disassembler) (err error) {

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closeErr := closeWriter(writer); closeErr != nil && err == nil {
			err = fmt.Errorf("closing output file %s: %w", opts.Output, closeErr)
		}
	}()

	pipe := pipeline.New(logger)
	if _, err := pipe.Execute(ctx, opts, disasmOptions, writer); err != nil {
		return fmt.Errorf("processing %s: %w", opts.Input, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match batch pattern '%s'", opts.Batch)
		}
		return matches, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".asm"
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// closeWriter closes the writer unless it is stdout.
func closeWriter(writer io.Writer) error {
	closer, ok := writer.(io.Closer)
	if !ok || writer == os.Stdout {
		return nil
	}
	return closer.Close()
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("gbgodisasm", log.String("version", buildinfo.Version(version, commit, date)))
}
