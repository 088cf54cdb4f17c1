package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/terratensor/sistem-dokumen/internal/runner"
	"github.com/terratensor/sistem-dokumen/internal/source"
)

var processOutputDir string

var processCmd = &cobra.Command{
	Use:   "process PATH...",
	Short: "Run the matching processor on each document",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromFlags()
		if err != nil {
			return err
		}
		return a.process(cmd.Context(), args, processOutputDir, cmd.OutOrStdout())
	},
}

func init() {
	processCmd.Flags().StringVarP(&processOutputDir, "output", "o", "", "Directory for processed documents (default: stdout)")
}

// process пишет результат в outputDir/<имя файла> или в out.
// В out документы выводятся в порядке входного списка.
func (a *appInstance) process(ctx context.Context, paths []string, outputDir string, out io.Writer) error {
	files, err := source.Collect(paths)
	if err != nil {
		return err
	}

	var names []string
	if outputDir != "" {
		if names, err = outputNames(files); err != nil {
			return err
		}
		if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	var writeErr error
	write := func(res runner.Result) {
		if res.Err != nil || writeErr != nil {
			return
		}
		if outputDir == "" {
			_, writeErr = io.WriteString(out, res.Output)
			return
		}
		dst := filepath.Join(outputDir, names[res.Index])
		if err := os.WriteFile(dst, []byte(res.Output), 0o644); err != nil {
			writeErr = fmt.Errorf("write %s: %w", dst, err)
		}
	}

	// Результаты приходят в порядке завершения, придерживаем их до своей очереди.
	pending := make(map[int]runner.Result)
	next := 0
	stats, err := a.runner().Run(ctx, files, func(res runner.Result) {
		if outputDir != "" {
			write(res)
			return
		}
		pending[res.Index] = res
		for {
			res, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			write(res)
		}
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return writeErr
	}

	a.Logger.WithField("processed", stats.Processed).WithField("failed", stats.Failed).Info("processing finished")

	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d documents failed", stats.Failed, stats.Total)
	}
	return nil
}

// outputNames возвращает имена выходных файлов без суффикса .gz.
// Совпадающие имена из разных каталогов считаются ошибкой.
func outputNames(files []string) ([]string, error) {
	names := make([]string, len(files))
	seen := make(map[string]string, len(files))
	for i, path := range files {
		name := filepath.Base(path)
		if strings.EqualFold(filepath.Ext(name), ".gz") {
			name = strings.TrimSuffix(name, filepath.Ext(name))
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("duplicate output name %s: %s and %s", name, prev, path)
		}
		seen[name] = path
		names[i] = name
	}
	return names, nil
}
