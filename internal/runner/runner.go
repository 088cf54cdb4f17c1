package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/terratensor/sistem-dokumen/internal/processor"
	"github.com/terratensor/sistem-dokumen/internal/source"
)

// Result - итог обработки одного документа.
type Result struct {
	// Index - позиция файла во входном списке.
	Index  int
	Path   string
	Format string
	Output string
	Err    error
}

// Stats - счетчики одного запуска Run.
type Stats struct {
	Total     int
	Processed int
	Failed    int
}

// Runner обрабатывает документы параллельно.
type Runner struct {
	Registry *processor.Registry
	// Workers ограничивает число одновременно обрабатываемых файлов.
	Workers int
	// ErrorDir - каталог для журнала ошибок и копий проблемных файлов.
	// Пустая строка отключает копирование.
	ErrorDir string
	MaxBytes int64
	Logger   logrus.FieldLogger
}

// Run обрабатывает все файлы и вызывает fn для каждого результата.
// fn вызывается последовательно, синхронизация в нем не нужна.
func (r *Runner) Run(ctx context.Context, files []string, fn func(Result)) (Stats, error) {
	if r.Registry == nil {
		return Stats{}, errors.New("runner: nil registry")
	}

	logger := r.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// Создаем папку для ошибок
	if r.ErrorDir != "" {
		if err := os.MkdirAll(r.ErrorDir, os.ModePerm); err != nil {
			return Stats{}, fmt.Errorf("failed to create error directory: %w", err)
		}
	}

	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	stats := Stats{Total: len(files)}
	guard := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var mutex sync.Mutex
	var errMutex sync.Mutex
	quarantined := make(map[string]bool)

	var ctxErr error
	for i, path := range files {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
		case guard <- struct{}{}:
		}
		if ctxErr != nil {
			break
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-guard }()

			res := r.processFile(path)
			res.Index = i
			if res.Err != nil {
				logger.WithFields(logrus.Fields{
					"file":  path,
					"error": res.Err,
				}).Warn("failed to process document")
				errMutex.Lock()
				r.handleError(logger, path, quarantineName(path, quarantined), res.Err)
				errMutex.Unlock()
			} else {
				logger.WithFields(logrus.Fields{
					"file":   path,
					"format": res.Format,
				}).Debug("document processed")
			}

			mutex.Lock()
			defer mutex.Unlock()
			if res.Err != nil {
				stats.Failed++
			} else {
				stats.Processed++
			}
			if fn != nil {
				fn(res)
			}
		}(i, path)
	}

	wg.Wait()
	return stats, ctxErr
}

func (r *Runner) processFile(path string) Result {
	doc, err := source.Load(path, r.MaxBytes)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	// Выбор процессора
	p, err := r.Registry.Resolve(doc.Ext, doc.Content)
	if err != nil {
		return Result{Path: path, Err: err}
	}

	return Result{
		Path:   path,
		Format: p.FormatName(),
		Output: p.Process(string(doc.Content)),
	}
}

// quarantineName возвращает имя копии, уникальное в пределах запуска:
// a.txt, a-2.txt, a-3.txt ...
func quarantineName(path string, used map[string]bool) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for n := 2; used[name]; n++ {
		name = fmt.Sprintf("%s-%d%s", stem, n, ext)
	}
	used[name] = true
	return name
}

// handleError записывает ошибку в журнал и копирует файл в ErrorDir под именем name.
func (r *Runner) handleError(logger logrus.FieldLogger, path, name string, err error) {
	if r.ErrorDir == "" {
		return
	}

	if logErr := r.logError(path, err); logErr != nil {
		logger.WithError(logErr).Error("failed to log error")
	}

	if copyErr := r.copyErrorFile(path, name); copyErr != nil {
		logger.WithError(copyErr).Error("failed to copy error file")
	}
}

func (r *Runner) logError(path string, procErr error) error {
	logFile, err := os.OpenFile(filepath.Join(r.ErrorDir, "errors.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()

	entry := fmt.Sprintf("[%s] File: %s, Error: %v\n", time.Now().Format(time.RFC3339), path, procErr)
	if _, err := logFile.WriteString(entry); err != nil {
		return fmt.Errorf("failed to write to log file: %w", err)
	}
	return nil
}

func (r *Runner) copyErrorFile(path, name string) error {
	srcFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(filepath.Join(r.ErrorDir, name))
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}
	return nil
}
