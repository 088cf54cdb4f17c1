package source

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrTooLarge возвращается, когда содержимое превышает лимит.
var ErrTooLarge = errors.New("document too large")

// Document содержит загруженный документ.
type Document struct {
	Path string
	// Ext - расширение содержимого без учета .gz.
	Ext     string
	Content []byte
}

// Load читает документ, распаковывая .gz при необходимости.
// maxBytes <= 0 отключает ограничение размера.
func Load(path string, maxBytes int64) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(path))
	var reader io.Reader = file

	// Если файл в архиве .gz
	if ext == ".gz" {
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gzReader.Close()

		reader = gzReader
		baseName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		ext = strings.ToLower(filepath.Ext(baseName))
	}

	content, err := readLimited(reader, maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &Document{
		Path:    path,
		Ext:     ext,
		Content: content,
	}, nil
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}

	// Читаем на байт больше лимита, чтобы обнаружить превышение.
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}

// Collect раскрывает каталоги в список файлов.
// Каталоги обходятся на один уровень, файлы сортируются по имени.
func Collect(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("error reading directory %s: %w", path, err)
		}

		var names []string
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			names = append(names, entry.Name())
		}
		sort.Strings(names)

		for _, name := range names {
			files = append(files, filepath.Join(path, name))
		}
	}
	return files, nil
}
