package processor

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrUnsupportedFormat возвращается, когда для документа нет процессора.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrDuplicateExtension возвращается при повторной регистрации расширения.
	ErrDuplicateExtension = errors.New("extension already registered")
)

// DocumentProcessor определяет интерфейс для обработки документов одного формата.
type DocumentProcessor interface {
	// Process преобразует текстовое содержимое документа.
	Process(content string) string
	// FormatName возвращает название формата для человека.
	FormatName() string
}

// Registry выбирает процессор по типу документа.
type Registry struct {
	mu    sync.RWMutex
	byExt map[string]DocumentProcessor
}

func NewRegistry() *Registry {
	return &Registry{
		byExt: make(map[string]DocumentProcessor),
	}
}

// DefaultRegistry создает реестр со всеми встроенными процессорами.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	// Ошибка невозможна: реестр пуст.
	_ = r.Register(NewPlainTextProcessor(), ".txt", ".text", ".md")
	return r
}

// Register связывает расширения файлов с процессором.
func (r *Registry) Register(p DocumentProcessor, exts ...string) error {
	if p == nil {
		return errors.New("nil processor")
	}
	if len(exts) == 0 {
		return fmt.Errorf("register %s: no extensions", p.FormatName())
	}

	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = normalizeExt(ext)
		if ext == "" {
			return fmt.Errorf("register %s: empty extension", p.FormatName())
		}
		normalized = append(normalized, ext)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ext := range normalized {
		if _, ok := r.byExt[ext]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateExtension, ext)
		}
	}
	for _, ext := range normalized {
		r.byExt[ext] = p
	}
	return nil
}

// ForExtension возвращает процессор для расширения файла.
func (r *Registry) ForExtension(ext string) (DocumentProcessor, error) {
	ext = normalizeExt(ext)

	r.mu.RLock()
	p, ok := r.byExt[ext]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return p, nil
}

// ForContent определяет процессор по содержимому, когда расширение неизвестно.
func (r *Registry) ForContent(data []byte) (DocumentProcessor, error) {
	mtype := mimetype.Detect(data)
	if !mtype.Is("text/plain") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mtype.String())
	}
	return r.ForExtension(".txt")
}

// Resolve сначала ищет процессор по расширению, затем по содержимому.
func (r *Registry) Resolve(ext string, data []byte) (DocumentProcessor, error) {
	if p, err := r.ForExtension(ext); err == nil {
		return p, nil
	}

	p, err := r.ForContent(data)
	if err != nil {
		return nil, fmt.Errorf("extension %q: %w", normalizeExt(ext), err)
	}
	return p, nil
}

// Formats возвращает отсортированный список названий форматов.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var names []string
	for _, p := range r.byExt {
		name := p.FormatName()
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Extensions возвращает расширения, связанные с форматом.
func (r *Registry) Extensions(formatName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var exts []string
	for ext, p := range r.byExt {
		if p.FormatName() == formatName {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
