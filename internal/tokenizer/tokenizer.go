package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/terratensor/segment"
)

const (
	SortFreq  = "freq"
	SortAlpha = "alpha"
)

// TokenCount - токен и число его вхождений.
type TokenCount struct {
	Token string
	Count int
}

// Tokenizer собирает словарь из обработанного содержимого документов.
type Tokenizer struct {
	lowercase   bool
	filterPunct bool

	mutex sync.Mutex
	vocab map[string]int
}

func NewTokenizer(lowercase, filterPunct bool) *Tokenizer {
	return &Tokenizer{
		lowercase:   lowercase,
		filterPunct: filterPunct,
		vocab:       make(map[string]int),
	}
}

// ValidSort проверяет тип сортировки.
func ValidSort(sortType string) bool {
	switch sortType {
	case "", SortFreq, SortAlpha:
		return true
	}
	return false
}

// Add токенизирует текст построчно и добавляет токены в словарь.
func (t *Tokenizer) Add(text string) error {
	localVocab := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(text))
	buf := make([]byte, 1<<20) // 1 МБ
	scanner.Buffer(buf, 1<<20)

	for scanner.Scan() {
		line := scanner.Text()
		// Токенизация строки
		tokens := segment.NewTokenizer().Tokenize(line)
		if len(tokens) == 0 {
			// segment не возвращает токенов для строки из одного слова.
			t.count(localVocab, strings.TrimSpace(line))
			continue
		}
		for _, token := range tokens {
			t.count(localVocab, token.Text)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading content: %w", err)
	}

	t.mutex.Lock()
	for token, count := range localVocab {
		t.vocab[token] += count
	}
	t.mutex.Unlock()

	return nil
}

func (t *Tokenizer) count(vocab map[string]int, tokenText string) {
	if strings.TrimSpace(tokenText) == "" {
		return
	}
	if t.lowercase {
		tokenText = strings.ToLower(tokenText)
	}
	if t.filterPunct && isPunctuation(tokenText) {
		return
	}
	vocab[tokenText]++
}

// Vocabulary возвращает словарь в заданном порядке.
// Без сортировки токены идут по алфавиту.
func (t *Tokenizer) Vocabulary(sortType string) []TokenCount {
	t.mutex.Lock()
	tokenFrequencies := make([]TokenCount, 0, len(t.vocab))
	for token, count := range t.vocab {
		tokenFrequencies = append(tokenFrequencies, TokenCount{Token: token, Count: count})
	}
	t.mutex.Unlock()

	switch sortType {
	case SortFreq:
		sort.Slice(tokenFrequencies, func(i, j int) bool {
			if tokenFrequencies[i].Count != tokenFrequencies[j].Count {
				return tokenFrequencies[i].Count > tokenFrequencies[j].Count
			}
			return tokenFrequencies[i].Token < tokenFrequencies[j].Token
		})
	default:
		sort.Slice(tokenFrequencies, func(i, j int) bool {
			return tokenFrequencies[i].Token < tokenFrequencies[j].Token
		})
	}
	return tokenFrequencies
}

// WriteTo сохраняет словарь в формате "токен число" построчно.
func (t *Tokenizer) WriteTo(w io.Writer, sortType string) error {
	bw := bufio.NewWriter(w)
	for _, tf := range t.Vocabulary(sortType) {
		if _, err := fmt.Fprintf(bw, "%s %d\n", tf.Token, tf.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func isPunctuation(token string) bool {
	for _, r := range token {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
