package processor

// PlainTextProcessor обрабатывает текстовые документы.
type PlainTextProcessor struct{}

func NewPlainTextProcessor() *PlainTextProcessor {
	return &PlainTextProcessor{}
}

// Process возвращает содержимое без изменений.
func (p *PlainTextProcessor) Process(content string) string {
	return content
}

func (p *PlainTextProcessor) FormatName() string {
	return "Plain Text"
}
