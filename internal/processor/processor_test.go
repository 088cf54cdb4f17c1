package processor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type shoutProcessor struct{}

func (shoutProcessor) Process(content string) string { return content + "!" }
func (shoutProcessor) FormatName() string            { return "Shout" }

func TestRegistry_ForExtension(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		name    string
		ext     string
		wantErr bool
	}{
		{name: "txt", ext: ".txt"},
		{name: "md", ext: ".md"},
		{name: "upper case", ext: ".TXT"},
		{name: "without dot", ext: "text"},
		{name: "pdf", ext: ".pdf", wantErr: true},
		{name: "empty", ext: "", wantErr: true},
		{name: "dot only", ext: ".", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := r.ForExtension(tt.ext)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFormat)
				require.Nil(t, p)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "Plain Text", p.FormatName())
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register(shoutProcessor{}, "shout", ".SH"))

	p, err := r.ForExtension(".sh")
	require.NoError(t, err)
	require.Equal(t, "hi!", p.Process("hi"))

	err = r.Register(NewPlainTextProcessor(), ".txt", ".shout")
	require.ErrorIs(t, err, ErrDuplicateExtension)

	// Неудачная регистрация не должна оставлять частичных записей.
	_, err = r.ForExtension(".txt")
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	require.Error(t, r.Register(shoutProcessor{}))
	require.Error(t, r.Register(shoutProcessor{}, " "))
	require.Error(t, r.Register(nil, ".x"))
}

func TestRegistry_ForContent(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.ForContent([]byte("just some words\nand another line\n"))
	require.NoError(t, err)
	require.Equal(t, "Plain Text", p.FormatName())

	_, err = r.ForContent([]byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Contains(t, err.Error(), "application/pdf")

	_, err = NewRegistry().ForContent([]byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRegistry_Resolve(t *testing.T) {
	r := DefaultRegistry()

	p, err := r.Resolve(".log", []byte("2024-01-01 INFO started\n"))
	require.NoError(t, err)
	require.Equal(t, "Plain Text", p.FormatName())

	_, err = r.Resolve(".bin", []byte{0x00, 0x01, 0x02, 0xff, 0x00})
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Contains(t, err.Error(), ".bin")
	require.Contains(t, err.Error(), "application/octet-stream")

	_, err = r.Resolve(".pdf", []byte("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n1 0 obj\n"))
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	require.Contains(t, err.Error(), "application/pdf")
}

func TestRegistry_Formats(t *testing.T) {
	r := DefaultRegistry()
	require.Equal(t, []string{"Plain Text"}, r.Formats())
	require.Equal(t, []string{".md", ".text", ".txt"}, r.Extensions("Plain Text"))

	require.NoError(t, r.Register(shoutProcessor{}, ".shout"))
	require.Equal(t, []string{"Plain Text", "Shout"}, r.Formats())
	require.Empty(t, r.Extensions("Unknown"))
}
