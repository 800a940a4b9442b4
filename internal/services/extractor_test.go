package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainText(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("resume.txt", []byte("Jane Doe\nSenior Engineer"))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior Engineer", text)
}

func TestExtractMarkdown(t *testing.T) {
	e := NewExtractor()

	text, err := e.Extract("resume.md", []byte("# Jane Doe\n\n- Go\n- Kubernetes"))
	require.NoError(t, err)
	assert.Equal(t, "# Jane Doe\n\n- Go\n- Kubernetes", text)
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("resume.docx", []byte("whatever"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume.docx")
	assert.Contains(t, err.Error(), "unsupported")
}

func TestExtractRejectsInvalidUTF8(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("resume.txt", []byte{0xff, 0xfe, 0xfd})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resume.txt")
}

func TestExtractCorruptPDFNamesSourceFile(t *testing.T) {
	e := NewExtractor()

	_, err := e.Extract("broken.pdf", []byte("this is not a pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}
