package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextExtractor_PassThrough(t *testing.T) {
	text, err := (&TextExtractor{}).Extract(strings.NewReader("Amazon EC2 USD 9.15\n"))
	require.NoError(t, err)
	assert.Equal(t, "Amazon EC2 USD 9.15\n", text)
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&TextExtractor{})

	assert.NotNil(t, r.Get("text"))
	assert.NotNil(t, r.Get("TEXT"))
	assert.Nil(t, r.Get("pdf"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&TextExtractor{})
	assert.Panics(t, func() {
		r.Register(&TextExtractor{})
	})
}

func TestRegistry_ForFile(t *testing.T) {
	r := DefaultRegistry()

	e, err := r.ForFile("invoices/june.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", e.Format())

	e, err = r.ForFile("invoices/june.txt")
	require.NoError(t, err)
	assert.Equal(t, "text", e.Format())

	e, err = r.ForFile("invoices/june")
	require.NoError(t, err)
	assert.Equal(t, "text", e.Format())
}

func TestRegistry_ForFileUnknownExtension(t *testing.T) {
	_, err := DefaultRegistry().ForFile("invoice.docx")
	assert.Error(t, err)
}

func TestPDFExtractor_RejectsGarbage(t *testing.T) {
	_, err := (&PDFExtractor{}).Extract(strings.NewReader("not a pdf"))
	assert.Error(t, err)
}
