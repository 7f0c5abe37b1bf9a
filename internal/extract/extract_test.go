package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPDF assembles a minimal uncompressed PDF with one text line per
// page, tracking byte offsets for the cross-reference table.
func buildPDF(t *testing.T, pageTexts []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	addObj := func(s string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(s)
	}

	buf.WriteString("%PDF-1.4\n")

	n := len(pageTexts)
	addObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")

	kids := make([]string, n)
	for i := 0; i < n; i++ {
		kids[i] = fmt.Sprintf("%d 0 R", 4+i)
	}
	addObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), n))
	addObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i := 0; i < n; i++ {
		addObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>\nendobj\n",
			4+i, 4+n+i))
	}
	for i, text := range pageTexts {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		addObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
			4+n+i, len(stream), stream))
	}

	xrefPos := buf.Len()
	size := 4 + 2*n
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", size))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		size, xrefPos))
	return buf.Bytes()
}

func buildDOCX(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(`<w:p><w:r><w:t>`)
		sb.WriteString(p)
		sb.WriteString(`</w:t></w:r></w:p>`)
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(sb.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtract_PDFMultiPage(t *testing.T) {
	blob := buildPDF(t, []string{"Page one text", "Page two text", "Page three text"})

	text, err := Extract(blob, "pdf")
	require.NoError(t, err)

	// Three pages join across exactly two boundaries.
	assert.Equal(t, 2, strings.Count(text, "\n"))
	assert.Contains(t, text, "Page one text")
	assert.Contains(t, text, "Page three text")
}

func TestExtract_PDFEmptyPage(t *testing.T) {
	blob := buildPDF(t, []string{"Alpha", "", "Gamma"})

	text, err := Extract(blob, "pdf")
	require.NoError(t, err)

	// The blank middle page contributes an empty string, not an error.
	assert.Equal(t, 2, strings.Count(text, "\n"))
	assert.Contains(t, text, "Alpha")
	assert.Contains(t, text, "Gamma")
}

func TestExtract_PDFCorrupt(t *testing.T) {
	var extErr *ExtractionError

	_, err := Extract([]byte("%PDF-1.4 truncated garbage"), "pdf")
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, TypePDF, extErr.Format)

	_, err = Extract([]byte("not a pdf at all"), "pdf")
	assert.ErrorAs(t, err, &extErr)
}

func TestExtract_DOCX(t *testing.T) {
	blob := buildDOCX(t, []string{"First paragraph.", "Second paragraph."})

	text, err := Extract(blob, "docx")
	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\nSecond paragraph.", text)
}

func TestExtract_DOCXSplitRuns(t *testing.T) {
	// Word frequently splits one sentence across several runs.
	var sb strings.Builder
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	sb.WriteString(`<w:p><w:r><w:t>Split </w:t></w:r><w:r><w:t>across runs.</w:t></w:r></w:p>`)
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	doc, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = doc.Write([]byte(sb.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	text, err := Extract(buf.Bytes(), "docx")
	require.NoError(t, err)
	assert.Equal(t, "Split across runs.", text)
}

func TestExtract_DOCXCorrupt(t *testing.T) {
	var extErr *ExtractionError

	_, err := Extract([]byte("not a zip archive"), "docx")
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, TypeDOCX, extErr.Format)
}

func TestExtract_DOCXMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	f, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = f.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	var extErr *ExtractionError
	_, err = Extract(buf.Bytes(), "docx")
	require.ErrorAs(t, err, &extErr)
	assert.Contains(t, extErr.Reason, "document.xml")
}

func TestExtract_UnsupportedType(t *testing.T) {
	_, err := Extract([]byte("plain text"), "txt")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestNormalizeType(t *testing.T) {
	assert.Equal(t, "pdf", NormalizeType(".PDF"))
	assert.Equal(t, "docx", NormalizeType("Docx"))
	assert.True(t, Supported(".pdf"))
	assert.True(t, Supported("DOCX"))
	assert.False(t, Supported("txt"))
}
