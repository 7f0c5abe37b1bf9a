package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Supported declared types for uploaded documents.
const (
	TypePDF  = "pdf"
	TypeDOCX = "docx"
)

var ErrUnsupportedType = errors.New("unsupported document type")

// ExtractionError reports a blob that could not be parsed as its
// declared type. The reason is user-visible.
type ExtractionError struct {
	Format string
	Reason string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("could not read %s: %s", strings.ToUpper(e.Format), e.Reason)
}

// NormalizeType lowercases a declared type and strips a leading dot, so
// ".PDF" and "pdf" are the same thing.
func NormalizeType(t string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(t), "."))
}

// Supported reports whether the declared type has an extractor.
func Supported(declaredType string) bool {
	switch NormalizeType(declaredType) {
	case TypePDF, TypeDOCX:
		return true
	}
	return false
}

// Extract produces plain text from an uploaded document blob. It reads
// only the input; a failure never carries partial text.
func Extract(blob []byte, declaredType string) (string, error) {
	switch NormalizeType(declaredType) {
	case TypePDF:
		return extractPDF(blob)
	case TypeDOCX:
		return extractDOCX(blob)
	default:
		return "", fmt.Errorf("%w: %q (expected pdf or docx)", ErrUnsupportedType, declaredType)
	}
}
