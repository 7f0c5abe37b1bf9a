package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// extractDOCX reads word/document.xml from the archive and joins
// paragraph (w:p) texts with newlines. Text runs (w:t) within a
// paragraph are concatenated.
func extractDOCX(blob []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return "", &ExtractionError{Format: TypeDOCX, Reason: err.Error()}
	}

	var doc io.ReadCloser
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			doc, err = f.Open()
			if err != nil {
				return "", &ExtractionError{Format: TypeDOCX, Reason: err.Error()}
			}
			break
		}
	}
	if doc == nil {
		return "", &ExtractionError{Format: TypeDOCX, Reason: "word/document.xml not found"}
	}
	defer doc.Close()

	return paragraphText(doc)
}

func paragraphText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)

	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", &ExtractionError{Format: TypeDOCX, Reason: err.Error()}
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "p":
				inPara = true
				current.Reset()
			case "t":
				if inPara {
					var text string
					if err := dec.DecodeElement(&text, &el); err != nil {
						return "", &ExtractionError{Format: TypeDOCX, Reason: err.Error()}
					}
					current.WriteString(text)
				}
			}
		case xml.EndElement:
			if el.Name.Local == "p" && inPara {
				paragraphs = append(paragraphs, current.String())
				inPara = false
			}
		}
	}
	return strings.Join(paragraphs, "\n"), nil
}
