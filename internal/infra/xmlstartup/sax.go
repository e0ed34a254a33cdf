// Package xmlstartup reads the XML startup files of the user-function plugins.
//
// Parsing is event driven: Parse walks the document once and reports start and
// end elements, character data and comments to a Handler, which keeps whatever
// state it needs. Parsing stops on the first malformed token.
package xmlstartup

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// Handler receives the parse events of a single document.
type Handler interface {
	OnStartDocument()
	OnEndDocument()
	OnStartElement(name string, attrs []xml.Attr)
	OnEndElement(name string)
	OnCharacters(text string)
	OnComment(text string)
	OnWarning(msg string)
	OnError(msg string)
	OnFatalError(msg string)
}

// Parse feeds the events of the document in r to h. A syntax error is
// reported through OnFatalError and returned; OnEndDocument is not called
// in that case.
func Parse(r io.Reader, h Handler) error {
	dec := xml.NewDecoder(r)

	h.OnStartDocument()
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			h.OnFatalError(err.Error())
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			h.OnStartElement(t.Name.Local, t.Attr)
		case xml.EndElement:
			h.OnEndElement(t.Name.Local)
		case xml.CharData:
			h.OnCharacters(string(t))
		case xml.Comment:
			h.OnComment(string(t))
		}
	}
	h.OnEndDocument()

	return nil
}

// ParseFile reads the whole file into a buffer before parsing it.
func ParseFile(path string, h Handler) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return fmt.Errorf("empty xml file")
	}
	return Parse(bytes.NewReader(b), h)
}
