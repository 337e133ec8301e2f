package splitter

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/beevik/etree"
)

const (
	TagRoot    = "wurfl"
	TagPatch   = "wurfl_patch"
	TagDevices = "devices"
	TagDevice  = "device"

	AttrID    = "id"
	GenericID = "generic"
)

type Catalog struct {
	doc     *etree.Document
	devices *etree.Element
}

// ReadCatalog opens and parses the catalog stored in file.
func ReadCatalog(file string) (*Catalog, error) {
	r, err := OpenFile(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	c, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return c, nil
}

// Parse reads a catalog from r. The document should have a wurfl root element
// with a devices child.
func Parse(r io.Reader) (*Catalog, error) {
	buf, err := ioutil.ReadAll(r)
	if err != nil {
		if errors.Is(err, ErrCodec) || errors.Is(err, ErrInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInput, err)
	}
	if err := wellFormed(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrStructure)
	}
	if root.Tag != TagRoot {
		return nil, fmt.Errorf("%w: unexpected root element %s (want %s)", ErrStructure, root.Tag, TagRoot)
	}
	devices := root.SelectElement(TagDevices)
	if devices == nil {
		return nil, fmt.Errorf("%w: %s element not found", ErrStructure, TagDevices)
	}
	c := Catalog{
		doc:     doc,
		devices: devices,
	}
	return &c, nil
}

// Devices returns the device elements of the catalog in document order. Any
// other node found under devices is ignored.
func (c *Catalog) Devices() []*etree.Element {
	return c.devices.SelectElements(TagDevice)
}

// wellFormed checks that start and end elements of buf match and that buf has
// at most one root element. The tree builder only sees raw tokens and accepts
// unbalanced documents.
func wellFormed(buf []byte) error {
	var (
		dec   = xml.NewDecoder(bytes.NewReader(buf))
		depth int
		roots int
	)
	dec.Strict = true
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			if roots > 1 {
				return fmt.Errorf("multiple root elements")
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
}
