package splitter

import (
	"fmt"
	"path/filepath"

	"github.com/beevik/etree"
)

const (
	fileBase  = "wurfl.xml"
	filePatch = "wurfl_patch_%d.xml"
)

// Filename gives the name of the file holding the slice at index.
func Filename(index int, compress bool) string {
	file := fileBase
	if index > 0 {
		file = fmt.Sprintf(filePatch, index)
	}
	if compress {
		file += ExtGZ
	}
	return file
}

// Wrap builds the document for the slice at index. The base document (index
// 0) is rooted at wurfl and starts with the generic device when given. Other
// documents are rooted at wurfl_patch and never carry the generic device.
//
// Every device is copied: the returned document shares no element with its
// inputs.
func Wrap(index int, generic *etree.Element, slice []*etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	tag := TagRoot
	if index > 0 {
		tag = TagPatch
	}
	root := doc.CreateElement(tag)
	devices := root.CreateElement(TagDevices)
	if index == 0 && generic != nil {
		devices.AddChild(generic.Copy())
	}
	for _, d := range slice {
		devices.AddChild(d.Copy())
	}
	return doc
}

// Result describes a written file.
type Result struct {
	Index   int
	File    string
	Devices int
	Size    int64
}

// WriteDocument serializes doc into file.
func WriteDocument(doc *etree.Document, file string, opts WriteOptions) (int64, error) {
	w, err := CreateFile(file, opts)
	if err != nil {
		return 0, err
	}
	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		w.Close()
		return w.Size(), err
	}
	if err := w.Close(); err != nil {
		return w.Size(), err
	}
	return w.Size(), nil
}

func emit(dir string, index int, generic *etree.Element, slice []*etree.Element, opts WriteOptions) (Result, error) {
	r := Result{
		Index:   index,
		File:    filepath.Join(dir, Filename(index, opts.Gzip)),
		Devices: len(slice),
	}
	doc := Wrap(index, generic, slice)
	if index == 0 && generic != nil {
		r.Devices++
	}
	size, err := WriteDocument(doc, r.File, opts)
	r.Size = size
	return r, err
}
