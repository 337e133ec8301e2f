package splitter

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"
)

func catalogXML(ids ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString("<wurfl>\n  <version><ver>test</ver></version>\n  <devices>\n")
	for _, id := range ids {
		fmt.Fprintf(&b, `    <device id="%s" user_agent="ua-%s" fall_back="root">`+"\n", id, id)
		fmt.Fprintf(&b, `      <group id="product_info"><capability name="brand_name" value="%s"/></group>`+"\n", id)
		b.WriteString("    </device>\n")
	}
	b.WriteString("  </devices>\n</wurfl>\n")
	return b.String()
}

func writeCatalog(t *testing.T, name string, ids ...string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	w, err := os.Create(file)
	require.NoError(t, err)
	defer w.Close()

	if filepath.Ext(name) == ExtGZ {
		z := gzip.NewWriter(w)
		_, err = z.Write([]byte(catalogXML(ids...)))
		require.NoError(t, err)
		require.NoError(t, z.Close())
		return file
	}
	_, err = w.WriteString(catalogXML(ids...))
	require.NoError(t, err)
	return file
}

func devicesOf(ids ...string) []*etree.Element {
	es := make([]*etree.Element, len(ids))
	for i, id := range ids {
		es[i] = etree.NewElement(TagDevice)
		es[i].CreateAttr(AttrID, id)
	}
	return es
}

func idsOf(es []*etree.Element) []string {
	ids := make([]string, len(es))
	for i, e := range es {
		ids[i] = e.SelectAttrValue(AttrID, "")
	}
	return ids
}

// readOutput parses a written file and gives its root tag and the ids of its
// devices.
func readOutput(t *testing.T, file string) (string, []string) {
	t.Helper()
	r, err := OpenFile(file)
	require.NoError(t, err)
	defer r.Close()

	doc := etree.NewDocument()
	_, err = doc.ReadFrom(r)
	require.NoError(t, err, "%s is not well formed", file)

	root := doc.Root()
	require.NotNil(t, root)
	require.Len(t, root.SelectElements(TagDevices), 1, "%s should have one devices element", file)
	return root.Tag, idsOf(root.SelectElement(TagDevices).SelectElements(TagDevice))
}
