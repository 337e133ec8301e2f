package splitter

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenFile(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		file := writeCatalog(t, "wurfl.xml", "a")
		r, err := OpenFile(file)
		require.NoError(t, err)
		defer r.Close()

		buf, err := ioutil.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, catalogXML("a"), string(buf))
	})
	t.Run("gzip", func(t *testing.T) {
		file := writeCatalog(t, "wurfl.xml.gz", "a")
		r, err := OpenFile(file)
		require.NoError(t, err)
		defer r.Close()

		buf, err := ioutil.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, catalogXML("a"), string(buf))
	})
	t.Run("comma-suffix", func(t *testing.T) {
		file := writeCatalog(t, "wurfl.xml,gz", "a")
		r, err := OpenFile(file)
		require.NoError(t, err)
		defer r.Close()

		buf, err := ioutil.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, catalogXML("a"), string(buf))
	})
	t.Run("missing", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "missing.xml"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInput), "unexpected error: %v", err)
	})
	t.Run("bad-header", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "wurfl.xml.gz")
		require.NoError(t, ioutil.WriteFile(file, []byte(catalogXML("a")), 0644))
		_, err := OpenFile(file)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCodec), "unexpected error: %v", err)
	})
}

func TestReadCatalogTruncated(t *testing.T) {
	var buf bytes.Buffer
	z := gzip.NewWriter(&buf)
	_, err := z.Write([]byte(catalogXML("a", "b", "c")))
	require.NoError(t, err)
	require.NoError(t, z.Close())

	file := filepath.Join(t.TempDir(), "wurfl.xml.gz")
	require.NoError(t, ioutil.WriteFile(file, buf.Bytes()[:buf.Len()/2], 0644))

	_, err = ReadCatalog(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCodec), "unexpected error: %v", err)
}

func TestCreateFile(t *testing.T) {
	content := []byte(catalogXML("a", "b"))
	t.Run("plain", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "out.xml")
		w, err := CreateFile(file, WriteOptions{})
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		assert.Equal(t, int64(len(content)), w.Size())
		got, err := ioutil.ReadFile(file)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
	t.Run("gzip", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "out.xml.gz")
		w, err := CreateFile(file, WriteOptions{Gzip: true, Level: gzip.BestCompression})
		require.NoError(t, err)
		_, err = w.Write(content)
		require.NoError(t, err)
		require.NoError(t, w.Close())

		i, err := os.Stat(file)
		require.NoError(t, err)
		assert.Equal(t, i.Size(), w.Size())

		r, err := OpenFile(file)
		require.NoError(t, err)
		defer r.Close()
		got, err := ioutil.ReadAll(r)
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})
	t.Run("bad-level", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "out.xml.gz")
		_, err := CreateFile(file, WriteOptions{Gzip: true, Level: 42})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUsage), "unexpected error: %v", err)

		_, err = os.Stat(file)
		assert.True(t, os.IsNotExist(err), "%s should not be created", file)
	})
	t.Run("missing-dir", func(t *testing.T) {
		_, err := CreateFile(filepath.Join(t.TempDir(), "missing", "out.xml"), WriteOptions{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutput), "unexpected error: %v", err)
	})
}
