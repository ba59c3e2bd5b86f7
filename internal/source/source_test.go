package source_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/termtable/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead_LocalPath(t *testing.T) {
	ctx := context.Background()
	p := filepath.Join(t.TempDir(), "nested", "out.html")
	require.NoError(t, source.Write(ctx, p, []byte("<table></table>")))

	onDisk, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", string(onDisk))

	got, err := source.Read(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "<table></table>", string(got))
}

func TestWriteRead_FileURL(t *testing.T) {
	ctx := context.Background()
	u := "file://" + filepath.ToSlash(filepath.Join(t.TempDir(), "labels.tsv"))
	require.NoError(t, source.Write(ctx, u, []byte("Label\tID\n")))
	got, err := source.Read(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, "Label\tID\n", string(got))
}

func TestRead_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.tsv")
	_, err := source.Read(context.Background(), missing)
	require.Error(t, err)
	var srcErr *source.Error
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, "read", srcErr.Op)
	assert.Equal(t, missing, srcErr.URL)
}

func TestExt(t *testing.T) {
	assert.Equal(t, ".csv", source.Ext("/tmp/exposure.CSV"))
	assert.Equal(t, ".tsv", source.Ext("s3://bucket/dir/exposure.tsv?version=3"))
	assert.Equal(t, "", source.Ext("/tmp/noext"))
}
