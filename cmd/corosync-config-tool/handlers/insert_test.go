package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shikifyj/corosync-config-tool/internal/textedit"
)

func writeTarget(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corosync.conf")
	require.NoError(t, os.WriteFile(path, []byte("totem {\n}\nquorum {\n}\n"), 0o644))
	return path
}

func TestInsert_Print(t *testing.T) {
	path := writeTarget(t)
	var out bytes.Buffer

	err := Insert(&out, InsertOptions{File: path, Anchor: "quorum {", Placement: textedit.Above, Content: "nodelist {\n}"})
	require.NoError(t, err)
	assert.Equal(t, "totem {\n}\nnodelist {\n}\nquorum {\n}\n", out.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "totem {\n}\nquorum {\n}\n", string(data), "file untouched without --write")
}

func TestInsert_Write(t *testing.T) {
	path := writeTarget(t)
	content := filepath.Join(t.TempDir(), "frag")
	require.NoError(t, os.WriteFile(content, []byte("\tx: 1\n"), 0o644))
	var out bytes.Buffer

	err := Insert(&out, InsertOptions{File: path, Anchor: "totem {", Placement: textedit.Under, ContentFile: content, Write: true})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "updated (under)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "totem {\n\tx: 1\n}\nquorum {\n}", string(data))
}

func TestInsert_Errors(t *testing.T) {
	path := writeTarget(t)
	var out bytes.Buffer

	err := Insert(&out, InsertOptions{File: path, Anchor: "nope {", Placement: textedit.Above, Content: "x"})
	assert.ErrorIs(t, err, textedit.ErrAnchorNotFound)
	assert.Contains(t, err.Error(), `"nope {"`)

	err = Insert(&out, InsertOptions{File: path, Anchor: "quorum {"})
	assert.ErrorContains(t, err, "nothing to insert")

	err = Insert(&out, InsertOptions{File: path, ContentFile: filepath.Join(t.TempDir(), "missing")})
	assert.ErrorContains(t, err, "failed to read content")

	err = Insert(&out, InsertOptions{File: filepath.Join(t.TempDir(), "missing"), Content: "x"})
	assert.Error(t, err)
	assert.Empty(t, out.String())
}
