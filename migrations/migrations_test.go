package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	files, err := Load(Embedded())
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "001_initial_schema.sql", files[0].Name)
	assert.Contains(t, files[0].Content, "CREATE TABLE special_prices")
	assert.Contains(t, files[0].Content, "idx_special_prices_triple")
}

func TestLoad_SortsAndSkipsOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"002_b.sql":  {Data: []byte("CREATE INDEX b ON t(b);")},
		"001_a.sql":  {Data: []byte("CREATE TABLE t (a INT64) PRIMARY KEY (a);")},
		"README.txt": {Data: []byte("ignored")},
	}

	files, err := Load(fsys)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001_a.sql", files[0].Name)
	assert.Equal(t, "002_b.sql", files[1].Name)
}
