package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeFieldsOverwritesPatchedFieldsOnly(t *testing.T) {
	base := JSON{"id": "p1", "name": "Asha", "status": "open"}
	patch := JSON{"status": "closed"}

	merged := MergeFields(base, patch)

	assert.Equal(t, "p1", merged["id"])
	assert.Equal(t, "Asha", merged["name"])
	assert.Equal(t, "closed", merged["status"])

	// Inputs stay untouched.
	assert.Equal(t, "open", base["status"])
}

func TestMergeFieldsAddsNewFields(t *testing.T) {
	merged := MergeFields(JSON{"id": "p1"}, JSON{"address": "12 Hill Rd"})

	assert.Equal(t, "p1", merged["id"])
	assert.Equal(t, "12 Hill Rd", merged["address"])
}

func TestMergeFieldsIsShallow(t *testing.T) {
	base := JSON{"meta": map[string]interface{}{"a": 1, "b": 2}}
	patch := JSON{"meta": map[string]interface{}{"a": 9}}

	merged := MergeFields(base, patch)

	// A patched object replaces the old value entirely.
	assert.Equal(t, map[string]interface{}{"a": 9}, merged["meta"])
}

func TestJSONValueAndScanRoundTrip(t *testing.T) {
	original := JSON{"id": "p1", "name": "Asha"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned JSON
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, original, scanned)
}

func TestJSONValueEmpty(t *testing.T) {
	var j JSON
	value, err := j.Value()
	require.NoError(t, err)
	assert.Nil(t, value)
}

func TestJSONScanNil(t *testing.T) {
	var j JSON
	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)
}
