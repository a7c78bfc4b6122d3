package spec

import (
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestCollectionFormat_Split(t *testing.T) {
	assert.Equal(t, []string{"1234", "5678"}, CollectionFormat("").Split("1234,5678"))
	assert.Equal(t, []string{"a", " b"}, CollectionCSV.Split("a, b"))
	assert.Equal(t, []string{"a", "b", "c"}, CollectionSSV.Split("a b\tc"))
	assert.Equal(t, []string{"a", "", "b"}, CollectionSSV.Split("a  b"))
	assert.Equal(t, []string{"a b", "c"}, CollectionTSV.Split("a b\tc"))
	assert.Equal(t, []string{"a,b", "c"}, CollectionPipes.Split("a,b|c"))
	assert.Equal(t, []string{"a", "b"}, CollectionMulti.Split("a,b"))
	assert.Equal(t, []string{"a", "b"}, CollectionFormat("semicolons").Split("a,b"))
	assert.Equal(t, []string{""}, CollectionCSV.Split(""))
}

func TestCollectionFormat_Delimiter(t *testing.T) {
	assert.Equal(t, ",", CollectionCSV.Delimiter())
	assert.Equal(t, " ", CollectionSSV.Delimiter())
	assert.Equal(t, "\t", CollectionTSV.Delimiter())
	assert.Equal(t, "|", CollectionPipes.Delimiter())
	assert.Equal(t, ",", CollectionMulti.Delimiter())
	assert.Equal(t, ",", CollectionFormat("").Delimiter())
}
