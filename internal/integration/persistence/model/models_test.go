package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestAllModelsParse(t *testing.T) {
	cache := &sync.Map{}
	for _, m := range AllModels() {
		_, err := schema.Parse(m, cache, schema.NamingStrategy{})
		assert.NoError(t, err, "%T", m)
	}
}

func TestStringList(t *testing.T) {
	t.Run("value is an array literal", func(t *testing.T) {
		value, err := StringList{"Budget", "Installments"}.Value()
		require.NoError(t, err)
		assert.Equal(t, `{"Budget","Installments"}`, value)
	})

	t.Run("scans text and bytes", func(t *testing.T) {
		var fromText StringList
		require.NoError(t, fromText.Scan(`{"Budget","First due date"}`))
		assert.Equal(t, StringList{"Budget", "First due date"}, fromText)

		var fromBytes StringList
		require.NoError(t, fromBytes.Scan([]byte(`{Name}`)))
		assert.Equal(t, StringList{"Name"}, fromBytes)
	})

	t.Run("scans null", func(t *testing.T) {
		list := StringList{"stale"}
		require.NoError(t, list.Scan(nil))
		assert.Nil(t, list)
	})
}
