package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestProjectCategoryForeignKey(t *testing.T) {
	s, err := schema.Parse(&Project{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	rel, ok := s.Relationships.Relations["CategoryRef"]
	require.True(t, ok)
	assert.Equal(t, schema.BelongsTo, rel.Type)

	c := rel.ParseConstraint()
	require.NotNil(t, c)
	assert.Equal(t, "projects", c.Schema.Table)
	assert.Equal(t, "categories", c.ReferenceSchema.Table)
	require.Len(t, c.ForeignKeys, 1)
	assert.Equal(t, "category_id", c.ForeignKeys[0].DBName)
	assert.Equal(t, "SET NULL", c.OnDelete)
}

func TestProjectChildrenCascade(t *testing.T) {
	s, err := schema.Parse(&Project{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	for _, name := range []string{"Images", "Videos", "Blocks"} {
		rel, ok := s.Relationships.Relations[name]
		require.True(t, ok, name)

		c := rel.ParseConstraint()
		require.NotNil(t, c, name)
		assert.Equal(t, "CASCADE", c.OnDelete, name)
		assert.Equal(t, "project_id", c.ForeignKeys[0].DBName, name)
	}
}
