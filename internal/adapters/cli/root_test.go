package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Tree(t *testing.T) {
	root := NewRootCommand()

	for _, path := range [][]string{
		{"catalog", "fetch"},
		{"catalog", "options"},
		{"prices", "calculate"},
		{"prices", "runs"},
		{"prices", "show"},
		{"config", "show"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	calculate, _, _ := root.Find([]string{"prices", "calculate"})
	for _, flag := range []string{"selection", "out", "save", "top"} {
		assert.NotNil(t, calculate.Flags().Lookup(flag), flag)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}
