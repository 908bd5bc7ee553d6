package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webmapper-go/webmapper/internal/mapper"
)

func TestMapCommandInvalidDomain(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"map", "google.com", "--no-report"})

	err := root.Execute()
	require.ErrorIs(t, err, mapper.ErrInvalidDomain)
}

func TestMapCommandRequiresURL(t *testing.T) {
	root := newRootCmd()
	root.SetOut(new(bytes.Buffer))
	root.SetErr(new(bytes.Buffer))
	root.SetArgs([]string{"map"})

	assert.Error(t, root.Execute())
}
