package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	versionCmd.SetOut(buf)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, "maildeck version")
	assert.Contains(t, out, version)
}
