package dialects

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectsCommand_PrintsDialectsAndExtensions(t *testing.T) {
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())

	expected := `● JavaScript (.js) Actively Tested
◐ JSX (.jsx) Basic Tests
◐ CoffeeScript (.coffee) Basic Tests, preprocessed
`
	assert.Equal(t, expected, out.String())
}
