package iocli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestBuffered_PrintlnAndPrintf(t *testing.T) {
	var out bytes.Buffer
	stdio := NewBuffered(strings.NewReader(""), &out)

	stdio.Println("hello", "world")
	stdio.Printf("count: %d\n", 3)

	assert.Contains(t, out.String(), "hello world")
	assert.Contains(t, out.String(), "count: 3")
}

func TestBuffered_ReadInput(t *testing.T) {
	var out bytes.Buffer
	stdio := NewBuffered(strings.NewReader("  user input  \n"), &out)

	result, err := stdio.ReadInput("Identifier: ")
	require.NoError(t, err)

	assert.Equal(t, "user input", result)
	// Приглашение напечатано
	assert.Contains(t, out.String(), "Identifier: ")
}

func TestBuffered_ReadInputWithoutTrailingNewline(t *testing.T) {
	stdio := NewBuffered(strings.NewReader("last line"), &bytes.Buffer{})

	result, err := stdio.ReadInput("> ")
	require.NoError(t, err)
	assert.Equal(t, "last line", result)
}

func TestBuffered_ReadPasswordFallsBackToPlainRead(t *testing.T) {
	stdio := NewBuffered(strings.NewReader("Secret123!\n"), &bytes.Buffer{})

	result, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "Secret123!", result)
}

func TestBuffered_ReadInputEmptyStream(t *testing.T) {
	stdio := NewBuffered(strings.NewReader(""), &bytes.Buffer{})

	_, err := stdio.ReadInput("> ")
	require.Error(t, err)
}
