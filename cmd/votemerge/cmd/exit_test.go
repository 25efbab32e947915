package cmd

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(fmt.Errorf("fetch failed")))
	assert.Equal(t, 2, exitCode(&exitError{code: 2, msg: "diagnostics reported"}))
	assert.Equal(t, 2, exitCode(fmt.Errorf("run: %w", &exitError{code: 2, msg: "diagnostics reported"})))
}
