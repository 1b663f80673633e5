package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunUserCommandArgs(t *testing.T) {
	t.Run("missing subcommand", func(t *testing.T) {
		err := runUserCommand(nil)
		require.Error(t, err)
		require.Contains(t, err.Error(), "usage: user")
	})

	t.Run("unknown subcommand", func(t *testing.T) {
		err := runUserCommand([]string{"frobnicate"})
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown user subcommand")
	})
}
