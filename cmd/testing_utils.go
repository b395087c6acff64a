// Package cmd contains testing utilities shared between command tests.
// This file provides helpers for running the CLI against a temporary
// profile root and capturing its output.
package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
)

// runKoru executes the CLI with args against the given profile root and
// returns everything printed to stdout and stderr.
func runKoru(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()

	ResetGlobalState()

	root := &cobra.Command{Use: "koru"}
	RegisterGlobalFlags(root)
	root.AddCommand(CategoryCmd)
	root.AddCommand(ProfileCmd)
	root.AddCommand(AppCmd)
	root.AddCommand(MergeCmd)
	root.AddCommand(ExportCmd)
	root.AddCommand(EncryptCmd)
	root.AddCommand(DecryptCmd)
	root.AddCommand(LogCmd)

	root.SetArgs(append([]string{"--home", home}, args...))

	return captureOutput(func() error {
		return root.Execute()
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stdoutReader)
		outputChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, stderrReader)
		outputChan <- buf.String()
	}()

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}
