package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Output streams, replaceable in tests
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
	Stdin  io.Reader = os.Stdin
)

// Confirm prompts the user for confirmation on Stdin
func Confirm(prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(Stdout, prompt+suffix)

	reader := bufio.NewReader(Stdin)
	response, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || response == "") {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// PrintSuccess prints a success message unless quiet mode is enabled
func PrintSuccess(format string, args ...interface{}) {
	printTagged(Stdout, "✓", "OK:", format, args...)
}

// PrintInfo prints an info message unless quiet mode is enabled
func PrintInfo(format string, args ...interface{}) {
	printTagged(Stdout, "ℹ", "INFO:", format, args...)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...interface{}) {
	printTagged(Stderr, "⚠", "WARNING:", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...interface{}) {
	printTagged(Stderr, "✗", "ERROR:", format, args...)
}

func printTagged(w io.Writer, symbol, plain, format string, args ...interface{}) {
	if quiet && w == Stdout {
		return
	}
	prefix := symbol
	if noColor {
		prefix = plain
	}
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}

// Global flags (will be set from cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
