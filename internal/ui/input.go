package ui

import (
	"bufio"
	"os"
	"strings"
)

// Confirm prompts for a yes/no answer. Only "y" and "yes" (case-insensitive)
// count as confirmation; everything else, including EOF, declines.
func Confirm(prompt string) bool {
	reader := bufio.NewReader(os.Stdin)
	os.Stdout.WriteString(prompt + " [y/N] ")
	input, _ := reader.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}
