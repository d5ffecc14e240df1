/*
Copyright © 2024 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package helpers

import (
	"bufio"
	"io"
	"strings"
)

// Ask reads a yes/no answer from the reader. Any error or
// an empty answer is handled as a no.
func Ask(in io.Reader) bool {
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.ToLower(strings.TrimSpace(input))

	if input == "y" || input == "yes" {
		return true
	}

	return false
}
