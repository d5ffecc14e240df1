/*
Copyright © 2024-2025 Daniele Rondina <geaaru@macaronios.org>
See AUTHORS and LICENSE for the license details and contributors.
*/
package main

import (
	cmd "github.com/MottainaiCI/ddc-shob/cmd"
)

func main() {
	cmd.Execute()
}
