// SPDX-FileCopyrightText: The testci-common-email Authors
//
// SPDX-License-Identifier: MIT

// Package main provides the CLI entry point for emailcompose.
package main

import (
	"os"

	"github.com/BHodel/testci-common-email/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
