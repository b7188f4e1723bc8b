// Package main provides the datatable CLI.
package main

import "github.com/mokka-studios/datatable/internal/cli"

func main() {
	cli.Execute()
}
