package main

import (
	"fmt"
	"os"

	"github.com/venda-crm/venda/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
