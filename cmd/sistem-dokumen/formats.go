package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported document formats",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromFlags()
		if err != nil {
			return err
		}
		return a.listFormats(cmd.OutOrStdout())
	},
}

func (a *appInstance) listFormats(out io.Writer) error {
	for _, name := range a.Registry.Formats() {
		exts := a.Registry.Extensions(name)
		if _, err := fmt.Fprintf(out, "%s\t%s\n", name, strings.Join(exts, " ")); err != nil {
			return err
		}
	}
	return nil
}
