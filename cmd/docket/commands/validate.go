package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check whether a candidate storage path is usable",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		result := svc.ValidatePath(cmd.Context(), args[0])
		switch {
		case result.Valid && result.Writable:
			color.Green("OK: %v is a writable folder", args[0])
		case result.Valid:
			color.Yellow("WARN: %v", result.Detail)
		default:
			color.Red("INVALID (%v): %v", result.Code, result.Detail)
			return fmt.Errorf("path validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
