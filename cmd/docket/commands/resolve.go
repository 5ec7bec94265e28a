package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var resolveTenant string

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Show the effective artifact root for a tenant",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		base := svc.ResolveEffectivePath(cmd.Context(), resolveTenant)
		fmt.Printf("path:   %v\n", base.Path)
		fmt.Printf("source: %v\n", base.Source)
		if base.IsUserConfigured {
			color.Green("configured by user")
		} else {
			color.Yellow("falling back to %v default", base.Source)
		}
		return nil
	},
}

func init() {
	resolveCmd.Flags().StringVar(&resolveTenant, "tenant", "", "tenant scope (empty for global)")
	rootCmd.AddCommand(resolveCmd)
}
