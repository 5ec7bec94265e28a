package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var allocateScope string

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Allocate the next work-order identifier for a scope",
	RunE: func(cmd *cobra.Command, args []string) error {
		if redisAddr == "" {
			color.Yellow("no --redis store configured; the allocated identifier is not shared with other instances")
		}
		svc, err := newService(cmd.Context())
		if err != nil {
			return err
		}
		id, err := svc.AllocateIdentifier(cmd.Context(), allocateScope)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	allocateCmd.Flags().StringVar(&allocateScope, "scope", "", "allocation scope (empty for global)")
	rootCmd.AddCommand(allocateCmd)
}
