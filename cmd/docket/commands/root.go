// Package commands implements the docket configuration CLI: path validation
// (test-before-save), effective-path display and identifier allocation
// against a shared Redis store.
package commands

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/viant/docket"
	"github.com/viant/docket/service/store/redis"
)

var (
	configURL string
	redisAddr string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docket",
	Short: "Docket - work-order numbering and report artifact filing",
	Long: `Docket manages work-order identifiers and the on-disk layout of
generated report artifacts. This CLI serves configuration workflows:
validating candidate storage paths before saving them, showing which
location a tenant currently resolves to, and allocating identifiers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. Called by main.main().
func Execute() error {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configURL, "config", "", "configuration YAML location")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address for the shared store (host:port)")
}

// newService builds the facade from the global flags. Without --redis the
// service runs on an in-process store, which is fine for path validation but
// allocates identifiers only other invocations will never see.
func newService(ctx context.Context) (*docket.Service, error) {
	var options []docket.Option
	if configURL != "" {
		config, err := docket.LoadConfig(ctx, configURL)
		if err != nil {
			return nil, err
		}
		options = append(options, docket.WithConfig(config))
	}
	if redisAddr != "" {
		options = append(options, docket.WithStore(redis.New(&goredis.Options{Addr: redisAddr})))
	}
	return docket.New(options...), nil
}
