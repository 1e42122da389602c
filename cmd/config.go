package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lakshaymaurya-felt/venvsweep/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as TOML",
	Long: `Print the configuration a sweep would use: built-in defaults merged with
the config file. The output can be saved as a starting config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		targets := cfg.Targets(nil)
		out, err := config.Effective{
			Days:         cfg.DaysOr(config.DefaultDays),
			CacheDirs:    targets.CacheDirNames(),
			PackageFiles: targets.PackageFiles,
			Exclude:      targets.ExcludeNames(),
		}.Encode()
		if err != nil {
			return err
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", path, out)
		return nil
	},
}
