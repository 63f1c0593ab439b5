// Package cli implements recipectl, the command-line client of the recipe API.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/recipebox/recipe-api/pkg/client"
)

const (
	keyAPIURL    = "api-url"
	keyTokenFile = "token-file"
	keyJSON      = "json"
)

// app holds the state shared by every command of one invocation.
type app struct {
	v      *viper.Viper
	client *client.Client
}

// NewRootCommand builds the recipectl command tree.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "recipectl",
		Short: "Manage your recipes from the terminal",
		Long: `recipectl talks to the recipe API.

Examples:
  recipectl register --name Ana --email ana@example.com
  recipectl login --email ana@example.com
  recipectl recipes list --search soup
  recipectl recipes create --title Soup --ingredient water --ingredient salt --instructions "Boil."`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default $XDG_CONFIG_HOME/recipebox/recipectl.yaml)")
	flags.String(keyAPIURL, client.DefaultBaseURL, "recipe API base URL, including /api")
	flags.String(keyTokenFile, "", "where the session token is stored (default $XDG_CONFIG_HOME/recipebox/token)")
	flags.Bool(keyJSON, false, "print machine-readable JSON")

	for _, key := range []string{keyAPIURL, keyTokenFile, keyJSON} {
		_ = a.v.BindPFlag(key, flags.Lookup(key))
	}
	a.v.SetEnvPrefix("RECIPECTL")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(
		a.registerCmd(),
		a.loginCmd(),
		a.logoutCmd(),
		a.verifyCmd(),
		a.recipesCmd(),
	)
	return root
}

// Execute runs recipectl and returns the process exit code.
func Execute() int {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		printError(root.ErrOrStderr(), err)
		return 1
	}
	return 0
}

// setup reads the config file and builds the API client once flags are parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	if cfgFile != "" {
		a.v.SetConfigFile(cfgFile)
	} else if dir, err := os.UserConfigDir(); err == nil {
		a.v.AddConfigPath(filepath.Join(dir, "recipebox"))
		a.v.SetConfigName("recipectl")
		a.v.SetConfigType("yaml")
	}
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	tokenPath := a.v.GetString(keyTokenFile)
	if tokenPath == "" {
		p, err := client.DefaultTokenPath()
		if err != nil {
			return err
		}
		tokenPath = p
	}

	stderr := cmd.ErrOrStderr()
	a.client = client.New(
		client.WithBaseURL(a.v.GetString(keyAPIURL)),
		client.WithTokenStore(client.NewFileTokenStore(tokenPath)),
		client.OnUnauthorized(func() {
			fmt.Fprintf(stderr, "%s Session expired or invalid. Run `recipectl login` to sign in again.\n", colorYellow("⚠"))
		}),
	)
	return nil
}

func (a *app) jsonOut() bool {
	return a.v.GetBool(keyJSON)
}
