package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srpo-tools/srpo/config"
	"github.com/srpo-tools/srpo/srpo"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "srpo",
	Short: "srpo retrieves educational activity data from the SRPO and exports it as PDFs or spreadsheet updates.",
	Long: "srpo drives a headless browser through the SRPO reporting site: login with " +
		"two-factor authentication, area selection, and record retrieval. " +
		"Area codes map to clusters as follows: " + areaCodeHelp() + ".",
}

// ExecuteContext runs the CLI with the loaded configuration.
func ExecuteContext(ctx context.Context, c *config.Config) {
	cfg = c
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func areaCodeHelp() string {
	items := make([]string, 0, len(srpo.AreaCodes()))
	for _, code := range srpo.AreaCodes() {
		label, err := srpo.AreaLabel(code)
		if err != nil {
			continue
		}
		items = append(items, code+" = "+label)
	}
	return strings.Join(items, ", ")
}

// srpoFlags are the credentials and scope every SRPO-driving command needs.
type srpoFlags struct {
	username string
	password string
	secret   string
	area     string
}

func (f *srpoFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "username used to log into the SRPO website")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "password used to log into the SRPO website")
	cmd.Flags().StringVarP(&f.secret, "secret", "s", "", "base-32 secret string used to generate TOTP codes")
	cmd.Flags().StringVarP(&f.area, "area", "a", "", "area scope: 'BC' for the region or a cluster code like 'BC03'")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("area")
}

// openSession logs a new browser session in and scopes it to the requested
// area. The caller owns the returned client and must Close it on every exit
// path.
func openSession(ctx context.Context, f *srpoFlags, outputDir string) (*srpo.Client, error) {
	areaLabel, err := srpo.AreaLabel(f.area)
	if err != nil {
		return nil, err
	}

	client, err := srpo.NewClient(cfg.Browser, cfg.Nav, f.secret, outputDir)
	if err != nil {
		return nil, err
	}

	if err := client.Login(ctx, f.username, f.password); err != nil {
		client.Close()
		return nil, err
	}
	if err := client.SetArea(ctx, areaLabel); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// requireDir validates that an output directory exists.
func requireDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output directory %q: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path %q is not a directory", path)
	}
	return nil
}
