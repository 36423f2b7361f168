package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/app"
)

// cli carries state shared by the subcommands of one invocation
type cli struct {
	loadConfig func() (*config.Config, error)
	verbose    bool

	app    *app.App
	logger *zap.Logger
}

// execute runs one invocation of the CLI with args and releases the store afterwards
func execute(args []string, loadConfig func() (*config.Config, error), out, errOut io.Writer) error {
	root, c := newRootCmd(loadConfig)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	defer c.close()
	return root.ExecuteContext(context.Background())
}

func (c *cli) close() {
	if c.logger != nil {
		_ = c.logger.Sync()
	}
	if c.app != nil {
		_ = c.app.Close()
		c.app = nil
	}
}

func newRootCmd(loadConfig func() (*config.Config, error)) (*cobra.Command, *cli) {
	c := &cli{loadConfig: loadConfig}

	root := &cobra.Command{
		Use:           "recipes",
		Short:         "Browse, share and collect recipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			// Logs go to stderr and stay quiet unless asked for
			logCfg := zap.NewDevelopmentConfig()
			logCfg.OutputPaths = []string{"stderr"}
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			c.logger, err = logCfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			c.app, err = app.New(cmd.Context(), cfg, c.logger)
			return err
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.profileCmd(),
		c.listCmd(),
		c.showCmd(),
		c.createCmd(),
		c.editCmd(),
		c.deleteCmd(),
		c.favoriteCmd(),
		c.favoritesCmd(),
		c.mineCmd(),
		c.seedCmd(),
	)
	return root, c
}

// decodeFile reads a JSON or YAML document into v, picking the format by extension
func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, v)
	default:
		err = yaml.Unmarshal(data, v)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
