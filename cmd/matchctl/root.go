package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"recruit-engine/internal/config"
	"recruit-engine/internal/delivery/http/dto"
	"recruit-engine/internal/logger"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "matchctl"

// cli carries the state shared by every subcommand of one invocation.
type cli struct {
	v       *viper.Viper
	in      io.Reader
	out     io.Writer
	cfgFile string
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	c := &cli{v: viper.New(), in: in, out: out}

	root := &cobra.Command{
		Use:          appName,
		Short:        "matchctl scores resumes against jobs and proposes interview slots from the command line",
		SilenceUsage: true,
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&c.cfgFile, "config", "", "a config file merged over the environment (yaml, json or toml)")
	root.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	root.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = c.v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = c.v.BindPFlag("json", root.PersistentFlags().Lookup("json"))

	root.AddCommand(
		newMatchCmd(c),
		newGapsCmd(c),
		newSlotsCmd(c),
		newCacheCmd(c),
	)
	return root
}

// load builds the runtime config. Server-only keys get CLI defaults so the
// same environment can drive both binaries.
func (c *cli) load() (config.Config, *zap.Logger, error) {
	v, err := config.NewViper()
	if err != nil {
		return config.Config{}, nil, err
	}
	v.SetDefault("app.name", appName)
	v.SetDefault("app.env", "cli")
	v.SetDefault("http.port", "0")

	if c.cfgFile != "" {
		if err := config.ReadFile(v, c.cfgFile); err != nil {
			return config.Config{}, nil, err
		}
	}
	if c.v.GetBool("debug") {
		v.Set("log.debug", true)
	}
	if c.v.GetBool("json") {
		v.Set("log.json", true)
	}

	cfg, err := config.FromViper(v)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("getting a config: %w", err)
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, log.Named(appName), nil
}

// readRequest decodes a JSON document from path, or from stdin when path is
// empty or "-", then validates it.
func (c *cli) readRequest(path string, dst any) error {
	r := c.in
	if p := strings.TrimSpace(path); p != "" && p != "-" {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open request: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(dst); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}

	if err := dto.Validate(dst); err != nil {
		fields := dto.FieldErrors(err)
		if len(fields) == 0 {
			return fmt.Errorf("invalid request: %w", err)
		}
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, f.Field+" ("+f.Rule+")")
		}
		return fmt.Errorf("invalid request: %s", strings.Join(parts, ", "))
	}
	return nil
}

func (c *cli) print(v any) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func addFileFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "-", "request JSON file, - for stdin")
}

func fileFlag(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("file")
	return f
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
