package main

import (
	"fmt"
	"strings"

	"github.com/logicossoftware/go-stego"
	"github.com/logicossoftware/go-stego/internal/conf"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath  string
	verbose     bool
	key         string
	compression string
}

// app is the state shared by every subcommand once flags are parsed.
type app struct {
	cfg *conf.Conf
	reg *stego.Registry
	key []byte
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	a := &app{}

	exts := strings.Join(lo.Map(stego.SupportedExtensions(), func(e string, _ int) string {
		return strings.TrimPrefix(e, ".")
	}), ", ")

	root := &cobra.Command{
		Use:           "stego",
		Short:         "Hide short messages in image files",
		Long:          fmt.Sprintf("Hide and recover short messages in image files (%s).", exts),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, g)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "YAML configuration file")
	pf.BoolVarP(&g.verbose, "verbose", "v", false, "verbose logging")
	pf.StringVarP(&g.key, "key", "k", "", "shared key (overrides key/key_file from config)")
	pf.StringVar(&g.compression, "compression", "", "message compression: none, zip, zstd, lz4, brotli")

	root.AddCommand(
		newEncodeCmd(a),
		newDecodeCmd(a),
		newCheckCmd(a),
		newDimsCmd(a),
		newInfoCmd(a),
		newVerifyCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command, g globalFlags) error {
	cfg := conf.Default()
	if g.configPath != "" {
		c, err := conf.LoadFromFile(g.configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
	}
	if cmd.Flags().Changed("compression") {
		if err := cfg.SetCompression(g.compression); err != nil {
			return err
		}
	}

	logger := logrus.StandardLogger()
	cfg.Log.Apply(logger)
	if g.verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	key, err := cfg.KeyBytes()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("key") {
		key = []byte(g.key)
	}

	a.cfg = cfg
	a.key = key
	a.reg = stego.NewRegistry(cfg.RegistryOptions(logger)...)
	logger.WithFields(logrus.Fields{
		"config":      g.configPath,
		"compression": cfg.Comp(),
		"keyed":       len(key) > 0,
	}).Debug("configured")
	return nil
}
