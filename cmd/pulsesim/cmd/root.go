// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package cmd implements the pulsesim commands.
//
package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/decl"
	"github.com/db47h/pulsesim/internal/config"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	inputFile   string
	inputFormat string
	logLevel    string
	envFile     string
	anySink     bool

	env    *config.Environment
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pulsesim",
	Short: "Simulate pulse propagation in a network of modules",
	Long: `pulsesim simulates networks of broadcaster, flip-flop and conjunction
modules exchanging high and low pulses, one button press at a time.

Networks are read from a declaration file (-i, "-" for stdin) in text format:

	broadcaster -> a, b
	%a -> b
	&b -> rx

or in YAML format (see the convert command).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		env, err = config.Load(envFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			if err = env.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
				return errors.Wrap(err, "log-level")
			}
		}
		l, err := env.Logger()
		if err != nil {
			return err
		}
		logger = l.With(zap.String("run", uuid.New().String()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
//
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&inputFile, "input", "i", "-", `declaration file, "-" for stdin`)
	pf.StringVar(&inputFormat, "input-format", "", "input format: text or yaml (default from file extension)")
	pf.StringVar(&logLevel, "log-level", zapcore.InfoLevel.String(), "log level")
	pf.StringVar(&envFile, "env", ".env", "environment file")
	pf.BoolVar(&anySink, "any-sink", false, "accept any undeclared destination as a sink")
}

func openInput() (io.ReadCloser, error) {
	if inputFile == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(inputFile)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	return f, nil
}

func isYAML(format, name string) bool {
	if format != "" {
		return strings.EqualFold(format, "yaml") || strings.EqualFold(format, "yml")
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func loadDecls() ([]pulsesim.Decl, error) {
	r, err := openInput()
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Close()
	}()
	var ds []pulsesim.Decl
	if isYAML(inputFormat, inputFile) {
		ds, err = decl.LoadYAML(r)
	} else {
		ds, err = decl.Parse(r)
	}
	if err != nil {
		return nil, errors.Wrap(err, inputFile)
	}
	return ds, nil
}

func loadNetwork() (*pulsesim.Network, error) {
	ds, err := loadDecls()
	if err != nil {
		return nil, err
	}
	opts := []pulsesim.Option{pulsesim.Sinks(env.Sinks...), pulsesim.WithLogger(logger)}
	if anySink {
		opts = append(opts, pulsesim.AnySink())
	}
	n, err := pulsesim.Build(ds, opts...)
	if err != nil {
		return nil, errors.Wrap(err, inputFile)
	}
	return n, nil
}

func lookup(n *pulsesim.Network, name string) (pulsesim.ID, error) {
	id, ok := n.Lookup(name)
	if !ok {
		return 0, errors.Errorf("no module named %q", name)
	}
	return id, nil
}
