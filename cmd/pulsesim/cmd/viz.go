// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/db47h/pulsesim/viz"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	vizOutput  string
	vizFormat  string
	vizPresses int
	vizState   bool
)

var vizCmd = &cobra.Command{
	Use:   "viz",
	Short: "Create a graphviz figure from a network",
	Long: `Create a graphviz figure from a network. The format defaults to the output
file extension, or dot when writing to stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		if _, err = n.PressN(vizPresses); err != nil {
			return err
		}
		format := vizFormat
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(vizOutput), ".")
			if vizOutput == "-" || format == "" {
				format = "dot"
			}
		}
		f, err := viz.ParseFormat(format)
		if err != nil {
			return err
		}
		name := "pulsesim"
		if inputFile != "-" {
			name = strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
		}

		var out io.Writer = cmd.OutOrStdout()
		if vizOutput != "-" {
			var df *os.File
			df, err = os.Create(vizOutput)
			if err != nil {
				return errors.Wrap(err, "create output")
			}
			defer func() {
				if cerr := df.Close(); err == nil {
					err = cerr
				}
			}()
			out = df
		}
		w := viz.New(&viz.Config{
			Name:    name,
			Font:    viz.Helvetica,
			RankDir: viz.LeftToRight,
			Format:  f,
			State:   vizState || vizPresses > 0,
		})
		if err = w.Flush(out, n); err != nil {
			return err
		}
		logger.Debug("figure written", zap.String("output", vizOutput), zap.String("format", string(f)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vizCmd)
	f := vizCmd.Flags()
	f.StringVarP(&vizOutput, "output", "o", "-", `output file, "-" for stdout`)
	f.StringVarP(&vizFormat, "format", "f", "", "output format: dot, svg, png or jpeg")
	f.IntVarP(&vizPresses, "presses", "n", 0, "press the button before rendering")
	f.BoolVar(&vizState, "state", false, "color modules according to their state")
}
