// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"bufio"
	"os"

	"github.com/db47h/pulsesim/decl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	convertOutput string
	convertTo     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert declarations between text and YAML formats",
	Long: `Convert declarations between text and YAML formats. The output format
defaults to the output file extension, or to the format the input is not in.

The network is built before conversion, so invalid declarations are rejected.
YAML output declares all sinks with kind "sink". The text format cannot declare
sinks: rebuilding from text output may need --any-sink, or PULSESIM_SINKS set
to the sink names.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		toYAML := !isYAML(inputFormat, inputFile)
		if convertTo != "" || convertOutput != "-" {
			toYAML = isYAML(convertTo, convertOutput)
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		if convertOutput != "-" {
			var df *os.File
			df, err = os.Create(convertOutput)
			if err != nil {
				return errors.Wrap(err, "create output")
			}
			defer func() {
				if cerr := df.Close(); err == nil {
					err = cerr
				}
			}()
			out = bufio.NewWriter(df)
		}
		if toYAML {
			err = decl.WriteYAML(out, n.DeclsWithSinks())
		} else {
			err = decl.Write(out, n.Decls())
		}
		if err != nil {
			return err
		}
		return out.Flush()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "-", `output file, "-" for stdout`)
	convertCmd.Flags().StringVar(&convertTo, "to", "", "output format: text or yaml")
}
