// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"bufio"
	"fmt"

	"github.com/db47h/pulsesim"
	"github.com/db47h/pulsesim/filter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	tracePresses int
	traceFilter  string
)

var traceCmd = &cobra.Command{
	Use:   "trace",
	Short: "Print delivered pulses",
	Long: `Press the button and print every delivered pulse as

	<press> <from> -<level>-> <to>

With --filter, only pulses matching the expression are printed (see the until
command for the expression syntax).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		f, err := filter.Compile("true")
		if traceFilter != "" {
			f, err = filter.Compile(traceFilter)
		}
		if err != nil {
			return err
		}
		w := bufio.NewWriter(cmd.OutOrStdout())
		defer func() {
			if ferr := w.Flush(); err == nil {
				err = ferr
			}
		}()
		var sum pulsesim.Tally
		for i := 0; i < tracePresses; i++ {
			t, err := f.Trace(n, func(p pulsesim.Pulse) {
				fmt.Fprintf(w, "%d %s -%s-> %s\n", n.Presses(), n.Name(p.From), level(p.High), n.Name(p.To))
			})
			if err != nil {
				return errors.Wrapf(err, "press %d", n.Presses())
			}
			sum.Add(t)
		}
		fmt.Fprintf(w, "low: %d\nhigh: %d\n", sum.Low, sum.High)
		return nil
	},
}

func level(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().IntVarP(&tracePresses, "presses", "n", 1, "number of button presses")
	traceCmd.Flags().StringVar(&traceFilter, "filter", "", "only print pulses matching this expression")
}
