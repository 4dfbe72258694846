// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/db47h/pulsesim"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [module...]",
	Short: "Print information about a network",
	Long: `Print the number of modules of each kind, the feedback loops and the modules
that no button press can reach. For each module given as argument, print its
inputs, destinations and upstream modules.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		var counts [pulsesim.Conjunction + 1]int
		for _, s := range n.State() {
			counts[s.Kind]++
		}
		fmt.Fprintf(out, "modules: %d\n", n.Len())
		for k, c := range counts {
			fmt.Fprintf(out, "  %s: %d\n", pulsesim.Kind(k), c)
		}
		loops := n.Loops()
		fmt.Fprintf(out, "loops: %d\n", len(loops))
		for _, l := range loops {
			fmt.Fprintf(out, "  %s\n", names(n, l))
		}
		if u := n.Unreachable(); len(u) > 0 {
			fmt.Fprintf(out, "unreachable: %s\n", names(n, u))
		}
		for _, name := range args {
			id, err := lookup(n, name)
			if err != nil {
				return err
			}
			inspectModule(out, n, id)
		}
		return nil
	},
}

func inspectModule(out io.Writer, n *pulsesim.Network, id pulsesim.ID) {
	fmt.Fprintf(out, "%s%s (%s)\n", n.Kind(id).Prefix(), n.Name(id), n.Kind(id))
	fmt.Fprintf(out, "  from: %s\n", names(n, n.Predecessors(id)))
	fmt.Fprintf(out, "  to: %s\n", names(n, n.Dests(id)))
	if n.Kind(id) == pulsesim.Conjunction {
		fmt.Fprintf(out, "  inputs: %s\n", names(n, n.Inputs(id)))
	}
	fmt.Fprintf(out, "  upstream: %d modules\n", len(n.Ancestors(id)))
	if fs, err := n.Feeders(id); err == nil {
		fmt.Fprintf(out, "  feeders: %s\n", names(n, fs))
	}
}

func names(n *pulsesim.Network, ids []pulsesim.ID) string {
	s := make([]string, len(ids))
	for i, id := range ids {
		s[i] = n.Name(id)
	}
	return strings.Join(s, ", ")
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
