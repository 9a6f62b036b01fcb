package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/afroash/rdma-viz/choreo"
	"github.com/afroash/rdma-viz/timeline"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Print the block schedule of the animation.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(cmd); err != nil {
			return err
		}
		return printTimeline(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)
}

func printTimeline(out io.Writer) error {
	s, err := choreo.Build(timeline.NewSerialEngine())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "BLOCK\tSTART\tEND\tANIMATIONS")
	for _, bt := range s.Timeline.Schedule() {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\n",
			bt.Block.Name(), float64(bt.Start), float64(bt.End), len(bt.Block.Entries()))
	}
	fmt.Fprintf(w, "total\t\t%.2f\t\n", float64(s.Timeline.Duration()))
	return w.Flush()
}
