package main

import (
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the animation in a window.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tw, err := newTraceWriter(cfg)
		if err != nil {
			return err
		}

		var p *Presenter
		if tw != nil {
			defer tw.Close()
			p = NewPresenter(cfg, tw)
		} else {
			p = NewPresenter(cfg, nil)
		}
		p.Run()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	f := playCmd.Flags()
	f.StringVarP(&flags.quality, "quality", "q", "m", "quality preset: l, m or h (sets the tick rate)")
	f.Float64Var(&flags.speed, "speed", 1, "playback speed factor")
}
