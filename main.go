package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	log "github.com/sirupsen/logrus"

	"github.com/afroash/rdma-viz/config"
)

var flags struct {
	quality  string
	output   string
	format   string
	preview  bool
	traceDB  string
	logLevel string
	speed    float64
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rdmaviz",
	Short: "Animated explainer of RDMA multipath spraying and reassembly.",
	Long: `rdmaviz plays or renders an animation of RDMA over Ethernet: packets ` +
		`are sprayed over several switch paths, arrive out of order, are ` +
		`reassembled by the SuperNIC and the effective bandwidth rises.`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&flags.traceDB, "trace-db", "", "record block and animation spans to this SQLite file")
}

// loadConfig reads the environment and applies the flags the user set
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	c, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}

	changed := cmd.Flags().Changed
	if changed("quality") {
		if err := c.SetQuality(flags.quality); err != nil {
			return config.Config{}, err
		}
	}
	if changed("output") {
		c.Output = flags.output
	}
	if changed("format") {
		c.Format = flags.format
	}
	if changed("preview") {
		c.Preview = flags.preview
	}
	if changed("trace-db") {
		c.TraceDB = flags.traceDB
	}
	if changed("speed") {
		c.Speed = flags.speed
	}
	if changed("log-level") {
		lvl, err := log.ParseLevel(flags.logLevel)
		if err != nil {
			return config.Config{}, err
		}
		c.LogLevel = lvl
	}

	if err := c.Validate(); err != nil {
		return config.Config{}, err
	}

	log.SetLevel(c.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	return c, nil
}

// Execute runs the root command and exits through atexit so that trace
// writers flush
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("rdmaviz failed")
		atexit.Exit(1)
	}
	atexit.Exit(0)
}

func main() {
	Execute()
}
