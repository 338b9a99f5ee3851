package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/segctl/segctl/internal/output"
	"github.com/segctl/segctl/internal/segment"
)

var (
	requestTimeout time.Duration
	chunkSize      int64
	token          string
	awsProfile     string
	debug          bool
	workers        int
)

var SegctlVersion = "dev"

var rootCmd = &cobra.Command{
	Use:     "segctl",
	Short:   "segctl is an admin CLI for append-only segment stores",
	Version: SegctlVersion,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		output.InitLogger(debug)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().DurationVarP(&requestTimeout, "timeout", "t", segment.DefaultRequestTimeout, "Deadline for each chunk request (eg. 5s, 1m)")
	rootCmd.PersistentFlags().Int64VarP(&chunkSize, "chunk-size", "c", segment.DefaultChunkSize, "Maximum bytes requested per chunk")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Credential token for the segment store gateway")
	rootCmd.PersistentFlags().StringVar(&awsProfile, "profile", "default", "AWS profile for s3:// archive endpoints")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newReadSegmentCmd())
	rootCmd.AddCommand(newBatchCmd())
}
