package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/segctl/segctl/internal/output"
	"github.com/segctl/segctl/internal/scheduler"
	"github.com/segctl/segctl/internal/utils"
)

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [MANIFEST_FILE]",
		Short: "Process multiple segment reads from a YAML manifest",
		Long: `Process multiple segment reads from a YAML manifest.

The manifest lists one entry per read:

    reads:
      - segment: scope/stream/0.#epoch.0
        offset: 0
        length: 5242880
        endpoint: 127.0.0.1:9919
        file: out/segment-0.bin

Reads are distributed over the worker pool; each read itself stays strictly
sequential. Failed reads are reported at the end and leave any partially
written files on disk.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			entries, err := utils.ReadManifest(args[0])
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			if len(entries) == 0 {
				output.PrintError("No valid reads found in the manifest")
				os.Exit(1)
			}
			err = scheduler.Run(cmd.Context(), entries, workers, func(ctx context.Context, jobID string, entry utils.ReadEntry) error {
				return runRead(ctx, entry, false)
			})
			if err != nil {
				output.PrintError("Encountered failed segment read(s)")
				os.Exit(1)
			}
			output.PrintSuccess("All segment reads completed")
		},
	}
	cmd.Flags().IntVarP(&workers, "workers", "w", 1, "Number of reads to process in parallel")
	return cmd
}
