package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/segctl/segctl/internal/archive"
	"github.com/segctl/segctl/internal/gateway"
	"github.com/segctl/segctl/internal/output"
	"github.com/segctl/segctl/internal/segment"
	"github.com/segctl/segctl/internal/utils"
)

func newReadSegmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read-segment [QUALIFIED-SEGMENT-NAME] [OFFSET] [LENGTH] [SEGMENTSTORE-ENDPOINT] [FILE-NAME]",
		Short: "Read a range from a given segment into a given file",
		Long: `Read a range from a given segment into a given file.

The range is fetched as a sequence of bounded chunk requests and written to
the file in order. The file must not already exist. If a download fails
partway, the partially written file is left on disk and must be removed
before retrying.

The segment name is the fully qualified name within the store (e.g.
scope/stream/0.#epoch.0). An endpoint of the form s3://bucket[/prefix] reads
the segment from an object-storage archive instead of a live store node.`,
		Args: cobra.ExactArgs(5),
		Run: func(cmd *cobra.Command, args []string) {
			entry, err := parseReadArgs(args)
			if err != nil {
				output.PrintError(err.Error())
				os.Exit(1)
			}
			if err := runRead(cmd.Context(), entry, true); err != nil {
				fmt.Println()
				output.PrintError(fmt.Sprintf("Download failed: %v", err))
				os.Exit(1)
			}
		},
	}
	return cmd
}

func parseReadArgs(args []string) (utils.ReadEntry, error) {
	offset, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return utils.ReadEntry{}, fmt.Errorf("offset %q is not an integer", args[1])
	}
	length, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return utils.ReadEntry{}, fmt.Errorf("length %q is not an integer", args[2])
	}
	if offset < 0 {
		return utils.ReadEntry{}, fmt.Errorf("the provided offset cannot be negative")
	}
	if length < 0 {
		return utils.ReadEntry{}, fmt.Errorf("the provided length cannot be negative")
	}
	return utils.ReadEntry{
		Segment:  args[0],
		Offset:   offset,
		Length:   length,
		Endpoint: args[3],
		File:     args[4],
	}, nil
}

func runRead(ctx context.Context, entry utils.ReadEntry, showProgress bool) error {
	requester, err := buildRequester(ctx, entry.Endpoint)
	if err != nil {
		return err
	}
	cfg := segment.Config{
		ChunkSize:      chunkSize,
		RequestTimeout: requestTimeout,
	}
	if showProgress {
		reporter := output.NewProgress()
		cfg.Progress = func(completed, total int64) {
			fmt.Print(reporter.Render(completed, total))
		}
		output.PrintInfo(fmt.Sprintf("Downloading %d bytes from offset %d of %s into %s", entry.Length, entry.Offset, entry.Segment, entry.File))
	}
	downloader := segment.NewDownloader(requester, cfg)
	written, err := downloader.Download(ctx, entry.Segment, entry.Offset, entry.Length, entry.File)
	if err != nil {
		return err
	}
	if showProgress {
		fmt.Println()
		output.PrintSuccess(fmt.Sprintf("The segment data (%s) has been successfully written into %s", output.FormatBytes(uint64(written)), entry.File))
	}
	return nil
}

func buildRequester(ctx context.Context, endpoint string) (segment.Requester, error) {
	if archive.IsArchiveEndpoint(endpoint) {
		return archive.NewReader(ctx, endpoint, awsProfile)
	}
	resolvedToken, err := gateway.ResolveToken(ctx, token)
	if err != nil {
		return nil, err
	}
	clientConfig := utils.ClientConfig{UserAgent: utils.ToolUserAgent}
	return gateway.NewClient(endpoint, clientConfig, resolvedToken), nil
}
