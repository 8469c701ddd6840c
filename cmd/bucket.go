package cmd

import (
	"fmt"
	"text/tabwriter"

	"meditation-backend/logger"
	"meditation-backend/storage"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	bucketPrefix string
	bucketCreate bool
)

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Inspect the audio bucket",
	Long:  `Lists the uploaded audio objects in the configured bucket, optionally creating the bucket first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := storage.NewS3Store(cfg)
		if err != nil {
			return err
		}
		if bucketCreate {
			if err := store.EnsureBucket(cmd.Context()); err != nil {
				return err
			}
		}

		objects, err := store.List(cmd.Context(), bucketPrefix)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Bucket %s (prefix %q): %d objects\n", store.Bucket(), bucketPrefix, len(objects))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		var total int64
		for _, obj := range objects {
			total += obj.Size
			fmt.Fprintf(tw, "%s\t%s\t%s\n", obj.Key, humanize.Bytes(uint64(obj.Size)), obj.LastModified.Format("2006-01-02 15:04:05"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Total size: %s\n", humanize.Bytes(uint64(total)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bucketCmd)

	bucketCmd.Flags().StringVarP(&bucketPrefix, "prefix", "p", "", "only list keys with this prefix")
	bucketCmd.Flags().BoolVarP(&bucketCreate, "create", "c", false, "create the bucket if it does not exist")

	bucketCmd.Example = `  # List every object
  meditation bucket

  # Filter by key prefix
  meditation bucket -p "3f2a"

  # Create the bucket on a fresh MinIO before listing
  meditation bucket -c`
}
