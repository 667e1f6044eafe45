package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/s0up4200/imgdl/booru"
	"github.com/s0up4200/imgdl/filter"
)

var (
	booruURL    string
	booruPage   int
	booruLimit  int
	booruFilter string
)

// booruCmd groups commands for Gelbooru-compatible hosts
var booruCmd = &cobra.Command{
	Use:   "booru",
	Short: "Search posts on a Gelbooru-compatible imageboard",
	Long: `Search posts on any imageboard that serves the Gelbooru DAPI, such as
rule34.xxx. The host is taken from --url or booru.url.`,
}

var booruPostsCmd = &cobra.Command{
	Use:   "posts [tags]",
	Short: "List the posts matching tags",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBooruPosts,
}

func init() {
	booruCmd.PersistentFlags().StringVar(&booruURL, "url", "", "root URL of the imageboard (overrides booru.url)")

	booruPostsCmd.Flags().IntVarP(&booruPage, "page", "p", 0, "zero-based page index")
	booruPostsCmd.Flags().IntVarP(&booruLimit, "limit", "l", 0, "posts per page (overrides booru.limit)")
	booruPostsCmd.Flags().StringVarP(&booruFilter, "filter", "f", "", "filter name or expression")

	booruCmd.AddCommand(booruPostsCmd)
}

func newBooruClient(cmd *cobra.Command) (*booru.Client, error) {
	rootURL := cfg.Booru.URL
	if cmd.Flags().Changed("url") {
		rootURL = booruURL
	}
	if rootURL == "" {
		return nil, fmt.Errorf("no imageboard URL: set --url or booru.url")
	}

	limit := cfg.Booru.Limit
	if cmd.Flags().Changed("limit") {
		limit = booruLimit
	}

	opts := []booru.Option{
		booru.WithTimeout(cfg.HTTP.Timeout),
		booru.WithLimit(limit),
	}
	if proxy := cfg.ProxyFor("booru"); proxy != "" {
		opts = append(opts, booru.WithProxy(proxy))
	}

	client, err := booru.NewClient(rootURL, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create client for %s: %w", rootURL, err)
	}
	return client, nil
}

func runBooruPosts(cmd *cobra.Command, args []string) error {
	client, err := newBooruClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	posts, err := client.FetchPosts(ctx, tagsArg(args), booruPage)
	if err != nil {
		return err
	}

	posts, err = applyFilter(ctx, booruFilter, posts, filter.BooruEnv, func(p booru.Post) string {
		return strconv.FormatInt(p.ID, 10)
	})
	if err != nil {
		return err
	}

	logger.Info().Str("host", client.RootURL()).Int("posts", len(posts)).Msg("Fetched posts")
	return writeJSON(cmd.OutOrStdout(), posts)
}
