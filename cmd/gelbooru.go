package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/imgdl/filter"
	"github.com/s0up4200/imgdl/gelbooru"
)

// maxParallelPages bounds concurrent page requests
const maxParallelPages = 4

var (
	gelbooruPage   int
	gelbooruPages  int
	gelbooruLimit  int
	gelbooruFilter string
)

// gelbooruCmd groups the Gelbooru commands
var gelbooruCmd = &cobra.Command{
	Use:   "gelbooru",
	Short: "Search posts on gelbooru.com",
}

var gelbooruPostsCmd = &cobra.Command{
	Use:   "posts [tags]",
	Short: "List the posts matching tags",
	Long: `List the posts matching a space separated tag query. With --pages N,
N consecutive pages starting at --page are fetched in parallel and
concatenated in page order.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGelbooruPosts,
}

var gelbooruAttributesCmd = &cobra.Command{
	Use:   "attributes [tags]",
	Short: "Show the pagination metadata of a tag query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGelbooruAttributes,
}

func init() {
	gelbooruCmd.PersistentFlags().IntVarP(&gelbooruPage, "page", "p", 0, "zero-based page index")
	gelbooruCmd.PersistentFlags().IntVarP(&gelbooruLimit, "limit", "l", 0, "posts per page (overrides gelbooru.limit)")

	gelbooruPostsCmd.Flags().IntVar(&gelbooruPages, "pages", 1, "number of consecutive pages to fetch")
	gelbooruPostsCmd.Flags().StringVarP(&gelbooruFilter, "filter", "f", "", "filter name or expression")

	gelbooruCmd.AddCommand(gelbooruPostsCmd)
	gelbooruCmd.AddCommand(gelbooruAttributesCmd)
}

func newGelbooruClient(cmd *cobra.Command) (*gelbooru.Client, error) {
	limit := cfg.Gelbooru.Limit
	if cmd.Flags().Changed("limit") {
		limit = gelbooruLimit
	}

	opts := []gelbooru.Option{
		gelbooru.WithTimeout(cfg.HTTP.Timeout),
		gelbooru.WithLimit(limit),
	}
	if cfg.Gelbooru.URL != "" {
		opts = append(opts, gelbooru.WithBaseURL(cfg.Gelbooru.URL))
	}
	if proxy := cfg.ProxyFor("gelbooru"); proxy != "" {
		opts = append(opts, gelbooru.WithProxy(proxy))
	}
	if cfg.Gelbooru.APIKey != "" {
		opts = append(opts, gelbooru.WithCredentials(cfg.Gelbooru.APIKey, cfg.Gelbooru.UserID))
	}

	client, err := gelbooru.NewClient(logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gelbooru client: %w", err)
	}
	return client, nil
}

func tagsArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runGelbooruPosts(cmd *cobra.Command, args []string) error {
	if gelbooruPages < 1 {
		return fmt.Errorf("--pages must be at least 1, got %d", gelbooruPages)
	}

	client, err := newGelbooruClient(cmd)
	if err != nil {
		return err
	}

	tags := tagsArg(args)
	results := make([][]gelbooru.Post, gelbooruPages)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(maxParallelPages)

	for i := range gelbooruPages {
		page := gelbooruPage + i
		g.Go(func() error {
			posts, err := client.FetchPosts(ctx, tags, page)
			if err != nil {
				return fmt.Errorf("page %d: %w", page, err)
			}
			results[i] = posts
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	posts := make([]gelbooru.Post, 0)
	for _, r := range results {
		posts = append(posts, r...)
	}

	posts, err = applyFilter(cmd.Context(), gelbooruFilter, posts, filter.GelbooruEnv, func(p gelbooru.Post) string {
		return strconv.FormatInt(p.ID, 10)
	})
	if err != nil {
		return err
	}

	logger.Info().
		Str("tags", tags).
		Int("page", gelbooruPage).
		Int("pages", gelbooruPages).
		Int("posts", len(posts)).
		Msg("Fetched Gelbooru posts")

	return writeJSON(cmd.OutOrStdout(), posts)
}

// attributesOutput adds the derived page numbers to the raw attributes
type attributesOutput struct {
	gelbooru.Attributes
	CurrentPage int `json:"page"`
	TotalPages  int `json:"pages"`
}

func runGelbooruAttributes(cmd *cobra.Command, args []string) error {
	client, err := newGelbooruClient(cmd)
	if err != nil {
		return err
	}

	attrs, err := client.FetchAttributes(cmd.Context(), tagsArg(args), gelbooruPage)
	if err != nil {
		return err
	}

	return writeJSON(cmd.OutOrStdout(), attributesOutput{
		Attributes:  *attrs,
		CurrentPage: attrs.Page(),
		TotalPages:  attrs.Pages(),
	})
}
