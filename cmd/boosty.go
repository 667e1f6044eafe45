package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/imgdl/auth"
	"github.com/s0up4200/imgdl/boosty"
	"github.com/s0up4200/imgdl/filter"
)

var (
	boostyToken  string
	boostyLimit  int
	boostyFilter string
)

// boostyCmd groups the Boosty commands
var boostyCmd = &cobra.Command{
	Use:   "boosty",
	Short: "Fetch posts from a Boosty blog",
	Long: `Fetch posts from a Boosty blog. Paid content is only returned when an
access token is supplied with --token or boosty.token.`,
}

var boostyPostsCmd = &cobra.Command{
	Use:   "posts <blog>",
	Short: "List the posts of a blog",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoostyPosts,
}

var boostyPostCmd = &cobra.Command{
	Use:   "post <blog> <post-id>",
	Short: "Fetch a single post",
	Args:  cobra.ExactArgs(2),
	RunE:  runBoostyPost,
}

var boostyRawCmd = &cobra.Command{
	Use:   "raw <blog>",
	Short: "List the posts of a blog as the undecoded response",
	Args:  cobra.ExactArgs(1),
	RunE:  runBoostyRaw,
}

func init() {
	boostyCmd.PersistentFlags().StringVar(&boostyToken, "token", "", "access token (overrides boosty.token)")

	boostyPostsCmd.Flags().IntVarP(&boostyLimit, "limit", "l", 0, "maximum number of posts (overrides boosty.limit)")
	boostyPostsCmd.Flags().StringVarP(&boostyFilter, "filter", "f", "", "filter name or expression")
	boostyRawCmd.Flags().IntVarP(&boostyLimit, "limit", "l", 0, "maximum number of posts (overrides boosty.limit)")

	boostyCmd.AddCommand(boostyPostsCmd)
	boostyCmd.AddCommand(boostyPostCmd)
	boostyCmd.AddCommand(boostyRawCmd)
}

// newBoostyClient builds a client and optional auth from config and flags
func newBoostyClient(cmd *cobra.Command) (*boosty.Client, *auth.Auth, error) {
	opts := []boosty.Option{boosty.WithTimeout(cfg.HTTP.Timeout)}
	if cfg.Boosty.URL != "" {
		opts = append(opts, boosty.WithBaseURL(cfg.Boosty.URL))
	}
	if proxy := cfg.ProxyFor("boosty"); proxy != "" {
		opts = append(opts, boosty.WithProxy(proxy))
	}

	client, err := boosty.NewClient(logger, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Boosty client: %w", err)
	}

	token := cfg.Boosty.Token
	if cmd.Flags().Changed("token") {
		token = boostyToken
	}
	if token == "" {
		return client, nil, nil
	}

	a, err := auth.New(token)
	if err != nil {
		return nil, nil, err
	}
	return client, a, nil
}

func boostyListLimit(cmd *cobra.Command) int {
	if cmd.Flags().Changed("limit") {
		return boostyLimit
	}
	return cfg.Boosty.Limit
}

func runBoostyPosts(cmd *cobra.Command, args []string) error {
	client, a, err := newBoostyClient(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	posts, err := client.FetchPosts(ctx, args[0], boostyListLimit(cmd), a)
	if err != nil {
		return err
	}

	posts, err = applyFilter(ctx, boostyFilter, posts, filter.BoostyEnv, func(p boosty.Post) string { return p.ID })
	if err != nil {
		return err
	}

	logger.Info().Str("blog", args[0]).Int("posts", len(posts)).Bool("authorized", a != nil).Msg("Fetched Boosty posts")
	return writeJSON(cmd.OutOrStdout(), posts)
}

func runBoostyPost(cmd *cobra.Command, args []string) error {
	client, a, err := newBoostyClient(cmd)
	if err != nil {
		return err
	}

	post, err := client.FetchPost(cmd.Context(), args[0], args[1], a)
	if err != nil {
		return err
	}

	if post.Price > 0 && !post.HasData() {
		logger.Warn().Str("post", post.ID).Int64("price", post.Price).Msg("Paid content not included, check the access token")
	}
	return writeJSON(cmd.OutOrStdout(), post)
}

func runBoostyRaw(cmd *cobra.Command, args []string) error {
	client, a, err := newBoostyClient(cmd)
	if err != nil {
		return err
	}

	raw, err := client.FetchPostsRaw(cmd.Context(), args[0], boostyListLimit(cmd), a)
	if err != nil {
		return err
	}
	return writeJSON(cmd.OutOrStdout(), raw)
}
