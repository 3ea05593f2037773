package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review commands",
	}

	cmd.AddCommand(newReviewListCmd())
	cmd.AddCommand(newReviewGetCmd())
	cmd.AddCommand(newReviewCreateCmd())
	cmd.AddCommand(newReviewUpdateCmd())
	cmd.AddCommand(newReviewDeleteCmd())

	return cmd
}

func newReviewListCmd() *cobra.Command {
	var title, search, order string
	var rating int
	var asc bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if title != "" {
				query.Set("movie_title", title)
			}
			if cmd.Flags().Changed("rating") {
				query.Set("rating", strconv.Itoa(rating))
			}
			if search != "" {
				query.Set("search", search)
			}
			if order != "" {
				query.Set("order", order)
			}
			if asc {
				query.Set("desc", "false")
			}

			path := "/api/v1/reviews"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}

			var result ReviewList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Filter by exact movie title")
	cmd.Flags().IntVar(&rating, "rating", 0, "Filter by exact rating (1-5)")
	cmd.Flags().StringVar(&search, "search", "", "Search in title and review text")
	cmd.Flags().StringVar(&order, "order", "", "Order by: created, rating")
	cmd.Flags().BoolVar(&asc, "asc", false, "Sort ascending instead of descending")

	return cmd
}

func newReviewGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a review by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Review

			if err := client.Get("/api/v1/reviews/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newReviewCreateCmd() *cobra.Command {
	var title, content string
	var rating int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new review",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"movie_title": title,
				"content":     content,
				"rating":      rating,
			}
			var result Review

			if err := client.Post("/api/v1/reviews", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Movie title (required)")
	cmd.Flags().StringVar(&content, "content", "", "Review text (required)")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-5 (required)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newReviewUpdateCmd() *cobra.Command {
	var title, content string
	var rating int

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{}
			if cmd.Flags().Changed("title") {
				req["movie_title"] = title
			}
			if cmd.Flags().Changed("content") {
				req["content"] = content
			}
			if cmd.Flags().Changed("rating") {
				req["rating"] = rating
			}
			if len(req) == 0 {
				return fmt.Errorf("nothing to update")
			}
			var result Review

			if err := client.Patch("/api/v1/reviews/"+args[0], req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Movie title")
	cmd.Flags().StringVar(&content, "content", "", "Review text")
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating 1-5")

	return cmd
}

func newReviewDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your reviews",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/reviews/" + args[0]); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Review deleted")
			return nil
		},
	}
}
