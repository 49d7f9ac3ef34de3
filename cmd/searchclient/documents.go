package main

import (
	"github.com/spf13/cobra"

	"github.com/surfedu/searchclient"
)

var getCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Fetch documents by external id or srn",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &searchclient.LookupOptions{}
		external, _ := cmd.Flags().GetBool("external")
		opts.BySRN = !external
		opts.Page, _ = cmd.Flags().GetInt("page")
		opts.PageSize, _ = cmd.Flags().GetInt("page-size")

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.GetDocumentsByID(cmd.Context(), args, opts)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var moreLikeThisCmd = &cobra.Command{
	Use:   "more-like-this <id>",
	Short: "Find documents similar to a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := &searchclient.SimilarOptions{}
		opts.Language, _ = cmd.Flags().GetString("language")
		external, _ := cmd.Flags().GetBool("external")
		opts.BySRN = !external

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		page, err := c.MoreLikeThis(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

var authorSuggestionsCmd = &cobra.Command{
	Use:   "author-suggestions <name>",
	Short: "Find documents mentioning an author that don't credit them",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		page, err := c.AuthorSuggestions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count searchable documents",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, stats)
	},
}

var explainCmd = &cobra.Command{
	Use:   "explain <srn> <text>",
	Short: "Explain the score of a document for a search text",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		explanation, err := c.ExplainResult(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, explanation)
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the engine and the searched aliases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		return printJSON(cmd, c.Health(cmd.Context()))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{getCmd, moreLikeThisCmd} {
		cmd.Flags().Bool("external", true, "identifiers are external ids, --external=false for srns")
	}
	getCmd.Flags().Int("page", 1, "page number")
	getCmd.Flags().Int("page-size", 10, "documents per page")
	moreLikeThisCmd.Flags().String("language", "", "language index to search (nl, en)")

	rootCmd.AddCommand(getCmd, moreLikeThisCmd, authorSuggestionsCmd, statsCmd, explainCmd, healthCmd)
}
