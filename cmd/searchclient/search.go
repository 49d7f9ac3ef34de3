package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/surfedu/searchclient"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search documents",
	Long: `Search runs a full text search. Filters select values of a field,
range filters take inclusive bounds where an empty bound is open:

  searchclient search wiskunde --filter technical_type=video,audio \
      --range publisher_date=2020-01-01..`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters(cmd)
		if err != nil {
			return err
		}
		opts := &searchclient.SearchOptions{Filters: filters}
		opts.Ordering, _ = cmd.Flags().GetString("ordering")
		opts.Page, _ = cmd.Flags().GetInt("page")
		opts.PageSize, _ = cmd.Flags().GetInt("page-size")
		opts.MinScore, _ = cmd.Flags().GetFloat64("min-score")
		opts.Aggregate, _ = cmd.Flags().GetBool("aggregate")

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.Search(cmd.Context(), firstArg(args), opts)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var aggregationsCmd = &cobra.Command{
	Use:   "aggregations [text]",
	Short: "Count documents per filter value",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters(cmd)
		if err != nil {
			return err
		}
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		res, err := c.Aggregations(cmd.Context(), firstArg(args), filters)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var autocompleteCmd = &cobra.Command{
	Use:   "autocomplete <text>",
	Short: "Complete a search text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		options, err := c.Autocomplete(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, options)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{searchCmd, aggregationsCmd} {
		cmd.Flags().StringArray("filter", nil, "field=value[,value...] (repeatable)")
		cmd.Flags().StringArray("range", nil, "field=lower..upper (repeatable)")
	}
	searchCmd.Flags().String("ordering", "", "order by field, prefix with - for descending")
	searchCmd.Flags().Int("page", 1, "page number")
	searchCmd.Flags().Int("page-size", 5, "results per page")
	searchCmd.Flags().Float64("min-score", 0, "minimum relevance score")
	searchCmd.Flags().Bool("aggregate", false, "include facet counts")

	rootCmd.AddCommand(searchCmd, aggregationsCmd, autocompleteCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func parseFilters(cmd *cobra.Command) ([]searchclient.Filter, error) {
	terms, _ := cmd.Flags().GetStringArray("filter")
	ranges, _ := cmd.Flags().GetStringArray("range")

	filters := make([]searchclient.Filter, 0, len(terms)+len(ranges))
	for _, raw := range terms {
		field, values, ok := strings.Cut(raw, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid filter %q, want field=value[,value...]", raw)
		}
		filters = append(filters, searchclient.NewFilter(field, strings.Split(values, ",")...))
	}
	for _, raw := range ranges {
		field, bounds, ok := strings.Cut(raw, "=")
		lower, upper, okBounds := strings.Cut(bounds, "..")
		if !ok || !okBounds || field == "" {
			return nil, fmt.Errorf("invalid range %q, want field=lower..upper", raw)
		}
		filters = append(filters, searchclient.NewRangeFilter(field, lower, upper))
	}
	return filters, nil
}
