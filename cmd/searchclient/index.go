package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/surfedu/searchclient"
	"github.com/surfedu/searchclient/internal/domain"
	indexuc "github.com/surfedu/searchclient/internal/usecase/index"
	"github.com/surfedu/searchclient/internal/version"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage indices",
	Long: `Index names follow [prefix-]platform-entity[--suffix], for example
edusources-products--20240101. Legacy language indices use a language code
(nl, en, unk) in place of the entity.`,
}

var indexCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create an index with the schema its name implies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("document-type")

		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		if _, err := c.CreateIndex(cmd.Context(), args[0], docType); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", args[0])
		return nil
	},
}

var indexDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete an index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		if err := c.DeleteIndex(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
		return nil
	},
}

var indexExistsCmd = &cobra.Command{
	Use:   "exists <name>",
	Short: "Report whether an index or alias exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ok, err := c.IndexExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]bool{args[0]: ok})
	},
}

// schemaCmd prints a schema without connecting to the engine.
var schemaCmd = &cobra.Command{
	Use:         "schema <name>",
	Short:       "Print the settings and mappings of an index name",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		docType, _ := cmd.Flags().GetString("document-type")
		wordList, _ := cmd.Flags().GetString("decompound-word-list")

		dt := domain.DocumentType("")
		if docType != "" {
			var err error
			if dt, err = domain.ParseDocumentType(docType); err != nil {
				return err
			}
		}
		sch, err := indexuc.New(nil, wordList, zap.NewNop()).Schema(args[0], dt)
		if err != nil {
			return err
		}
		data, err := sch.JSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var presetsCmd = &cobra.Command{
	Use:         "presets",
	Short:       "List the available presets",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{"offline": "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		keys, err := searchclient.Presets()
		if err != nil {
			return err
		}
		return printJSON(cmd, keys)
	},
}

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version of searchclient",
	Annotations: map[string]string{"offline": "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "searchclient %s\n", version.String())
	},
}

func init() {
	for _, cmd := range []*cobra.Command{indexCreateCmd, schemaCmd} {
		cmd.Flags().String("document-type", "", "learning_material or research_product, default per platform")
	}
	schemaCmd.Flags().String("decompound-word-list", "", "engine side path of the Dutch compound word list")

	indexCmd.AddCommand(indexCreateCmd, indexDeleteCmd, indexExistsCmd)
	rootCmd.AddCommand(indexCmd, schemaCmd, presetsCmd, versionCmd)
}
