package cmd

import (
	"fmt"
	"sort"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/cobra"

	"github.com/zjrosen/restyle/internal/restyle"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available style names",
	RunE: func(cmd *cobra.Command, args []string) error {
		names := styles.Names()
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var lexersCmd = &cobra.Command{
	Use:   "lexers",
	Short: "List available lexer names",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range lexers.Names(false) {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

var formattersCmd = &cobra.Command{
	Use:   "formatters",
	Short: "List registered formatter names",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range restyle.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stylesCmd)
	rootCmd.AddCommand(lexersCmd)
	rootCmd.AddCommand(formattersCmd)
}
