// lin — look up German/English translations from the command line or from a
// launcher that runs one command per query.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pricofy/dictionary-lookup/internal/config"
	"github.com/pricofy/dictionary-lookup/internal/dispatcher"
	"github.com/pricofy/dictionary-lookup/internal/domain"
	"github.com/pricofy/dictionary-lookup/internal/logger"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lin",
		Short: "Translate words with Linguee",
		Long: `lin — translation suggestions from Linguee.

Commands:
  query     Print suggestions for a phrase (launcher items)
  url       Print the Linguee lookup URL for a word
  version   Show version information

Configuration is read from CONFIG_PATH (YAML) and LINGUEE_* / LOG_* environment
variables; with neither set, the German-English dictionary is used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newQueryCmd(),
		newURLCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lin version %s\n", version)
			fmt.Fprintf(out, "  commit:    %s\n", commit)
			fmt.Fprintf(out, "  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// query
// ---------------------------------------------------------------------------

func newQueryCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "query [phrase...]",
		Short: "Print suggestions for a phrase",
		Long: `Look up a phrase and print one item per headword.

Without a phrase the prompt item is printed. A failed lookup prints no items;
the cause is logged to stderr.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, log, err := newDispatcher()
			if err != nil {
				return err
			}

			phrase := strings.Join(args, " ")
			items, err := d.Query(cmd.Context(), phrase)
			if err != nil {
				log.WarnContext(cmd.Context(), "lookup failed",
					slog.String("query", phrase),
					slog.String("error", err.Error()),
				)
				items = []domain.Item{}
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), items)
			}
			writeText(cmd.OutOrStdout(), items)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print items as a JSON array")

	return cmd
}

// ---------------------------------------------------------------------------
// url
// ---------------------------------------------------------------------------

func newURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "url <word>",
		Short: "Print the lookup URL for a word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, _, err := newDispatcher()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d.LookupURL(strings.Join(args, " ")))
			return nil
		},
	}
}

func newDispatcher() (*dispatcher.Dispatcher, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	log := logger.New(cfg.Log)

	d, err := dispatcher.New(cfg.Linguee, log)
	if err != nil {
		return nil, nil, err
	}
	return d, log, nil
}

func writeJSON(w io.Writer, items []domain.Item) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(items)
}

func writeText(w io.Writer, items []domain.Item) {
	for _, item := range items {
		fmt.Fprintln(w, item.Text)
		if item.Subtext != "" {
			fmt.Fprintf(w, "    %s\n", item.Subtext)
		}
		for _, a := range item.Actions {
			if a.Kind == domain.ActionOpenURL {
				fmt.Fprintf(w, "    %s\n", a.URL)
			}
		}
	}
}
