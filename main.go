package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/devancy/search-server/internal/config"
	"github.com/devancy/search-server/internal/engine"
	"github.com/devancy/search-server/internal/ingest"
	"github.com/devancy/search-server/internal/paginator"
	"github.com/devancy/search-server/internal/requestqueue"
)

// app bundles everything a subcommand needs once the corpus is loaded:
// the search engine itself and a request queue wrapping it for the
// no-result-rate statistic.
type app struct {
	cfg    *config.Config
	engine *engine.Engine
	queue  *requestqueue.RequestQueue
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("search-server failed")
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	var debug bool
	var a app

	root := &cobra.Command{
		Use:   "search-server",
		Short: "In-memory TF-IDF full text search engine",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(debug)

			cfg, err := config.NewLoader().Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			eng, err := engine.NewWithShardCount(cfg.Corpus.StopWords, cfg.Engine.ShardCount)
			if err != nil {
				return fmt.Errorf("construct engine: %w", err)
			}

			records, err := ingest.LoadRecords(cfg.Corpus.Path)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			if err := ingest.AddAll(eng, records, log.Logger); err != nil {
				return fmt.Errorf("index corpus: %w", err)
			}
			log.Info().Int("documents", eng.GetDocumentCount()).Msg("corpus indexed")

			a = app{cfg: cfg, engine: eng, queue: requestqueue.New(eng)}
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML/JSON config file")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(newSearchCmd(&a))
	root.AddCommand(newMatchCmd(&a))
	root.AddCommand(newBatchCmd(&a))
	root.AddCommand(newDedupeCmd(&a))

	return root
}

func setupLogging(debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func newSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Interactively run plus/minus queries against the corpus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractiveSearch(a)
		},
	}
	return cmd
}

func runInteractiveSearch(a *app) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".search_history.tmp",
		InterruptPrompt: "^C\n",
		EOFPrompt:       "exit\n",
		HistoryLimit:    100,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Println("\nEnter your search query (plus words required, -word excludes it).")
	fmt.Println("Press Ctrl+C or type 'exit' to quit.")

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				fmt.Println("\nExiting...")
				return nil
			}
			continue
		}
		if err == io.EOF || strings.TrimSpace(line) == "exit" {
			fmt.Println("\nExiting...")
			return nil
		}
		q := strings.TrimSpace(line)
		if q == "" {
			continue
		}

		policy := engine.Sequential
		if a.cfg.Engine.DefaultParallel {
			policy = engine.Parallel
		}
		results, err := a.queue.AddFindRequestPolicy(q, policy)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		displayResults(results, a.cfg.Engine.MaxResults)

		if noResults := a.queue.GetNoResultRequests(); noResults > 0 {
			log.Debug().Int("empty_in_window", noResults).Msg("request queue stats")
		}
	}
}

func displayResults(results []engine.Document, pageSize int) {
	if len(results) == 0 {
		fmt.Println("No matches found.")
		return
	}
	fmt.Println("\nResults (sorted by relevance):")
	fmt.Println(strings.Repeat("-", 60))
	for _, page := range paginator.Paginate(results, pageSize) {
		for i, doc := range page {
			fmt.Printf("%d. %s\n", i+1, doc.String())
		}
	}
	fmt.Println(strings.Repeat("-", 60))
}

func newMatchCmd(a *app) *cobra.Command {
	var parallel bool
	cmd := &cobra.Command{
		Use:   "match <document-id> <query>",
		Short: "Show which plus-words of a query match a given document",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parsePositiveInt(args[0])
			if err != nil {
				return err
			}
			q := strings.Join(args[1:], " ")

			if !cmd.Flags().Changed("parallel") {
				parallel = a.cfg.Engine.DefaultParallel
			}
			policy := engine.Sequential
			if parallel {
				policy = engine.Parallel
			}
			words, status, err := a.engine.MatchDocument(q, id, policy)
			if err != nil {
				return err
			}
			fmt.Printf("status=%s matched=%v\n", status, words)
			return nil
		},
	}
	cmd.Flags().BoolVar(&parallel, "parallel", false, "use the parallel match variant")
	return cmd
}

func newBatchCmd(a *app) *cobra.Command {
	var joined bool
	cmd := &cobra.Command{
		Use:   "batch <query> [query...]",
		Short: "Run several queries in parallel and print their results",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if joined {
				docs, errs := engine.ProcessQueriesJoined(a.engine, args)
				for _, err := range errs {
					if err != nil {
						return err
					}
				}
				for _, d := range docs {
					fmt.Println(d.String())
				}
				return nil
			}

			perQuery, errs := engine.ProcessQueries(a.engine, args)
			for i, docs := range perQuery {
				if errs[i] != nil {
					fmt.Printf("query %q: error: %v\n", args[i], errs[i])
					continue
				}
				fmt.Printf("query %q:\n", args[i])
				for _, d := range docs {
					fmt.Println("  " + d.String())
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&joined, "joined", false, "flatten all query results into one ordered list")
	return cmd
}

func newDedupeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dedupe",
		Short: "Remove documents whose word set duplicates an earlier document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.engine.RemoveDuplicates(func(id int) {
				log.Info().Int("document_id", id).Msgf("Found duplicate document id %d", id)
			})
			return nil
		},
	}
}

func parsePositiveInt(s string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
		return 0, fmt.Errorf("invalid document id %q", s)
	}
	return n, nil
}
