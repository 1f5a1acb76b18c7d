package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/listingkit/config"
	"github.com/sevigo/listingkit/dictionary"
	"github.com/sevigo/listingkit/downloader"
	"github.com/sevigo/listingkit/listing"
	"github.com/sevigo/listingkit/textsplitter"
	"github.com/sevigo/listingkit/titles"
)

// cli holds flag values and the state resolved before each command runs.
type cli struct {
	configPath  string
	outputDir   string
	minSize     string
	store       string
	dictionary  string
	stores      string
	concurrency string
	verbose     bool

	resolved config.Resolved
	logger   *slog.Logger
}

func newRootCommand() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:   "listingkit",
		Short: "Tools for turning 1688 offers into storefront listings",
		Long: `listingkit formats Chinese product titles, rewrites listing text for a
store profile and downloads offer images.

Examples:
  listingkit title "水潤顯色持久防水眼線液筆 2支"
  listingkit prefix --store 墨墨優選 "💕台灣現貨💕 眼線筆"
  listingkit describe --store 4店 < description.txt
  listingkit scrape https://detail.1688.com/offer/123456.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.initialize()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.listingkit/config.yaml)")
	flags.StringVar(&c.store, "store", "", "store profile name")
	flags.StringVar(&c.dictionary, "dictionary", "", "dictionary YAML file (default built-in)")
	flags.StringVar(&c.stores, "stores", "", "store profiles YAML file (default built-in)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newChunkCommand(c),
		newTitleCommand(c),
		newPrefixCommand(c),
		newDescribeCommand(c),
		newSKUCommand(c),
		newTrimImagesCommand(c),
		newScrapeCommand(c),
		newConfigCommand(c),
	)
	return root
}

func (c *cli) initialize() error {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	c.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	resolved, err := config.Resolve(config.ResolveOptions{
		ConfigPath:     c.configPath,
		CLIOutputDir:   c.outputDir,
		CLIMinSize:     c.minSize,
		CLIStore:       c.store,
		CLIDictionary:  c.dictionary,
		CLIStores:      c.stores,
		CLIConcurrency: c.concurrency,
	})
	if err != nil {
		return err
	}
	c.resolved = resolved
	return nil
}

func (c *cli) loadDictionary() (*dictionary.Dictionary, error) {
	path := c.resolved.Dictionary.Value
	if path == "" {
		return dictionary.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}
	defer f.Close()
	return dictionary.Load(f)
}

func (c *cli) loadStores() (*listing.Stores, error) {
	path := c.resolved.Stores.Value
	if path == "" {
		return listing.DefaultStores(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store profiles: %w", err)
	}
	defer f.Close()
	return listing.LoadStores(f)
}

// storeProfile returns the configured store, or the first profile when none
// is set. A name that is set but unknown is an error.
func (c *cli) storeProfile() (*listing.Stores, listing.StoreProfile, error) {
	stores, err := c.loadStores()
	if err != nil {
		return nil, listing.StoreProfile{}, err
	}
	name := c.resolved.Store.Value
	if name == "" {
		return stores, stores.Lookup(""), nil
	}
	profile, err := stores.Get(name)
	if err != nil {
		return nil, listing.StoreProfile{}, fmt.Errorf("%w (known: %s)", err, strings.Join(stores.Names(), ", "))
	}
	return stores, profile, nil
}

func (c *cli) splitter(opts ...textsplitter.Option) (*textsplitter.ChineseTitle, error) {
	dict, err := c.loadDictionary()
	if err != nil {
		return nil, err
	}
	return textsplitter.NewChineseTitle(dict, c.logger, opts...)
}

// inputLines returns the arguments, or the non-empty lines of stdin when
// there are none.
func inputLines(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 4<<20)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func readAll(cmd *cobra.Command) (string, error) {
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(b), nil
}

func newChunkCommand(c *cli) *cobra.Command {
	var minLen, maxLen int
	cmd := &cobra.Command{
		Use:   "chunk [text...]",
		Short: "Split unspaced Chinese text into short groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			splitter, err := c.splitter(textsplitter.WithMinChunkLen(minLen), textsplitter.WithMaxChunkLen(maxLen))
			if err != nil {
				return err
			}
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), splitter.Join(line))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&minLen, "min", 4, "minimum group length in characters")
	cmd.Flags().IntVar(&maxLen, "max", 8, "maximum group length in characters")
	return cmd
}

func newTitleCommand(c *cli) *cobra.Command {
	var traditional bool
	cmd := &cobra.Command{
		Use:   "title [title...]",
		Short: "Space a product title for display",
		RunE: func(cmd *cobra.Command, args []string) error {
			splitter, err := c.splitter()
			if err != nil {
				return err
			}
			var opts []titles.Option
			if traditional {
				opts = append(opts, titles.WithTraditional(nil))
			}
			formatter, err := titles.NewFormatter(splitter, c.logger, opts...)
			if err != nil {
				return err
			}
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Format(line))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&traditional, "traditional", false, "convert simplified characters first")
	return cmd
}

func newPrefixCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "prefix [title...]",
		Short: "Put the store's stock prefix in front of titles",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, profile, err := c.storeProfile()
			if err != nil {
				return err
			}
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Fprintln(cmd.OutOrStdout(), listing.ApplyTitlePrefix(line, profile))
			}
			return nil
		},
	}
}

func newDescribeCommand(c *cli) *cobra.Command {
	var asHTML, fromMarkdown bool
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Wrap a description read from stdin in the store's templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stores, profile, err := c.storeProfile()
			if err != nil {
				return err
			}
			text, err := readAll(cmd)
			if err != nil {
				return err
			}
			if fromMarkdown {
				out, err := listing.ApplyDescriptionMarkdown(text, profile)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			if asHTML {
				fmt.Fprintln(cmd.OutOrStdout(), listing.ApplyDescriptionHTML(text, profile))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), listing.ApplyDescription(text, profile, stores))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asHTML, "html", false, "input is rich-text HTML")
	cmd.Flags().BoolVar(&fromMarkdown, "markdown", false, "input is Markdown, rendered to rich-text HTML")
	cmd.MarkFlagsMutuallyExclusive("html", "markdown")
	return cmd
}

func newSKUCommand(c *cli) *cobra.Command {
	var parent string
	var variants bool
	cmd := &cobra.Command{
		Use:   "sku [value...]",
		Short: "Normalise variant SKUs or variant names",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(cmd, args)
			if err != nil {
				return err
			}
			if variants {
				editor := listing.NewVariantEditor(nil)
				for _, line := range lines {
					name, changed := editor.Edit(line)
					c.logger.Debug("Edited variant name", "from", line, "to", name, "changed", changed)
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}
			if strings.TrimSpace(parent) == "" {
				return fmt.Errorf("--parent is required unless --variants is set")
			}
			for _, v := range listing.NormalizeSKUs(parent, lines) {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&parent, "parent", "", "parent SKU to prefix")
	cmd.Flags().BoolVar(&variants, "variants", false, "treat input as variant names")
	return cmd
}

func newTrimImagesCommand(_ *cli) *cobra.Command {
	var keep int
	cmd := &cobra.Command{
		Use:   "trim-images",
		Short: "Keep only the first images of an HTML description read from stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			html, err := readAll(cmd)
			if err != nil {
				return err
			}
			out, err := listing.KeepFirstImages(html, keep)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().IntVar(&keep, "keep", 3, "number of images to keep")
	return cmd
}

func newScrapeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <offer-url>",
		Short: "Download the images and video of a 1688 offer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := downloader.New(c.resolved.OutputDir.Value,
				downloader.WithLogger(c.logger),
				downloader.WithConcurrency(c.resolved.ProbeConcurrency()),
			)
			report, err := downloader.NewScraper(d, c.logger).Scrape(cmd.Context(), args[0], c.resolved.MinSizePixels())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", report.Folder)
			fmt.Fprintf(out, "details: %d  main: %d  sku: %d\n",
				report.Counts["details"], report.Counts["main"], report.Counts["sku"])
			fmt.Fprintf(out, "downloaded: %d  failed: %d\n", report.Downloaded, report.Failed)
			if report.Note != "" {
				fmt.Fprintln(out, report.Note)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&c.outputDir, "output", "o", "", "output directory")
	cmd.Flags().StringVar(&c.minSize, "min-size", "", "minimum image width and height in pixels (default "+strconv.Itoa(config.DefaultMinSize)+")")
	cmd.Flags().StringVar(&c.concurrency, "concurrency", "", "images probed at once")
	return cmd
}

func newConfigCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration and where each value came from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c.resolved)
		},
	}
}
