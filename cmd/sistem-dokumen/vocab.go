package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/terratensor/sistem-dokumen/internal/runner"
	"github.com/terratensor/sistem-dokumen/internal/source"
	"github.com/terratensor/sistem-dokumen/internal/tokenizer"
)

var (
	vocabOutput      string
	vocabSort        string
	vocabLowercase   bool
	vocabFilterPunct bool
)

var vocabCmd = &cobra.Command{
	Use:   "vocab PATH...",
	Short: "Build a vocabulary from processed documents",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFromFlags()
		if err != nil {
			return err
		}

		// Флаги имеют приоритет над файлом конфигурации
		flags := cmd.Flags()
		if flags.Changed("sort") {
			a.Config.Vocab.Sort = vocabSort
		}
		if flags.Changed("lowercase") {
			a.Config.Vocab.Lowercase = vocabLowercase
		}
		if flags.Changed("filter-punct") {
			a.Config.Vocab.FilterPunct = vocabFilterPunct
		}
		if !tokenizer.ValidSort(a.Config.Vocab.Sort) {
			return fmt.Errorf("unknown sort: %s", a.Config.Vocab.Sort)
		}

		if err := a.vocab(cmd.Context(), args, vocabOutput); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Vocabulary saved to", vocabOutput)
		return nil
	},
}

func init() {
	vocabCmd.Flags().StringVarP(&vocabOutput, "output", "o", "vocab.txt", "Output file for the vocabulary")
	vocabCmd.Flags().StringVar(&vocabSort, "sort", tokenizer.SortFreq, "Sort vocabulary by frequency (freq) or alphabetically (alpha)")
	vocabCmd.Flags().BoolVar(&vocabLowercase, "lowercase", false, "Convert tokens to lowercase")
	vocabCmd.Flags().BoolVar(&vocabFilterPunct, "filter-punct", false, "Filter out punctuation tokens")
}

// vocab строит словарь по обработанному содержимому документов.
// Документы с ошибками пропускаются.
func (a *appInstance) vocab(ctx context.Context, paths []string, outputFile string) error {
	files, err := source.Collect(paths)
	if err != nil {
		return err
	}

	tok := tokenizer.NewTokenizer(a.Config.Vocab.Lowercase, a.Config.Vocab.FilterPunct)

	stats, err := a.runner().Run(ctx, files, func(res runner.Result) {
		if res.Err != nil {
			return
		}
		if err := tok.Add(res.Output); err != nil {
			a.Logger.WithField("file", res.Path).WithError(err).Warn("failed to tokenize document")
		}
	})
	if err != nil {
		return err
	}

	a.Logger.WithField("processed", stats.Processed).WithField("failed", stats.Failed).Info("vocabulary built")

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if err := tok.WriteTo(file, a.Config.Vocab.Sort); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}
	return file.Close()
}
