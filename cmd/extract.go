package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/spigell/cv-analyzer/internal/ai"
	"github.com/spigell/cv-analyzer/internal/extract"
	"github.com/spigell/cv-analyzer/internal/logger"
	"github.com/spigell/cv-analyzer/internal/review"

	"github.com/gabriel-vasile/mimetype"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptAnalyze = "Analyze with AI"
	PromptDump    = "Dump result to file"
	PromptQuit    = "Quit"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptAnalyze, PromptDump, PromptQuit},
}

var extractCmd = &cobra.Command{
	Use:   "extract <file>",
	Short: "Extract fields from a PDF or text résumé and optionally review it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runExtract(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolP("analyze", "a", false, "run the AI analysis right after extraction")
	extractCmd.Flags().BoolP("yes", "y", false, "do not ask what to do after extraction")
	extractCmd.Flags().StringP("output", "o", "", "write the result to this file instead of only printing it")
}

// result is what the command prints and dumps.
type result struct {
	ParsedData *extract.ParsedCV `json:"parsedData"`
	Analysis   *ai.Analysis      `json:"analysis,omitempty"`
	Source     ai.Source         `json:"source,omitempty"`
}

func runExtract(cmd *cobra.Command, path string) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"), logger.WithOutputs("stderr"), logger.WithName("extract"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer func() { _ = logger.Sync() }()

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatal("reading the document", zap.Error(err))
	}

	logger.Debug("document loaded",
		zap.String("file", path),
		zap.String("mime", mimetype.Detect(data).String()),
		zap.Int("size", len(data)),
	)

	reviews, _, err := newReviewService(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the review service", zap.Error(err))
	}

	cv, err := reviews.ParseDocument(data)
	if err != nil {
		logger.Fatal("extracting fields", zap.Error(err), zap.String("file", path))
	}

	res := &result{ParsedData: cv}
	if err := printJSON(res); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}

	output, _ := cmd.Flags().GetString("output")
	analyze, _ := cmd.Flags().GetBool("analyze")
	yes, _ := cmd.Flags().GetBool("yes")

	if analyze {
		if err := handleAction(ctx, PromptAnalyze, reviews, res, output, logger); err != nil {
			logger.Fatal("analyzing", zap.Error(err))
		}
	}

	if yes {
		if output != "" {
			if err := handleAction(ctx, PromptDump, reviews, res, output, logger); err != nil {
				logger.Fatal("dumping result", zap.Error(err))
			}
		}
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(ctx, action, reviews, res, output, logger); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(ctx context.Context, action string, reviews *review.Service, res *result, output string, logger *zap.Logger) error {
	switch action {
	case PromptAnalyze:
		analysis, source, err := reviews.Analyze(ctx, res.ParsedData)
		if err != nil {
			return err
		}
		res.Analysis, res.Source = analysis, source
		logger.Info("analysis ready", zap.String("source", string(source)))
		return printJSON(res)
	case PromptDump:
		filename, err := dumpResult(res, output)
		if err != nil {
			return fmt.Errorf("dump result to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptQuit:
		logger.Info("exiting", zap.String("reason", "got quit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func printJSON(res *result) error {
	pretty, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}

// dumpResult writes res to path, or to a new temporary file when path is empty.
func dumpResult(res *result, path string) (string, error) {
	pretty, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", err
	}

	if path == "" {
		f, err := os.CreateTemp("", app+"-*.json")
		if err != nil {
			return "", err
		}
		defer f.Close()
		if _, err := f.Write(pretty); err != nil {
			return "", err
		}
		return f.Name(), nil
	}

	if err := os.WriteFile(path, pretty, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
