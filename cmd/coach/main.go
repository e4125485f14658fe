package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/finance-coach/internal/coach"
	"github.com/dvloznov/finance-coach/internal/config"
	"github.com/dvloznov/finance-coach/internal/education"
	"github.com/dvloznov/finance-coach/internal/logger"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.LogLevel)
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "analyze":
		runAnalyze(log)
	case "learn":
		runLearn(cfg, log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Personal Finance Coach CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  coach <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  analyze   Analyze a transaction file (CSV or JSON) and print the coach report")
	fmt.Println("  learn     Ask the financial-literacy tutor a question")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'coach <command> -h' for more information on a command.")
}

func runAnalyze(log zerolog.Logger) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	output := fs.String("output", "", "Path to save the report (.json for raw data, anything else for the rendered report)")
	rawJSON := fs.Bool("json", false, "Print the raw report JSON instead of the rendered report")
	fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		log.Fatal().Msg("Usage: coach analyze [options] FILE")
	}
	file := fs.Arg(0)

	fmt.Printf("\n[*] Processing transactions from: %s\n\n", file)

	report, err := coach.New(log).ProcessFile(file)
	if err != nil {
		log.Fatal().Err(err).Msg("Analysis failed")
	}

	if *rawJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to encode report")
		}
		fmt.Println(string(data))
	} else {
		renderReport(os.Stdout, report, false)
	}

	if *output != "" {
		if err := saveReport(*output, report); err != nil {
			log.Fatal().Err(err).Str("path", *output).Msg("Failed to save report")
		}
		fmt.Printf("\n[SAVED] Report saved to: %s\n", *output)
	}
}

func saveReport(path string, report *coach.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("saveReport: create %s: %w", path, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".json") {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("saveReport: encode report: %w", err)
		}
		return nil
	}

	renderReport(f, report, true)
	return nil
}

func runLearn(cfg config.Config, log zerolog.Logger) {
	fs := flag.NewFlagSet("learn", flag.ExitOnError)
	level := fs.String("level", "beginner", "Explanation depth: beginner, intermediate or advanced")
	language := fs.String("language", cfg.DefaultLanguage, "Explanation language: en or hinglish")
	fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		log.Fatal().Msg("Usage: coach learn [options] QUESTION")
	}
	query := strings.Join(fs.Args(), " ")

	opts := []education.Option{}
	if cfg.GeminiEnabled {
		opts = append(opts, education.WithGenerator(education.NewGeminiGenerator(cfg.GeminiModel)))
	}
	tutor := education.New(log, opts...)

	answer := tutor.Answer(context.Background(), query, education.Level(*level), education.Language(*language))
	fmt.Println(answer)
}
