package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
	"github.com/khalidmnor/legal-ai-assistant/internal/audit"
	"github.com/khalidmnor/legal-ai-assistant/internal/completion"
	"github.com/khalidmnor/legal-ai-assistant/internal/config"
	"github.com/khalidmnor/legal-ai-assistant/internal/extract"
)

func main() {
	var (
		list     = flag.Bool("list", false, "List the available functions")
		usage    = flag.Bool("usage", false, "Print recent usage records")
		limit    = flag.Int("limit", 20, "Number of usage records to print")
		function = flag.String("function", "", "Function ID to run")
		input    = flag.String("input", "", "Path to a JSON file of field values")
		document = flag.String("document", "", "PDF or DOCX file extracted into contract_text")
		out      = flag.String("out", "", `Write the result to a file; "auto" uses the function's download name`)
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		printHelp()
		os.Exit(0)
	}

	// Results go to stdout; only warnings reach the terminal otherwise.
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		fatal(2, "failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		fatal(2, "invalid config: %v", err)
	}

	registry := assistant.NewRegistry()

	switch {
	case *list:
		printFunctions(registry)
	case *usage:
		printUsage(cfg, *limit, log)
	case *function != "":
		runFunction(cfg, registry, *function, *input, *document, *out, log)
	default:
		printHelp()
		os.Exit(1)
	}
}

func fatal(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}

func printHelp() {
	fmt.Println(`Legal AI Assistant CLI

USAGE:
    legalctl -list
    legalctl -usage [-limit N]
    legalctl -function <id> -input fields.json [-document file.pdf|file.docx] [-out path|auto]

OPTIONS:
    -list              List the available functions and their fields
    -usage             Print recent usage records from the usage log
    -limit <n>         Number of usage records to print (default: 20)
    -function <id>     Function ID to run (see -list)
    -input <path>      JSON file with the field values for the run
    -document <path>   PDF or DOCX whose text is extracted into contract_text
    -out <path>        Write the result to a file instead of stdout;
                       "auto" uses the function's download name
    -help              Show this help message

EXAMPLES:
    # Show the function catalogue
    legalctl -list

    # Analyze a contract from a PDF
    legalctl -function contract_analysis -document nda.pdf

    # Generate a memorandum and save it under its download name
    legalctl -function memo_generator -input memo.json -out auto

    # Review recent activity
    legalctl -usage -limit 50

The OpenRouter API key is read from OPENROUTER_API_KEY or the config
file. Exit codes: 0 success, 1 usage error, 2 run failure.`)
}

func printFunctions(reg *assistant.Registry) {
	fmt.Println("Available functions:")
	for _, spec := range reg.List() {
		fmt.Printf("\n  %s\n      %s\n", spec.ID, spec.Title)
		for _, f := range spec.Fields {
			line := fmt.Sprintf("      %-26s %s", f.Name, f.Kind)
			if f.Required {
				line += " (required)"
			}
			fmt.Println(line)
		}
	}
}

func printUsage(cfg *config.Config, limit int, log *slog.Logger) {
	if !cfg.Assistant.Audit.Enabled {
		fmt.Println("The usage log is disabled in the configuration.")
		return
	}

	ulog, err := audit.Open(cfg.Assistant.Audit.DBPath, cfg.Assistant.Completion.Model, log)
	if err != nil {
		fatal(2, "failed to open usage log: %v", err)
	}
	defer ulog.Close()

	entries, err := ulog.Recent(limit)
	if err != nil {
		fatal(2, "failed to read usage log: %v", err)
	}
	if len(entries) == 0 {
		fmt.Println("No usage recorded yet.")
		return
	}

	fmt.Printf("%-20s %-20s %-7s %-19s %8s %8s %8s\n",
		"FUNCTION", "TIMESTAMP", "STATUS", "ERROR", "MS", "PROMPT", "OUTPUT")
	for _, e := range entries {
		fmt.Printf("%-20s %-20s %-7s %-19s %8d %8d %8d\n",
			e.Function,
			e.Timestamp.Format("2006-01-02 15:04:05"),
			e.Status,
			e.ErrorKind,
			e.DurationMS,
			e.PromptChars,
			e.CompletionChars)
	}
}

func runFunction(cfg *config.Config, reg *assistant.Registry, id, inputPath, documentPath, outPath string, log *slog.Logger) {
	fields := map[string]any{}
	if inputPath != "" {
		raw, err := os.ReadFile(inputPath)
		if err != nil {
			fatal(1, "failed to read input file: %v", err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			fatal(1, "failed to parse input file: %v", err)
		}
	}

	if documentPath != "" {
		kind := extract.NormalizeType(filepath.Ext(documentPath))
		if !extract.Supported(kind) {
			fatal(1, "unsupported document type %q (want .pdf or .docx)", filepath.Ext(documentPath))
		}
		blob, err := os.ReadFile(documentPath)
		if err != nil {
			fatal(1, "failed to read document: %v", err)
		}
		text, err := extract.Extract(blob, kind)
		if err != nil {
			fatal(2, "failed to extract document text: %v", err)
		}
		fields["contract_text"] = text
	}

	usage := audit.Disabled()
	if cfg.Assistant.Audit.Enabled {
		ulog, err := audit.Open(cfg.Assistant.Audit.DBPath, cfg.Assistant.Completion.Model, log)
		if err != nil {
			log.Warn("usage log unavailable", "error", err)
		} else {
			usage = ulog
			defer ulog.Close()
		}
	}

	client := completion.NewClient(completion.Options{
		BaseURL:     cfg.Assistant.Completion.BaseURL,
		Model:       cfg.Assistant.Completion.Model,
		MaxTokens:   cfg.Assistant.Completion.MaxTokens,
		Temperature: cfg.Assistant.Completion.Temperature,
		Timeout:     cfg.Assistant.Completion.Timeout,
	}, log)
	svc := assistant.NewService(reg, client, usage, log)

	result, err := svc.Run(context.Background(), id, fields, cfg.Assistant.Completion.APIKey)
	if err != nil {
		fatal(2, "%v", err)
	}

	if outPath == "" {
		fmt.Println(result.Text)
		return
	}

	path := outPath
	if path == "auto" {
		path = result.DownloadName
		if path == "" {
			path = id + ".txt"
		}
	}
	if err := os.WriteFile(path, []byte(result.Text), 0644); err != nil {
		fatal(2, "failed to write result: %v", err)
	}
	fmt.Printf("Result written to: %s\n", path)
}
