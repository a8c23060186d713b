package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"

	"github.com/iwvelando/defi-nest/internal/config"
	"github.com/iwvelando/defi-nest/internal/forecast"
	"github.com/iwvelando/defi-nest/pkg/constants"
	"github.com/iwvelando/defi-nest/pkg/output"
	"github.com/iwvelando/defi-nest/pkg/validation"
	"go.uber.org/zap"
)

// loadConfiguration reads the config file. A missing file at the default
// location falls back to the built-in defaults.
func loadConfiguration(path string, explicit bool) (*config.Configuration, error) {
	if !explicit {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
	}
	return config.LoadConfiguration(path)
}

func main() {
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	preset := flag.String("preset", "", "scenario preset override: \"2008 Crisis\", \"COVID Shock\", \"Optimistic\", \"Custom\"")
	trials := flag.Int("trials", 0, "number of Monte Carlo trials override")
	quarterly := flag.Bool("quarterly", false, "also simulate the four quarterly buckets")
	seed := flag.Int64("seed", 0, "random seed for a reproducible run")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	compare := flag.Bool("compare", false, "run every preset side by side")
	breakeven := flag.Bool("breakeven", false, "search each input for the value at which risk changes level")
	flag.Parse()

	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	conf, err := loadConfiguration(*configLocation, setFlags["config"])
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// CLI flags take precedence over the config file
	if setFlags["preset"] {
		conf.Simulation.Preset = *preset
	}
	if setFlags["trials"] {
		conf.Simulation.Trials = *trials
	}
	if setFlags["quarterly"] {
		conf.Simulation.Quarterly = *quarterly
	}
	if setFlags["seed"] {
		conf.Simulation.Seed = seed
	}
	if setFlags["breakeven"] {
		conf.Simulation.Breakeven = *breakeven
	}

	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	err = validation.ValidateOutputFormat(outputFormat)
	if err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	if *compare {
		runComparison(logger, conf, outputFormat)
		return
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	req, err := forecast.FromConfiguration(conf)
	if err != nil {
		logger.Fatal("failed to resolve scenario",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	result, err := forecast.Run(logger, nil, req)
	if err != nil {
		logger.Fatal("failed to compute forecast",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(os.Stdout, result)
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, result.Results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, result)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

func runComparison(logger *zap.Logger, conf *config.Configuration, outputFormat string) {
	if outputFormat == constants.OutputFormatCSV {
		logger.Fatal("csv output holds a single scenario; use pretty or json with -compare",
			zap.String("op", "main"),
		)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := forecast.CompareAll(ctx, logger, nil, conf.Simulation.Trials, conf.Simulation.Seed)
	if err != nil {
		logger.Fatal("failed to compare presets",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if outputFormat == constants.OutputFormatJSON {
		pointers := make([]*forecast.Forecast, 0, len(results))
		for i := range results {
			pointers = append(pointers, &results[i])
		}
		if err := output.JSONFormat(os.Stdout, pointers...); err != nil {
			logger.Fatal("failed to write output",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	output.ComparisonFormat(os.Stdout, results)
}
