package main

import (
	"flag"
	"fmt"
	"os"
)

// AppFlags is the parsed command line. String fields stay empty when the flag
// was not given, so values from the config file survive.
type AppFlags struct {
	TargetURL      string
	ConfigFile     string
	JSONOutput     bool
	OutputFile     string
	LogLevel       string
	IncludeScripts bool
	NoProbe        bool
	NoBrowser      bool
}

func ParseFlags() AppFlags {
	targetURL := flag.String("url", "", "URL of the page to inspect (required).")
	targetURLAlias := flag.String("u", "", "Alias for -url")

	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	outputFile := flag.String("output", "", "Write the JSON report document to this file in addition to stdout.")
	outputFileAlias := flag.String("o", "", "Alias for -output")

	jsonOutput := flag.Bool("json", false, "Render the report as JSON on stdout instead of the console layout.")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config file if set).")
	includeScripts := flag.Bool("include-scripts", false, "Mine inline scripts for additional links.")
	noProbe := flag.Bool("no-probe", false, "Skip the direct HTTP probe of the target.")
	noBrowser := flag.Bool("no-browser", false, "Run without a headless browser: static page fetch, no browser fallback for link checks.")

	flag.Parse()

	flags := AppFlags{
		JSONOutput:     *jsonOutput,
		LogLevel:       *logLevel,
		IncludeScripts: *includeScripts,
		NoProbe:        *noProbe,
		NoBrowser:      *noBrowser,
	}

	if *targetURL != "" {
		flags.TargetURL = *targetURL
	} else if *targetURLAlias != "" {
		flags.TargetURL = *targetURLAlias
	}

	if *configFile != "" {
		flags.ConfigFile = *configFile
	} else if *configFileAlias != "" {
		flags.ConfigFile = *configFileAlias
	}

	if *outputFile != "" {
		flags.OutputFile = *outputFile
	} else if *outputFileAlias != "" {
		flags.OutputFile = *outputFileAlias
	}

	if flags.TargetURL == "" {
		fmt.Fprintln(os.Stderr, "[FATAL] --url argument is required")
		os.Exit(1)
	}

	return flags
}
