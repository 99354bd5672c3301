package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: note2site <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Convert exported notebook pages into a Jekyll site")
	fmt.Fprintln(w, "  doctor     Check the site generator and environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'note2site help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: note2site build <source> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert exported notebook pages into a Jekyll site source and manifest.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source    Export root (optional if config has source.dir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>        Site source directory (default: jekyll)")
	fmt.Fprintln(w, "  -m, --mode <s>            Sections: flat (subdirectories), nested (every directory)")
	fmt.Fprintln(w, "      --manifest <name>     Manifest under _data/: sections.json, sections.yml")
	fmt.Fprintln(w, "      --clean               Remove the output directory first")
	fmt.Fprintln(w, "      --report <path>       Write the style report (.html or .md)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --title <s>           Site title in _config.yml")
	fmt.Fprintln(w, "      --layout <name>       Layout used by every page (default: default)")
	fmt.Fprintln(w, "      --no-build            Only write the site sources")
	fmt.Fprintln(w, "      --generator <cmd>     Site generator executable (default: jekyll)")
	fmt.Fprintln(w, "      --dest <dir>          Generator destination (default: <output>/_site)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Generator timeout (e.g., 90s, 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pages:")
	fmt.Fprintln(w, "      --skip-keyword <s>    Skip pages whose title contains s (repeatable)")
	fmt.Fprintln(w, "      --min-chars <n>       Minimum visible characters (default: 100)")
	fmt.Fprintln(w, "      --locale <tag>        Language tag replacing English ones (default: zh-TW)")
	fmt.Fprintln(w, "      --canvas              Add the background canvas element")
	fmt.Fprintln(w, "      --no-time             Do not prepend a <time> element")
	fmt.Fprintln(w, "      --assets <dir>        Override styles/*.css and templates/*.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Image lookup:")
	fmt.Fprintln(w, "      --no-lookup           Keep image sources as exported")
	fmt.Fprintln(w, "      --lookup-url <url>    Lookup service endpoint")
	fmt.Fprintln(w, "      --lookup-timeout <d>  Per-request timeout (default: 10s)")
	fmt.Fprintln(w, "      --lookup-workers <n>  Concurrent lookups per page (1-32, default: 4)")
	fmt.Fprintln(w, "      --rate-limit <f>      Requests per second (0 = unlimited)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log every page")
	fmt.Fprintln(w, "      --log-level <s>       debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      console, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NOTE2SITE_CONFIG, NOTE2SITE_SOURCE_DIR, NOTE2SITE_OUTPUT_DIR, NOTE2SITE_MODE,")
	fmt.Fprintln(w, "  NOTE2SITE_TIMEOUT, NOTE2SITE_LOOKUP_URL, NOTE2SITE_LOOKUP_TIMEOUT,")
	fmt.Fprintln(w, "  NOTE2SITE_LOOKUP_WORKERS, NOTE2SITE_NO_LOOKUP, NOTE2SITE_NO_BUILD,")
	fmt.Fprintln(w, "  NOTE2SITE_ASSETS, NOTE2SITE_REPORT, NOTE2SITE_LOG_LEVEL, NOTE2SITE_LOG_FORMAT")
	fmt.Fprintln(w, "  Flags override the environment, which overrides the config file.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: note2site doctor [--json] [--generator <cmd>]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that the site generator is installed and the environment is usable.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: note2site version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: note2site help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
