package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/rpane/internal/app"
	"github.com/kk-code-lab/rpane/internal/config"
	"github.com/kk-code-lab/rpane/internal/logging"
	"github.com/kk-code-lab/rpane/internal/shellsetup"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func printHelp() {
	fmt.Print(`rpane - Dual-pane terminal file explorer

USAGE:
    rpane [OPTIONS]

OPTIONS:
    -h, --help            Show this help message and exit
    -v, --version         Print the version and exit
    -c, --config PATH     Read configuration from PATH
        --demo            Browse a built-in sample tree instead of the disk
    -s, --setup [SHELL]   Output shell integration snippet (optionally force SHELL)
`)
}

var parentShellDetector = shellsetup.DetectParentShellName

type options struct {
	configPath string
	demo       bool
}

// parseArgs handles the flags that exit immediately and returns the rest.
func parseArgs(args []string) (options, bool, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-h" || arg == "--help":
			printHelp()
			return opts, true, nil
		case arg == "-v" || arg == "--version":
			fmt.Println("rpane", version)
			return opts, true, nil
		case arg == "-s" || arg == "--setup":
			shellOverride := ""
			if i+1 < len(args) {
				shellOverride = args[i+1]
			}
			shellsetup.PrintSetup(shellOverride, shellsetup.Config{DetectParent: parentShellDetector})
			return opts, true, nil
		case strings.HasPrefix(arg, "--setup="):
			shellOverride := strings.TrimPrefix(arg, "--setup=")
			shellsetup.PrintSetup(shellOverride, shellsetup.Config{DetectParent: parentShellDetector})
			return opts, true, nil
		case arg == "-c" || arg == "--config":
			if i+1 >= len(args) {
				return opts, false, fmt.Errorf("%s needs a path", arg)
			}
			i++
			opts.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			opts.configPath = strings.TrimPrefix(arg, "--config=")
		case arg == "--demo":
			opts.demo = true
		default:
			return opts, false, fmt.Errorf("unknown option %q (see --help)", arg)
		}
	}
	return opts, false, nil
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	opts, done, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "rpane: %v\n", err)
		os.Exit(2)
	}
	if done {
		os.Exit(0)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		OutputPath: cfg.Log.Path,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer func() { _ = logging.Sync() }()

	log := logging.Named("main")
	log.Info("starting", logging.String("version", version))

	app, err := apppkg.NewApplication(apppkg.Options{Config: cfg, Demo: opts.demo})
	if err != nil {
		log.Error("init failed", logging.Err(err))
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()

	// Hand the final directory to the shell wrapper. The PID keeps
	// concurrent instances apart.
	if path := app.GetCurrentPath(); path != "" {
		resultFile := shellsetup.ResultPath(os.Getpid())
		// Write with 0600 permissions (owner only) for security
		if err := os.WriteFile(resultFile, []byte(path), 0600); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not write result file: %v\n", err)
		}
	}
	log.Info("exiting")
}
