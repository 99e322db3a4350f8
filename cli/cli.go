package cli

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	Left       string
	Base       string
	Right      string
	Title      string
	LeftTitle  string
	BaseTitle  string
	RightTitle string
	Markdown   string
	LookupDirs []string

	Side         string
	DefaultSides []string
	Partial      string
	Presenter    string
	NvimAddress  string
	StateDir     string
	NoState      bool
	Print        bool

	ConfigPath string
	NoConfig   bool
}

// ParseFlags parses the process arguments and merges the config file.
func ParseFlags() (*Config, error) {
	return Parse(os.Args[1:], xdg.ConfigHome)
}

// Parse defines and parses command-line flags using pflag, then fills the
// values not given on the command line from the config file below configHome.
func Parse(args []string, configHome string) (*Config, error) {
	cfg := &Config{}
	flags := pflag.NewFlagSet("threeside", pflag.ContinueOnError)

	flags.StringVar(&cfg.Left, "left", "", "Left content: a path, '-' for stdin or 'clipboard:'.")
	flags.StringVar(&cfg.Base, "base", "", "Base content: a path, '-' for stdin or 'clipboard:'.")
	flags.StringVar(&cfg.Right, "right", "", "Right content: a path, '-' for stdin or 'clipboard:'.")
	flags.StringVarP(&cfg.Title, "title", "t", "", "Title of the comparison.")
	flags.StringVar(&cfg.LeftTitle, "left-title", "", "Title of the left content.")
	flags.StringVar(&cfg.BaseTitle, "base-title", "", "Title of the base content.")
	flags.StringVar(&cfg.RightTitle, "right-title", "", "Title of the right content.")
	flags.StringVarP(&cfg.Markdown, "markdown", "m", "", "Read all three contents from a markdown file ('-' for stdin).")
	flags.StringSliceVarP(&cfg.LookupDirs, "lookup-dir", "l", []string{}, "Directories to look for relative paths in (default: current directory).")

	flags.StringVarP(&cfg.Side, "side", "s", "", "Side to focus first, overriding the remembered one: left, base or right.")
	flags.StringSliceVar(&cfg.DefaultSides, "default-side", []string{"base", "left"}, "Sides to focus first when nothing is remembered, in order of preference.")
	flags.StringVarP(&cfg.Partial, "partial", "p", "", "Show one partial diff and exit: left-base, base-right or left-right.")
	flags.StringVar(&cfg.Presenter, "presenter", "", "Where partial diffs are shown: tui, stdout, clipboard or nvim.")
	flags.StringVar(&cfg.NvimAddress, "nvim-address", "", "Neovim server address for the nvim presenter (default: $NVIM).")
	flags.StringVar(&cfg.StateDir, "state-dir", "", "Directory of the hint file (default: .threeside at the git root).")
	flags.BoolVar(&cfg.NoState, "no-state", false, "Do not remember the focused side between runs.")
	flags.BoolVar(&cfg.Print, "print", false, "Print a summary of the comparison instead of starting the TUI.")

	flags.StringVar(&cfg.ConfigPath, "config", "", "Path to a YAML config file.")
	flags.BoolVar(&cfg.NoConfig, "no-config", false, "Do not load a config file.")

	flags.Usage = func() {
		fmt.Println("Usage: threeside [flags] [LEFT BASE RIGHT]")
		fmt.Println("\nShow a three-way comparison of LEFT, BASE and RIGHT.")
		fmt.Println("\nExample: threeside -p left-right mine.go base.go theirs.go")
		fmt.Println("\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := applyPositional(cfg, flags.Args()); err != nil {
		return nil, err
	}

	fileCfg, err := loadConfigFile(configHome, cfg.ConfigPath, cfg.NoConfig)
	if err != nil {
		return nil, err
	}
	applyConfigFile(cfg, fileCfg, flags.Changed)

	switch {
	case cfg.Presenter == "" && cfg.Partial != "":
		cfg.Presenter = PresenterStdout
	case cfg.Presenter == "":
		cfg.Presenter = PresenterTUI
	case cfg.Presenter == PresenterTUI && cfg.Partial != "" && !flags.Changed(flagNamePresenter):
		// A tui presenter from the config file cannot serve a one-shot diff.
		cfg.Presenter = PresenterStdout
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Presenter names.
const (
	// PresenterTUI shows partial diffs as an overlay of the running TUI.
	PresenterTUI       = "tui"
	PresenterStdout    = "stdout"
	PresenterClipboard = "clipboard"
	PresenterNvim      = "nvim"
)

func applyPositional(cfg *Config, args []string) error {
	if len(args) == 0 {
		return nil
	}
	if len(args) != 3 {
		return fmt.Errorf("error: expected LEFT BASE RIGHT, got %d argument(s)", len(args))
	}
	if cfg.Left != "" || cfg.Base != "" || cfg.Right != "" {
		return fmt.Errorf("error: positional contents cannot be combined with --left, --base or --right")
	}
	cfg.Left, cfg.Base, cfg.Right = args[0], args[1], args[2]
	return nil
}

func validate(cfg *Config) error {
	if cfg.Markdown != "" && (cfg.Left != "" || cfg.Base != "" || cfg.Right != "") {
		return fmt.Errorf("error: --markdown and explicit contents are mutually exclusive")
	}
	if cfg.Markdown == "" && (cfg.Left == "" || cfg.Base == "" || cfg.Right == "") {
		return fmt.Errorf("error: need three contents (LEFT BASE RIGHT) or --markdown")
	}
	if cfg.Presenter == PresenterTUI && cfg.Partial != "" {
		return fmt.Errorf("error: --partial cannot use the tui presenter")
	}
	if cfg.Print && cfg.Partial != "" {
		return fmt.Errorf("error: --print and --partial are mutually exclusive")
	}
	return validateValues("flag", cfg.Side, cfg.DefaultSides, cfg.Partial, cfg.Presenter)
}
