package main

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/kk-code-lab/mdtree/internal/config"
	"github.com/kk-code-lab/mdtree/internal/fs"
	"github.com/kk-code-lab/mdtree/internal/logging"
	"github.com/kk-code-lab/mdtree/internal/render"
	"github.com/kk-code-lab/mdtree/internal/view"
	"github.com/kk-code-lab/mdtree/markdown"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var version = "dev"

// newScreen is replaced in tests with a simulation screen.
var newScreen = view.NewScreen

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	v          *viper.Viper
	configFile string
	cfg        *config.Config
	log        zerolog.Logger
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		v:      config.NewViper(config.DefaultSearchPaths()...),
		log:    zerolog.Nop(),
	}

	root := &cobra.Command{
		Use:   "mdtree",
		Short: "Parse Markdown into a typed document tree",
		Long: `mdtree parses CommonMark-flavoured Markdown into a document tree of
headings, paragraphs, code blocks, lists, blockquotes and inline spans.

Every command reads FILE, or standard input when FILE is "-" or omitted.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup() },
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: mdtree.yaml in . or the user config dir)")
	flags.Int("width", 0, "wrap prose at this many columns (0 = no wrapping, or screen width in view)")
	flags.Bool("highlight", true, "highlight fenced code in the viewer")
	flags.String("code-style", "monokai", "chroma style for highlighted code")
	flags.Bool("normalize", false, "apply Unicode NFC to the input before parsing")
	flags.String("format", "yaml", "export format: yaml or json")
	flags.String("log-level", "warn", "log level: debug, info, warn or error")
	for key, name := range map[string]string{
		"render.width":      "width",
		"render.highlight":  "highlight",
		"render.code_style": "code-style",
		"input.normalize":   "normalize",
		"export.format":     "format",
		"log.level":         "log-level",
	} {
		_ = c.v.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(
		c.treeCmd(),
		c.renderCmd(),
		c.exportCmd(),
		c.viewCmd(),
	)
	return root
}

func (c *cli) setup() error {
	cfg, err := config.Load(c.v, c.configFile)
	if err != nil {
		return err
	}
	c.cfg = cfg

	logger, err := logging.New(logging.Config{Level: cfg.Log.Level, Out: c.stderr, Console: true})
	if err != nil {
		return err
	}
	c.log = logger
	return nil
}

func sourcePath(args []string) string {
	if len(args) == 0 {
		return fs.StdinName
	}
	return args[0]
}

// load reads and parses the source named by args.
func (c *cli) load(args []string) (markdown.Document, string, error) {
	log := logging.Component(c.log, "load")
	path := sourcePath(args)
	opts := fs.Options{Normalize: c.cfg.Input.Normalize}

	var (
		src fs.Source
		err error
	)
	if path == fs.StdinName {
		src, err = fs.Read("<stdin>", c.stdin, opts)
	} else {
		src, err = fs.Load(path, opts)
	}
	if err != nil {
		return markdown.Document{}, "", err
	}
	log.Debug().
		Str("source", src.Name).
		Int("bytes", src.Size).
		Stringer("encoding", src.Encoding).
		Bool("normalized", src.Normalized).
		Msg("source loaded")

	start := time.Now()
	doc := markdown.Parse(src.Text)
	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("blocks", len(doc.Blocks)).
		Msg("parsed")
	return doc, src.Name, nil
}

func (c *cli) treeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree [FILE]",
		Short: "Print the document tree as an indented outline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := c.load(args)
			if err != nil {
				return err
			}
			return render.WriteOutline(c.stdout, doc)
		},
	}
}

func (c *cli) renderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render the document as plain text",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := c.load(args)
			if err != nil {
				return err
			}
			r := render.New(render.Options{Width: c.cfg.Render.Width})
			_, err = fmt.Fprintln(c.stdout, r.Text(doc))
			return err
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export the document tree as YAML or JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := c.load(args)
			if err != nil {
				return err
			}
			return render.Export(c.stdout, doc, render.Format(c.cfg.Export.Format))
		},
	}
}

func (c *cli) viewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [FILE]",
		Short: "Page through the rendered document in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, name, err := c.load(args)
			if err != nil {
				return err
			}
			screen, err := newScreen()
			if err != nil {
				return err
			}
			view.New(screen, c.layout(doc), view.Options{
				Title:     filepath.Base(name),
				CodeStyle: c.cfg.Render.CodeStyle,
			}).Run()
			return nil
		},
	}
}

// layout renders doc for the viewer. A configured width caps the screen
// width.
func (c *cli) layout(doc markdown.Document) view.LayoutFunc {
	return func(screenWidth int) []render.Line {
		width := screenWidth
		if w := c.cfg.Render.Width; w > 0 && w < width {
			width = w
		}
		r := render.New(render.Options{Width: width, Highlight: c.cfg.Render.Highlight})
		return r.Lines(doc)
	}
}
