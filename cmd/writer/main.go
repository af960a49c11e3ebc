// Command writer is the authoring panel: it composes prompts, calls the
// quill proxy, previews results and inserts accepted content into a
// markdown document.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/davidbz/quill/internal/auth"
	"github.com/davidbz/quill/internal/client"
	"github.com/davidbz/quill/internal/composer"
	"github.com/davidbz/quill/internal/config"
	"github.com/davidbz/quill/internal/editor"
	"github.com/davidbz/quill/internal/observability"
)

const analysisFailedMessage = "The analysis could not be completed. Please try again."

var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	ctx := observability.WithRequestID(context.Background(), observability.GenerateRequestID())
	err := run(ctx, os.Args[1], os.Args[2:], os.Stdout)
	switch {
	case err == nil:
	case errors.Is(err, errUsage):
		usage(os.Stderr)
		os.Exit(2)
	default:
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `usage: writer <command> [flags] [args]

commands:
  generate    generate titles, an outline, an intro or a full post for a topic
  seo         analyze the document for a focus keyword
  keywords    research keywords for a topic
  summary     summarize the document
  set-key     store the provider API key on the proxy (admin)
  clear-key   remove the provider API key from the proxy (admin)
  mint-token  sign a bearer token (needs AUTH_JWT_SECRET)
`)
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "generate":
		return runGenerate(ctx, args, out)
	case "seo":
		return runSEO(ctx, args, out)
	case "keywords":
		return runKeywords(ctx, args, out)
	case "summary":
		return runSummary(ctx, args, out)
	case "set-key":
		return runSetKey(ctx, args, out)
	case "clear-key":
		return runClearKey(ctx, args, out)
	case "mint-token":
		return runMintToken(args, out)
	case "help", "-h", "--help":
		usage(out)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

// session holds what every proxy-backed command needs.
type session struct {
	proxy    *client.Client
	composer *composer.Composer
}

func newSession(verbose bool) (*session, error) {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if _, err := observability.InitConsoleLogger(level); err != nil {
		return nil, err
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return nil, fmt.Errorf("failed to load client config: %w", err)
	}

	proxy, err := client.New(*cfg)
	if err != nil {
		return nil, err
	}

	return &session{
		proxy:    proxy,
		composer: composer.New(proxy, proxy),
	}, nil
}

func runGenerate(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	kind := fs.String("type", "intro", "content type: titles, outline, intro or full")
	creativity := fs.String("creativity", "balanced", "focused, balanced, creative (or 0-2)")
	words := fs.Int("words", composer.DefaultWordCount, "full post: target word count")
	keywords := fs.String("keywords", "", "full post: comma-separated keywords")
	density := fs.Float64("density", composer.DefaultKeywordDensity, "full post: keyword density percent (0-2)")
	sections := fs.Int("sections", composer.DefaultSections, "full post: number of H2 sections (1-6)")
	paragraphs := fs.Int("paragraphs", composer.DefaultParagraphs, "full post: paragraphs per section (1-4)")
	docPath := fs.String("doc", "", "markdown document to insert into")
	accept := fs.Bool("accept", false, "insert the generated content into -doc")
	preview := fs.Bool("preview", false, "print the result as HTML")
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	contentType, err := composer.ParseContentType(*kind)
	if err != nil {
		return err
	}
	if _, ok := contentType.(composer.FullPost); ok {
		contentType = composer.FullPost{
			WordCount:            *words,
			Keywords:             composer.SplitKeywords(*keywords),
			KeywordDensity:       *density,
			Sections:             *sections,
			ParagraphsPerSection: *paragraphs,
		}
	}

	level, err := composer.ParseCreativity(*creativity)
	if err != nil {
		return err
	}

	var doc editor.Editor
	if *accept {
		if *docPath == "" {
			return fmt.Errorf("%w: -accept needs -doc", errUsage)
		}
		if doc, err = openDocument(*docPath); err != nil {
			return err
		}
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}

	outcome := s.composer.GenerateContent(ctx, strings.Join(fs.Args(), " "), contentType, level)
	if !outcome.OK() {
		return errors.New(outcome.Message())
	}

	if *preview {
		fmt.Fprintln(out, editor.Preview(outcome.Text))
	} else {
		fmt.Fprintln(out, outcome.Text)
	}

	if doc != nil {
		inserted, err := composer.Accept(ctx, doc, outcome)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\ninserted %d blocks into %s\n", inserted, *docPath)
	}

	return nil
}

func runSEO(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("seo", flag.ContinueOnError)
	docPath := fs.String("doc", "", "markdown document to analyze")
	keyword := fs.String("keyword", "", "focus keyword")
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *keyword == "" {
		return errors.New("please enter a focus keyword")
	}

	doc, err := openDocument(*docPath)
	if err != nil {
		return err
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}

	seo, ok := s.composer.AnalyzeDocumentSEO(ctx, doc, *keyword)
	if !ok {
		return errors.New(analysisFailedMessage)
	}
	renderSEO(out, seo)
	return nil
}

func runKeywords(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("keywords", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	topic := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if topic == "" {
		return errors.New(composer.TopicRequiredMessage)
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}

	list, ok := s.composer.ResearchKeywords(ctx, topic)
	if !ok {
		return errors.New(analysisFailedMessage)
	}
	renderKeywords(out, list)
	return nil
}

func runSummary(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	docPath := fs.String("doc", "", "markdown document to summarize")
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	doc, err := openDocument(*docPath)
	if err != nil {
		return err
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}

	summary, ok := s.composer.SummarizeDocument(ctx, doc)
	if !ok {
		return errors.New(analysisFailedMessage)
	}
	renderSummary(out, summary)
	return nil
}

func runSetKey(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("set-key", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: set-key needs exactly one key", errUsage)
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}
	if err := s.proxy.SetAPIKey(ctx, fs.Arg(0)); err != nil {
		return err
	}
	fmt.Fprintln(out, "API key saved.")
	return nil
}

func runClearKey(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("clear-key", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	s, err := newSession(*verbose)
	if err != nil {
		return err
	}
	if err := s.proxy.ClearAPIKey(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "API key removed.")
	return nil
}

func runMintToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("mint-token", flag.ContinueOnError)
	subject := fs.String("subject", "writer", "token subject")
	caps := fs.String("caps", string(auth.CapEditPosts), "comma-separated capabilities")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	var capabilities []auth.Capability
	for _, name := range strings.Split(*caps, ",") {
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		capability, ok := auth.ParseCapability(name)
		if !ok {
			return fmt.Errorf("unknown capability %q", name)
		}
		capabilities = append(capabilities, capability)
	}

	manager, err := auth.NewManager(config.Load().Auth)
	if err != nil {
		return err
	}

	token, err := manager.Issue(*subject, capabilities, *ttl)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}
	fmt.Fprintln(out, token)
	return nil
}

// openDocument opens the markdown file the panel reads from and inserts into.
func openDocument(path string) (editor.Editor, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: -doc is required", errUsage)
	}
	doc, err := editor.NewFileDocument(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
