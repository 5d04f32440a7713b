// Command notevault is a terminal client for the NoteVault backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	notevault "github.com/notevault/notevault-go"
	"github.com/notevault/notevault-go/internal/config"
	logpkg "github.com/notevault/notevault-go/internal/logger"
	"github.com/notevault/notevault-go/internal/version"
)

const usage = `notevault - encrypted notes and documents client

Usage:
  notevault <command> [arguments]

Commands:
  register   --name NAME --email EMAIL --password PASS
  login      --email EMAIL --password PASS
  logout
  whoami
  theme      [dark|light]
  notes      list | show ID | create | edit ID | rm ID | pin ID | related ID | summarize ID
  docs       list | upload FILE | rm ID | rescan ID | download ID
  search     [--ai] [--notes-only] [--docs-only] QUERY...
  stats
  version
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "notevault:", err)
		os.Exit(1)
	}
}

func run() error {
	// Local overrides (API keys and the like) live in .env during development.
	_ = godotenv.Load()

	args := os.Args[1:]
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	if args[0] == "version" {
		fmt.Printf("notevault %s (%s, built %s)\n", version.Version, version.Commit, version.Date)
		return nil
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return err
	}

	logger, err := logpkg.NewFileLogger(env, logpkg.FileConfig{
		Path:       cfg.Logging.File,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	}, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Debug("starting notevault client",
		zap.String("env", env),
		zap.String("base_url", cfg.API.BaseURL),
	)

	opts := []notevault.Option{
		notevault.WithBaseURL(cfg.API.BaseURL),
		notevault.WithTimeout(time.Duration(cfg.API.TimeoutSec) * time.Second),
		notevault.WithSessionPath(cfg.Session.Path),
		notevault.WithStaleness(time.Duration(cfg.Cache.StaleAfterSec) * time.Second),
		notevault.WithRetries(cfg.Cache.Retries),
		notevault.WithLogger(logger),
		notevault.WithOnSessionExpired(func() {
			fmt.Fprintln(os.Stderr, "session expired, please log in again")
		}),
	}
	if cfg.Expansion.APIKey != "" {
		opts = append(opts, notevault.WithExpansion(
			cfg.Expansion.APIKey, cfg.Expansion.BaseURL, cfg.Expansion.Model))
	}

	client, err := notevault.New(opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	// Scope the command name onto the logger for everything this invocation
	// does; lower layers pick it up from the context.
	ctx = logpkg.ContextWithLogger(ctx, logger.With(zap.String("command", args[0])))

	switch cmd, rest := args[0], args[1:]; cmd {
	case "register":
		return runRegister(ctx, client, rest)
	case "login":
		return runLogin(ctx, client, rest)
	case "logout":
		return client.Auth().Logout()
	case "whoami":
		return runWhoami(ctx, client)
	case "theme":
		return runTheme(client, rest)
	case "notes":
		return runNotes(ctx, client, rest)
	case "docs":
		return runDocs(ctx, client, rest)
	case "search":
		return runSearch(ctx, client, rest)
	case "stats":
		return runStats(ctx, client)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func runRegister(ctx context.Context, client *notevault.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (min 8 characters)")
	fs.Parse(args)

	u, err := client.Auth().Register(ctx, *name, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("registered and logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func runLogin(ctx context.Context, client *notevault.Client, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	u, err := client.Auth().Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s <%s>\n", u.Name, u.Email)
	return nil
}

func runWhoami(ctx context.Context, client *notevault.Client) error {
	if !client.Auth().IsAuthenticated() {
		fmt.Println("not logged in")
		return nil
	}
	u, err := client.Auth().Me(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
	if exp := client.SessionExpiry(); !exp.IsZero() {
		fmt.Printf("session expires %s\n", exp.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runTheme(client *notevault.Client, args []string) error {
	if len(args) == 0 {
		fmt.Println(client.Theme())
		return nil
	}
	switch args[0] {
	case "dark", "light":
		return client.SetTheme(args[0])
	default:
		return fmt.Errorf("theme must be dark or light, got %q", args[0])
	}
}

func runNotes(ctx context.Context, client *notevault.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("notes: subcommand required (list, show, create, edit, rm, pin, related, summarize)")
	}
	notes := client.Notes()

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		list, err := notes.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPIN\tTITLE\tTAGS\tUPDATED")
		for _, n := range list {
			pin := ""
			if n.IsPinned {
				pin = "*"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
				n.ID, pin, n.Title, strings.Join(n.Tags, ","), n.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()

	case "show":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		n, err := notes.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n", n.Title)
		if len(n.Tags) > 0 {
			fmt.Printf("tags: %s\n", strings.Join(n.Tags, ", "))
		}
		fmt.Printf("\n%s\n", n.Content)
		return nil

	case "create":
		fs := flag.NewFlagSet("notes create", flag.ExitOnError)
		title := fs.String("title", "", "note title")
		content := fs.String("content", "", "note content (reads stdin when empty)")
		tags := fs.String("tags", "", "comma-separated tags")
		fs.Parse(rest)

		body := *content
		if body == "" {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			body = string(data)
		}
		n, err := notes.Create(ctx, notevault.NoteDraft{
			Title:   *title,
			Content: body,
			Tags:    splitTags(*tags),
		})
		if err != nil {
			return err
		}
		fmt.Printf("created note %d\n", n.ID)
		return nil

	case "edit":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("notes edit", flag.ExitOnError)
		title := fs.String("title", "", "new title")
		content := fs.String("content", "", "new content")
		tags := fs.String("tags", "", "new comma-separated tags")
		fs.Parse(rest[1:])

		var patch notevault.NotePatch
		if *title != "" {
			patch.Title = title
		}
		if *content != "" {
			patch.Content = content
		}
		if *tags != "" {
			t := splitTags(*tags)
			patch.Tags = &t
		}
		n, err := notes.Update(ctx, id, patch)
		if err != nil {
			return err
		}
		fmt.Printf("updated note %d\n", n.ID)
		return nil

	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := notes.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted note %d\n", id)
		return nil

	case "pin":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("notes pin", flag.ExitOnError)
		off := fs.Bool("off", false, "unpin instead of pin")
		fs.Parse(rest[1:])

		n, err := notes.TogglePin(ctx, id, !*off)
		if err != nil {
			return err
		}
		state := "pinned"
		if !n.IsPinned {
			state = "unpinned"
		}
		fmt.Printf("%s note %d\n", state, n.ID)
		return nil

	case "related":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		related, err := notes.Related(ctx, id)
		if err != nil {
			return err
		}
		for _, r := range related {
			fmt.Printf("%d\t%.2f\t%s\n", r.ID, r.Similarity, r.Title)
		}
		return nil

	case "summarize":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		summary, err := notes.Summarize(ctx, id)
		if err != nil {
			return err
		}
		fmt.Println(summary)
		return nil

	default:
		return fmt.Errorf("notes: unknown subcommand %q", sub)
	}
}

func runDocs(ctx context.Context, client *notevault.Client, args []string) error {
	if len(args) == 0 {
		return errors.New("docs: subcommand required (list, upload, rm, rescan, download)")
	}
	docs := client.Documents()

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		list, err := docs.List(ctx)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSIZE\tUPLOADED")
		for _, d := range list {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				d.ID, d.OriginalName, formatSize(d.FileSize),
				d.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()

	case "upload":
		if len(rest) == 0 {
			return errors.New("docs upload: file path required")
		}
		f, err := os.Open(rest[0])
		if err != nil {
			return err
		}
		defer f.Close()

		d, err := docs.Upload(ctx, filepath.Base(rest[0]), f)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded document %d (%s)\n", d.ID, d.OriginalName)
		return nil

	case "rm":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := docs.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Printf("deleted document %d\n", id)
		return nil

	case "rescan":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		d, err := docs.Rescan(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("rescanned document %d\n", d.ID)
		if d.Summary != "" {
			fmt.Println(d.Summary)
		}
		return nil

	case "download":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		fs := flag.NewFlagSet("docs download", flag.ExitOnError)
		out := fs.String("out", "", "output path (default: stdout)")
		fs.Parse(rest[1:])

		rc, err := docs.Download(ctx, id)
		if err != nil {
			return err
		}
		defer rc.Close()

		var dst io.Writer = os.Stdout
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				return err
			}
			defer f.Close()
			dst = f
		}
		if _, err := io.Copy(dst, rc); err != nil {
			return fmt.Errorf("download: %w", err)
		}
		return nil

	default:
		return fmt.Errorf("docs: unknown subcommand %q", sub)
	}
}

func runSearch(ctx context.Context, client *notevault.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	ai := fs.Bool("ai", false, "expand the query with AI-related terms")
	notesOnly := fs.Bool("notes-only", false, "search notes only")
	docsOnly := fs.Bool("docs-only", false, "search documents only")
	fs.Parse(args)

	query := strings.Join(fs.Args(), " ")
	res, err := client.Search().Search(ctx, query, notevault.SearchOptions{
		IncludeNotes: !*docsOnly,
		IncludeDocs:  !*notesOnly,
		AIBoost:      *ai,
	})
	if err != nil {
		return err
	}

	if len(res.ExpandedTerms) > 0 {
		fmt.Printf("expanded: %s\n", strings.Join(res.ExpandedTerms, ", "))
	}
	if res.Empty() {
		fmt.Println("no results")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, item := range res.Notes {
		fmt.Fprintf(w, "note\t%d\t%.2f\t%s\n", item.ID, item.Similarity, item.Title)
	}
	for _, item := range res.Documents {
		fmt.Fprintf(w, "doc\t%d\t%.2f\t%s\n", item.ID, item.Similarity, item.Title)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("%d results\n", res.Total)
	return nil
}

func runStats(ctx context.Context, client *notevault.Client) error {
	stats, err := client.Dashboard().Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("notes: %d  documents: %d  ai summaries: %d  storage: %.1f MB\n",
		stats.TotalNotes, stats.TotalDocuments, stats.AISummaries, stats.StorageMB)
	if len(stats.TopTags) > 0 {
		parts := make([]string, len(stats.TopTags))
		for i, tag := range stats.TopTags {
			parts[i] = fmt.Sprintf("%s (%d)", tag.Tag, tag.Count)
		}
		fmt.Printf("top tags: %s\n", strings.Join(parts, ", "))
	}
	return nil
}

func parseID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("id required")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func formatSize(bytes int64) string {
	switch {
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1fMB", float64(bytes)/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1fKB", float64(bytes)/(1<<10))
	default:
		return fmt.Sprintf("%dB", bytes)
	}
}
