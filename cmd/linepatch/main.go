// Package main provides the linepatch CLI, a line-oriented text-file
// patcher. It locates lines matching a key or word set and rewrites them in
// place, appending or skipping per mode.
//
// Modes (mutually exclusive):
//   - keyed update : linepatch -set KEY=VALUE [-set ...] <target>
//   - word replace : linepatch -words a,b -with TEXT [flags] <target>
//   - profile      : linepatch -apply NAME -profiles FILE [flags] <target>
//
// A target may be a file or a directory; directories are walked
// deterministically and each matching file is patched independently.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"linepatch/internal/diffview"
	"linepatch/internal/meta"
	"linepatch/internal/patch"
	"linepatch/internal/profile"
	"linepatch/internal/walk"
)

// Config captures all parsed flags plus positional targets.
type Config struct {
	sets stringList // repeatable -set KEY=VALUE

	words   string // -words, comma-separated
	with    string // -with replacement text
	anyWord bool   // -any: AnyWord instead of AllWords
	all     bool   // -all-lines: replace every match

	applyName    string // -apply profile name
	profilesPath string // -profiles document path
	template     string // -template, default {key}={value}
	noGlobal     bool   // -no-global: suppress global section

	caseSensitive bool
	backup        bool
	backupSuffix  string
	dryRun        bool
	verbose       bool
	diffContext   int

	exts    string // -ext filter for directory targets
	exclude string // -exclude prefixes for directory targets

	showVersion bool
	targets     []string
}

// stringList is a repeatable flag value.
type stringList []string

func (s *stringList) String() string     { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error { *s = append(*s, v); return nil }

// splitCSV converts a comma-separated list into a slice, trimming spaces
// and dropping empty items.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// toSet builds a string set from a slice, skipping empty strings.
func toSet(list []string) map[string]struct{} {
	m := make(map[string]struct{}, len(list))
	for _, v := range list {
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}

// parseFlags parses args (without the program name) into a Config.
func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := flag.NewFlagSet("linepatch", flag.ContinueOnError)
	fs.Usage = func() {
		w := fs.Output()
		fmt.Fprintf(w, "Usage:\n")
		fmt.Fprintf(w, "  KEYED   : %s -set KEY=VALUE [-set ...] [flags] <target>\n", "linepatch")
		fmt.Fprintf(w, "  WORDS   : %s -words a,b -with TEXT [flags] <target>\n", "linepatch")
		fmt.Fprintf(w, "  PROFILE : %s -apply NAME -profiles FILE [flags] <target>\n", "linepatch")
		fmt.Fprintln(w, "\nFlags:")
		fs.PrintDefaults()
	}

	fs.Var(&cfg.sets, "set", "KEY=VALUE setting to apply (repeatable)")

	fs.StringVar(&cfg.words, "words", "", "comma-separated words a line must contain")
	fs.StringVar(&cfg.with, "with", "", "literal replacement line for -words matches")
	fs.BoolVar(&cfg.anyWord, "any", false, "match lines containing any word instead of all")
	fs.BoolVar(&cfg.all, "all-lines", false, "replace every matching line, not just the first")

	fs.StringVar(&cfg.applyName, "apply", "", "profile name to apply from -profiles")
	fs.StringVar(&cfg.profilesPath, "profiles", "", "profile document (.json, .yaml/.yml or .toml)")
	fs.StringVar(&cfg.template, "template", string(patch.DefaultTemplate), "replacement line template for profile mode")
	fs.BoolVar(&cfg.noGlobal, "no-global", false, "suppress the profile's global section")

	fs.BoolVar(&cfg.caseSensitive, "case", false, "case-sensitive matching")
	fs.BoolVar(&cfg.backup, "backup", false, "copy the original file aside before writing (-words mode)")
	fs.StringVar(&cfg.backupSuffix, "backup-suffix", ".bak", "suffix for backup files")
	fs.BoolVar(&cfg.dryRun, "dry-run", false, "report would-be changes without writing")
	fs.BoolVar(&cfg.verbose, "verbose", false, "report unchanged files and print diffs")
	fs.IntVar(&cfg.diffContext, "diff-context", 3, "context lines in printed diffs")

	fs.StringVar(&cfg.exts, "ext", ".ini,.cfg,.conf,.txt",
		"comma-separated extensions to patch when the target is a directory")
	fs.StringVar(&cfg.exclude, "exclude", ".git,node_modules,dist,build,out,target",
		"comma-separated dir/file prefixes to skip when walking a directory")

	fs.BoolVar(&cfg.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	cfg.targets = fs.Args()
	if !cfg.showVersion && len(cfg.targets) == 0 {
		return cfg, errors.New("missing <target> path")
	}
	return cfg, nil
}

// selectMode picks the operation implied by the flags, enforcing mutual
// exclusivity.
func selectMode(cfg Config) (string, error) {
	keyed := len(cfg.sets) > 0
	words := cfg.words != ""
	prof := cfg.applyName != ""
	n := 0
	for _, on := range []bool{keyed, words, prof} {
		if on {
			n++
		}
	}
	if n > 1 {
		return "", errors.New("-set, -words and -apply are mutually exclusive")
	}
	switch {
	case keyed:
		return "keyed", nil
	case words:
		if cfg.with == "" {
			return "", errors.New("-words requires -with")
		}
		return "words", nil
	case prof:
		if cfg.profilesPath == "" {
			return "", errors.New("-apply requires -profiles")
		}
		return "profile", nil
	}
	return "", errors.New("one of -set, -words or -apply is required")
}

// parseSets converts repeated -set KEY=VALUE flags into ordered entries.
func parseSets(sets []string) ([]patch.Entry, error) {
	out := make([]patch.Entry, 0, len(sets))
	for _, s := range sets {
		k, v, ok := strings.Cut(s, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid -set %q: want KEY=VALUE", s)
		}
		out = append(out, patch.Entry{Key: k, Value: v})
	}
	return out, nil
}

// expandTargets resolves positional targets to concrete files. Directory
// targets are walked with the ext/exclude filters; file targets pass
// through untouched (and may legitimately not exist yet — the patch core
// reports that per file).
func expandTargets(cfg Config) ([]string, error) {
	exts := toSet(splitCSV(cfg.exts))
	exclude := toSet(splitCSV(cfg.exclude))
	var out []string
	for _, t := range cfg.targets {
		st, err := os.Stat(t)
		if err == nil && st.IsDir() {
			files, werr := walk.CollectFiles(t, exts, exclude)
			if werr != nil {
				return nil, fmt.Errorf("walk %s: %w", t, werr)
			}
			for _, f := range files {
				out = append(out, f.AbsPath)
			}
			continue
		}
		out = append(out, filepath.Clean(t))
	}
	return out, nil
}

// patchOne runs the selected operation against a single file.
func patchOne(mode string, cfg Config, entries []patch.Entry, path string) (patch.Result, error) {
	switch mode {
	case "keyed":
		return patch.UpdateWith(path, entries, patch.UpdateOptions{DryRun: cfg.dryRun})
	case "words":
		opt := patch.Options{
			Scope:         patch.FirstOnly,
			CaseSensitive: cfg.caseSensitive,
			Backup:        cfg.backup,
			BackupSuffix:  cfg.backupSuffix,
			DryRun:        cfg.dryRun,
		}
		if cfg.anyWord {
			opt.Mode = patch.AnyWord
		}
		if cfg.all {
			opt.Scope = patch.All
		}
		return patch.Replace(path, splitCSV(cfg.words), cfg.with, opt)
	case "profile":
		return patch.ApplyEntries(path, entries, patch.ApplyOptions{
			Template:      patch.Template(cfg.template),
			CaseSensitive: cfg.caseSensitive,
			DryRun:        cfg.dryRun,
		})
	}
	return patch.Result{}, fmt.Errorf("unknown mode %q", mode)
}

// report prints the per-file outcome: summary to stdout, warnings/diffs as
// configured.
func report(cfg Config, res patch.Result) {
	for _, k := range res.Skipped {
		fmt.Fprintf(os.Stderr, "WARN: no line matches %q in %s, skipped\n", k, res.Path)
	}
	n := len(res.Replaced) + len(res.Appended)
	switch {
	case res.Changed && cfg.dryRun:
		fmt.Printf("[dry-run] would patch %d line(s) in %s\n", n, res.Path)
	case res.Changed:
		fmt.Printf("patched %d line(s) in %s\n", n, res.Path)
	case cfg.verbose:
		fmt.Printf("no changes in %s\n", res.Path)
	}
	if res.Changed && (cfg.dryRun || cfg.verbose) {
		if d := diffview.Unified(res.Path, res.Original, res.Patched, cfg.diffContext); d != "" {
			fmt.Print(d)
		}
	}
}

// run executes the selected mode across all targets. Per-file failures are
// reported and processing continues; the returned code is non-zero if any
// file failed.
func run(cfg Config) int {
	mode, err := selectMode(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 2
	}

	var entries []patch.Entry
	switch mode {
	case "keyed":
		entries, err = parseSets(cfg.sets)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			return 2
		}
	case "profile":
		doc, lerr := profile.Load(cfg.profilesPath)
		if lerr != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", lerr)
			return 1
		}
		entries, err = profile.Resolve(doc, cfg.applyName, !cfg.noGlobal)
		if err != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
			return 1
		}
	}
	// Environment overrides substitute one key's value before the core
	// ever sees the data.
	if mode != "words" {
		entries = profile.ResolveOverrides(entries, profile.OverrideFromEnv())
	}

	files, err := expandTargets(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		return 1
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No files matched filters.")
		return 0
	}

	code := 0
	for _, f := range files {
		res, perr := patchOne(mode, cfg, entries, f)
		if perr != nil {
			fmt.Fprintln(os.Stderr, "ERROR:", perr)
			code = 1
			continue
		}
		report(cfg, res)
	}
	return code
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "ERROR:", err)
		}
		os.Exit(2)
	}
	if cfg.showVersion {
		fmt.Println("linepatch", meta.Detect())
		return
	}
	os.Exit(run(cfg))
}
