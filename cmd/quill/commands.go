package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fwojciec/quill"
	bt "github.com/fwojciec/quill/bubbletea"
	"github.com/fwojciec/quill/demo"
	quillfs "github.com/fwojciec/quill/fs"
	"github.com/fwojciec/quill/goldmark"
	quilljson "github.com/fwojciec/quill/json"
	"github.com/fwojciec/quill/output"
	quillyaml "github.com/fwojciec/quill/yaml"
)

// command is a quill subcommand. Offline commands run without a provider.
type command struct {
	name    string
	summary string
	offline bool
	run     func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "trip", summary: "Plan a trip for a destination, budget and duration", run: runTrip},
	{name: "legal", summary: "Rewrite legal text in plain language (args or stdin)", run: runLegal},
	{name: "date", summary: "Ask when something happened and parse the date", run: runDate},
	{name: "scientist", summary: "Ask about a person and parse a {name, field, discovery} record", run: runScientist},
	{name: "quiz", summary: "Play one round of the history date quiz", run: runQuiz},
	{name: "hn", summary: "Summarize a Hacker News item by id", run: runHackerNews},
	{name: "wiki", summary: "Answer a question from a Wikipedia article", run: runWikipedia},
	{name: "prompt", summary: "Save, load or list prompt template files", offline: true, run: runPrompt},
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func (a *app) render(markdown string) {
	fmt.Fprintln(a.stdout, goldmark.Render(sanitize(markdown), a.width, a.theme))
}

func runTrip(ctx context.Context, a *app, args []string) error {
	fset := newFlagSet("trip")
	destination := fset.String("destination", "Paris", "Trip destination")
	budget := fset.Int("budget", 2000, "Budget in USD")
	duration := fset.Int("duration", 7, "Duration in days")
	if err := fset.Parse(args); err != nil {
		return err
	}
	if *budget <= 0 || *duration <= 0 {
		return fmt.Errorf("budget and duration must be positive: %w", quill.ErrValidation)
	}
	plan, err := demo.TripPlan(ctx, a.provider, *destination, *budget, *duration, a.opts...)
	if err != nil {
		return err
	}
	a.render(plan)
	return nil
}

func runLegal(ctx context.Context, a *app, args []string) error {
	text, err := readInput(args, a.stdin)
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("no legal text given: %w", quill.ErrValidation)
	}
	simple, err := demo.SimplifyLegal(ctx, a.provider, text, a.opts...)
	if err != nil {
		return err
	}
	a.render(simple)
	return nil
}

func runDate(ctx context.Context, a *app, args []string) error {
	question := joinArgs(args, "13차 수정헌법이 언제 비준되었나요?")
	res, err := demo.HistoricDate(ctx, a.provider, question, a.opts...)
	if err != nil {
		return err
	}
	t, err := res.Get()
	if err != nil {
		return fmt.Errorf("no valid date in answer %q: %w", res.Raw, err)
	}
	a.logOutcome("date", res.Outcome, res.Repaired)
	fmt.Fprintln(a.stdout, output.DefaultDatetime().Format(t)+repairedNote(a, res.Repaired))
	return nil
}

func runScientist(ctx context.Context, a *app, args []string) error {
	question := joinArgs(args, "안토니오 가우디에 대해 알려주세요")
	res, err := demo.ScientistInfo(ctx, a.provider, question, a.opts...)
	if err != nil {
		return err
	}
	s, err := res.Get()
	if err != nil {
		return fmt.Errorf("no valid record in answer: %w", err)
	}
	a.logOutcome("scientist", res.Outcome, res.Repaired)
	a.render(fmt.Sprintf("- **Name**: %s\n- **Field**: %s\n- **Discovery**: %s", s.Name, s.Field, s.Discovery))
	if res.Repaired {
		fmt.Fprintln(a.stdout, a.styles.Muted.Render("(repaired)"))
	}
	return nil
}

func (a *app) logOutcome(command string, outcome quill.Outcome, repaired bool) {
	a.logger.Info("answer parsed", "command", command, "outcome", outcome.String(), "repaired", repaired)
}

func repairedNote(a *app, repaired bool) string {
	if !repaired {
		return ""
	}
	return " " + a.styles.Muted.Render("(repaired)")
}

func runQuiz(ctx context.Context, a *app, args []string) error {
	fset := newFlagSet("quiz")
	topic := fset.String("topic", "The French Revolution", "Quiz topic")
	attempts := fset.Int("attempts", bt.DefaultMaxAttempts, "Invalid answers allowed")
	if err := fset.Parse(args); err != nil {
		return err
	}

	question, err := demo.QuizQuestion(ctx, a.provider, *topic, a.opts...)
	if err != nil {
		return fmt.Errorf("generate question: %w", err)
	}
	parser := demo.QuizParser()
	guess, err := a.readDate(ctx, bt.NewDateEntry(question, parser, a.theme, bt.WithMaxAttempts(*attempts)))
	if err != nil {
		return err
	}

	res, err := demo.QuizAnswer(ctx, a.provider, question, a.opts...)
	if err != nil {
		return fmt.Errorf("get answer: %w", err)
	}
	answer, err := res.Get()
	if err != nil {
		return fmt.Errorf("no valid date in answer %q: %w", res.Raw, err)
	}
	a.logOutcome("quiz", res.Outcome, res.Repaired)

	fmt.Fprintf(a.stdout, "Your answer: %s\n", parser.Format(guess))
	if demo.CheckAnswer(guess, answer) {
		fmt.Fprintln(a.stdout, a.styles.Success.Render("Correct! Well done."))
		return nil
	}
	fmt.Fprintln(a.stdout, a.styles.Error.Render("Incorrect. The correct answer is "+parser.Format(answer)+"."))
	return nil
}

func runHackerNews(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("expected one item id, got %d args: %w", len(args), quill.ErrValidation)
	}
	summary, doc, err := demo.SummarizeHackerNews(ctx, a.provider, a.loader, args[0], a.opts...)
	if err != nil {
		return err
	}
	a.source(doc)
	a.render(summary)
	return nil
}

func runWikipedia(ctx context.Context, a *app, args []string) error {
	fset := newFlagSet("wiki")
	person := fset.String("person", "Albert Einstein", "Wikipedia article title")
	if err := fset.Parse(args); err != nil {
		return err
	}
	question := joinArgs(fset.Args(), "What is his contribution to physics?")
	answer, doc, err := demo.AnswerWikipedia(ctx, a.provider, a.loader, *person, question, a.opts...)
	if err != nil {
		return err
	}
	a.source(doc)
	a.render(answer)
	return nil
}

// source prints the fetched document's title, URL and a one-line preview.
func (a *app) source(doc quill.Document) {
	fmt.Fprintln(a.stdout, a.styles.Accent.Render(sanitize(doc.Title)))
	fmt.Fprintln(a.stdout, a.styles.Muted.Render(doc.Source))
	fmt.Fprintln(a.stdout, a.styles.Muted.Render(preview(sanitize(doc.Content), a.width)))
	fmt.Fprintln(a.stdout)
}

func runPrompt(_ context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected save, load or list: %w", quill.ErrValidation)
	}
	switch sub, rest := args[0], args[1:]; sub {
	case "save":
		if len(rest) != 1 {
			return fmt.Errorf("save: expected one path: %w", quill.ErrValidation)
		}
		if err := savePrompt(rest[0], demo.TripPlanPrompt()); err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Saved %s\n", rest[0])
		return nil
	case "load":
		if len(rest) == 0 {
			return fmt.Errorf("load: expected a path: %w", quill.ErrValidation)
		}
		return a.loadPrompt(rest[0], rest[1:])
	case "list":
		fset := newFlagSet("list")
		pattern := fset.String("pattern", quillfs.DefaultPromptPattern, "Glob pattern relative to dir")
		if err := fset.Parse(rest); err != nil {
			return err
		}
		dir := joinArgs(fset.Args(), ".")
		paths, err := quillfs.FindPrompts(dir, *pattern)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintln(a.stdout, p)
		}
		return nil
	default:
		return fmt.Errorf("unknown prompt command %q: %w", sub, quill.ErrValidation)
	}
}

// loadPrompt prints the prompt file at path. With key=value args it prints
// the rendered message instead.
func (a *app) loadPrompt(path string, assignments []string) error {
	pf, err := loadPromptFile(path)
	if err != nil {
		return err
	}
	if len(assignments) == 0 {
		fmt.Fprintf(a.stdout, "%s %s\n", a.styles.Muted.Render("variables:"), strings.Join(pf.InputVariables, ", "))
		fmt.Fprintln(a.stdout, pf.Template)
		return nil
	}

	vars := make(map[string]any, len(assignments))
	for _, kv := range assignments {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return fmt.Errorf("invalid assignment %q, want key=value: %w", kv, quill.ErrValidation)
		}
		vars[k] = v
	}
	seq, err := pf.Sequence()
	if err != nil {
		return err
	}
	msgs, err := seq.Format(vars)
	if err != nil {
		return err
	}
	for _, m := range msgs {
		fmt.Fprintf(a.stdout, "%s %s\n", a.styles.Muted.Render(string(m.Role)+":"), m.Text)
	}
	return nil
}

func savePrompt(path string, pf quill.PromptFile) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return quilljson.Save(path, pf)
	case ".yaml", ".yml":
		return quillyaml.Save(path, pf)
	default:
		return fmt.Errorf("unsupported prompt file extension %q: %w", ext, quill.ErrValidation)
	}
}

func loadPromptFile(path string) (quill.PromptFile, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return quilljson.Load(path)
	case ".yaml", ".yml":
		return quillyaml.Load(path)
	default:
		return quill.PromptFile{}, fmt.Errorf("unsupported prompt file extension %q: %w", ext, quill.ErrValidation)
	}
}
