package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	smsactivate "github.com/smsactivate/email-go"
	"github.com/smsactivate/email-go/internal/config"
	"github.com/smsactivate/email-go/internal/logger"
)

const usage = "usage: smsactivate-email <domains|buy|wait|reactivate|cancel|history> [args]"

// Config wires the command to its environment.
type Config struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	EnvFile string // "" means .env in the working directory
}

// DefaultConfig returns a Config bound to the process's standard streams.
func DefaultConfig() *Config {
	return &Config{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// app holds everything a command needs.
type app struct {
	cfg      *Config
	settings *config.Config
	client   *smsactivate.Client
	logger   *zap.Logger
}

func run(ctx context.Context, args []string, cfg *Config) error {
	if len(args) < 2 {
		return errors.New(usage)
	}

	commands := map[string]func(context.Context, *app, []string) error{
		"domains":    runDomains,
		"buy":        runBuy,
		"wait":       runWait,
		"reactivate": runReactivate,
		"cancel":     runCancel,
		"history":    runHistory,
	}
	command, ok := commands[args[1]]
	if !ok {
		return fmt.Errorf("unknown command: %s\n%s", args[1], usage)
	}

	settings, err := config.Load(cfg.EnvFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.NewLogger(settings.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	registry := prometheus.NewRegistry()
	client, err := newClient(settings, log, registry)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	a := &app{cfg: cfg, settings: settings, client: client, logger: log}
	cmdErr := command(ctx, a, args[2:])

	if settings.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(settings.MetricsFile, registry); err != nil {
			log.Warn("write metrics file", zap.String("path", settings.MetricsFile), zap.Error(err))
		}
	}
	return cmdErr
}

func newClient(s *config.Config, log *zap.Logger, reg prometheus.Registerer) (*smsactivate.Client, error) {
	opts := []smsactivate.Option{
		smsactivate.WithBaseURL(s.Client.BaseURL),
		smsactivate.WithProtocol(smsactivate.Protocol(s.Client.Protocol)),
		smsactivate.WithTimeout(s.Client.Timeout),
		smsactivate.WithLogger(log),
		smsactivate.WithMetrics(reg),
	}
	if s.Client.Retries > 0 {
		opts = append(opts, smsactivate.WithRetries(s.Client.Retries))
	}
	if s.Client.RateLimit > 0 {
		opts = append(opts, smsactivate.WithRateLimit(s.Client.RateLimit, s.Client.RateBurst))
	}
	return smsactivate.New(s.Client.APIKey, opts...)
}

// DomainOutput is one entry printed by the domains command.
type DomainOutput struct {
	Name  string  `json:"name"`
	Type  string  `json:"type"`
	Cost  float64 `json:"cost"`
	Count int     `json:"count"`
}

func runDomains(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: smsactivate-email domains <site>")
	}

	domains, err := a.client.GetAvailableDomains(ctx, args[0])
	if err != nil {
		return fmt.Errorf("get domains: %w", err)
	}

	out := make([]DomainOutput, 0, len(domains))
	for _, d := range domains {
		out = append(out, DomainOutput{Name: d.Name, Type: d.Type.String(), Cost: d.Cost, Count: d.Count})
	}
	return a.print(out)
}

func runBuy(ctx context.Context, a *app, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return errors.New("usage: smsactivate-email buy <site> <domain> [zones|popular]")
	}

	domainType := smsactivate.DomainPopular
	if len(args) == 3 {
		t, err := smsactivate.ParseEmailDomainType(args[2])
		if err != nil {
			return err
		}
		domainType = t
	}

	activation, err := a.client.BuyEmailActivation(ctx, args[0], smsactivate.NewEmailDomain(args[1], domainType))
	if err != nil {
		return fmt.Errorf("buy activation: %w", err)
	}
	return a.print(activation.Export())
}

// MessageOutput is printed by the wait command.
type MessageOutput struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	Outcome  string `json:"outcome"`
	Attempts int    `json:"attempts"`
}

func runWait(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("wait", flag.ContinueOnError)
	fs.SetOutput(a.cfg.Stderr)
	attempts := fs.Int("attempts", a.settings.Poll.Attempts, "maximum number of status checks")
	period := fs.Duration("period", a.settings.Poll.Period, "pause between status checks")
	strict := fs.Bool("strict", false, "fail when no message arrives")
	if err := fs.Parse(args); err != nil {
		return err
	}

	activation, err := a.readActivation()
	if err != nil {
		return err
	}

	opts := []smsactivate.PollOption{smsactivate.WithAttempts(*attempts), smsactivate.WithPeriod(*period)}
	var text string
	if *strict {
		text, err = activation.GetTextStrict(ctx, opts...)
	} else {
		text, err = activation.GetText(ctx, opts...)
	}
	if err != nil {
		return fmt.Errorf("wait for message: %w", err)
	}

	out := MessageOutput{ID: activation.ID(), Email: activation.Email(), Message: text}
	if res := activation.LastPoll(); res != nil {
		out.Outcome = res.Outcome.String()
		out.Attempts = res.Attempts
	}
	return a.print(out)
}

func runReactivate(ctx context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: smsactivate-email reactivate < activation.json")
	}
	activation, err := a.readActivation()
	if err != nil {
		return err
	}
	if err := activation.Reactivate(ctx); err != nil {
		return fmt.Errorf("reactivate: %w", err)
	}
	return a.print(activation.Export())
}

func runCancel(ctx context.Context, a *app, args []string) error {
	if len(args) != 0 {
		return errors.New("usage: smsactivate-email cancel < activation.json")
	}
	activation, err := a.readActivation()
	if err != nil {
		return err
	}
	if err := activation.Cancel(ctx); err != nil {
		return fmt.Errorf("cancel: %w", err)
	}
	return a.print(map[string]bool{"success": true})
}

// HistoryOutput is one entry printed by the history command.
type HistoryOutput struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	Site        string  `json:"site"`
	Status      int     `json:"status"`
	Cost        float64 `json:"cost"`
	Date        string  `json:"date"`
	FullMessage string  `json:"fullMessage,omitempty"`
}

func runHistory(ctx context.Context, a *app, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(a.cfg.Stderr)
	page := fs.Int("page", 1, "page number")
	perPage := fs.Int("per-page", 10, "activations per page")
	search := fs.String("search", "", "mailbox email to search for")
	sort := fs.String("sort", smsactivate.SortDesc, "order by id: asc or desc")
	if err := fs.Parse(args); err != nil {
		return err
	}

	list, err := a.client.GetEmailActivations(ctx,
		smsactivate.WithPage(*page),
		smsactivate.WithPerPage(*perPage),
		smsactivate.WithSearch(*search),
		smsactivate.WithSort(*sort),
	)
	if err != nil {
		return fmt.Errorf("get history: %w", err)
	}

	out := make([]HistoryOutput, 0, len(list))
	for _, act := range list {
		out = append(out, HistoryOutput{
			ID:          act.ID(),
			Email:       act.Email(),
			Site:        act.Site(),
			Status:      act.Status(),
			Cost:        act.Cost(),
			Date:        act.Date(),
			FullMessage: act.FullMessage(),
		})
	}
	return a.print(out)
}

// readActivation imports the activation JSON on stdin.
func (a *app) readActivation() (*smsactivate.EmailActivation, error) {
	data, err := io.ReadAll(a.cfg.Stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}

	var exported smsactivate.ExportedActivation
	if err := json.Unmarshal(data, &exported); err != nil {
		return nil, fmt.Errorf("parse export: %w", err)
	}

	activation, err := a.client.ImportActivation(&exported)
	if err != nil {
		return nil, fmt.Errorf("import activation: %w", err)
	}
	return activation, nil
}

func (a *app) print(v any) error {
	enc := json.NewEncoder(a.cfg.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
