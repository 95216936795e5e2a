package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/beatline/internal/audio"
	"git.lost.host/meutraa/beatline/internal/chart"
	"git.lost.host/meutraa/beatline/internal/config"
	"git.lost.host/meutraa/beatline/internal/game"
	"git.lost.host/meutraa/beatline/internal/input"
	"git.lost.host/meutraa/beatline/internal/judge"
	"git.lost.host/meutraa/beatline/internal/logging"
	"git.lost.host/meutraa/beatline/internal/metrics"
	"git.lost.host/meutraa/beatline/internal/parser"
	"git.lost.host/meutraa/beatline/internal/render"
	"git.lost.host/meutraa/beatline/internal/score"
	"git.lost.host/meutraa/beatline/internal/session"
	"git.lost.host/meutraa/beatline/internal/theme"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

const (
	framePeriod     = time.Second / 120
	shutdownTimeout = 5 * time.Second
)

type Program struct {
	cfg     *config.Config
	log     *logrus.Logger
	metrics *metrics.Manager
	policy  *judge.Policy
	clock   clock.Clock
}

func run(out io.Writer) error {
	cfg, err := config.Load(*configFile)
	if nil != err {
		return err
	}
	applyFlags(cfg)
	if err := cfg.Validate(); nil != err {
		return err
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel)
	if nil != err {
		return fmt.Errorf("%w: log_level: %w", config.ErrInvalidConfig, err)
	}

	p := &Program{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewManager(),
		policy:  judge.New(cfg),
		clock:   clock.RealClock{},
	}

	if cfg.MetricsAddr != "" {
		stop := p.serveMetrics(cfg.MetricsAddr)
		defer stop()
	}

	ch, err := p.load(*chartFile, *difficulty)
	if nil != err {
		return err
	}

	var stats score.Stats
	if *autoplay {
		stats, err = p.autoplay(ch)
	} else {
		stats, err = p.play(ch)
	}
	if nil != err {
		return err
	}
	return summary(out, ch, stats)
}

// applyFlags overrides the loaded config with flags given on the command
// line.
func applyFlags(cfg *config.Config) {
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *offset != 0 {
		cfg.Offset = *offset
	}
	if *delay != 0 {
		cfg.Delay = *delay
	}
	if *scrollRows != 0 {
		cfg.ScrollRows = *scrollRows
	}
}

func (p *Program) serveMetrics(addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", p.metrics.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		p.log.WithField("addr", addr).Info("serving metrics")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			p.log.WithError(err).Error("metrics server failed")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			p.log.WithError(err).Warn("metrics server shutdown failed")
		}
	}
}

// load parses and compiles the chart. A relative music path is resolved
// against the chart's directory.
func (p *Program) load(file, name string) (*chart.Chart, error) {
	psr, err := parser.ForFile(file)
	if nil != err {
		return nil, err
	}
	charts, err := psr.Parse(file)
	if nil != err {
		return nil, err
	}
	raw, err := parser.Select(charts, name)
	if nil != err {
		return nil, err
	}

	ch, err := chart.Compile(raw, chart.Options{
		Lanes:      p.cfg.Lanes,
		DefaultBPM: p.cfg.DefaultBPM,
	})
	if nil != err {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	if ch.Music != "" && !filepath.IsAbs(ch.Music) {
		ch.Music = filepath.Join(filepath.Dir(file), ch.Music)
	}

	p.log.WithFields(logrus.Fields{
		"title":      ch.Title,
		"difficulty": raw.Difficulty.Name,
		"lanes":      ch.Lanes,
		"taps":       ch.TapCount,
		"holds":      ch.HoldCount,
		"length":     ch.Length(),
	}).Info("chart loaded")
	return ch, nil
}

// sessionOptions wires the session into logging and metrics.
func (p *Program) sessionOptions(extra ...session.Option) []session.Option {
	opts := []session.Option{
		session.WithLogger(p.log),
		session.OnResolved(func(n *game.Note, stats score.Stats) {
			p.metrics.ObserveJudgement(n, stats.Score, stats.Combo, stats.MaxCombo)
		}),
		session.OnHit(func(n *game.Note, d time.Duration) {
			p.metrics.ObserveHitError(d)
		}),
	}
	return append(opts, extra...)
}

func (p *Program) offset(ch *chart.Chart) time.Duration {
	return p.cfg.Offset + ch.Offset
}

func (p *Program) autoplay(ch *chart.Chart) (score.Stats, error) {
	offset := p.offset(ch)
	inputs := session.Autoplay(ch, offset)
	stats, err := session.Replay(ch, p.policy, offset, inputs, p.sessionOptions()...)
	if nil != err {
		p.failed(err)
		return stats, err
	}
	p.metrics.SessionEnded("completed")
	return stats, nil
}

// failed reports a session error, loudly when the host misused the session.
func (p *Program) failed(err error) {
	if errors.Is(err, game.ErrInvalidState) {
		p.metrics.InvalidState()
		p.log.WithError(err).Error("session rejected host input")
	}
	p.metrics.SessionEnded("failed")
}

func (p *Program) openTrack(ch *chart.Chart) audio.Track {
	if ch.Music != "" {
		if _, err := os.Stat(ch.Music); nil == err {
			track, err := audio.Play(p.clock, ch.Music, p.cfg.Delay)
			if nil == err {
				return track
			}
			p.log.WithError(err).Warn("unable to play music, continuing silently")
		} else {
			p.log.WithField("music", ch.Music).Warn("music not found, continuing silently")
		}
	}
	return audio.NewWallTrack(p.clock, p.cfg.Delay)
}

func (p *Program) openInput(ch *chart.Chart, track audio.Track) (input.Source, error) {
	if *device != "" {
		return input.OpenEvdev(*device, func(code uint16) int {
			return p.cfg.CodeColumn(code, ch.Lanes)
		}, track, p.log)
	}
	return input.OpenTerminal(ch.Lanes, func(r rune) int {
		return p.cfg.KeyColumn(r, ch.Lanes)
	}, p.cfg.RepeatTimeout, track, p.log)
}

func (p *Program) play(ch *chart.Chart) (stats score.Stats, err error) {
	// The terminal belongs to the playfield until it is restored
	var held bytes.Buffer
	p.log.SetOutput(&held)
	defer func() {
		p.log.SetOutput(os.Stderr)
		os.Stderr.Write(held.Bytes())
	}()

	th := &theme.DefaultTheme{}
	r := render.New(os.Stdout, int(os.Stdout.Fd()), th.Background())
	cols, rows, err := r.Size()
	if nil != err {
		return stats, fmt.Errorf("unable to get terminal size: %w", err)
	}
	if err := r.Init(); nil != err {
		return stats, fmt.Errorf("unable to prepare terminal: %w", err)
	}
	defer func() {
		if derr := r.Deinit(); nil != derr {
			p.log.WithError(derr).Warn("unable to restore terminal")
		}
	}()

	field := render.NewPlayfield(r, th, ch.Lanes, p.cfg.ScrollRows, cols, rows)

	track := p.openTrack(ch)
	defer track.Close()

	src, err := p.openInput(ch, track)
	if nil != err {
		return stats, err
	}
	defer src.Close()

	s := session.New(ch, p.policy, p.sessionOptions(session.OnResolved(field.Judged))...)
	if err := s.Start(p.offset(ch)); nil != err {
		return stats, err
	}

	pressed := input.NewPressed(ch.Lanes)
	quit := false
	render.Loop(p.clock, framePeriod, func() bool {
		var inputs []game.Input
		inputs, quit, err = src.Poll()
		if nil != err {
			return false
		}
		for _, in := range inputs {
			if in.Release {
				err = s.Release(in.Lane, in.Time)
			} else {
				err = s.Press(in.Lane, in.Time)
			}
			if nil != err {
				return false
			}
			pressed.Apply(in)
		}

		now := track.Now()
		if err = s.Advance(now, pressed); nil != err {
			return false
		}
		if err = field.Draw(s, now, pressed); nil != err {
			return false
		}
		return !quit && !s.Done()
	})

	stats = s.Stats()
	switch {
	case nil != err:
		p.failed(err)
		return stats, err
	case quit:
		s.Abort()
		p.metrics.SessionEnded("aborted")
		p.log.WithField("session", s.ID()).Info("session aborted by player")
	default:
		p.metrics.SessionEnded("completed")
	}
	return stats, nil
}

func summary(out io.Writer, ch *chart.Chart, stats score.Stats) error {
	th := &theme.DefaultTheme{}
	if _, err := fmt.Fprintf(out, "%s\n\n", ch.Title); nil != err {
		return err
	}
	for _, g := range game.Grades {
		if _, err := fmt.Fprintf(out, "%11s:  %8d\n", th.GradeLabel(g), stats.Count(g)); nil != err {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "\n      Score:  %8d\n  Max Combo:  %8d\n       Mean:  %8.2fms\n      Stdev:  %8.2fms\n",
		stats.Score,
		stats.MaxCombo,
		float64(stats.Mean)/float64(time.Millisecond),
		float64(stats.Stdev)/float64(time.Millisecond),
	)
	return err
}
