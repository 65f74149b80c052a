// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/client"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/voting"
)

const help = `commands:
  list          show nominations and what you voted for
  vote <id>     vote for a candidate (nested) or nomination (flat)
  results       show the standings
  time          show the time left
  help          show this help
  quit          exit`

type widget struct {
	session   *voting.Session
	countdown *voting.Countdown // nil without a deadline
	out       io.Writer
	now       func() time.Time
}

// newSession builds a local or remote session from the client config.
func newSession(ctx context.Context, cfg cliparse.ClientConfig, logger *slog.Logger) (*voting.Session, time.Time, error) {
	if cfg.Local {
		return voting.NewLocalSession(voting.DefaultBallot(cfg.Mode), voting.WithLogger(logger)), cfg.Deadline, nil
	}

	c, err := client.New(cfg.APIURL, cfg.Mode, client.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, time.Time{}, err
	}
	session := voting.NewRemoteSession(c,
		voting.WithLogger(logger),
		voting.WithLoadRetry(cfg.Retries, time.Second),
	)
	if err := session.Load(ctx); err != nil {
		return nil, time.Time{}, err
	}

	deadline := cfg.Deadline
	if deadline.IsZero() {
		deadline = c.Deadline()
	}
	return session, deadline, nil
}

func run(ctx context.Context, cfg cliparse.ClientConfig, in io.Reader, out io.Writer, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	session, deadline, err := newSession(ctx, cfg, logger)
	if err != nil {
		return err
	}

	w := &widget{session: session, out: out, now: time.Now}
	if !deadline.IsZero() {
		w.countdown = voting.NewCountdown(deadline)
		go w.countdown.Run(ctx, nil)
	}

	w.list()
	fmt.Fprintln(out, help)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(out)
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if !w.exec(ctx, line) {
				return nil
			}
		}
	}
}

// exec runs one command line and reports whether to keep going.
func (w *widget) exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "list", "ls":
		w.list()
	case "vote", "v":
		if len(fields) != 2 {
			fmt.Fprintln(w.out, "usage: vote <id>")
			return true
		}
		id, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			fmt.Fprintf(w.out, "not an id: %q\n", fields[1])
			return true
		}
		w.vote(ctx, id)
	case "results", "r":
		w.results()
	case "time", "t":
		w.time()
	case "help", "?":
		fmt.Fprintln(w.out, help)
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(w.out, "unknown command %q (try help)\n", fields[0])
	}
	return true
}

func (w *widget) list() {
	state := w.session.State()
	for _, n := range state.Nominations {
		h := n.Info()
		if flat, ok := n.(voting.FlatNomination); ok {
			fmt.Fprintf(w.out, "%s [%d] %s  %s votes%s\n", h.Emoji, h.ID, h.Title, humanize.Comma(int64(flat.Votes)), votedMark(state, h.ID))
			continue
		}

		fmt.Fprintf(w.out, "%s %s\n", h.Emoji, h.Title)
		if h.Description != "" {
			fmt.Fprintf(w.out, "   %s\n", h.Description)
		}
		for _, v := range n.Votables() {
			fmt.Fprintf(w.out, "   [%d] %s  %s votes%s\n", v.ID, v.Name, humanize.Comma(int64(v.Votes)), votedMark(state, v.ID))
		}
	}
}

func votedMark(state voting.State, id int64) string {
	if state.Voted.Has(id) {
		return "  (your vote)"
	}
	return ""
}

func (w *widget) vote(ctx context.Context, id int64) {
	out := w.session.Vote(ctx, id)
	if !out.Accepted() {
		fmt.Fprintf(w.out, "✗ %s\n", out.Message)
		return
	}

	_, v, _ := out.State.Find(id)
	fmt.Fprintf(w.out, "✓ %s (%s now has %s votes)\n", out.Message, v.Name, humanize.Comma(int64(v.Votes)))
}

func (w *widget) results() {
	tally := w.session.Rank()
	fmt.Fprintf(w.out, "%s votes total\n", humanize.Comma(int64(tally.Total)))
	for i, s := range tally.Standings {
		fmt.Fprintf(w.out, "%2d. %s %-24s %-20s %6s  %3d%%\n",
			i+1, s.Emoji, s.NominationTitle, s.Name, humanize.Comma(int64(s.Votes)), s.DisplayPercent())
	}
}

func (w *widget) time() {
	if w.countdown == nil {
		fmt.Fprintln(w.out, "no deadline set")
		return
	}
	r := w.countdown.Tick()
	if w.countdown.Expired() {
		fmt.Fprintf(w.out, "voting deadline passed %s (%s)\n", humanize.RelTime(w.countdown.Deadline, w.now(), "ago", "from now"), r)
		return
	}
	fmt.Fprintf(w.out, "%s left, closes %s\n", r, humanize.RelTime(w.countdown.Deadline, w.now(), "ago", "from now"))
}
