package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
	"github.com/msto63/ember/internal/journal"
)

// printDiagnostic writes a located error with the offending line and a
// caret under the column:
//
//	main.em:2:9: error: unexpected RIGHT_PAREN ")" ...
//	  2 | print(a,)
//	    |         ^
func printDiagnostic(w io.Writer, err error, name, source string) {
	d := lang.Diagnose(err, source)
	if d.Source == "" {
		d.Source = name
	}

	location := d.Source
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d:%d", d.Source, d.Line, d.Column)
	}
	fmt.Fprintf(w, "%s: %s %s\n", locationStyle.Render(location), errorStyle.Render("error:"), d.Message)

	if d.Excerpt == "" {
		return
	}
	lineNo := strconv.Itoa(d.Line)
	blank := fmt.Sprintf("%*s", len(lineNo), "")
	fmt.Fprintf(w, "  %s%s\n", gutterStyle.Render(lineNo+" |"), d.Excerpt)
	fmt.Fprintf(w, "  %s%s\n", gutterStyle.Render(blank+" |"), caretStyle.Render(d.Caret))
}

// readSource reads a file argument, with "-" meaning standard input
func (a *app) readSource(path string, stdin io.Reader) (string, string, error) {
	if path != "-" {
		source, err := a.engine.ReadSource(path)
		return path, source, err
	}

	limit := int64(a.engine.Options().MaxInputLength)
	data, err := io.ReadAll(io.LimitReader(stdin, limit+1))
	if err != nil {
		return "<stdin>", "", mdwerror.Wrap(err, "cannot read standard input").
			WithCode(mdwerror.CodeInternal)
	}
	// over-long input is rejected by the engine's length check
	return "<stdin>", string(data), nil
}

// parseResult is one parsed source together with what the journal needs
type parseResult struct {
	name     string
	source   string
	root     *mdwast.Compound
	err      error
	duration time.Duration

	// read is set once the source text was obtained
	read bool
}

func (a *app) parse(ctx context.Context, path string, stdin io.Reader) *parseResult {
	name, source, err := a.readSource(path, stdin)
	if err != nil {
		return &parseResult{name: name, err: err}
	}

	start := time.Now()
	root, err := a.engine.Parse(ctx, name, source, nil)
	return &parseResult{
		name:     name,
		source:   source,
		root:     root,
		err:      err,
		duration: time.Since(start),
		read:     true,
	}
}

// recorder stores parse results when the journal is requested by flag or
// configuration. A nil recorder drops results.
type recorder struct {
	store     *journal.SQLiteStore
	logger    *mdwlog.Logger
	runID     string
	retention time.Duration
}

func (a *app) openRecorder(ctx context.Context, requested bool) (*recorder, error) {
	if !requested && !a.cfg.Journal.Enabled {
		return nil, nil
	}

	store, err := journal.Open(journal.Config{Path: a.cfg.Journal.Path})
	if err != nil {
		return nil, err
	}

	r := &recorder{
		store:     store,
		logger:    a.logger.WithField("component", "ember-journal"),
		runID:     a.runID,
		retention: a.cfg.Retention(),
	}

	if r.retention > 0 {
		if deleted, err := store.Prune(ctx, r.retention); err != nil {
			r.logger.WarnWithErr("Pruning journal failed", err)
		} else if deleted > 0 {
			r.logger.Debug("Pruned journal", mdwlog.Fields{"deleted": deleted})
		}
	}
	return r, nil
}

// record stores res; read failures are not recorded
func (r *recorder) record(ctx context.Context, res *parseResult) {
	if r == nil || !res.read {
		return
	}

	entry := journal.Observe(res.name, res.source, res.root, res.err, res.duration)
	entry.RunID = r.runID
	if err := r.store.Record(ctx, entry); err != nil {
		r.logger.WarnWithErr("Recording parse result failed", err, mdwlog.Fields{"source": res.name})
		return
	}
	r.logger.Debug("Recorded parse result", mdwlog.Fields{"id": entry.ID, "source": res.name})
}

func (r *recorder) close() {
	if r == nil {
		return
	}
	if err := r.store.Close(); err != nil {
		r.logger.WarnWithErr("Closing journal failed", err)
	}
}
