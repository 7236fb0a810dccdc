package graph

import (
	"bufio"
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"spreadscope/internal/core/errors"
	"spreadscope/internal/shared/observability"
	"spreadscope/internal/shared/util"
)

// MaxRecordedWarnings caps how many rejected records keep their text.
const MaxRecordedWarnings = 50

// MaxLineBytes is the longest input line Load accepts, excluding the line
// terminator. Longer lines are rejected and skipped.
const MaxLineBytes = 1 << 20

const (
	RejectTooFewTokens = "too few columns"
	RejectLineTooLong  = "line exceeds maximum length"
	RejectBadWeight    = "weight is not an integer"
	RejectWeightRange  = "weight must be a positive integer in range"
)

// Record is one whitespace-tokenized interaction: source, target, [weight].
type Record []string

type RecordWarning struct {
	Line   int
	Text   string
	Reason string
}

// IngestReport counts what happened to each input record.
type IngestReport struct {
	Lines     int
	Processed int
	Rejected  int
	Warnings  []RecordWarning
}

func (r *IngestReport) reject(line int, text, reason string) {
	r.Rejected++
	observability.IngestRecordsTotal.WithLabelValues("rejected").Inc()
	if len(r.Warnings) < MaxRecordedWarnings {
		r.Warnings = append(r.Warnings, RecordWarning{Line: line, Text: text, Reason: reason})
	}
}

// Build constructs a graph from already tokenized records. Malformed
// records are skipped and counted; they never abort the build.
func Build(records []Record) (*Graph, IngestReport) {
	g := New()
	var report IngestReport
	for i, rec := range records {
		report.Lines++
		g.ingest(&report, i+1, rec, strings.Join(rec, " "))
	}
	return g, report
}

// LoadFile opens path and streams it through Load. A missing or unreadable
// file is fatal.
func LoadFile(ctx context.Context, path string) (*Graph, IngestReport, error) {
	f, err := os.Open(path)
	if err != nil {
		code := errors.CodeIO
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, IngestReport{}, errors.AddContext(errors.Wrap(err, code, "open input"), errors.CtxPath, path)
	}
	defer f.Close()

	g, report, err := Load(ctx, f)
	if err != nil {
		return nil, report, errors.AddContext(err, errors.CtxPath, path)
	}
	return g, report, nil
}

// Load reads one interaction per line: `<source> <target> [weight]`.
func Load(ctx context.Context, r io.Reader) (*Graph, IngestReport, error) {
	g := New()
	var report IngestReport

	progress := util.NewLimiter(1, 1)
	br := bufio.NewReaderSize(r, 64*1024)
	var buf []byte
	for {
		line, tooLong, err := readLine(br, buf[:0])
		buf = line
		if err != nil && err != io.EOF {
			return nil, report, errors.AddContext(errors.Wrap(err, errors.CodeIO, "read input"), errors.CtxLine, report.Lines+1)
		}
		if err == io.EOF && len(line) == 0 && !tooLong {
			break
		}

		report.Lines++
		if report.Lines%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, report, errors.AddContext(errors.Wrap(err, errors.CodeBudgetExceeded, "ingestion interrupted"), errors.CtxLine, report.Lines)
			}
			if progress.Allow(1) {
				slog.Debug("ingesting records", "lines", report.Lines, "nodes", g.NodeCount(), "edges", g.EdgeCount())
			}
		}

		if tooLong {
			report.reject(report.Lines, fmt.Sprintf("<more than %d bytes>", MaxLineBytes), RejectLineTooLong)
		} else {
			text := strings.TrimSpace(string(line))
			g.ingest(&report, report.Lines, Record(strings.Fields(text)), text)
		}
		if err == io.EOF {
			break
		}
	}
	return g, report, nil
}

// readLine appends the next line of br to buf without its terminator. A line
// longer than MaxLineBytes is consumed up to its newline and reported as
// tooLong with an empty result.
func readLine(br *bufio.Reader, buf []byte) (line []byte, tooLong bool, err error) {
	for {
		var chunk []byte
		chunk, err = br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > MaxLineBytes+2 {
				tooLong = true
				buf = buf[:0]
			} else {
				buf = append(buf, chunk...)
			}
		}
		if err == bufio.ErrBufferFull {
			continue
		}
		if tooLong {
			return buf, true, err
		}
		buf = bytes.TrimSuffix(buf, []byte("\n"))
		buf = bytes.TrimSuffix(buf, []byte("\r"))
		if len(buf) > MaxLineBytes {
			return buf[:0], true, err
		}
		return buf, false, err
	}
}

func (g *Graph) ingest(report *IngestReport, line int, rec Record, text string) {
	if len(rec) < 2 {
		report.reject(line, text, RejectTooFewTokens)
		return
	}

	weight := DefaultWeight
	if len(rec) >= 3 {
		w, err := strconv.Atoi(rec[2])
		if err != nil {
			reason := RejectBadWeight
			if stderrors.Is(err, strconv.ErrRange) {
				reason = RejectWeightRange
			}
			report.reject(line, text, reason)
			return
		}
		weight = w
	}
	if weight <= 0 {
		report.reject(line, text, RejectWeightRange)
		return
	}

	if err := g.AddEdge(rec[0], rec[1], weight); err != nil {
		report.reject(line, text, err.Error())
		return
	}
	report.Processed++
	observability.IngestRecordsTotal.WithLabelValues("accepted").Inc()
}

// Summary renders the warning line printed after ingestion.
func (r IngestReport) Summary() string {
	return fmt.Sprintf("%d interactions processed, %d rejected", r.Processed, r.Rejected)
}
