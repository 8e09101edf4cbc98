/*
* Renders ranked test counts in one of several output formats.
 */
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/sinclairtarget/testing-game/internal/format"
	"github.com/sinclairtarget/testing-game/internal/pretty"
	"github.com/sinclairtarget/testing-game/internal/tally"
)

type Format string

const (
	Text  Format = "text"
	Table Format = "table"
	CSV   Format = "csv"
	JSON  Format = "json"
)

var formats = []Format{Text, Table, CSV, JSON}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if !slices.Contains(formats, f) {
		return "", fmt.Errorf(
			"unknown format \"%s\" (expected one of: text, table, csv, json)",
			s,
		)
	}

	return f, nil
}

// Width of the author column in the table format.
const authorWidth = 40

const rule = "-------------------------------------------"

type Opts struct {
	Format Format
	Limit  int // Maximum number of rows; <= 0 means all
}

// Writes the ranking of counts to w.
//
// The reported total always covers every author, even when rows are cut off
// by the limit.
func Write(w io.Writer, counts tally.Counts, opts Opts) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error writing %s report: %w", opts.Format, err)
		}
	}()

	total := counts.Total()
	ranked := tally.Rank(counts)

	numOmitted := 0
	if opts.Limit > 0 && opts.Limit < len(ranked) {
		numOmitted = len(ranked) - opts.Limit
		ranked = ranked[:opts.Limit]
	}

	switch opts.Format {
	case Text, "":
		return writeText(w, total, ranked, numOmitted)
	case Table:
		return writeTable(w, total, ranked, numOmitted)
	case CSV:
		return writeCsv(w, ranked)
	case JSON:
		return writeJson(w, total, ranked)
	default:
		return fmt.Errorf("unknown format \"%s\"", opts.Format)
	}
}

func writeText(
	w io.Writer,
	total int,
	ranked []tally.Ranked,
	numOmitted int,
) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d\n", pretty.Bold("Total Tests:"), total)
	fmt.Fprintln(&b, rule)

	for _, r := range ranked {
		line := fmt.Sprintf(
			"%d. %s, %d (%s)",
			r.Rank,
			r.Identity,
			r.Count,
			format.Percent(r.Percent),
		)
		if r.Rank == 1 {
			line = pretty.Green(line)
		}

		fmt.Fprintln(&b, line)
	}

	if numOmitted > 0 {
		fmt.Fprintln(&b, pretty.Dim(
			fmt.Sprintf("...%s more...", format.Number(numOmitted)),
		))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeTable(
	w io.Writer,
	total int,
	ranked []tally.Ranked,
	numOmitted int,
) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: authorWidth},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})

	tbl.AppendHeader(table.Row{"#", "Author", "Tests", "Share"})

	for _, r := range ranked {
		tbl.AppendRow(table.Row{
			r.Rank,
			format.Abbrev(r.Identity, authorWidth),
			format.Number(r.Count),
			format.Percent(r.Percent),
		})
	}

	if numOmitted > 0 {
		tbl.AppendRow(table.Row{
			"",
			fmt.Sprintf("...%s more...", format.Number(numOmitted)),
			"",
			"",
		})
	}

	tbl.AppendFooter(table.Row{"", "Total", format.Number(total), ""})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

func writeCsv(w io.Writer, ranked []tally.Ranked) error {
	cw := csv.NewWriter(w)

	err := cw.Write([]string{"rank", "author", "tests", "percent"})
	if err != nil {
		return fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, r := range ranked {
		record := []string{
			strconv.Itoa(r.Rank),
			r.Identity,
			strconv.Itoa(r.Count),
			strconv.FormatFloat(r.Percent, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("error flushing CSV writer: %w", err)
	}

	return nil
}

type jsonAuthor struct {
	Rank    int     `json:"rank"`
	Author  string  `json:"author"`
	Tests   int     `json:"tests"`
	Percent float64 `json:"percent"`
}

type jsonReport struct {
	Total   int          `json:"total"`
	Authors []jsonAuthor `json:"authors"`
}

func writeJson(w io.Writer, total int, ranked []tally.Ranked) error {
	report := jsonReport{Total: total, Authors: []jsonAuthor{}}
	for _, r := range ranked {
		report.Authors = append(report.Authors, jsonAuthor{
			Rank:    r.Rank,
			Author:  r.Identity,
			Tests:   r.Count,
			Percent: r.Percent,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
