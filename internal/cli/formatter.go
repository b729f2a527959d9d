package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/fsum/internal/fsum"
)

// threshold is a binary unit printed once a total reaches it.
type threshold struct {
	size   *big.Int
	digits int
	suffix string
}

//nolint:gochecknoglobals // Config constant
var thresholds = []threshold{
	{humanize.BigKiByte, 0, "KiB"},
	{humanize.BigMiByte, 2, "MiB"},
	{humanize.BigGiByte, 2, "GiB"},
	{humanize.BigTiByte, 2, "TiB"},
	{humanize.BigPiByte, 2, "PiB"},
	{humanize.BigEiByte, 2, "EiB"},
	{humanize.BigZiByte, 2, "ZiB"},
	{humanize.BigYiByte, 2, "YiB"},
}

// HumanLines returns one scaled representation of total per unit it reaches,
// smallest unit first.
func HumanLines(total *big.Int) []string {
	var lines []string

	value := new(big.Float).SetInt(total)

	for _, th := range thresholds {
		if total.Cmp(th.size) < 0 {
			break
		}

		scaled := new(big.Float).Quo(value, new(big.Float).SetInt(th.size))
		lines = append(lines, fmt.Sprintf("%s %s", scaled.Text('f', th.digits), th.suffix))
	}

	return lines
}

// PrintPlain outputs the raw total followed by its scaled representations.
func PrintPlain(result *fsum.Result, writer io.Writer) error {
	if _, err := fmt.Fprintln(writer, result.Total.String()); err != nil {
		return err
	}

	for _, line := range HumanLines(result.Total.Big()) {
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}

	return nil
}

// report is the JSON shape of a Result.
type report struct {
	// TotalBytes is encoded as a bare number of arbitrary width.
	TotalBytes json.Number   `json:"total_bytes"`
	Human      string        `json:"human"`
	Files      int64         `json:"files"`
	Dirs       int64         `json:"dirs"`
	Duplicates int64         `json:"duplicates"`
	Errors     int64         `json:"errors"`
	Workers    int           `json:"workers"`
	Engine     string        `json:"engine"`
	Elapsed    time.Duration `json:"elapsed"`
}

// PrintJSON outputs the result in JSON format.
func PrintJSON(result *fsum.Result, writer io.Writer) error {
	data, err := json.MarshalIndent(report{
		TotalBytes: json.Number(result.Total.String()),
		Human:      humanize.BigIBytes(result.Total.Big()),
		Files:      result.Files,
		Dirs:       result.Dirs,
		Duplicates: result.Duplicates,
		Errors:     result.Errors,
		Workers:    result.Workers,
		Engine:     result.Engine,
		Elapsed:    result.Elapsed,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}
