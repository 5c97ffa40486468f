package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/vvka-141/fsproc/internal/checksum"
	"github.com/vvka-141/fsproc/pkg/fsproc"
)

// byteLengther is implemented by large objects whose Length is not in bytes.
type byteLengther interface {
	ByteLength() int64
}

// Entry is one listed row.
type Entry struct {
	Name   string
	Kind   fsproc.LobKind
	Bytes  int64
	SHA256 string
}

// Listing prints rows as they are produced. Plain listings stream one line
// per row; rich listings render a table on Flush.
type Listing struct {
	w       io.Writer
	style   Style
	hasher  checksum.Calculator
	entries []Entry
	total   int64
}

// NewListing writes to w. A non-nil hasher adds a SHA-256 column, which
// requires reading every row's content.
func NewListing(w io.Writer, style Style, hasher checksum.Calculator) *Listing {
	return &Listing{w: w, style: style, hasher: hasher}
}

// Add records row, printing it straight away in plain style.
func (l *Listing) Add(row *fsproc.Row) error {
	e := Entry{
		Name:  row.Name,
		Kind:  row.Content.Kind(),
		Bytes: row.Content.Length(),
	}
	if bl, ok := row.Content.(byteLengther); ok {
		e.Bytes = bl.ByteLength()
	}
	if l.hasher != nil {
		sum, err := l.hasher.Object(row.Content)
		if err != nil {
			return err
		}
		e.SHA256 = sum.Hex
	}

	l.entries = append(l.entries, e)
	l.total += e.Bytes

	if l.style == StylePlain {
		return l.writePlain(e)
	}
	return nil
}

// Entries returns the rows listed so far.
func (l *Listing) Entries() []Entry { return l.entries }

func (l *Listing) writePlain(e Entry) error {
	var err error
	if l.hasher != nil {
		_, err = fmt.Fprintf(l.w, "%s\t%s\t%d\t%s\n", e.Name, e.Kind, e.Bytes, e.SHA256)
	} else {
		_, err = fmt.Fprintf(l.w, "%s\t%s\t%d\n", e.Name, e.Kind, e.Bytes)
	}
	return err
}

// Flush renders the table (rich style) and a summary line.
func (l *Listing) Flush() error {
	if l.style == StylePlain {
		return nil
	}

	headers := []string{"NAME", "KIND", "SIZE"}
	if l.hasher != nil {
		headers = append(headers, "SHA-256")
	}

	rows := make([][]string, 0, len(l.entries))
	for _, e := range l.entries {
		r := []string{e.Name, e.Kind.String(), FormatBytes(e.Bytes)}
		if l.hasher != nil {
			r = append(r, e.SHA256)
		}
		rows = append(rows, r)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(BorderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return HeaderStyle
			case col == 1 && row < len(l.entries) && l.entries[row].Kind == fsproc.KindClob:
				return ClobStyle
			case col == 1:
				return BlobStyle
			default:
				return CellStyle
			}
		})

	summary := MutedStyle.Render(fmt.Sprintf("%d file(s), %s", len(l.entries), FormatBytes(l.total)))
	_, err := fmt.Fprintln(l.w, t.Render()+"\n"+summary)
	return err
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return strconv.FormatInt(n, 10) + " B"
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
