package display

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/board"
)

var (
	templateFuncs = sprig.TxtFuncMap()
	titleCaser    = cases.Title(language.English)
)

// KindLabel returns a display label for a boat kind, e.g. "Aircraft Carrier".
func KindLabel(k board.Kind) string {
	return titleCaser.String(strings.ReplaceAll(string(k), "-", " "))
}

// Redact hides hidden information in a grid: piece types survive only on
// cells that have been hit. Used for the opponent's board view.
func Redact(cells [board.Size][board.Size]board.Cell) [board.Size][board.Size]board.Cell {
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			if cells[r][c].State != board.StateHit {
				cells[r][c].Piece = board.PieceOcean
			}
		}
	}
	return cells
}

// RenderGrid draws a board as a numbered text grid:
//
//	~  open ocean
//	S  boat segment, not yet hit
//	X  boat segment, hit
//	O  guessed ocean (a miss)
func RenderGrid(cells [board.Size][board.Size]board.Cell) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 2, 0, 1, ' ', 0)

	fmt.Fprint(w, "\t")
	for c := 0; c < board.Size; c++ {
		fmt.Fprint(w, strconv.Itoa(c)+"\t")
	}
	fmt.Fprint(w, "\n")

	for r := 0; r < board.Size; r++ {
		fmt.Fprint(w, strconv.Itoa(r)+"\t")
		for c := 0; c < board.Size; c++ {
			cell := cells[r][c]
			switch {
			case cell.Piece != board.PieceOcean && cell.State == board.StateHit:
				fmt.Fprint(w, "X\t")
			case cell.Piece != board.PieceOcean:
				fmt.Fprint(w, "S\t")
			case cell.State == board.StateHit:
				fmt.Fprint(w, "O\t")
			default:
				fmt.Fprint(w, "~\t")
			}
		}
		fmt.Fprint(w, "\n")
	}
	w.Flush()
	return buf.String()
}

const statusText = `== {{ .Name }} ==
Occupants: {{ range $i, $p := .Occupants }}{{ if $i }}, {{ end }}{{ $p.Name }}{{ else }}nobody{{ end }}
{{- if .Game }}
Game {{ printf "%s" .Game.Status | title }}
{{- if .Game.Blue }}
  blue:  {{ .Game.Blue.Name }}{{ if .Game.BlueReady }} (ready){{ end }}
{{- end }}
{{- if .Game.Green }}
  green: {{ .Game.Green.Name }}{{ if .Game.GreenReady }} (ready){{ end }}
{{- end }}
{{- if .Game.Turn }}
  {{ .Game.Turn }} to fire, {{ len .Game.Moves }} move(s) made
{{- end }}
{{- if .Game.Winner }}
  winner: {{ .Game.Winner.Name }}
{{- end }}
{{- else }}
No game underway. Type 'join' to start one.
{{- end }}
{{- if .History }}
Past games:
{{- range .History }}
  {{ range $name, $score := . }}{{ $name }} {{ $score }}  {{ end }}
{{- end }}
{{- end }}
`

var statusTmpl = template.Must(template.New("status").Funcs(templateFuncs).Parse(statusText))

// RenderStatus formats an area snapshot as a word-wrapped status banner.
func RenderStatus(m *arena.Model) (string, error) {
	var buf bytes.Buffer
	if err := statusTmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("executing status template: %w", err)
	}
	return Wrap(buf.String()), nil
}

// RenderBoards formats both boards from the viewer's perspective: their own
// board in full, the opponent's redacted.
func RenderBoards(g *arena.GameModel, viewer string) string {
	own, other := g.BlueBoard, g.GreenBoard
	if g.Green != nil && g.Green.Id == viewer {
		own, other = g.GreenBoard, g.BlueBoard
	}

	var sb strings.Builder
	sb.WriteString("Your board:\n")
	sb.WriteString(RenderGrid(own))
	sb.WriteString("\nOpponent's board:\n")
	sb.WriteString(RenderGrid(Redact(other)))
	return sb.String()
}
