package httpserver

import (
	"bytes"
	"html/template"
	"io"

	"github.com/socops/bingo/assets"
	"github.com/socops/bingo/internal/bingo"
	"github.com/socops/bingo/internal/session"
)

func loadTemplates() *template.Template {
	return template.Must(template.New("socops").ParseFS(assets.Templates(), "templates/*.html"))
}

// squareView decorates a square with its highlight state.
type squareView struct {
	bingo.Square
	Winning bool
}

// screenView is the data every template receives.
type screenView struct {
	Progress  string
	Squares   []squareView
	ShowModal bool
	Locked    bool // board is read-only after a win
	LineType  string
}

func newScreenView(s *session.Session) screenView {
	v := screenView{
		Progress:  s.Progress.String(),
		ShowModal: s.ShowModal(),
		Locked:    s.Progress == session.Won,
	}
	if s.WinningLine != nil {
		v.LineType = string(s.WinningLine.Type)
	}
	if s.Board != nil {
		hl := s.HighlightedSquareIDs()
		v.Squares = make([]squareView, 0, bingo.Cells)
		for _, sq := range s.Board {
			_, win := hl[sq.ID]
			v.Squares = append(v.Squares, squareView{Square: sq, Winning: win})
		}
	}
	return v
}

// screenName picks the fragment that represents s.
func screenName(s *session.Session) string {
	if s.Progress == session.NotStarted || s.Board == nil {
		return "start_screen"
	}
	return "game_screen"
}

// render executes a named template into a buffer first so a template error
// never leaves a half-written response.
func render(w io.Writer, t *template.Template, name string, data any) error {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
