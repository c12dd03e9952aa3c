package actions

import (
	"bytes"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sethvargo/go-githubactions"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// WorkflowFormatter renders log entries as workflow commands understood by
// the GitHub Actions runner. Info entries are printed verbatim.
type WorkflowFormatter struct{}

func (WorkflowFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var line string
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		line = (&githubactions.Command{Name: "debug", Message: entry.Message}).String()
	case logrus.WarnLevel:
		line = (&githubactions.Command{Name: "warning", Message: entry.Message}).String()
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		line = (&githubactions.Command{Name: "error", Message: entry.Message}).String()
	default:
		line = entry.Message
	}
	return []byte(line + "\n"), nil
}

// TerminalFormatter is used outside of Actions. Level labels are coloured
// when the output is a terminal.
type TerminalFormatter struct {
	renderer *lipgloss.Renderer
}

// NewTerminalFormatter creates a formatter whose colour profile matches out
func NewTerminalFormatter(out io.Writer) *TerminalFormatter {
	r := lipgloss.NewRenderer(out)
	if !isTerminal(out) {
		r.SetColorProfile(termenv.Ascii)
	}
	return &TerminalFormatter{renderer: r}
}

func (f *TerminalFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var buf bytes.Buffer

	label := ""
	style := f.renderer.NewStyle().Bold(true)
	switch entry.Level {
	case logrus.DebugLevel, logrus.TraceLevel:
		label = style.Foreground(lipgloss.Color("8")).Render("debug")
	case logrus.WarnLevel:
		label = style.Foreground(lipgloss.Color("3")).Render("warning")
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		label = style.Foreground(lipgloss.Color("1")).Render("error")
	}

	if label != "" {
		buf.WriteString(label)
		buf.WriteString(": ")
	}
	buf.WriteString(entry.Message)
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// NewLogger builds the logger for a run. Under Actions every entry becomes a
// workflow command; debug output is always emitted there since the runner
// hides it unless step debugging is on.
func NewLogger(out io.Writer, inActions bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if inActions {
		logger.SetFormatter(WorkflowFormatter{})
		logger.SetLevel(logrus.DebugLevel)
		return logger
	}

	logger.SetFormatter(NewTerminalFormatter(out))
	if os.Getenv("RUNNER_DEBUG") == "1" {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
	return logger
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
