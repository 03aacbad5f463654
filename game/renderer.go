package game

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/dimaq12/termsweeper/models"
)

// Cell symbols shared by the console and the interactive table.
const (
	symbolHidden  = "."
	symbolFlagged = "*"
	symbolMine    = "X"
	symbolEmpty   = "/"
)

func cellSymbol(cell models.Cell) string {
	switch cell.State() {
	case models.Hidden:
		return symbolHidden
	case models.Flagged:
		return symbolFlagged
	case models.Revealed:
		if cell.IsMine() {
			return symbolMine
		}
		if n := cell.AdjacentMines(); n > 0 {
			return strconv.Itoa(n)
		}
		return symbolEmpty
	default:
		return "?"
	}
}

// classic digit colours, 1 through 8
var digitColors = [...]string{"#5C9DFF", "#4CAF50", "#FF6B6B", "#7D56F4", "#B5651D", "#00B3B3", "#FAFAFA", "#9E9E9E"}

type consoleStyles struct {
	frame   lipgloss.Style
	hidden  lipgloss.Style
	flag    lipgloss.Style
	mine    lipgloss.Style
	empty   lipgloss.Style
	digits  [8]lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	notice  lipgloss.Style
}

// ConsoleRenderer prints the board as a text grid with 1-based row and
// column labels.
type ConsoleRenderer struct {
	out    io.Writer
	styles consoleStyles
}

// NewConsoleRenderer writes to w. Colour is used only when w is a colour
// capable terminal and noColor is false.
func NewConsoleRenderer(w io.Writer, noColor bool) *ConsoleRenderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	styles := consoleStyles{
		frame:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		hidden:  r.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		flag:    r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		mine:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		empty:   r.NewStyle().Foreground(lipgloss.Color("#626262")),
		success: r.NewStyle().Foreground(lipgloss.Color("#96CEB4")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		notice:  r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
	}
	for i, c := range digitColors {
		styles.digits[i] = r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &ConsoleRenderer{out: w, styles: styles}
}

func (r *ConsoleRenderer) Render(board BoardView) {
	width, height := board.Width(), board.Height()
	digits := int(math.Floor(math.Log10(float64(max(width, height))))) + 2
	separator := r.styles.frame.Render(strings.Repeat("-", digits) + "|" + strings.Repeat("-", digits*width) + "|")
	bar := r.styles.frame.Render("|")

	var sb strings.Builder
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat(" ", digits))
	sb.WriteString(bar)
	for col := 1; col <= width; col++ {
		fmt.Fprintf(&sb, "%*d", digits, col)
	}
	sb.WriteString(bar + "\n")
	sb.WriteString(separator + "\n")

	for row := 0; row < height; row++ {
		fmt.Fprintf(&sb, "%*d", digits, row+1)
		sb.WriteString(bar)
		for col := 0; col < width; col++ {
			cell := board.Cell(col, row)
			symbol := cellSymbol(cell)
			sb.WriteString(strings.Repeat(" ", digits-len(symbol)))
			sb.WriteString(r.style(cell).Render(symbol))
		}
		sb.WriteString(bar + "\n")
	}
	sb.WriteString(separator + "\n")

	fmt.Fprint(r.out, sb.String())
}

func (r *ConsoleRenderer) style(cell models.Cell) lipgloss.Style {
	switch cell.State() {
	case models.Flagged:
		return r.styles.flag
	case models.Revealed:
		if cell.IsMine() {
			return r.styles.mine
		}
		if n := cell.AdjacentMines(); n > 0 {
			return r.styles.digits[n-1]
		}
		return r.styles.empty
	default:
		return r.styles.hidden
	}
}

func (r *ConsoleRenderer) Notify(msg string) {
	fmt.Fprintln(r.out, r.styles.notice.Render(msg))
}

func (r *ConsoleRenderer) Finish(state models.GameState, board BoardView, elapsed time.Duration) {
	r.Render(board)
	switch state {
	case models.Won:
		fmt.Fprintln(r.out, r.styles.success.Render("Congratulations, you won the game!"))
	case models.Lost:
		fmt.Fprintln(r.out, r.styles.failure.Render("You lost!"))
	}
	fmt.Fprintf(r.out, "Time: %s\n", elapsed.Round(time.Second))
}
