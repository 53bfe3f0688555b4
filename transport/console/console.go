package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	helpText    = "commands: 0-8 play a cell, j N jump to move N, o toggle order, r new game, q quit"
	drawMessage = "It's a draw! Both players have tied."
)

var errUnknownCommand = errors.New("unknown command")

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, move int) (tictactoe.View, error)
	ToggleDisplayOrder(ctx context.Context, sessionID string) (tictactoe.View, error)
	Reset(ctx context.Context, sessionID string) (tictactoe.View, error)
	EndSession(ctx context.Context, sessionID string) error
}

// Console plays one session in a terminal.
type Console struct {
	logger *slog.Logger
	games  gameUseCase

	in  io.Reader
	out *termenv.Output

	sessionID string
}

func New(logger *slog.Logger, games gameUseCase, in io.Reader, out io.Writer, opts ...termenv.OutputOption) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		games:  games,
		in:     in,
		out:    termenv.NewOutput(out, opts...),
	}
}

// Run reads commands until q, end of input or ctx cancellation. The session
// is discarded on return.
func (that *Console) Run(ctx context.Context) error {
	log := that.logger.With("method", "Run")

	view, err := that.games.GetOrCreateGame(ctx, "")
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.sessionID = view.SessionID
	defer func() {
		if endErr := that.games.EndSession(context.WithoutCancel(ctx), that.sessionID); endErr != nil {
			log.Error("failed to end session", "error", endErr)
		}
	}()

	that.println(helpText)
	that.render(view)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(that.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}

			command := strings.TrimSpace(line)
			if command == "q" {
				return nil
			}

			if command == "" {
				continue
			}

			view, err = that.execute(ctx, command)
			switch {
			case errors.Is(err, errUnknownCommand),
				errors.Is(err, apperror.ErrInvalidCell),
				errors.Is(err, apperror.ErrMoveOutOfRange):
				that.println(err.Error())
				that.println(helpText)
				continue
			case err != nil:
				return err
			}

			that.render(view)
		}
	}
}

func (that *Console) execute(ctx context.Context, command string) (tictactoe.View, error) {
	fields := strings.Fields(command)

	switch {
	case fields[0] == "o" && len(fields) == 1:
		return that.games.ToggleDisplayOrder(ctx, that.sessionID)
	case fields[0] == "r" && len(fields) == 1:
		return that.games.Reset(ctx, that.sessionID)
	case fields[0] == "j" && len(fields) == 2:
		move, err := strconv.Atoi(fields[1])
		if err != nil {
			return tictactoe.View{}, fmt.Errorf("%w: %s", apperror.ErrMoveOutOfRange, fields[1])
		}
		return that.games.JumpTo(ctx, that.sessionID, move)
	case len(fields) == 1:
		cell, err := strconv.Atoi(fields[0])
		if err != nil {
			return tictactoe.View{}, fmt.Errorf("%w: %q", errUnknownCommand, command)
		}
		return that.games.ClickCell(ctx, that.sessionID, cell)
	default:
		return tictactoe.View{}, fmt.Errorf("%w: %q", errUnknownCommand, command)
	}
}

func (that *Console) render(view tictactoe.View) {
	var sb strings.Builder

	sb.WriteString(view.Status + "\n")
	for r, row := range view.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, that.cell(cell))
		}
		sb.WriteString(strings.Join(cells, "|") + "\n")
		if r < len(view.Rows)-1 {
			sb.WriteString("---+---+---\n")
		}
	}

	sb.WriteString(view.Counter + "\n")
	sb.WriteString("View history: " + view.OrderLabel + "\n")
	for _, move := range view.Moves {
		marker := "  "
		if move.Current {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%d. %s\n", marker, move.Move, move.Label)
	}

	for _, event := range view.Events {
		if event == tictactoe.EventDraw {
			sb.WriteString(that.out.String(drawMessage).Bold().String() + "\n")
		}
	}

	that.println(sb.String())
}

// cell shows the mark, or the index of an empty cell so it can be typed.
func (that *Console) cell(cell tictactoe.Cell) string {
	label := cell.Label()
	if label == "" {
		label = that.out.String(strconv.Itoa(cell.Index)).Faint().String()
	}

	text := " " + label + " "
	if cell.Winning {
		return that.out.String(text).Reverse().Bold().String()
	}

	return text
}

func (that *Console) println(text string) {
	_, _ = fmt.Fprintln(that.out, text)
}
