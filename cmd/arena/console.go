package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/dkeye/arena/internal/app"
	"github.com/dkeye/arena/internal/domain"
	"github.com/jedib0t/go-pretty/v6/table"
)

var errQuit = errors.New("quit")

// console prints what the player sees and reads commands from a terminal.
type console struct {
	mu     sync.Mutex
	out    io.Writer
	bodies []domain.EntitySnapshot
}

var _ app.Observer = (*console)(nil)

func newConsole(out io.Writer) *console { return &console{out: out} }

func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) PlayerName(n domain.PlayerName) {
	c.printf("you are %s\n", n)
}

func (c *console) RoomUpdate(s domain.RoomSnapshot) {
	c.printf("%s\n", formatRoom(s))
}

func (c *console) GameUpdate(b []domain.EntitySnapshot) {
	c.mu.Lock()
	c.bodies = append(c.bodies[:0], b...)
	c.mu.Unlock()
}

func (c *console) Effect(e domain.Effect) {
	c.printf("%s at (%.0f, %.0f)\n", e.Type, e.X, e.Y)
}

func formatRoom(s domain.RoomSnapshot) string {
	score := func(p *domain.PlayerScore) string {
		if p == nil {
			return "-"
		}
		return strconv.Itoa(p.Point)
	}
	state := "waiting"
	if s.IsGameStart {
		state = "playing"
	}
	return fmt.Sprintf("playerA %s : %s playerB [%s]", score(s.Score(domain.PlayerA)), score(s.Score(domain.PlayerB)), state)
}

func (c *console) renderBodies() {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := table.NewWriter()
	t.SetOutputMirror(c.out)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Label", "X", "Y", "Owner", "MP"})
	for _, b := range c.bodies {
		owner, mp := "", ""
		if cd := b.CustomData; cd != nil {
			owner = string(cd.Name)
			if cd.From != "" {
				owner = string(cd.From)
			}
			if cd.MP != nil {
				mp = strconv.FormatFloat(*cd.MP, 'f', 1, 64)
			}
		}
		t.AppendRow(table.Row{b.Label, fmt.Sprintf("%.0f", b.Position.X), fmt.Sprintf("%.0f", b.Position.Y), owner, mp})
	}
	t.Render()
}

const help = "commands: start, left, right, up, shoot, look X Y, card [name], bodies, help, quit"

// parseCommand turns one input line into an action on p.
func parseCommand(line string) (func(p app.Participant) error, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	switch cmd, args := fields[0], fields[1:]; cmd {
	case "quit", "exit":
		return func(app.Participant) error { return errQuit }, nil
	case "start":
		return func(p app.Participant) error { return p.StartGame() }, nil
	case "left", "right", "up":
		dir := domain.Direction(cmd)
		return func(p app.Participant) error { return p.Move(dir) }, nil
	case "shoot":
		return func(p app.Participant) error { return p.Shoot() }, nil
	case "look":
		if len(args) != 2 {
			return nil, fmt.Errorf("usage: look X Y")
		}
		x, errX := strconv.ParseFloat(args[0], 64)
		y, errY := strconv.ParseFloat(args[1], 64)
		if err := errors.Join(errX, errY); err != nil {
			return nil, fmt.Errorf("look: %w", err)
		}
		pt := domain.Point{X: x, Y: y}
		return func(p app.Participant) error { return p.LookAt(pt) }, nil
	case "card":
		card := domain.CardSplit
		if len(args) > 0 {
			card = domain.Card(args[0])
		}
		return func(p app.Participant) error { return p.UseCard(card) }, nil
	}
	return nil, fmt.Errorf("unknown command %q", fields[0])
}

// run reads commands until quit, end of input, ctx or done.
func (c *console) run(ctx context.Context, in io.Reader, p app.Participant, done <-chan struct{}) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	c.printf("%s\n", help)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			switch strings.TrimSpace(line) {
			case "help":
				c.printf("%s\n", help)
				continue
			case "bodies":
				c.renderBodies()
				continue
			}
			action, err := parseCommand(line)
			if err != nil {
				c.printf("%v\n", err)
				continue
			}
			if action == nil {
				continue
			}
			if err := action(p); errors.Is(err, errQuit) {
				return nil
			} else if err != nil {
				c.printf("%v\n", err)
			}
		}
	}
}
