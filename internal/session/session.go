package session

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pixil98/go-battleship/internal/arena"
	"github.com/pixil98/go-battleship/internal/board"
	"github.com/pixil98/go-battleship/internal/display"
	"github.com/pixil98/go-battleship/internal/game"
)

const helpText = `Commands:
  join                          take a seat in the game
  ready                         declare your boats placed
  place <kind> <row> <col> [v]  place a boat ('v' for vertical)
  remove <row> <col>            take a placed boat back off the board
  fire <row> <col>              fire at the opponent's board
  board                         show both boards
  status                        show the area status
  leave                         give up your seat (forfeits a running game)
  quit                          disconnect
Boat kinds: aircraft-carrier, battleship, cruiser, destroyer, submarine`

// Session is one connected player inside one area.
type Session struct {
	conn   io.ReadWriter
	player *game.Player
	area   *arena.Area

	msgs chan []byte
}

// receive queues an area snapshot for display. Snapshots supersede each
// other, so dropping under backpressure is harmless.
func (s *Session) receive(data []byte) {
	select {
	case s.msgs <- data:
	default:
	}
}

func (s *Session) run(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	if err := s.showStatus(); err != nil {
		return err
	}
	if err := s.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-s.msgs:
			var m arena.Model
			if err := json.Unmarshal(msg, &m); err != nil {
				slog.Warn("decoding area snapshot", "player", s.player.Id, "error", err)
				continue
			}
			out, err := display.RenderStatus(&m)
			if err != nil {
				return err
			}
			if err := s.writeLine("\n" + out); err != nil {
				return err
			}
			if err := s.prompt(); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.prompt(); err != nil {
					return err
				}
				continue
			}

			parts := strings.Fields(line)
			quit, err := s.exec(parts[0], parts[1:])
			if err != nil {
				return err
			}
			if quit {
				s.writeLine("Goodbye!")
				return nil
			}

			if err := s.prompt(); err != nil {
				return err
			}
		}
	}
}

// exec runs one command. Game rule violations are reported to the player;
// only connection failures come back as errors.
func (s *Session) exec(cmd string, args []string) (bool, error) {
	switch cmd {
	case "help":
		return false, s.writeLine(helpText)

	case "join":
		id, err := s.area.Dispatch(s.player, game.JoinGame{})
		if err != nil {
			return false, s.reject(err)
		}
		return false, s.writeLine(fmt.Sprintf("You're in. Game %s.", id))

	case "ready", "start":
		gid, err := s.gameID()
		if err != nil {
			return false, s.reject(err)
		}
		if _, err := s.area.Dispatch(s.player, game.StartGame{GameID: gid}); err != nil {
			return false, s.reject(err)
		}
		return false, s.writeLine("Ready.")

	case "place":
		return false, s.place(args)

	case "remove":
		return false, s.remove(args)

	case "fire":
		return false, s.fire(args)

	case "board":
		m := s.area.Model()
		if m.Game == nil {
			return false, s.writeLine("No game underway.")
		}
		return false, s.writeLine(display.RenderBoards(m.Game, s.player.Id))

	case "status":
		return false, s.showStatus()

	case "leave":
		gid, err := s.gameID()
		if err != nil {
			return false, s.reject(err)
		}
		if _, err := s.area.Dispatch(s.player, game.LeaveGame{GameID: gid}); err != nil {
			return false, s.reject(err)
		}
		return false, s.writeLine("You left the game.")

	case "quit":
		return true, nil

	default:
		return false, s.writeLine(fmt.Sprintf("Unknown command %q. Type 'help'.", cmd))
	}
}

func (s *Session) place(args []string) error {
	if len(args) < 3 {
		return s.writeLine("Usage: place <kind> <row> <col> [v]")
	}
	kind, err := board.ParseKind(args[0])
	if err != nil {
		return s.reject(err)
	}
	row, col, err := parseCoords(args[1], args[2])
	if err != nil {
		return s.reject(err)
	}
	vertical := len(args) > 3 && strings.HasPrefix(strings.ToLower(args[3]), "v")

	gid, err := s.gameID()
	if err != nil {
		return s.reject(err)
	}
	color, err := s.color()
	if err != nil {
		return s.reject(err)
	}

	_, err = s.area.Dispatch(s.player, game.SetUpGameMove{
		GameID: gid,
		Setup: game.Setup{
			Board:    color,
			Kind:     kind,
			Row:      row,
			Col:      col,
			Vertical: vertical,
		},
	})
	if err != nil {
		return s.reject(err)
	}
	return s.writeLine(fmt.Sprintf("%s placed.", display.KindLabel(kind)))
}

func (s *Session) remove(args []string) error {
	if len(args) < 2 {
		return s.writeLine("Usage: remove <row> <col>")
	}
	row, col, err := parseCoords(args[0], args[1])
	if err != nil {
		return s.reject(err)
	}

	gid, err := s.gameID()
	if err != nil {
		return s.reject(err)
	}
	color, err := s.color()
	if err != nil {
		return s.reject(err)
	}

	_, err = s.area.Dispatch(s.player, game.SetUpGameMove{
		GameID: gid,
		Setup: game.Setup{
			Board: color,
			Row:   row,
			Col:   col,
		},
		Remove: true,
	})
	if err != nil {
		return s.reject(err)
	}
	return s.writeLine("Removed.")
}

func (s *Session) fire(args []string) error {
	if len(args) < 2 {
		return s.writeLine("Usage: fire <row> <col>")
	}
	row, col, err := parseCoords(args[0], args[1])
	if err != nil {
		return s.reject(err)
	}

	gid, err := s.gameID()
	if err != nil {
		return s.reject(err)
	}

	_, err = s.area.Dispatch(s.player, game.GameMove{
		GameID: gid,
		Move:   game.Guess{Row: row, Col: col},
	})
	if err != nil {
		return s.reject(err)
	}

	m := s.area.Model()
	if m.Game != nil && len(m.Game.Moves) > 0 {
		last := m.Game.Moves[len(m.Game.Moves)-1]
		if last.Hit {
			return s.writeLine("Direct hit!")
		}
		return s.writeLine("Splash. Nothing there.")
	}
	return nil
}

func (s *Session) showStatus() error {
	out, err := display.RenderStatus(s.area.Model())
	if err != nil {
		return err
	}
	return s.writeLine(out)
}

// gameID resolves the live game's id, the handle every targeted command
// must present.
func (s *Session) gameID() (string, error) {
	m := s.area.Model()
	if m.Game == nil {
		return "", game.ErrGameNotInProgress
	}
	return m.Game.Id, nil
}

// color resolves which board belongs to this player.
func (s *Session) color() (game.Color, error) {
	m := s.area.Model()
	if m.Game != nil {
		if m.Game.Blue != nil && m.Game.Blue.Id == s.player.Id {
			return game.ColorBlue, nil
		}
		if m.Game.Green != nil && m.Game.Green.Id == s.player.Id {
			return game.ColorGreen, nil
		}
	}
	return "", game.ErrPlayerNotInGame
}

// reject shows a rule violation to the player without ending the session.
func (s *Session) reject(err error) error {
	return s.writeLine(fmt.Sprintf("You can't do that: %s", err))
}

func (s *Session) prompt() error {
	_, err := s.conn.Write([]byte("> "))
	return err
}

func (s *Session) writeLine(msg string) error {
	_, err := s.conn.Write([]byte(msg + "\n"))
	return err
}

func parseCoords(rowStr, colStr string) (int, int, error) {
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return 0, 0, fmt.Errorf("row must be a number")
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return 0, 0, fmt.Errorf("col must be a number")
	}
	return row, col, nil
}
