package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vctt94/scala40/pkg/cards"
	"github.com/vctt94/scala40/pkg/engine"
	"github.com/vctt94/scala40/pkg/repository"
)

// Model is the bubbletea.Model driving a single hot-seat local game: each
// turn, whichever player is current types a command at the keyboard.
// Grounded on the teacher's PokerUI (pkg/ui/ui.go), trimmed to the one
// screen Scala 40's request/response engine needs instead of the teacher's
// lobby/table/bet-input screen stack.
type Model struct {
	ctx    context.Context
	repo   repository.Repository[engine.GameState]
	gameID string

	input   string
	message string
	err     error
	quit    bool
}

// NewModel constructs the interactive model for an already-dealt game
// stored in repo under gameID.
func NewModel(ctx context.Context, repo repository.Repository[engine.GameState], gameID string) Model {
	return Model{ctx: ctx, repo: repo, gameID: gameID}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case "enter":
		m.err = nil
		line := strings.TrimSpace(m.input)
		m.input = ""
		if line == "quit" || line == "q" {
			m.quit = true
			return m, tea.Quit
		}
		m.message, m.err = m.dispatch(line)
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if len(keyMsg.String()) == 1 {
			m.input += keyMsg.String()
		}
		return m, nil
	}
}

func (m Model) View() string {
	g, _, err := m.repo.Get(m.ctx, m.gameID)
	if err != nil {
		return errorStyle.Render(fmt.Sprintf("failed to load game %s: %v", m.gameID, err)) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Scala 40 — game %s — hand %d, round %d", g.ID, g.HandNumber, g.RoundNumber)))
	b.WriteString("\n\n")
	b.WriteString(renderTable(&g))
	b.WriteString("\n")
	b.WriteString(renderPlayers(&g))
	b.WriteString("\n")

	if p := g.GetPrivateView(g.CurrentPlayer); p.PlayerID != "" {
		b.WriteString(fmt.Sprintf("%s's hand (%s, phase %s):\n", g.CurrentPlayer, statusLabel(&g), g.Phase))
		b.WriteString(renderHand(p.Hand))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	} else if m.message != "" {
		b.WriteString(m.message + "\n")
	}

	b.WriteString(helpStyle.Render(
		"commands: draw stock | draw discard | open 0,1,2|3,4,5 | lay 0,1,2 | " +
			"attach <handIdx> <meldIdx> | sub <meldIdx> <handIdx> | discard <handIdx> [dup] | auto | quit"))
	b.WriteString("\n> " + m.input)
	return b.String()
}

func statusLabel(g *engine.GameState) string {
	return string(g.Status)
}

// dispatch parses a hot-seat command line into an engine.ActionRequest
// against the current player and applies it, mirroring the teacher's
// dispatcher.*Cmd() family (pkg/ui/ui.go) but calling engine.ApplyAction
// in-process instead of issuing an RPC.
func (m Model) dispatch(line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", nil
	}

	g, _, err := m.repo.Get(m.ctx, m.gameID)
	if err != nil {
		return "", err
	}
	hand := g.GetPrivateView(g.CurrentPlayer).Hand
	playerID := g.CurrentPlayer

	req := engine.ActionRequest{GameID: m.gameID, PlayerID: playerID, Nonce: fmt.Sprintf("%s-%d", line, g.Version)}

	switch fields[0] {
	case "draw":
		if len(fields) < 2 {
			return "", fmt.Errorf("usage: draw stock|discard")
		}
		if fields[1] == "stock" {
			req.Action = engine.ActionDrawStock
		} else {
			req.Action = engine.ActionDrawDiscard
		}
	case "open":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: open 0,1,2|3,4,5")
		}
		melds, err := parseMelds(hand, fields[1])
		if err != nil {
			return "", err
		}
		req.Action = engine.ActionOpen
		req.Payload.Melds = melds
	case "lay":
		if len(fields) != 2 {
			return "", fmt.Errorf("usage: lay 0,1,2")
		}
		meld, err := parseIndices(hand, fields[1])
		if err != nil {
			return "", err
		}
		req.Action = engine.ActionLayMeld
		req.Payload.Melds = [][]cards.Card{meld}
	case "attach":
		if len(fields) != 3 {
			return "", fmt.Errorf("usage: attach <handIdx> <meldIdx>")
		}
		c, err := cardAt(hand, fields[1])
		if err != nil {
			return "", err
		}
		meldIdx, err := strconv.Atoi(fields[2])
		if err != nil {
			return "", fmt.Errorf("invalid meld index %q", fields[2])
		}
		req.Action = engine.ActionAttach
		req.Payload.Card = &c
		req.Payload.MeldIndex = meldIdx
	case "sub":
		if len(fields) != 3 {
			return "", fmt.Errorf("usage: sub <meldIdx> <handIdx>")
		}
		meldIdx, err := strconv.Atoi(fields[1])
		if err != nil {
			return "", fmt.Errorf("invalid meld index %q", fields[1])
		}
		c, err := cardAt(hand, fields[2])
		if err != nil {
			return "", err
		}
		req.Action = engine.ActionSubstituteJoker
		req.Payload.MeldIndex = meldIdx
		req.Payload.HeldCard = &c
	case "discard":
		if len(fields) < 2 {
			return "", fmt.Errorf("usage: discard <handIdx> [dup]")
		}
		c, err := cardAt(hand, fields[1])
		if err != nil {
			return "", err
		}
		req.Action = engine.ActionDiscard
		req.Payload.Card = &c
		req.DeclareDuplicate = len(fields) > 2 && fields[2] == "dup"
	case "auto":
		req.Action = engine.ActionAutoPlay
	default:
		return "", fmt.Errorf("unknown command %q", fields[0])
	}

	resp, err := engine.ApplyAction(m.ctx, m.repo, req)
	if err != nil {
		return "", err
	}
	if !resp.OK {
		return "", fmt.Errorf("%s", resp.Error.Error())
	}
	return fmt.Sprintf("ok, new phase %s", resp.NewPhase), nil
}

func cardAt(hand []cards.Card, idxStr string) (cards.Card, error) {
	idx, err := strconv.Atoi(idxStr)
	if err != nil || idx < 0 || idx >= len(hand) {
		return cards.Card{}, fmt.Errorf("invalid hand index %q", idxStr)
	}
	return hand[idx], nil
}

func parseIndices(hand []cards.Card, spec string) ([]cards.Card, error) {
	var out []cards.Card
	for _, s := range strings.Split(spec, ",") {
		c, err := cardAt(hand, s)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseMelds(hand []cards.Card, spec string) ([][]cards.Card, error) {
	var out [][]cards.Card
	for _, group := range strings.Split(spec, "|") {
		meld, err := parseIndices(hand, group)
		if err != nil {
			return nil, err
		}
		out = append(out, meld)
	}
	return out, nil
}
