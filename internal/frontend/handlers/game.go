package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/frontend/telnet"
	"github.com/cory-johannsen/idlerpg/internal/game/engine"
)

// gameSession holds per-connection state for a logged-in player and
// dispatches game commands.
type gameSession struct {
	game     Game
	catalog  engine.Catalog
	logger   *zap.Logger
	playerID int64
	name     string
}

// loop reads and dispatches game commands until the player quits or the
// connection drops.
func (s *gameSession) loop(ctx context.Context, conn *telnet.Conn) error {
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(telnet.Colorf(telnet.BrightWhite, "%s> ", s.name)); err != nil {
			return fmt.Errorf("writing prompt: %w", err)
		}

		line, err := conn.ReadLine()
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		if cmd == "quit" || cmd == "exit" {
			_ = conn.WriteLine(telnet.Colorf(telnet.Cyan, "Farewell, %s!", s.name))
			return nil
		}

		if err := s.dispatch(ctx, conn, cmd, args); err != nil {
			return err
		}
	}
}

// dispatch runs a single game command. Gameplay errors are rendered to the
// client; only connection errors propagate.
func (s *gameSession) dispatch(ctx context.Context, conn *telnet.Conn, cmd string, args []string) error {
	switch cmd {
	case "card", "stats", "status":
		card, err := s.game.ViewCard(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderCard(card, s.catalog)))

	case "hunt":
		enemyID := ""
		if len(args) > 0 {
			enemyID = args[0]
		}
		res, err := s.game.Hunt(ctx, s.playerID, enemyID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderHunt(res)))

	case "attack":
		res, err := s.game.AttackTurn(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderTurn(res, s.catalog)))

	case "flee":
		res, err := s.game.Flee(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderFlee(res)))

	case "gather":
		if len(args) < 1 {
			return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: gather <node>. See 'nodes'."))
		}
		res, err := s.game.Gather(ctx, s.playerID, args[0])
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderGather(res, s.catalog)))

	case "craft":
		if len(args) < 1 {
			return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: craft <recipe>. See 'recipes'."))
		}
		res, err := s.game.Craft(ctx, s.playerID, args[0])
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderCraft(res, s.catalog)))

	case "use":
		if len(args) < 1 {
			return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: use <item>."))
		}
		res, err := s.game.UseItem(ctx, s.playerID, args[0])
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderUse(res)))

	case "rest":
		res, err := s.game.Rest(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderRest(res)))

	case "idle", "claim":
		res, err := s.game.SettleIdle(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(RenderIdle(res)))

	case "inventory", "inv":
		card, err := s.game.ViewCard(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(s.renderInventory(card)))

	case "skills":
		card, err := s.game.ViewCard(ctx, s.playerID)
		if err != nil {
			return s.reportError(conn, cmd, err)
		}
		return conn.Write([]byte(s.renderSkills(card)))

	case "enemies":
		return conn.Write([]byte(RenderEnemies(s.catalog)))

	case "recipes":
		return conn.Write([]byte(RenderRecipes(s.catalog)))

	case "nodes":
		return conn.Write([]byte(RenderNodes(s.catalog)))

	case "help":
		return conn.Write([]byte(gameHelp()))

	default:
		return conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command: %s. Type 'help' for available commands.", cmd))
	}
}

// reportError maps engine errors to player-facing messages. The error text of
// gameplay sentinels is already written for the player; anything else is
// logged and masked.
func (s *gameSession) reportError(conn *telnet.Conn, cmd string, err error) error {
	switch {
	case errors.Is(err, engine.ErrInvalidState),
		errors.Is(err, engine.ErrInsufficientResource),
		errors.Is(err, engine.ErrNotFound):
		return conn.WriteLine(telnet.Colorize(telnet.Yellow, playerMessage(err)))
	default:
		s.logger.Error("command failed",
			zap.String("command", cmd),
			zap.Int64("player_id", s.playerID),
			zap.Error(err))
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Something went wrong. Please try again."))
	}
}

// playerMessage strips the wrapped sentinel suffix from a gameplay error so
// the client sees only the human-readable part.
func playerMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{
		": " + engine.ErrInvalidState.Error(),
		": " + engine.ErrInsufficientResource.Error(),
		": " + engine.ErrNotFound.Error(),
	} {
		msg = strings.ReplaceAll(msg, sentinel, "")
	}
	return capitalize(msg)
}

func (s *gameSession) renderInventory(card *engine.Card) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorf(telnet.BrightWhite, "Inventory (%d gold):", card.Player.Gold))
	sb.WriteString("\r\n")
	if len(card.Inventory) == 0 {
		sb.WriteString(telnet.Colorize(telnet.Dim, "  (empty)"))
		sb.WriteString("\r\n")
		return sb.String()
	}
	for _, entry := range card.Inventory {
		sb.WriteString(fmt.Sprintf("  %s x%d\r\n", itemName(s.catalog, entry.ItemID), entry.Quantity))
	}
	return sb.String()
}

func (s *gameSession) renderSkills(card *engine.Card) string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "Skills:"))
	sb.WriteString("\r\n")
	for _, sv := range card.Skills {
		sb.WriteString(RenderSkillProgress(sv))
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func gameHelp() string {
	var sb strings.Builder
	sb.WriteString(telnet.Colorize(telnet.BrightWhite, "Game commands:"))
	sb.WriteString("\r\n")
	for _, row := range [][2]string{
		{"card", "Show your character sheet (settles idle rewards)"},
		{"hunt [enemy]", "Start a battle, random or by enemy id"},
		{"attack", "Fight one turn of your battle"},
		{"flee", "Abandon your battle, keeping any damage taken"},
		{"gather <node>", "Gather from a node, gated by skill level"},
		{"craft <recipe>", "Craft a recipe from your inventory"},
		{"use <item>", "Consume an item, such as a potion"},
		{"rest", "Pay 10 gold to fully heal"},
		{"idle", "Claim idle rewards accrued by the hour"},
		{"inventory", "List your items and gold"},
		{"skills", "List your skill levels"},
		{"enemies", "List known enemies"},
		{"recipes", "List craftable recipes"},
		{"nodes", "List gathering spots"},
		{"quit", "Disconnect"},
	} {
		sb.WriteString(fmt.Sprintf("  %s %s\r\n",
			telnet.Colorize(telnet.Green, fmt.Sprintf("%-16s", row[0])),
			row[1]))
	}
	return sb.String()
}
