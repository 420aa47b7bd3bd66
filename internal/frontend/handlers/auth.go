// Package handlers provides Telnet session handling and command processing.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/idlerpg/internal/frontend/telnet"
	"github.com/cory-johannsen/idlerpg/internal/game/engine"
	"github.com/cory-johannsen/idlerpg/internal/game/namegen"
	"github.com/cory-johannsen/idlerpg/internal/storage/postgres"
)

// AccountStore defines the account persistence operations required by AuthHandler.
type AccountStore interface {
	Create(ctx context.Context, username, password string) (postgres.Account, error)
	Authenticate(ctx context.Context, username, password string) (postgres.Account, error)
}

// Game defines the gameplay operations the session dispatches to.
// *engine.Engine satisfies it.
type Game interface {
	CreateCharacter(ctx context.Context, accountID int64, race namegen.Race) (*engine.Player, error)
	PlayerForAccount(ctx context.Context, accountID int64) (*engine.Player, error)
	ViewCard(ctx context.Context, playerID int64) (*engine.Card, error)
	Hunt(ctx context.Context, playerID int64, enemyID string) (*engine.HuntResult, error)
	AttackTurn(ctx context.Context, playerID int64) (*engine.TurnResult, error)
	Flee(ctx context.Context, playerID int64) (*engine.FleeResult, error)
	Gather(ctx context.Context, playerID int64, nodeID string) (*engine.GatherResult, error)
	Craft(ctx context.Context, playerID int64, recipeID string) (*engine.CraftResult, error)
	Rest(ctx context.Context, playerID int64) (*engine.RestResult, error)
	UseItem(ctx context.Context, playerID int64, itemID string) (*engine.UseItemResult, error)
	SettleIdle(ctx context.Context, playerID int64) (engine.IdleResult, error)
}

const welcomeBanner = `
` + telnet.Bold + telnet.BrightCyan + `
 ██╗██████╗ ██╗     ███████╗██████╗ ██████╗  ██████╗
 ██║██╔══██╗██║     ██╔════╝██╔══██╗██╔══██╗██╔════╝
 ██║██║  ██║██║     █████╗  ██████╔╝██████╔╝██║  ███╗
 ██║██║  ██║██║     ██╔══╝  ██╔══██╗██╔═══╝ ██║   ██║
 ██║██████╔╝███████╗███████╗██║  ██║██║     ╚██████╔╝
 ╚═╝╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝      ╚═════╝` + telnet.Reset + `

` + telnet.BrightYellow + `  An idle fantasy RPG. Your hero earns while you sleep.` + telnet.Reset + `

  Type ` + telnet.Green + `login <username> <password>` + telnet.Reset + ` to connect.
  Type ` + telnet.Green + `register <username> <password>` + telnet.Reset + ` to create an account.
  Type ` + telnet.Green + `quit` + telnet.Reset + ` to disconnect.
`

// AuthHandler implements telnet.SessionHandler and processes the
// authentication loop for a connected client.
type AuthHandler struct {
	accounts AccountStore
	game     Game
	catalog  engine.Catalog
	logger   *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
//
// Precondition: accounts, game, catalog, and logger must be non-nil.
// Postcondition: Returns an AuthHandler ready to handle sessions.
func NewAuthHandler(accounts AccountStore, game Game, catalog engine.Catalog, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		game:     game,
		catalog:  catalog,
		logger:   logger,
	}
}

// HandleSession implements telnet.SessionHandler. It shows the welcome banner
// and processes authentication commands until the player logs in or quits.
//
// Postcondition: Returns nil on clean quit, or an error if the session ended abnormally.
func (h *AuthHandler) HandleSession(ctx context.Context, conn *telnet.Conn) error {
	start := time.Now()
	addr := conn.RemoteAddr().String()

	if err := conn.Write([]byte(welcomeBanner)); err != nil {
		return fmt.Errorf("sending welcome: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteLine(telnet.Colorize(telnet.Yellow, "Server shutting down. Goodbye!"))
			return ctx.Err()
		default:
		}

		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "> ")); err != nil {
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

		switch cmd {
		case "quit", "exit":
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			h.logger.Info("client quit",
				zap.String("remote_addr", addr),
				zap.Duration("session_duration", time.Since(start)),
			)
			return nil

		case "login":
			acct, err := h.handleLogin(ctx, conn, args)
			if err != nil {
				return err
			}
			if acct.ID == 0 {
				continue
			}
			h.logger.Info("player logged in",
				zap.String("remote_addr", addr),
				zap.String("username", acct.Username),
				zap.Duration("login_time", time.Since(start)),
			)
			return h.characterFlow(ctx, conn, acct)

		case "register":
			if err := h.handleRegister(ctx, conn, args); err != nil {
				return err
			}

		case "help":
			h.showHelp(conn)

		default:
			_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown command: %s. Type 'help' for available commands.", cmd))
		}
	}
}

// handleLogin authenticates a player.
//
// Postcondition: Returns (acct, nil) on success, (postgres.Account{}, nil) if the error was
// shown to the user and the auth loop should continue, or (postgres.Account{}, error) on fatal errors.
func (h *AuthHandler) handleLogin(ctx context.Context, conn *telnet.Conn, args []string) (postgres.Account, error) {
	if len(args) < 2 {
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: login <username> <password>"))
		return postgres.Account{}, nil
	}

	username := args[0]
	password := args[1]

	start := time.Now()
	acct, err := h.accounts.Authenticate(ctx, username, password)
	elapsed := time.Since(start)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrAccountNotFound):
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Account not found. Use 'register' to create one."))
			return postgres.Account{}, nil
		case errors.Is(err, postgres.ErrInvalidCredentials):
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "Invalid password."))
			return postgres.Account{}, nil
		default:
			h.logger.Error("authentication error", zap.Error(err), zap.Duration("elapsed", elapsed))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
			return postgres.Account{}, nil
		}
	}

	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"Welcome back, %s! (account #%d)", acct.Username, acct.ID))
	return acct, nil
}

func (h *AuthHandler) handleRegister(ctx context.Context, conn *telnet.Conn, args []string) error {
	if len(args) < 2 {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Usage: register <username> <password>"))
	}

	username := args[0]
	password := args[1]

	if len(username) < 3 || len(username) > 32 {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Username must be 3-32 characters."))
	}
	if len(password) < 6 {
		return conn.WriteLine(telnet.Colorize(telnet.Red, "Password must be at least 6 characters."))
	}

	start := time.Now()
	acct, err := h.accounts.Create(ctx, username, password)
	elapsed := time.Since(start)

	if err != nil {
		if errors.Is(err, postgres.ErrAccountExists) {
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "That username is already taken."))
			return nil
		}
		h.logger.Error("registration error", zap.Error(err), zap.Duration("elapsed", elapsed))
		_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
		return nil
	}

	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"Account created: %s (#%d). You may now 'login'.", acct.Username, acct.ID))
	return nil
}

// characterFlow loads the account's character, offering creation when none
// exists yet, then enters the game loop.
func (h *AuthHandler) characterFlow(ctx context.Context, conn *telnet.Conn, acct postgres.Account) error {
	player, err := h.game.PlayerForAccount(ctx, acct.ID)
	if err != nil {
		if !errors.Is(err, engine.ErrNotFound) {
			h.logger.Error("loading character", zap.Error(err), zap.Int64("account_id", acct.ID))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
			return nil
		}
		player, err = h.createFlow(ctx, conn, acct)
		if err != nil || player == nil {
			return err
		}
	}

	_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
		"You are %s, a level %d %s.", player.Name, player.Level, player.Race))
	_ = conn.WriteLine(telnet.Colorize(telnet.Dim, "Type 'help' for commands."))

	session := &gameSession{
		game:     h.game,
		catalog:  h.catalog,
		logger:   h.logger,
		playerID: player.ID,
		name:     player.Name,
	}
	return session.loop(ctx, conn)
}

// createFlow walks a new player through race selection.
//
// Postcondition: Returns a created player, or (nil, nil) if the client quit.
func (h *AuthHandler) createFlow(ctx context.Context, conn *telnet.Conn, acct postgres.Account) (*engine.Player, error) {
	_ = conn.WriteLine("")
	_ = conn.WriteLine(telnet.Colorize(telnet.BrightWhite, "You have no character yet. Choose a race:"))
	_ = conn.Write([]byte(RenderRaces()))

	for {
		if err := conn.WritePrompt(telnet.Colorize(telnet.BrightWhite, "race> ")); err != nil {
			return nil, fmt.Errorf("writing prompt: %w", err)
		}
		line, err := conn.ReadLine()
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		choice := strings.ToLower(strings.TrimSpace(line))
		if choice == "" {
			continue
		}
		if choice == "quit" {
			_ = conn.WriteLine(telnet.Colorize(telnet.Cyan, "Goodbye!"))
			return nil, nil
		}

		player, err := h.game.CreateCharacter(ctx, acct.ID, namegen.Race(choice))
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				_ = conn.WriteLine(telnet.Colorf(telnet.Red, "Unknown race %q. Pick one from the list.", choice))
				continue
			}
			h.logger.Error("creating character", zap.Error(err), zap.Int64("account_id", acct.ID))
			_ = conn.WriteLine(telnet.Colorize(telnet.Red, "An internal error occurred. Please try again."))
			continue
		}

		_ = conn.WriteLine(telnet.Colorf(telnet.BrightGreen,
			"The scribes name you %s%s%s.", telnet.Bold, player.Name, telnet.Reset))
		return player, nil
	}
}

func (h *AuthHandler) showHelp(conn *telnet.Conn) {
	help := telnet.Colorize(telnet.BrightWhite, "Available commands:") + "\r\n" +
		telnet.Colorize(telnet.Green, "  login <username> <password>") + "    - Log in to your account\r\n" +
		telnet.Colorize(telnet.Green, "  register <username> <password>") + " - Create a new account\r\n" +
		telnet.Colorize(telnet.Green, "  help") + "                           - Show this help\r\n" +
		telnet.Colorize(telnet.Green, "  quit") + "                           - Disconnect\r\n"
	_ = conn.Write([]byte(help))
}
