// Command dogiadung-admin drives the storefront admin API from the
// terminal. It exercises the same client core the dashboard uses: the api
// client, the session manager, and the per-entity CRUD controllers.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/khunglong92/dogiadung-sub001/internal/dash"
	"github.com/khunglong92/dogiadung-sub001/internal/dash/api"
	"github.com/khunglong92/dogiadung-sub001/internal/dash/session"
)

type commandFn func(ctx *commandContext, args []string) error

type command struct {
	name        string
	description string
	run         commandFn
}

type commandContext struct {
	Ctx         context.Context
	Logger      *slog.Logger
	Client      *api.Client
	Session     *session.Manager
	Controllers *dash.Controllers
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if len(os.Args) < 2 {
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cmdName := os.Args[1]
	cmd, ok := commands()[cmdName]
	if !ok {
		if err := writef(os.Stderr, "unknown command %q\n\n", cmdName); err != nil {
			logger.Error("print unknown command message failed", "error", err)
		}
		if err := printUsage(); err != nil {
			logger.Error("print usage failed", "error", err)
		}
		os.Exit(2)
	}

	cmdCtx, err := buildContext(logger)
	if err != nil {
		logger.Error("init failed", "error", err)
		os.Exit(1)
	}

	if runErr := cmd.run(cmdCtx, os.Args[2:]); runErr != nil {
		logger.Error("command failed", "command", cmdName, "error", runErr)
		os.Exit(1)
	}
}

func buildContext(logger *slog.Logger) (*commandContext, error) {
	baseURL := os.Getenv("DOGIADUNG_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	sessionPath, err := sessionFilePath()
	if err != nil {
		return nil, err
	}

	// The client asks the manager for tokens and the manager asks the
	// client for profiles, so wire the client first with a late-bound
	// token source.
	tokens := &sessionTokenSource{}
	client, err := api.NewClient(api.ClientOptions{BaseURL: baseURL, Tokens: tokens})
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(session.ManagerOptions{
		Store:   session.NewFileStore(sessionPath),
		Fetcher: client,
		Logger:  logger,
	})
	tokens.manager = manager

	controllers, err := dash.NewControllers(dash.ControllersOptions{
		Client:   client,
		Notifier: printNotifier{},
	})
	if err != nil {
		return nil, err
	}

	return &commandContext{
		Ctx:         context.Background(),
		Logger:      logger,
		Client:      client,
		Session:     manager,
		Controllers: controllers,
	}, nil
}

// sessionTokenSource breaks the client/manager construction cycle.
type sessionTokenSource struct {
	manager *session.Manager
}

func (s *sessionTokenSource) Token() string {
	if s.manager == nil {
		return ""
	}
	return s.manager.Token()
}

func sessionFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "dogiadung", "session.json"), nil
}

// printNotifier renders controller notifications on the terminal.
type printNotifier struct{}

func (printNotifier) Success(msg string) {
	_ = writef(os.Stdout, "%s\n", msg)
}

func (printNotifier) Error(msg string) {
	_ = writef(os.Stderr, "error: %s\n", msg)
}

func commands() map[string]command {
	return map[string]command{
		"login": {
			name:        "login",
			description: "Authenticate with email and password",
			run:         runLogin,
		},
		"logout": {
			name:        "logout",
			description: "Revoke the refresh token and clear the local session",
			run:         runLogout,
		},
		"whoami": {
			name:        "whoami",
			description: "Show the current session",
			run:         runWhoami,
		},
		"list": {
			name:        "list",
			description: "List records of an entity (list <entity> [-q] [-page] [-limit])",
			run:         runList,
		},
		"create": {
			name:        "create",
			description: "Create a record (create <entity> -json '{...}')",
			run:         runCreate,
		},
		"update": {
			name:        "update",
			description: "Update a record (update <entity> -id <id> -json '{...}')",
			run:         runUpdate,
		},
		"delete": {
			name:        "delete",
			description: "Delete a record (delete <entity> -id <id> [-yes])",
			run:         runDelete,
		},
	}
}

func printUsage() error {
	if err := writef(os.Stdout, "Usage: dogiadung-admin <command> [flags]\n\n"); err != nil {
		return err
	}
	if err := writef(os.Stdout, "Available commands:\n"); err != nil {
		return err
	}
	for _, c := range commands() {
		if err := writef(os.Stdout, "  %-10s %s\n", c.name, c.description); err != nil {
			return err
		}
	}
	if err := writef(os.Stdout, "\nEntities: %s\n", strings.Join(entityNames(), ", ")); err != nil {
		return err
	}
	return nil
}

func runLogin(cmdCtx *commandContext, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" || *password == "" {
		return errors.New("both -email and -password are required")
	}

	result, err := cmdCtx.Client.Login(cmdCtx.Ctx, *email, *password)
	if err != nil {
		return err
	}

	if err := cmdCtx.Session.Login(cmdCtx.Ctx, result.Tokens.AccessToken, result.Tokens.RefreshToken); err != nil {
		return err
	}
	// Let the background profile fetch land before the process exits so
	// whoami works offline next time.
	cmdCtx.Session.WaitProfileFetch()

	return writef(os.Stdout, "logged in as %s\n", *email)
}

func runLogout(cmdCtx *commandContext, args []string) error {
	if len(args) != 0 {
		return errors.New("logout takes no arguments")
	}

	// Best-effort server-side revocation; the local session is cleared
	// either way.
	if refresh := cmdCtx.Session.RefreshToken(); refresh != "" {
		if err := cmdCtx.Client.Logout(cmdCtx.Ctx, refresh); err != nil {
			cmdCtx.Logger.Warn("server-side logout failed", "error", err)
		}
	}
	cmdCtx.Session.Logout()

	return writef(os.Stdout, "logged out\n")
}

func runWhoami(cmdCtx *commandContext, args []string) error {
	if len(args) != 0 {
		return errors.New("whoami takes no arguments")
	}

	if !cmdCtx.Session.IsAuthenticated() {
		return writef(os.Stdout, "not logged in\n")
	}

	user := cmdCtx.Session.User()
	if user == nil {
		// Token was persisted without a profile; fetch one now.
		fetched, err := cmdCtx.Client.Profile(cmdCtx.Ctx)
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}
		cmdCtx.Session.UpdateUser(fetched)
		user = fetched
	}

	return writef(os.Stdout, "%s <%s> (%s)\n", user.Name, user.Email, user.Role)
}

func runList(cmdCtx *commandContext, args []string) error {
	ops, rest, err := resolveEntity(cmdCtx, "list", args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	q := fs.String("q", "", "search query")
	page := fs.Int("page", 1, "page number (1-indexed)")
	limit := fs.Int("limit", 20, "page size")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	return ops.list(cmdCtx.Ctx, *q, *page, *limit)
}

func runCreate(cmdCtx *commandContext, args []string) error {
	ops, rest, err := resolveEntity(cmdCtx, "create", args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	draft := fs.String("json", "", "draft fields as a JSON object")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *draft == "" {
		return errors.New("-json is required")
	}

	return ops.create(cmdCtx.Ctx, *draft)
}

func runUpdate(cmdCtx *commandContext, args []string) error {
	ops, rest, err := resolveEntity(cmdCtx, "update", args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.String("id", "", "record identifier")
	draft := fs.String("json", "", "changed fields as a JSON object")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}
	if *draft == "" {
		return errors.New("-json is required")
	}

	return ops.update(cmdCtx.Ctx, *id, *draft)
}

func runDelete(cmdCtx *commandContext, args []string) error {
	ops, rest, err := resolveEntity(cmdCtx, "delete", args)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	id := fs.String("id", "", "record identifier")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	if err := fs.Parse(rest); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("-id is required")
	}

	// Delete confirmation lives here, not in the controller: the
	// controller contract is confirmation-free and the UX is the caller's.
	if !*yes {
		if err := confirmDelete(ops.name, *id); err != nil {
			return err
		}
	}

	return ops.remove(cmdCtx.Ctx, *id)
}

func resolveEntity(cmdCtx *commandContext, cmdName string, args []string) (*entityOps, []string, error) {
	if len(args) < 1 || strings.HasPrefix(args[0], "-") {
		return nil, nil, fmt.Errorf("%s requires an entity: %s", cmdName, strings.Join(entityNames(), ", "))
	}
	ops, ok := entities(cmdCtx.Controllers, cmdCtx.Client)[args[0]]
	if !ok {
		return nil, nil, fmt.Errorf("unknown entity %q (valid: %s)", args[0], strings.Join(entityNames(), ", "))
	}
	return ops, args[1:], nil
}

func confirmDelete(entity, id string) error {
	if err := writef(os.Stdout, "Delete %s %s? Type 'yes' to continue: ", entity, id); err != nil {
		return err
	}
	reader := bufio.NewReader(os.Stdin)
	resp, err := reader.ReadString('\n')
	if err != nil {
		return errors.New("aborted by user")
	}
	if strings.TrimSpace(resp) != "yes" {
		return errors.New("aborted by user")
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	if len(args) == 0 {
		_, err := fmt.Fprintln(w)
		return err
	}
	_, err := fmt.Fprintln(w, args...)
	return err
}
