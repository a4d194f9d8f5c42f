// Package console implements the interactive administrative console: a
// set of subcommands, each corresponding to one view, dispatched through
// the navigation guard. Presentation here is deliberately plain; the
// stores own all behavior.
package console

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/benben6515/metc/internal/core/domain"
	"github.com/benben6515/metc/internal/core/nav"
	"github.com/benben6515/metc/internal/core/store"
)

// App wires the stores to the command surface.
type App struct {
	Auth     *store.AuthStore
	Accounts *store.AccountStore
	In       io.Reader
	Out      io.Writer
	Log      zerolog.Logger
}

// Run executes one console command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.usage()
		return nil
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "help":
		a.usage()
		return nil
	case "whoami":
		return a.whoami()
	case "logout":
		a.Auth.Logout(ctx)
		fmt.Fprintln(a.Out, "Logged out.")
		return nil
	case "login", "register", "list", "create", "edit", "delete":
		return a.navigate(ctx, cmd, rest)
	default:
		a.usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// pathFor maps a command to the route the guard evaluates.
func pathFor(cmd string, rest []string) (string, error) {
	switch cmd {
	case "login":
		return "/login", nil
	case "register":
		return "/register", nil
	case "list", "delete":
		// delete is an action on the list view
		return "/accounts", nil
	case "create":
		return "/accounts/create", nil
	case "edit":
		if len(rest) == 0 || strings.HasPrefix(rest[0], "-") {
			return "", errors.New("edit requires an account id")
		}
		return "/accounts/" + rest[0] + "/edit", nil
	}
	return "", fmt.Errorf("no route for command %q", cmd)
}

// navigate runs the guard before dispatching, mirroring a router's
// before-each hook: unauthenticated access to a protected view detours
// through login and then continues to the originally requested view.
func (a *App) navigate(ctx context.Context, cmd string, rest []string) error {
	path, err := pathFor(cmd, rest)
	if err != nil {
		return err
	}

	for {
		dec := nav.Resolve(path, a.Auth.IsAuthenticated())
		switch dec.Action {
		case nav.Proceed:
			return a.dispatch(ctx, cmd, rest)

		case nav.RedirectAccounts:
			fmt.Fprintln(a.Out, "Already signed in; showing accounts.")
			cmd, rest, path = "list", nil, "/accounts"

		case nav.RedirectLogin:
			fmt.Fprintln(a.Out, "Sign in required.")
			if err := a.promptLogin(ctx); err != nil {
				return err
			}
			if dec.ReturnTo == "" {
				cmd, rest, path = "list", nil, "/accounts"
			}
			// otherwise loop around and re-resolve the original path
		}
	}
}

func (a *App) dispatch(ctx context.Context, cmd string, rest []string) error {
	switch cmd {
	case "login":
		return a.cmdLogin(ctx, rest)
	case "register":
		fmt.Fprintln(a.Out, "Registration is handled by an administrator; ask one to create your account.")
		return nil
	case "list":
		return a.cmdList(ctx)
	case "create":
		return a.cmdCreate(ctx, rest)
	case "edit":
		return a.cmdEdit(ctx, rest)
	case "delete":
		return a.cmdDelete(ctx, rest)
	}
	return fmt.Errorf("no view for command %q", cmd)
}

func (a *App) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	creds := domain.Credentials{Email: *email, Password: *password}
	if creds.Email == "" || creds.Password == "" {
		var err error
		creds, err = a.readCredentials()
		if err != nil {
			return err
		}
	}

	if err := a.Auth.Login(ctx, creds); err != nil {
		fmt.Fprintf(a.Out, "Login failed: %s\n", a.Auth.Err())
		return err
	}

	user := a.Auth.User()
	fmt.Fprintf(a.Out, "Signed in as %s <%s> (%s)\n", user.Name, user.Email, user.RoleLevel)
	return nil
}

func (a *App) cmdList(ctx context.Context) error {
	if err := a.Accounts.FetchAccounts(ctx); err != nil {
		fmt.Fprintf(a.Out, "Error: %s\n", a.Accounts.Err())
		return err
	}
	a.renderAccounts(a.Accounts.Accounts())
	fmt.Fprintf(a.Out, "%d accounts (%d active)\n", a.Accounts.Count(), len(a.Accounts.ActiveAccounts()))
	return nil
}

func (a *App) cmdCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "initial password (min 6 characters)")
	role := fs.String("role", string(domain.RoleUser), "role level: ADMIN, EDITOR, USER, or CLIENT")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := domain.AccountForm{
		Name:      *name,
		Email:     *email,
		Password:  *password,
		RoleLevel: domain.RoleLevel(*role),
	}
	// Same local form validation the create view performs before posting.
	if err := domain.ValidateShape(&form); err != nil {
		return err
	}

	account, err := a.Accounts.CreateAccount(ctx, form)
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %s\n", a.Accounts.Err())
		return err
	}
	fmt.Fprintf(a.Out, "Created account %s (%s)\n", account.ID, account.Email)
	return nil
}

func (a *App) cmdEdit(ctx context.Context, args []string) error {
	id := args[0]

	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(a.Out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "new password (min 6 characters)")
	role := fs.String("role", "", "role level: ADMIN, EDITOR, USER, or CLIENT")
	status := fs.String("status", "", "account status: ON or OFF")
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	// The edit view loads the record before offering the form.
	current, err := a.Accounts.FetchAccountByID(ctx, id)
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %s\n", a.Accounts.Err())
		return err
	}

	var update domain.AccountUpdate
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			update.Name = name
		case "email":
			update.Email = email
		case "password":
			update.Password = password
		case "role":
			r := domain.RoleLevel(*role)
			update.RoleLevel = &r
		case "status":
			st := domain.AccountStatus(*status)
			update.Status = &st
		}
	})
	if update == (domain.AccountUpdate{}) {
		a.renderAccounts([]domain.Account{*current})
		fmt.Fprintln(a.Out, "Nothing to change; pass -name, -email, -password, -role, or -status.")
		return nil
	}
	if err := domain.ValidateShape(&update); err != nil {
		return err
	}

	account, err := a.Accounts.UpdateAccount(ctx, id, update)
	if err != nil {
		fmt.Fprintf(a.Out, "Error: %s\n", a.Accounts.Err())
		return err
	}
	fmt.Fprintf(a.Out, "Updated account %s\n", account.ID)
	a.renderAccounts([]domain.Account{*account})
	return nil
}

func (a *App) cmdDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("delete requires an account id")
	}
	id := args[0]

	if err := a.Accounts.DeleteAccount(ctx, id); err != nil {
		fmt.Fprintf(a.Out, "Error: %s\n", a.Accounts.Err())
		return err
	}
	fmt.Fprintf(a.Out, "Deleted account %s\n", id)
	return nil
}

func (a *App) whoami() error {
	if user := a.Auth.User(); user != nil {
		fmt.Fprintf(a.Out, "%s <%s> (%s)\n", user.Name, user.Email, user.RoleLevel)
		return nil
	}
	if a.Auth.Token() != "" {
		// A persisted token was restored but no profile accompanies it;
		// a fresh login is the only way back to a full session.
		fmt.Fprintln(a.Out, "Stored session token found, but you are not signed in. Run 'login'.")
		return nil
	}
	fmt.Fprintln(a.Out, "Not signed in.")
	return nil
}

func (a *App) promptLogin(ctx context.Context) error {
	creds, err := a.readCredentials()
	if err != nil {
		return err
	}
	if err := a.Auth.Login(ctx, creds); err != nil {
		fmt.Fprintf(a.Out, "Login failed: %s\n", a.Auth.Err())
		return err
	}
	user := a.Auth.User()
	fmt.Fprintf(a.Out, "Signed in as %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *App) readCredentials() (domain.Credentials, error) {
	reader := bufio.NewReader(a.In)

	fmt.Fprint(a.Out, "Email: ")
	email, err := reader.ReadString('\n')
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read email: %w", err)
	}
	fmt.Fprint(a.Out, "Password: ")
	password, err := reader.ReadString('\n')
	if err != nil {
		return domain.Credentials{}, fmt.Errorf("read password: %w", err)
	}

	return domain.Credentials{
		Email:    strings.TrimSpace(email),
		Password: strings.TrimSpace(password),
	}, nil
}

func (a *App) renderAccounts(accounts []domain.Account) {
	w := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.Email, acc.RoleLevel, acc.Status)
	}
	_ = w.Flush()
}

func (a *App) usage() {
	fmt.Fprint(a.Out, `metc - account administration console

USAGE:
  metc <command> [flags]

COMMANDS:
  login    -email -password      sign in (prompts when flags are omitted)
  logout                         sign out and clear the stored token
  whoami                         show the current session
  list                           list all accounts
  create   -name -email -password -role
                                 create an account
  edit     <id> [-name -email -password -role -status]
                                 update an account
  delete   <id>                  delete an account
  register                       registration info
  help                           show this help
`)
}
