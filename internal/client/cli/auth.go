package cli

import (
	"context"

	"github.com/dmitrijs2005/notehub/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// wipe zeroes a password buffer.
func wipe(b []byte) {
	clear(b)
}

// Register prompts for the account fields and logs into the new account.
func (a *App) Register(ctx context.Context, _ []string) error {
	var r models.Registration
	var err error
	if r.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if r.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if r.FullName, err = getSimpleText(a.reader, "Enter full name (optional)", a.out); err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)
	r.Password = string(password)

	sess, err := a.Auth.Register(ctx, r)
	if err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Welcome, %s!\n", sess.User.Username)
	return nil
}

// Login authenticates with a username (argument or prompt) and a password.
func (a *App) Login(ctx context.Context, args []string) error {
	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		if username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
			return err
		}
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	sess, err := a.Auth.Login(ctx, username, string(password))
	if err != nil {
		return err
	}
	okColor.Fprintf(a.out, "Logged in as %s\n", sess.User.Username)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.Auth.Logout(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	sess, ok := a.Auth.Session()
	if !ok || sess.User == nil {
		a.printf("Not logged in\n")
		return nil
	}
	u := sess.User
	a.printf("%s", u.Username)
	if u.FullName != "" {
		a.printf(" (%s)", u.FullName)
	}
	if u.Email != "" {
		a.printf(" <%s>", u.Email)
	}
	a.printf("\n")
	if !sess.ExpiresAt.IsZero() {
		a.printf("Session expires %s\n", sess.ExpiresAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
