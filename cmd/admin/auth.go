package main

import (
	"context"
	"flag"
	"fmt"

	userDialog "github.com/fekuna/omnipos-catalog-admin/internal/user/dialog"
)

func runSignIn(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signin", flag.ContinueOnError)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		d := userDialog.NewSignInDialog(a.users, a.logger)
		if err := d.Open(); err != nil {
			return err
		}
		if err := fill(
			func() error { return d.SetEmail(*email) },
			func() error { return d.SetPassword(*password) },
		); err != nil {
			return err
		}
		u, err := d.Submit(ctx)
		if err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Signed in as %s <%s>\n", u.Name, u.Email)
		return nil
	})
}

func runSignUp(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ContinueOnError)
	name := fs.String("name", "", "Your name")
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Account password (at least 6 characters)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		d := userDialog.NewSignUpDialog(a.users, a.logger)
		if err := d.Open(); err != nil {
			return err
		}
		if err := fill(
			func() error { return d.SetName(*name) },
			func() error { return d.SetEmail(*email) },
			func() error { return d.SetPassword(*password) },
		); err != nil {
			return err
		}
		u, err := d.Submit(ctx)
		if err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Account created. Signed in as %s <%s>\n", u.Name, u.Email)
		return nil
	})
}

func runLogout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		if err := a.users.Logout(ctx); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "Signed out.")
		return nil
	})
}

func runWhoAmI(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	return withApp(ctx, func(a *app) error {
		u, ok := a.users.CurrentUser()
		if !ok {
			return errNotSignedIn
		}
		fmt.Fprintf(stdout, "%s <%s>\n", u.Name, u.Email)
		return nil
	})
}

func runUpdateUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update-user", flag.ContinueOnError)
	name := fs.String("name", "", "New name")
	email := fs.String("email", "", "New email")
	password := fs.String("password", "", "New password (at least 6 characters; omit to keep the current one)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	set := visited(fs)

	return withApp(ctx, func(a *app) error {
		if !a.session.IsAuthenticated() {
			return errNotSignedIn
		}
		d := userDialog.NewUpdateUserDialog(a.users, a.logger)
		if err := d.Open(); err != nil {
			return err
		}
		if set["name"] {
			if err := d.SetName(*name); err != nil {
				return err
			}
		}
		if set["email"] {
			if err := d.SetEmail(*email); err != nil {
				return err
			}
		}
		if err := d.SetPassword(*password); err != nil {
			return err
		}
		u, err := d.Submit(ctx)
		if err != nil {
			return surfaced(d.Message(), err)
		}
		fmt.Fprintf(stdout, "Profile saved: %s <%s>\n", u.Name, u.Email)
		return nil
	})
}

// fill applies dialog edits in order and stops at the first rejected one.
func fill(edits ...func() error) error {
	for _, edit := range edits {
		if err := edit(); err != nil {
			return err
		}
	}
	return nil
}

// visited reports which flags were given on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
