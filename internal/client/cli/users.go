package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/client/api"
	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/common"
)

var (
	errPasswordMismatch = errors.New("passwords do not match")
	errNoLiveTokens     = errors.New("no user has a valid intranet token")
)

// WhoAmI prints the current account.
func (a *App) WhoAmI(ctx context.Context) error {
	if err := guard(a.pages.Profile(ctx)); err != nil {
		return err
	}

	u := a.store.State().User
	if u == nil {
		return errNotLoggedIn
	}

	expiry := "none"
	if u.TokenExpiresAt != nil {
		expiry = u.TokenExpiresAt.Format(time.DateTime)
		if u.TokenExpired(time.Now()) {
			expiry += " (expired)"
		}
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", u.ID)
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Intranet token expires:\t%s\n", expiry)
	fmt.Fprintf(w, "Signature:\t%s\n", yesNo(u.Signature != nil && *u.Signature != ""))
	return w.Flush()
}

// Users prints the dashboard: every account with its token status, the
// current user first.
func (a *App) Users(ctx context.Context) error {
	data, err := a.pages.Dashboard(ctx)
	if err := guard(err); err != nil {
		return err
	}
	if data.Error != "" {
		fmt.Fprintln(a.out, "Could not load users:", data.Error)
		return nil
	}
	if len(data.Users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}

	var currentID string
	if u := a.store.State().User; u != nil {
		currentID = u.ID
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tUSERNAME\tTOKEN EXPIRES\tSTATUS")
	for _, u := range data.Users {
		marker := ""
		if u.ID == currentID {
			marker = "*"
		}
		expiry := "-"
		if u.TokenExpiresAt != nil {
			expiry = u.TokenExpiresAt.Format(time.DateTime)
		}
		status := "valid"
		if u.TokenIsExpired {
			status = "expired"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", marker, u.ID, u.Username, expiry, status)
	}
	return w.Flush()
}

// Sign signs the attendance sheet at url for the given user ids, or for
// every user with a valid token when the only id is "all".
//
//	sign <url> all|<id>...
func (a *App) Sign(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: sign <url> all|<id>...")
	}
	url, ids := args[0], args[1:]

	names := map[string]string{}
	if len(ids) == 1 && ids[0] == "all" {
		data, err := a.pages.Dashboard(ctx)
		if err := guard(err); err != nil {
			return err
		}
		if data.Error != "" {
			return errors.New(data.Error)
		}
		ids = nil
		for _, u := range data.Users {
			names[u.ID] = u.Username
			if !u.TokenIsExpired {
				ids = append(ids, u.ID)
			}
		}
		if len(ids) == 0 {
			return errNoLiveTokens
		}
	} else if err := a.requireLogin(ctx); err != nil {
		return err
	}

	results, err := a.api.SignUsers(ctx, ids, url)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tRESULT")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ULID, names[r.ULID], r.Response)
	}
	return w.Flush()
}

// Profile changes the username or the password of the current account.
//
//	profile username <new>
//	profile password
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: profile username <new>|password")
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	var p models.UpdateUserPayload
	switch args[0] {
	case "username":
		if len(args) != 2 || args[1] == "" {
			return errors.New("usage: profile username <new>")
		}
		p.Username = &args[1]
	case "password":
		oldPw, newPw, err := a.readPasswordChange()
		if err != nil {
			return err
		}
		p.OldPassword, p.NewPassword = &oldPw, &newPw
	default:
		return fmt.Errorf("unknown profile field %q", args[0])
	}

	u, err := a.api.UpdateUserProfile(ctx, p)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile of %s updated.\n", u.Username)
	return nil
}

func (a *App) readPasswordChange() (string, string, error) {
	oldPw, err := getPassword("Current password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(oldPw)

	newPw, err := getPassword("New password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(newPw)

	repeat, err := getPassword("Repeat new password", a.out)
	if err != nil {
		return "", "", err
	}
	defer common.WipeByteArray(repeat)

	if string(newPw) != string(repeat) {
		return "", "", errPasswordMismatch
	}
	return string(oldPw), string(newPw), nil
}

// JWT stores the intranet token of the current account. Without an argument
// the token is read from the input.
func (a *App) JWT(ctx context.Context, args []string) error {
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	var token string
	if len(args) > 0 {
		token = args[0]
	} else {
		t, err := getSimpleText(a.reader, "Paste the intranet token", a.out)
		if err != nil {
			return err
		}
		token = t
	}

	exp, err := api.TokenExpiry(token)
	if err != nil {
		return err
	}
	if err := a.api.UpdateUserJWT(ctx, token); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Token saved, it expires %s.\n", exp.UTC().Format(time.DateTime))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
