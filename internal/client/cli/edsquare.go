package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/common"
)

const edsquareUsage = "usage: edsquare status|login|login-saved|cookies|validate|validate-multi|eligible|planning|planning-multi"

// Edsquare drives the EDSquare attendance portal integration.
//
//	edsquare status
//	edsquare login
//	edsquare login-saved
//	edsquare cookies <file.json>
//	edsquare validate <code> <event id>
//	edsquare validate-multi <code> <event id> <user id[:code[:event id]]>...
//	edsquare eligible
//	edsquare planning [YYYY-MM-DD]
//	edsquare planning-multi <YYYY-MM-DD> [user id...]
func (a *App) Edsquare(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(edsquareUsage)
	}
	if err := a.requireLogin(ctx); err != nil {
		return err
	}

	sub, args := args[0], args[1:]
	switch sub {
	case "status":
		return a.edsquareStatus(ctx)
	case "login":
		return a.edsquareLogin(ctx)
	case "login-saved":
		resp, err := a.api.LoginEdsquareWithSaved(ctx)
		if err != nil {
			return err
		}
		return a.printLoginResult(resp)
	case "cookies":
		if len(args) != 1 {
			return errors.New("usage: edsquare cookies <file.json>")
		}
		return a.edsquareCookies(ctx, args[0])
	case "validate":
		if len(args) != 2 {
			return errors.New("usage: edsquare validate <code> <event id>")
		}
		return a.edsquareValidate(ctx, args[0], args[1])
	case "validate-multi":
		if len(args) < 3 {
			return errors.New("usage: edsquare validate-multi <code> <event id> <user id[:code[:event id]]>...")
		}
		return a.edsquareValidateMulti(ctx, args[0], args[1], args[2:])
	case "eligible":
		return a.edsquareEligible(ctx)
	case "planning":
		var date string
		if len(args) > 0 {
			date = args[0]
		}
		return a.edsquarePlanning(ctx, date)
	case "planning-multi":
		if len(args) == 0 {
			return errors.New("usage: edsquare planning-multi <YYYY-MM-DD> [user id...]")
		}
		return a.edsquarePlanningMulti(ctx, args[0], args[1:])
	}

	return errors.New(edsquareUsage)
}

func (a *App) edsquareStatus(ctx context.Context) error {
	st, err := a.api.GetEdsquareStatus(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Signature:\t%s\n", yesNo(st.HasSignature))
	fmt.Fprintf(w, "Cookies:\t%s\n", yesNo(st.HasCookies))
	fmt.Fprintf(w, "Saved credentials:\t%s\n", yesNo(st.HasSavedCredentials))
	fmt.Fprintf(w, "Ready:\t%s\n", yesNo(st.IsReady))
	return w.Flush()
}

func (a *App) edsquareLogin(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "EDSquare email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("EDSquare password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.api.LoginEdsquare(ctx, email, string(password))
	if err != nil {
		return err
	}
	return a.printLoginResult(resp)
}

func (a *App) printLoginResult(resp models.LoginEdsquareResponse) error {
	if !resp.Success {
		return fmt.Errorf("edsquare login failed: %s", resp.Message)
	}
	fmt.Fprintln(a.out, "EDSquare login successful:", resp.Message)
	return nil
}

// readCookies accepts both a bare JSON array of cookies and the
// {"cookies": [...]} form.
func readCookies(path string) ([]models.EdsquareCookie, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var cookies []models.EdsquareCookie
	if err := json.Unmarshal(b, &cookies); err == nil {
		return cookies, nil
	}

	var wrapped models.SaveEdsquareCookiesPayload
	if err := json.Unmarshal(b, &wrapped); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return wrapped.Cookies, nil
}

func (a *App) edsquareCookies(ctx context.Context, path string) error {
	cookies, err := readCookies(path)
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return fmt.Errorf("no cookies in %s", path)
	}

	msg, err := a.api.SaveEdsquareCookies(ctx, cookies)
	if err != nil {
		return err
	}
	if msg == "" {
		msg = fmt.Sprintf("%d cookies saved.", len(cookies))
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) edsquareValidate(ctx context.Context, code, eventID string) error {
	resp, err := a.api.ValidateEdsquareCode(ctx, models.ValidateEdsquarePayload{
		Code:            code,
		PlanningEventID: eventID,
	})
	if err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("validation failed: %s", resp.Message)
	}
	fmt.Fprintln(a.out, "Validated:", resp.Message)
	return nil
}

// parseUserOverrides turns "id[:code[:event]]" arguments into the multi
// validation payload.
func parseUserOverrides(code, eventID string, args []string) (models.ValidateEdsquareMultiPayload, error) {
	p := models.ValidateEdsquareMultiPayload{Code: code, PlanningEventID: eventID}
	for _, arg := range args {
		parts := strings.Split(arg, ":")
		if len(parts) > 3 || parts[0] == "" {
			return p, fmt.Errorf("bad user argument %q", arg)
		}
		id := parts[0]
		p.UserIDs = append(p.UserIDs, id)
		if len(parts) > 1 && parts[1] != "" {
			if p.UserCodes == nil {
				p.UserCodes = map[string]string{}
			}
			p.UserCodes[id] = parts[1]
		}
		if len(parts) > 2 && parts[2] != "" {
			if p.UserPlanningEventIDs == nil {
				p.UserPlanningEventIDs = map[string]string{}
			}
			p.UserPlanningEventIDs[id] = parts[2]
		}
	}
	return p, nil
}

func (a *App) edsquareValidateMulti(ctx context.Context, code, eventID string, args []string) error {
	p, err := parseUserOverrides(code, eventID, args)
	if err != nil {
		return err
	}

	resp, err := a.api.ValidateEdsquareCodeForUsers(ctx, p)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "USER\tRESULT\tMESSAGE")
	for _, r := range resp.Results {
		result := "failed"
		if r.Success {
			result = "ok"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.Username, result, r.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if !resp.GlobalSuccess {
		fmt.Fprintln(a.out, "Some validations failed.")
	}
	return nil
}

func (a *App) edsquareEligible(ctx context.Context) error {
	resp, err := a.api.GetEdsquareEligibleUsers(ctx)
	if err != nil {
		return err
	}
	if len(resp.Users) == 0 {
		fmt.Fprintln(a.out, "No eligible users.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME")
	for _, u := range resp.Users {
		fmt.Fprintf(w, "%s\t%s\n", u.ID, u.Username)
	}
	return w.Flush()
}

func (a *App) edsquarePlanning(ctx context.Context, date string) error {
	resp, err := a.api.GetEdsquarePlanningEvents(ctx, date)
	if err != nil {
		return err
	}
	return a.printEvents(resp.Events)
}

func (a *App) edsquarePlanningMulti(ctx context.Context, date string, ids []string) error {
	if len(ids) == 0 {
		eligible, err := a.api.GetEdsquareEligibleUsers(ctx)
		if err != nil {
			return err
		}
		for _, u := range eligible.Users {
			ids = append(ids, u.ID)
		}
		if len(ids) == 0 {
			fmt.Fprintln(a.out, "No eligible users.")
			return nil
		}
	}

	resp, err := a.api.GetPlanningEventsForUsers(ctx, ids, date)
	if err != nil {
		return err
	}

	for _, ue := range resp.UserEvents {
		fmt.Fprintf(a.out, "== %s (%s)\n", ue.Username, ue.UserID)
		if ue.Error != nil {
			fmt.Fprintln(a.out, "Error:", *ue.Error)
			continue
		}
		if err := a.printEvents(ue.Events); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) printEvents(events []models.EdsquarePlanningEvent) error {
	if len(events) == 0 {
		fmt.Fprintln(a.out, "No events.")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tEND\tTITLE")
	for _, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Start, e.End, e.Title)
	}
	return w.Flush()
}
