package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
)

const (
	edsquareValidateEndpoint      = "/edsquare/validate"
	edsquareValidateMultiEndpoint = "/edsquare/validate-multi"
	edsquareLoginEndpoint         = "/edsquare/login"
	edsquareLoginSavedEndpoint    = "/edsquare/login-saved"
	edsquareCookiesEndpoint       = "/edsquare/cookies"
	edsquareStatusEndpoint        = "/edsquare/status"
	edsquareEligibleEndpoint      = "/edsquare/eligible-users"
	edsquarePlanningEndpoint      = "/edsquare/planning-events"
	edsquarePlanningUsersEndpoint = "/edsquare/planning-events-for-users"
)

// DateLayout is the YYYY-MM-DD form the planning endpoints expect.
const DateLayout = "2006-01-02"

func (c *Client) ValidateEdsquareCode(ctx context.Context, p models.ValidateEdsquarePayload) (models.ValidateEdsquareResponse, error) {
	return callJSON[models.ValidateEdsquareResponse](ctx, c, edsquareValidateEndpoint, Request{
		Method: http.MethodPost,
		Body:   p,
	})
}

// ValidateEdsquareCodeForUsers validates one attendance code for several
// accounts; per-user codes and event ids in p take precedence.
func (c *Client) ValidateEdsquareCodeForUsers(ctx context.Context, p models.ValidateEdsquareMultiPayload) (models.ValidateEdsquareMultiResponse, error) {
	return callJSON[models.ValidateEdsquareMultiResponse](ctx, c, edsquareValidateMultiEndpoint, Request{
		Method: http.MethodPost,
		Body:   p,
	})
}

func (c *Client) LoginEdsquare(ctx context.Context, email, password string) (models.LoginEdsquareResponse, error) {
	return callJSON[models.LoginEdsquareResponse](ctx, c, edsquareLoginEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.LoginEdsquarePayload{Email: email, Password: password},
	})
}

// LoginEdsquareWithSaved logs in to the portal with credentials the backend
// kept from an earlier LoginEdsquare.
func (c *Client) LoginEdsquareWithSaved(ctx context.Context) (models.LoginEdsquareResponse, error) {
	return callJSON[models.LoginEdsquareResponse](ctx, c, edsquareLoginSavedEndpoint, Request{Method: http.MethodPost})
}

// SaveEdsquareCookies hands portal cookies to the backend and returns its
// confirmation text.
func (c *Client) SaveEdsquareCookies(ctx context.Context, cookies []models.EdsquareCookie) (string, error) {
	resp, err := c.Call(ctx, edsquareCookiesEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.SaveEdsquareCookiesPayload{Cookies: cookies},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) GetEdsquareStatus(ctx context.Context) (models.EdsquareStatusResponse, error) {
	return callJSON[models.EdsquareStatusResponse](ctx, c, edsquareStatusEndpoint, Request{})
}

// GetEdsquareEligibleUsers lists accounts that have everything automation
// needs.
func (c *Client) GetEdsquareEligibleUsers(ctx context.Context) (models.EdsquareEligibleUsersResponse, error) {
	return callJSON[models.EdsquareEligibleUsersResponse](ctx, c, edsquareEligibleEndpoint, Request{})
}

// GetEdsquarePlanningEvents returns the user's schedule for date
// (YYYY-MM-DD). An empty date lets the backend use today.
func (c *Client) GetEdsquarePlanningEvents(ctx context.Context, date string) (models.EdsquarePlanningEventsResponse, error) {
	req := Request{}
	if date != "" {
		if err := validateDate(date); err != nil {
			return models.EdsquarePlanningEventsResponse{}, err
		}
		req.Query = url.Values{"date": {date}}
	}
	return callJSON[models.EdsquarePlanningEventsResponse](ctx, c, edsquarePlanningEndpoint, req)
}

// GetPlanningEventsForUsers returns the schedule of each listed account on
// date (YYYY-MM-DD).
func (c *Client) GetPlanningEventsForUsers(ctx context.Context, userIDs []string, date string) (models.PlanningEventsForUsersResponse, error) {
	if err := validateDate(date); err != nil {
		return models.PlanningEventsForUsersResponse{}, err
	}
	if len(userIDs) == 0 {
		return models.PlanningEventsForUsersResponse{}, fmt.Errorf("%w: no user ids", ErrInvalidID)
	}

	return callJSON[models.PlanningEventsForUsersResponse](ctx, c, edsquarePlanningUsersEndpoint, Request{
		Method: http.MethodPost,
		Body:   models.PlanningEventsForUsersPayload{UserIDs: userIDs, Date: date},
	})
}

func validateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("%w: %q, want YYYY-MM-DD", ErrInvalidDate, date)
	}
	return nil
}
