package models

// ValidateEdsquarePayload is the body of POST /edsquare/validate.
type ValidateEdsquarePayload struct {
	Code            string `json:"code"`
	PlanningEventID string `json:"planning_event_id"`
}

type ValidateEdsquareResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	Code            string  `json:"code"`
	PlanningEventID *string `json:"planning_event_id,omitempty"`
}

// ValidateEdsquareMultiPayload validates a code for several accounts at once.
// UserCodes and UserPlanningEventIDs override Code and PlanningEventID per user id.
type ValidateEdsquareMultiPayload struct {
	Code                 string            `json:"code"`
	PlanningEventID      string            `json:"planning_event_id"`
	UserIDs              []string          `json:"user_ids"`
	UserCodes            map[string]string `json:"user_codes,omitempty"`
	UserPlanningEventIDs map[string]string `json:"user_planning_event_ids,omitempty"`
}

type EdsquareUserValidationResult struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Success  bool   `json:"success"`
	Message  string `json:"message"`
}

type ValidateEdsquareMultiResponse struct {
	GlobalSuccess bool                           `json:"global_success"`
	Results       []EdsquareUserValidationResult `json:"results"`
}

// LoginEdsquarePayload carries portal credentials; the backend may keep them
// for later use by /edsquare/login-saved.
type LoginEdsquarePayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginEdsquareResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// EdsquareStatusResponse reports which automation prerequisites are present.
type EdsquareStatusResponse struct {
	HasSignature        bool `json:"has_signature"`
	HasCookies          bool `json:"has_cookies"`
	HasSavedCredentials bool `json:"has_saved_credentials"`
	IsReady             bool `json:"is_ready"`
}

type EdsquareEligibleUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type EdsquareEligibleUsersResponse struct {
	Users []EdsquareEligibleUser `json:"users"`
}

type EdsquarePlanningEvent struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Target      *string `json:"target,omitempty"`
	Start       string  `json:"start"`
	End         string  `json:"end"`
	EventType   *string `json:"event_type,omitempty"`
	Registrable *bool   `json:"registrable,omitempty"`
}

type EdsquarePlanningEventsResponse struct {
	Events []EdsquarePlanningEvent `json:"events"`
}

// PlanningEventsForUsersPayload asks for the schedule of several accounts on
// one date (YYYY-MM-DD).
type PlanningEventsForUsersPayload struct {
	UserIDs []string `json:"user_ids"`
	Date    string   `json:"date"`
}

// UserPlanningEvents is the schedule of one account. Error is set when the
// backend could not fetch it; Events is then empty.
type UserPlanningEvents struct {
	UserID   string                  `json:"user_id"`
	Username string                  `json:"username"`
	Events   []EdsquarePlanningEvent `json:"events"`
	Error    *string                 `json:"error,omitempty"`
}

type PlanningEventsForUsersResponse struct {
	UserEvents []UserPlanningEvents `json:"user_events"`
}

// EdsquareCookie is a portal cookie as exchanged with /edsquare/cookies.
type EdsquareCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  *int64  `json:"expires,omitempty"`
	HTTPOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
	SameSite *string `json:"sameSite,omitempty"`
}

type SaveEdsquareCookiesPayload struct {
	Cookies []EdsquareCookie `json:"cookies"`
}
