package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/signkeeper/internal/client/api"
	"github.com/dmitrijs2005/signkeeper/internal/client/config"
	"github.com/dmitrijs2005/signkeeper/internal/client/loaders"
	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/client/services"
	"github.com/dmitrijs2005/signkeeper/internal/client/session"
	"github.com/dmitrijs2005/signkeeper/internal/client/storage"
	"github.com/dmitrijs2005/signkeeper/internal/filex"
	"github.com/dmitrijs2005/signkeeper/internal/logging"
)

var errNotLoggedIn = errors.New("not logged in, use 'login' first")

// API is the part of the backend client the commands call directly.
// Session operations go through services.AuthService instead.
type API interface {
	SignUsers(ctx context.Context, ids []string, url string) ([]models.UserSignResponse, error)
	UpdateUserProfile(ctx context.Context, p models.UpdateUserPayload) (*models.User, error)
	UpdateUserJWT(ctx context.Context, token string) error

	SaveSignature(ctx context.Context, dataURL string) (*models.User, error)
	GetSignatures(ctx context.Context) ([]models.Signature, error)
	DeleteSignature(ctx context.Context, id string) error

	ValidateEdsquareCode(ctx context.Context, p models.ValidateEdsquarePayload) (models.ValidateEdsquareResponse, error)
	ValidateEdsquareCodeForUsers(ctx context.Context, p models.ValidateEdsquareMultiPayload) (models.ValidateEdsquareMultiResponse, error)
	LoginEdsquare(ctx context.Context, email, password string) (models.LoginEdsquareResponse, error)
	LoginEdsquareWithSaved(ctx context.Context) (models.LoginEdsquareResponse, error)
	SaveEdsquareCookies(ctx context.Context, cookies []models.EdsquareCookie) (string, error)
	GetEdsquareStatus(ctx context.Context) (models.EdsquareStatusResponse, error)
	GetEdsquareEligibleUsers(ctx context.Context) (models.EdsquareEligibleUsersResponse, error)
	GetEdsquarePlanningEvents(ctx context.Context, date string) (models.EdsquarePlanningEventsResponse, error)
	GetPlanningEventsForUsers(ctx context.Context, userIDs []string, date string) (models.PlanningEventsForUsersResponse, error)

	AdminDeleteUser(ctx context.Context, id, adminKey string) error
}

// Pages are the route loaders the commands run before showing data.
type Pages interface {
	Index(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Dashboard(ctx context.Context) (loaders.DashboardPageData, error)
}

type App struct {
	config *config.Config
	auth   services.AuthService
	api    API
	pages  Pages
	store  session.Store
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer

	wasAuthenticated atomic.Bool
	unsubscribe      func()
	closeDB          func() error
}

// NewApp opens the local database and wires the API client, the session
// store, the auth service and the loaders together.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
		return nil, err
	}

	repos, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	store := session.NewMemoryStore()
	client, err := api.New(cfg.APIBaseURL,
		api.WithStore(store),
		api.WithLogger(log),
		api.WithTimeout(cfg.RequestTimeout),
	)
	if err != nil {
		_ = repos.Close()
		return nil, err
	}

	auth := services.NewAuthService(client, repos.DB, cfg.APIBaseURL)
	pages := loaders.New(client, store, client.Environment(), log)

	a := newApp(auth, client, pages, store, log, os.Stdin, os.Stdout)
	a.config = cfg
	a.closeDB = repos.Close
	return a, nil
}

func newApp(auth services.AuthService, client API, pages Pages, store session.Store, log logging.Logger, in io.Reader, out io.Writer) *App {
	a := &App{
		auth:   auth,
		api:    client,
		pages:  pages,
		store:  store,
		log:    log,
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.wasAuthenticated.Store(store.State().Authenticated)
	a.unsubscribe = store.Subscribe(a.onSessionChange)
	return a
}

func (a *App) onSessionChange(st session.State) {
	if a.wasAuthenticated.Swap(st.Authenticated) && !st.Authenticated {
		fmt.Fprintln(a.out, "Session ended.")
	}
}

// Run resumes the saved session, if any, and runs the REPL until exit.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	fmt.Fprintln(a.out, "SignKeeper terminal client. Type 'help' for commands.")
	a.restoreSession(ctx)
	runREPL(ctx, a, a.status, a.reader)
}

// Close releases the store subscription and the local database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.closeDB != nil {
		return a.closeDB()
	}
	return nil
}

func (a *App) isLoggedIn() bool {
	return a.store.State().Authenticated
}

// status is shown in the prompt.
func (a *App) status() string {
	st := a.store.State()
	switch {
	case !st.Authenticated:
		return ""
	case st.User != nil && st.User.Username != "":
		return " (" + st.User.Username + ")"
	default:
		return " (logged in)"
	}
}

// requireLogin runs the home page guard and turns its redirect into
// errNotLoggedIn.
func (a *App) requireLogin(ctx context.Context) error {
	return guard(a.pages.Index(ctx))
}

func guard(err error) error {
	var redirect *loaders.Redirect
	if errors.As(err, &redirect) {
		return errNotLoggedIn
	}
	return err
}
