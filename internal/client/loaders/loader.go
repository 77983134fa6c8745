package loaders

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/signkeeper/internal/client/models"
	"github.com/dmitrijs2005/signkeeper/internal/client/session"
	"github.com/dmitrijs2005/signkeeper/internal/common"
	"github.com/dmitrijs2005/signkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

// API is the part of the backend client the loaders use.
type API interface {
	CheckAuth(ctx context.Context) bool
	GetCurrentUser(ctx context.Context) (*models.User, error)
	LoadUsers(ctx context.Context) ([]models.PublicUser, error)
}

// DashboardPageData is the data of the EDSquare dashboard. Error holds the
// reason Users is empty when loading failed.
type DashboardPageData struct {
	Users []models.PublicUser
	Error string
}

type Loader struct {
	api   API
	store session.Store
	env   session.Environment
	log   logging.Logger
	now   func() time.Time
}

func New(api API, store session.Store, env session.Environment, log logging.Logger) *Loader {
	return &Loader{api: api, store: store, env: env, log: log, now: time.Now}
}

// Index guards the home page: without a valid session it redirects to the
// login page.
func (l *Loader) Index(ctx context.Context) error {
	if !l.env.IsInteractive() {
		return nil
	}
	if !l.api.CheckAuth(ctx) {
		return found(common.LoginPath)
	}
	return nil
}

// Login sends already authenticated users to the home page.
func (l *Loader) Login(ctx context.Context) error {
	if !l.env.IsInteractive() {
		return nil
	}
	if l.api.CheckAuth(ctx) {
		return found(common.HomePath)
	}
	return nil
}

// Profile guards the profile page and refreshes the stored user. A failed
// refresh is logged and the page is still shown.
func (l *Loader) Profile(ctx context.Context) error {
	if !l.env.IsInteractive() {
		return nil
	}
	if !l.api.CheckAuth(ctx) {
		return found(common.LoginPath)
	}

	user, err := l.api.GetCurrentUser(ctx)
	if err != nil {
		l.log.Error(ctx, "profile: loading user failed", "error", err)
		return nil
	}
	l.store.SetUser(user)
	return nil
}

// Dashboard loads every account with its token status, sorted for display.
// The current user and the list are fetched concurrently; if either fails
// the page gets an empty list.
func (l *Loader) Dashboard(ctx context.Context) (DashboardPageData, error) {
	if !l.env.IsInteractive() {
		return DashboardPageData{Users: []models.PublicUser{}}, nil
	}
	if !l.api.CheckAuth(ctx) {
		return DashboardPageData{}, found(common.LoginPath)
	}

	var (
		current *models.User
		users   []models.PublicUser
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := l.api.GetCurrentUser(gctx)
		current = u
		return err
	})
	g.Go(func() error {
		us, err := l.api.LoadUsers(gctx)
		users = us
		return err
	})
	if err := g.Wait(); err != nil {
		l.log.Error(ctx, "dashboard: loading users failed", "error", err)
		return DashboardPageData{Users: []models.PublicUser{}, Error: err.Error()}, nil
	}

	var currentID string
	if current != nil {
		currentID = current.ID
		l.store.SetUser(current)
	}
	SortUsers(users, currentID, l.now())
	return DashboardPageData{Users: users}, nil
}

// SortUsers sets TokenIsExpired on every user and orders the slice in
// place: currentID first, then users with a live token, then by id.
func SortUsers(users []models.PublicUser, currentID string, now time.Time) {
	for i := range users {
		users[i].TokenIsExpired = users[i].Expired(now)
	}

	slices.SortStableFunc(users, func(a, b models.PublicUser) int {
		aCur, bCur := a.ID == currentID, b.ID == currentID
		if aCur != bCur {
			if aCur {
				return -1
			}
			return 1
		}
		if c := cmp.Compare(boolRank(a.TokenIsExpired), boolRank(b.TokenIsExpired)); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
