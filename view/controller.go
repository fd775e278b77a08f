package view

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/futuremakers/localauth"
	"github.com/futuremakers/localauth/session"
)

// ErrSubmitInFlight is returned when a submission arrives while a previous
// one is still pending. The submit affordance is owned exclusively by the
// in-flight operation; callers disable it until the outcome lands.
var ErrSubmitInFlight = errors.New("submission already in flight")

// State is the per-page-load render state.
type State uint8

const (
	// StateGuest is an exported constant or variable used by the view controller.
	StateGuest State = iota
	// StateAuthenticated is an exported constant or variable used by the view controller.
	StateAuthenticated
)

// Page identifies the page being loaded and whether it requires a session.
type Page struct {
	ID        string
	Protected bool
}

// RenderPlan is what Load decides for one page load. When RedirectedTo is
// set the page is done; nothing else in the plan should be rendered.
type RenderPlan struct {
	State        State
	Identity     *session.Record
	ShowWelcome  bool
	RedirectedTo string
}

// FormOutcome reports a submission result back to the form UI. FieldErrors
// lists every violated field; FocusField names the first one, which should
// receive focus. Ok and FieldErrors are mutually exclusive.
type FormOutcome struct {
	Ok          bool
	Identity    *localauth.AuthResult
	FieldErrors localauth.ValidationErrors
	FocusField  string
}

// Config names the navigation targets the controller uses.
type Config struct {
	HomeTarget      string
	LoginTarget     string
	RegisterTarget  string
	DashboardTarget string
}

func defaultConfig() Config {
	return Config{
		HomeTarget:      "index.html",
		LoginTarget:     "login.html",
		RegisterTarget:  "register.html",
		DashboardTarget: "dashboard.html",
	}
}

// Controller wires the engine to one page's notifier and navigator.
type Controller struct {
	engine   *localauth.Engine
	notifier Notifier
	nav      Navigator
	config   Config

	inFlight atomic.Bool
}

// NewController requires every collaborator up front; there is no runtime
// probing for optional capabilities. Zero-valued Config fields fall back to
// the site's conventional page names.
func NewController(engine *localauth.Engine, notifier Notifier, nav Navigator, cfg Config) (*Controller, error) {
	if engine == nil {
		return nil, errors.New("engine required")
	}
	if notifier == nil {
		return nil, errors.New("notifier required")
	}
	if nav == nil {
		return nil, errors.New("navigator required")
	}

	defaults := defaultConfig()
	if cfg.HomeTarget == "" {
		cfg.HomeTarget = defaults.HomeTarget
	}
	if cfg.LoginTarget == "" {
		cfg.LoginTarget = defaults.LoginTarget
	}
	if cfg.RegisterTarget == "" {
		cfg.RegisterTarget = defaults.RegisterTarget
	}
	if cfg.DashboardTarget == "" {
		cfg.DashboardTarget = defaults.DashboardTarget
	}

	return &Controller{
		engine:   engine,
		notifier: notifier,
		nav:      nav,
		config:   cfg,
	}, nil
}

// Load computes the render plan for one page load. A guest on a protected
// page is notified once and redirected to the login page — terminal for
// this page instance, with zero authenticated UI rendered. An authenticated
// load consumes the one-shot welcome flag and, when it was pending, emits
// the welcome toast.
func (c *Controller) Load(ctx context.Context, page Page) (*RenderPlan, error) {
	ctx = localauth.WithPageID(ctx, page.ID)

	current, err := c.engine.CurrentSession(ctx)
	if err != nil {
		c.notifyStorageTrouble(ctx)
		return nil, err
	}

	if current == nil {
		if page.Protected {
			_, _ = c.notifier.Notify(ctx, Notification{
				Kind:    KindInfo,
				Title:   "Please Log In",
				Message: "You must sign in to view this page",
				Mode:    ModeModal,
			})
			if err := c.nav.Navigate(ctx, c.config.LoginTarget); err != nil {
				return nil, err
			}
			return &RenderPlan{State: StateGuest, RedirectedTo: c.config.LoginTarget}, nil
		}
		return &RenderPlan{State: StateGuest}, nil
	}

	plan := &RenderPlan{State: StateAuthenticated, Identity: current}

	// A flag read failure only costs the welcome toast; the page still renders.
	welcome, err := c.engine.ConsumeWelcome(ctx)
	if err == nil && welcome {
		plan.ShowWelcome = true
		_, _ = c.notifier.Notify(ctx, Notification{
			Kind:  KindSuccess,
			Title: "Welcome back, " + displayName(current) + "!",
			Mode:  ModeToast,
		})
	}

	return plan, nil
}

// SubmitLogin drives the login form. At most one submission runs at a time.
func (c *Controller) SubmitLogin(ctx context.Context, email, password string) (*FormOutcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	res, err := c.engine.Login(ctx, localauth.LoginRequest{Email: email, Password: password})
	if err != nil {
		return c.loginFailure(ctx, err)
	}

	_, _ = c.notifier.Notify(ctx, Notification{
		Kind:    KindSuccess,
		Title:   "Login Successful!",
		Message: "Welcome back, " + res.Name + "!",
		Mode:    ModeModal,
	})
	if err := c.nav.Navigate(ctx, c.config.HomeTarget); err != nil {
		return nil, err
	}

	return &FormOutcome{Ok: true, Identity: res}, nil
}

func (c *Controller) loginFailure(ctx context.Context, err error) (*FormOutcome, error) {
	var verrs localauth.ValidationErrors
	if errors.As(err, &verrs) {
		return outcomeFromValidation(verrs), nil
	}

	if errors.Is(err, localauth.ErrInvalidCredentials) {
		_, _ = c.notifier.Notify(ctx, Notification{
			Kind:    KindError,
			Title:   "Login Failed",
			Message: "Invalid email or password",
			Mode:    ModeModal,
		})
		return &FormOutcome{FocusField: "password"}, nil
	}

	if errors.Is(err, localauth.ErrStorageUnavailable) {
		c.notifyStorageTrouble(ctx)
		return &FormOutcome{}, nil
	}

	return nil, err
}

// SubmitRegister drives the registration form with the same exclusivity as
// SubmitLogin.
func (c *Controller) SubmitRegister(ctx context.Context, name, email, password, confirm string) (*FormOutcome, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	res, err := c.engine.Register(ctx, localauth.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirm,
	})
	if err != nil {
		var verrs localauth.ValidationErrors
		if errors.As(err, &verrs) {
			return outcomeFromValidation(verrs), nil
		}
		if errors.Is(err, localauth.ErrStorageUnavailable) {
			c.notifyStorageTrouble(ctx)
			return &FormOutcome{}, nil
		}
		return nil, err
	}

	_, _ = c.notifier.Notify(ctx, Notification{
		Kind:    KindSuccess,
		Title:   "Account Created!",
		Message: "Welcome to Future Makers Academy, " + res.Name + "!",
		Mode:    ModeModal,
	})
	if err := c.nav.Navigate(ctx, c.config.HomeTarget); err != nil {
		return nil, err
	}

	return &FormOutcome{Ok: true, Identity: res}, nil
}

// Logout clears the session and returns to the home page. Safe to trigger
// with no active session.
func (c *Controller) Logout(ctx context.Context) error {
	if err := c.engine.Logout(ctx); err != nil {
		c.notifyStorageTrouble(ctx)
		return err
	}

	_, _ = c.notifier.Notify(ctx, Notification{
		Kind:  KindSuccess,
		Title: "Logged Out",
		Mode:  ModeToast,
	})
	return c.nav.Navigate(ctx, c.config.HomeTarget)
}

// OpenTrack handles the course-track cards. Guests get the sign-up-or-login
// prompt and are navigated by their choice; an authenticated visitor gets
// the track modal with a dashboard shortcut.
func (c *Controller) OpenTrack(ctx context.Context, track string) error {
	current, err := c.engine.CurrentSession(ctx)
	if err != nil {
		c.notifyStorageTrouble(ctx)
		return err
	}

	if current == nil {
		choice, err := c.notifier.Notify(ctx, Notification{
			Kind:    KindInfo,
			Title:   "Join to Access This Track",
			Message: "You need an account to view the full track. Sign up or login?",
			Mode:    ModeModal,
			Actions: []Action{
				{Label: "Sign Up", Tag: "signup"},
				{Label: "Login", Tag: "login"},
			},
		})
		if err != nil {
			return err
		}
		switch choice {
		case "signup":
			return c.nav.Navigate(ctx, c.config.RegisterTarget)
		case "login":
			return c.nav.Navigate(ctx, c.config.LoginTarget)
		}
		return nil
	}

	choice, err := c.notifier.Notify(ctx, Notification{
		Kind:    KindSuccess,
		Title:   track,
		Message: "Welcome " + displayName(current) + "! This track includes lessons, hands-on projects, and a certificate on completion.",
		Mode:    ModeModal,
		Actions: []Action{
			{Label: "Go to Dashboard", Tag: "dashboard"},
			{Label: "Close", Tag: "close"},
		},
	})
	if err != nil {
		return err
	}
	if choice == "dashboard" {
		return c.nav.Navigate(ctx, c.config.DashboardTarget)
	}
	return nil
}

func (c *Controller) notifyStorageTrouble(ctx context.Context) {
	_, _ = c.notifier.Notify(ctx, Notification{
		Kind:    KindError,
		Title:   "Something Went Wrong",
		Message: "Your browser storage is unavailable. Please try again.",
		Mode:    ModeToast,
	})
}

func outcomeFromValidation(verrs localauth.ValidationErrors) *FormOutcome {
	out := &FormOutcome{FieldErrors: verrs}
	if first, ok := verrs.First(); ok {
		out.FocusField = first.Field
	}
	return out
}

func displayName(rec *session.Record) string {
	if rec.Name != "" {
		return rec.Name
	}
	return rec.Email
}
