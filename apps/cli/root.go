package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/linkudp/linkudp-cli/core"
	"github.com/linkudp/linkudp-cli/core/session"
	"github.com/linkudp/linkudp-cli/services/linkapi"
	"github.com/linkudp/linkudp-cli/storage/token"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errLoginRequired = errors.New("Debes iniciar sesión primero: linkudp login")
	errSessionClosed = errors.New("Tu sesión expiró. Inicia sesión de nuevo: linkudp login")
)

// app holds the wired dependencies shared by every command.
type app struct {
	conf    *core.Config
	logger  core.Logger
	tokens  token.Store
	api     *linkapi.Client
	session *session.Manager

	out io.Writer
	in  *bufio.Reader
}

func newApp(conf *core.Config, logger core.Logger, out io.Writer, in io.Reader) (*app, error) {
	tokens, err := token.NewFileStore(conf.TokenFile)
	if err != nil {
		return nil, err
	}
	a := &app{
		conf:   conf,
		logger: logger,
		tokens: tokens,
		out:    out,
		in:     bufio.NewReader(in),
	}
	a.api = linkapi.NewClient(conf.API, logger)
	a.session = session.NewManager(a.api, tokens, &hintNavigator{out: out}, logger)
	return a, nil
}

func newRootCmd(a *app) *cobra.Command {
	var apiURL string

	cmd := &cobra.Command{
		Use:           "linkudp",
		Short:         "Cliente de terminal de LinkUDP",
		Long:          "LinkUDP conecta estudiantes y tutores de la UDP.\nCada comando corresponde a una página del cliente web.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if apiURL != "" {
				a.api = linkapi.NewClient(a.conf.API, a.logger, linkapi.WithBaseURL(strings.TrimRight(apiURL, "/")))
				a.session = session.NewManager(a.api, a.tokens, &hintNavigator{out: a.out}, a.logger)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&apiURL, "api", "", "URL base del backend (por defecto "+a.conf.API.BaseURL+")")

	cmd.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newOnboardingCmd(a),
		newDashboardCmd(a),
		newProfileCmd(a),
		newTutoringCmd(a),
	)
	return cmd
}

// hintNavigator renders navigation as a follow-up command suggestion; the
// terminal has no router to push routes onto.
type hintNavigator struct {
	out io.Writer
}

var routeCommands = map[session.Route]string{
	session.RouteLogin:             "linkudp login",
	session.RouteRegister:          "linkudp register",
	session.RouteStudentOnboarding: "linkudp onboarding student",
	session.RouteTutorOnboarding:   "linkudp onboarding tutor",
	session.RouteStudentDashboard:  "linkudp dashboard student",
	session.RouteTutorDashboard:    "linkudp dashboard tutor",
	session.RouteStudentProfile:    "linkudp profile student",
	session.RouteTutorProfile:      "linkudp profile tutor",
	session.RouteAvailability:      "linkudp profile availability",
	session.RouteTutoringList:      "linkudp tutoring list",
	session.RouteTutoringCreate:    "linkudp tutoring create",
}

func (n *hintNavigator) Push(route session.Route) {
	if cmd, ok := routeCommands[route]; ok {
		fmt.Fprintf(n.out, "→ Continúa con: %s\n", cmd)
	}
}

// promptLine reads one line of input, trimmed.
func (a *app) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo.
func (a *app) promptPassword(prompt string) (string, error) {
	fmt.Fprint(a.out, prompt)
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Fprintln(a.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// requireToken fetches the persisted token; commands that need a session call
// this before issuing any request.
func (a *app) requireToken() (string, error) {
	tok, err := a.tokens.Get()
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", errLoginRequired
	}
	return tok, nil
}

// authError translates a backend rejection: the stale token is dropped and
// the user is pointed back at login. Other errors pass through.
func (a *app) authError(err error) error {
	if errors.Is(err, linkapi.ErrUnauthenticated) || errors.Is(err, session.ErrUnauthenticated) {
		if cerr := a.tokens.Clear(); cerr != nil {
			a.logger.Error("clearing rejected token failed", "error", cerr)
		}
		return errSessionClosed
	}
	return err
}
