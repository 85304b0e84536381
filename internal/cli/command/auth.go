package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/layer-3/inkgate"
	"github.com/layer-3/inkgate/ports"
)

func credentialFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "email",
			Aliases:  []string{"e"},
			Usage:    "Account email",
			Required: true,
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password",
			EnvVars: []string{"INKGATE_PASSWORD"},
		},
		&cli.BoolFlag{
			Name:  "password-stdin",
			Usage: "Read the password from stdin",
		},
	}
}

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Sign in and store the issued token",
		Flags:  credentialFlags(),
		Action: authLogin,
	}
}

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:   "register",
		Usage:  "Create an account and store the issued token",
		Flags:  credentialFlags(),
		Action: authRegister,
	}
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Remove the stored token",
		Action: authLogout,
	}
}

// StatusCommand returns the status command.
func StatusCommand() *cli.Command {
	return &cli.Command{
		Name:   "status",
		Usage:  "Show whether a token is stored",
		Action: authStatus,
	}
}

func readCredentials(c *cli.Context) (inkgate.Credentials, error) {
	creds := inkgate.Credentials{
		Email:    c.String("email"),
		Password: c.String("password"),
	}

	if c.Bool("password-stdin") {
		line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return creds, fmt.Errorf("read password: %w", err)
		}
		creds.Password = strings.TrimRight(line, "\r\n")
	}

	if creds.Password == "" {
		return creds, errors.New("password is required (use --password, INKGATE_PASSWORD or --password-stdin)")
	}
	return creds, nil
}

// printNavigator reports where a browser would go next.
func printNavigator(w io.Writer) ports.Navigator {
	return ports.NavigatorFunc(func(_ context.Context, to string) error {
		_, err := fmt.Fprintf(w, "Continue at %s\n", to)
		return err
	})
}

type flowFunc func(*inkgate.Session, context.Context, inkgate.Credentials) error

func runFlow(c *cli.Context, run flowFunc, done string) error {
	creds, err := readCredentials(c)
	if err != nil {
		return err
	}

	sess, err := openSession(c, inkgate.WithNavigator(printNavigator(c.App.Writer)))
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := run(sess, c.Context, creds); err != nil {
		var authErr *inkgate.AuthError
		if errors.As(err, &authErr) {
			return errors.New(authErr.Message)
		}
		return err
	}

	fmt.Fprintf(c.App.Writer, "%s as %s\n", done, creds.Email)
	return nil
}

func authLogin(c *cli.Context) error {
	return runFlow(c, (*inkgate.Session).Login, "Logged in")
}

func authRegister(c *cli.Context) error {
	return runFlow(c, (*inkgate.Session).Register, "Registered")
}

func authLogout(c *cli.Context) error {
	sess, err := openSession(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	if err := sess.Logout(c.Context); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	fmt.Fprintln(c.App.Writer, "Logged out")
	return nil
}

func authStatus(c *cli.Context) error {
	sess, err := openSession(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	if sess.IsAuthenticated(c.Context) {
		fmt.Fprintln(c.App.Writer, "authenticated")
	} else {
		fmt.Fprintln(c.App.Writer, "not authenticated")
	}
	return nil
}
