package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/cli/view"
	"github.com/yndnr/shurlty-go/internal/core/domain"
)

// RegisterCommand returns the register command.
func RegisterCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "Create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Display name"},
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
		},
		Action: registerAction,
	}
}

func registerAction(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	env.Router.Navigate(domain.RouteRegister)

	name, err := env.Prompt.Value(c.String("name"), "Name: ", false)
	if err != nil {
		return err
	}
	email, err := env.Prompt.Value(c.String("email"), "Email: ", false)
	if err != nil {
		return err
	}
	password, err := env.Prompt.Value(c.String("password"), "Password: ", true)
	if err != nil {
		return err
	}

	f := env.App.RegisterForm()
	f.SetName(name)
	f.SetEmail(email)
	f.SetPassword(password)
	if err := f.Submit(c.Context); err != nil {
		return fail(f.Err(), err)
	}

	msg := f.Message()
	if msg == "" {
		msg = "Registration successful."
	}
	fmt.Fprintln(env.Out, msg)
	fmt.Fprintln(env.Out, "Next: shurlty-cli login")
	return nil
}

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Usage: "Email address"},
			&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (prompted when omitted)"},
		},
		Action: loginAction,
	}
}

func loginAction(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	env.Router.Navigate(domain.RouteLogin)

	email, err := env.Prompt.Value(c.String("email"), "Email: ", false)
	if err != nil {
		return err
	}
	password, err := env.Prompt.Value(c.String("password"), "Password: ", true)
	if err != nil {
		return err
	}

	f := env.App.LoginForm()
	f.SetEmail(email)
	f.SetPassword(password)
	if err := f.Submit(c.Context); err != nil {
		return fail(f.Err(), err)
	}

	fmt.Fprintln(env.Out, "Logged in.")
	return nil
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:   "logout",
		Usage:  "Forget the stored session token",
		Action: logoutAction,
	}
}

func logoutAction(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}
	if err := view.Logout(c.Context, env.Store, env.Router); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(env.Out, "Logged out.")
	return nil
}
