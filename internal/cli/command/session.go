package command

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/shurlty-go/internal/telemetry/logger"
)

// SessionCommand returns the session subcommand group.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:    "session",
		Aliases: []string{"sess"},
		Usage:   "Inspect the stored session",
		Subcommands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show whether a token is stored and what it claims",
				Action: sessionStatus,
			},
		},
	}
}

// SessionStatus describes the stored credential. Claims are decoded
// without verification and are informational only; the backend remains
// the authority on validity.
type SessionStatus struct {
	Authenticated bool       `json:"authenticated" yaml:"authenticated"`
	Store         string     `json:"store" yaml:"store"`
	Token         string     `json:"token,omitempty" yaml:"token,omitempty"`
	Subject       string     `json:"subject,omitempty" yaml:"subject,omitempty"`
	Issuer        string     `json:"issuer,omitempty" yaml:"issuer,omitempty"`
	IssuedAt      *time.Time `json:"issuedAt,omitempty" yaml:"issuedAt,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Expired       bool       `json:"expired" yaml:"expired"`
	Note          string     `json:"note,omitempty" yaml:"note,omitempty"`
}

func sessionStatus(c *cli.Context) error {
	env, err := getEnv(c)
	if err != nil {
		return err
	}

	cred, err := env.Store.Get(c.Context)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}

	status := SessionStatus{Store: env.Config.Storage.Backend}
	if cred.IsZero() {
		status.Note = notLoggedInMessage
		return env.Formatter().Format(env.Out, status)
	}
	status.Authenticated = true
	status.Token = logger.RedactString(cred.String())
	describeToken(&status, cred.String(), time.Now())
	return env.Formatter().Format(env.Out, status)
}

// describeToken fills status from the JWT claims of raw, if it is a JWT.
func describeToken(status *SessionStatus, raw string, now time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		status.Note = "token is opaque; claims unavailable"
		return
	}

	status.Subject, _ = claims.GetSubject()
	status.Issuer, _ = claims.GetIssuer()
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		t := iat.Time
		status.IssuedAt = &t
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		t := exp.Time
		status.ExpiresAt = &t
		status.Expired = now.After(t)
	}
	if status.Expired {
		status.Note = "token looks expired; the next request will likely require login"
	}
}
