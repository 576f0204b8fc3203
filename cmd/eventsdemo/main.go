package main

import (
	"context"
	"errors"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"

	"github.com/linemeet/go-events-client/appsession"
	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/gateway"
	"github.com/linemeet/go-events-client/identity"
	"github.com/linemeet/go-events-client/identity/fakeidentity"
	"github.com/linemeet/go-events-client/internal/apperrors"
	"github.com/linemeet/go-events-client/internal/config"
	"github.com/linemeet/go-events-client/internal/utils"
	"github.com/linemeet/go-events-client/session"
	"github.com/linemeet/go-events-client/storage/memstore"
)

// eventsdemo runs the page-load flow against a configured events server,
// using a token pasted from a real browser session (ID_TOKEN env var) in
// place of the in-page SDK.
func main() {
	if err := run(); err != nil {
		log.Fatalf("Error running demo: %s\n", err)
	}
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	sdk := fakeidentity.NewFakeSDK()
	if raw := os.Getenv("ID_TOKEN"); raw != "" {
		token, err := identity.ParseToken(raw)
		if err != nil {
			return err
		}
		sdk.SetToken(raw, &identity.DecodedToken{
			Subject:   token.Subject,
			ExpiresAt: token.ExpiresAt.Unix(),
		})
	}

	guard, err := session.NewGuard(sdk, memstore.New(), c, session.WithLogger(logger))
	if err != nil {
		return err
	}

	gw := gateway.New(c.GetAPIBaseURL(), gateway.WithLogger(logger))

	sess, err := appsession.New(guard, gw, appsession.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := sess.Start(ctx); err != nil {
		if apperrors.Is(err, apperrors.ErrReloginStarted) {
			logger.Info().Msg("login required; open this URL in a browser:")
			logger.Info().Msg(identity.WebLoginURL(c, c.GetCanonicalURL(), "demo"))
			return nil
		}
		return err
	}
	logger.Info().Str("user_id", sess.UserID()).Msg("session verified")

	if scope := os.Getenv("SCOPE_ID"); scope != "" {
		if err := sess.SetScope(events.ScopeID(scope)); err != nil {
			return err
		}
		items, err := sess.LoadEvents(ctx)
		if err != nil {
			return err
		}
		for _, e := range items {
			logger.Info().
				Int64("id", e.ID).
				Str("date", e.Date).
				Str("name", e.Name).
				Int("capacity", utils.Value(e.Capacity)).
				Msg("event")
		}
	}

	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
}
