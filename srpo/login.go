package srpo

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"

	"github.com/srpo-tools/srpo/auth"
	"github.com/srpo-tools/srpo/models"
)

// mfaPrompt is the accessible name of the verification-code input, exactly
// as the SRPO renders it.
const mfaPrompt = "Please enter a verification code from the Google Authenticator " +
	"app on your mobile device to continue."

// Login authenticates the session: credentials, then the TOTP verification
// code. There is no retry policy; any wait that times out fails the login.
//
// A code generated near a step boundary is fine: the SRPO keeps codes valid
// for a short while after rollover, long enough for the submission to
// complete.
func (c *Client) Login(ctx context.Context, username, password string) error {
	if err := c.page.Navigate(c.nav.BaseURL + "/#/login"); err != nil {
		return models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to open login page",
			err,
		)
	}

	el, err := c.waitFor(ctx, ByName("input", "Username"))
	if err != nil {
		return err
	}
	if err := el.Input(username); err != nil {
		return models.NewPipelineError(models.ErrCodeNavigation, "failed to fill username", err)
	}

	el, err = c.waitFor(ctx, ByName("input", "Password"))
	if err != nil {
		return err
	}
	if err := el.Input(password); err != nil {
		return models.NewPipelineError(models.ErrCodeNavigation, "failed to fill password", err)
	}

	if err := c.click(ctx, ByName("button", "Login")); err != nil {
		return err
	}

	el, err = c.waitFor(ctx, ByName("input", mfaPrompt))
	if err != nil {
		return err
	}
	code, err := auth.Code(c.secret, time.Now())
	if err != nil {
		return err
	}
	if err := el.Input(code); err != nil {
		return models.NewPipelineError(models.ErrCodeNavigation, "failed to fill verification code", err)
	}

	return c.click(ctx, ByName("button", "Continue"))
}

// click waits for the queried element and clicks it.
func (c *Client) click(ctx context.Context, q Query) error {
	el, err := c.waitFor(ctx, q)
	if err != nil {
		return err
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return models.NewPipelineError(
			models.ErrCodeNavigation,
			"failed to click "+q.describe(),
			err,
		)
	}
	return nil
}
