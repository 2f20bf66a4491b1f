// Package auth generates the time-based one-time passwords the SRPO's
// two-factor prompt expects.
//
// The shared secret is the base-32 string the SRPO displays when the
// two-factor source is reconfigured through its Tools menu ("QR Code not
// working" shows the raw secret instead of the QR code). Codes are required
// at login and sometimes again mid-session, e.g. when exporting the regional
// list of individuals, which is why the pipeline carries the secret rather
// than a single pre-generated code.
package auth

import (
	"strings"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/srpo-tools/srpo/models"
)

// Code returns the 6-digit TOTP code for the given base-32 secret at time t.
// The standard 30-second step applies; codes stay valid for a short window
// after rollover, so a code generated near a step boundary is still usable
// for the few seconds a form submission takes.
func Code(secret string, t time.Time) (string, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return "", models.NewPipelineError(
			models.ErrCodeInvalidInput,
			"TOTP secret is empty",
			nil,
		)
	}
	code, err := totp.GenerateCode(secret, t)
	if err != nil {
		return "", models.NewPipelineError(
			models.ErrCodeInvalidInput,
			"failed to generate TOTP code",
			err,
		)
	}
	return code, nil
}
