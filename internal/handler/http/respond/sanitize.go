package respond

import (
	"regexp"
)

var (
	// dbPasswordPattern masks the password in connection strings (DSNs).
	dbPasswordPattern = regexp.MustCompile(`://([^:/]+):([^@]+)@`)

	// bearerTokenPattern masks bearer tokens quoted in error messages.
	bearerTokenPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-_.]+`)

	// oauthSecretPattern masks OAuth parameter values that may surface in
	// announcer errors.
	oauthSecretPattern = regexp.MustCompile(`oauth_token(_secret)?="[^"]+"`)
)

// SanitizeError returns the error message with credentials masked, safe to
// write to logs.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = bearerTokenPattern.ReplaceAllString(msg, "Bearer ****")
	msg = oauthSecretPattern.ReplaceAllString(msg, `oauth_token$1="****"`)

	return msg
}
