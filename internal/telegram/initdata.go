package telegram

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/url"
	"slices"
	"strings"

	"github.com/bornholm/taskhub/internal/core/port"
	"github.com/pkg/errors"
)

// WebAppUser is the identity claim embedded in a mini-app initData
// payload.
type WebAppUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (u *WebAppUser) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// ParseInitData verifies a signed initData payload against the bot token
// and returns the embedded user claim. Every failure mode, parse error,
// missing signature or signature mismatch alike, yields the same
// port.ErrAuthFailed so that callers learn nothing about which check
// failed.
func ParseInitData(raw string, botToken string) (*WebAppUser, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, errors.WithStack(port.ErrAuthFailed)
	}

	hash := values.Get("hash")
	if hash == "" {
		return nil, errors.WithStack(port.ErrAuthFailed)
	}

	values.Del("hash")

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+values.Get(k))
	}

	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))

	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(hash)) {
		return nil, errors.WithStack(port.ErrAuthFailed)
	}

	var user WebAppUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, errors.WithStack(port.ErrAuthFailed)
	}

	if user.ID == 0 {
		return nil, errors.WithStack(port.ErrAuthFailed)
	}

	return &user, nil
}
