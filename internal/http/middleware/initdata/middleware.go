package initdata

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/taskhub/internal/core/service"
	httpCtx "github.com/bornholm/taskhub/internal/http/context"
	"github.com/bornholm/taskhub/internal/telegram"
	"github.com/pkg/errors"
)

// Header carries the signed initData payload on every authenticated API
// request.
const Header = "X-Telegram-Init-Data"

// Middleware verifies the signed identity token and attaches the resolved
// user to the request context. Resolution goes through the role directory
// so the owner-role invariant is re-applied on every request.
func Middleware(directory *service.Directory, botToken string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		var fn http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			claim, err := telegram.ParseInitData(r.Header.Get(Header), botToken)
			if err != nil {
				http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
				return
			}

			user, err := directory.ResolveOrCreate(r.Context(), claim.ID, claim.FullName())
			if err != nil {
				slog.ErrorContext(r.Context(), "could not resolve user", slog.Any("error", errors.WithStack(err)))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			ctx := httpCtx.SetUser(r.Context(), user)

			next.ServeHTTP(w, r.WithContext(ctx))
		}

		return fn
	}
}
