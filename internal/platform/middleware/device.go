package middleware

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"cardspace/pkg/requestcontext"
)

// DevicePlatform classifies the calling device from its User-Agent and stores
// the result in the request context. The navigation controller stretches its
// identity settle delay on Android, which historically needs longer for the
// provider's session state to propagate.
func DevicePlatform(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithPlatform(r.Context(), classify(r.Header.Get("User-Agent")))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func classify(uaHeader string) requestcontext.DevicePlatform {
	if uaHeader == "" {
		return requestcontext.PlatformUnknown
	}
	ua := useragent.New(uaHeader)
	osInfo := strings.ToLower(ua.OSInfo().Name)
	switch {
	case strings.Contains(osInfo, "android"):
		return requestcontext.PlatformAndroid
	case strings.Contains(osInfo, "iphone"), strings.Contains(osInfo, "ios"),
		strings.Contains(osInfo, "ipad"), ua.Platform() == "iPhone", ua.Platform() == "iPad":
		return requestcontext.PlatformIOS
	default:
		return requestcontext.PlatformUnknown
	}
}
