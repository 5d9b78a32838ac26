package storefront

import (
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	RouteHome      = "/"
	RouteBooks     = "/book"
	RouteBook      = "/book/:id"
	RouteCart      = "/cart"
	RouteCheckout  = "/checkout"
	RouteOrders    = "/orders"
	RouteFavorites = "/favorites"
	RouteLogin     = "/login"
	RouteRegister  = "/register"
	RouteSearch    = "/search"
	RouteSuccess   = "/success"
	RouteCancel    = "/cancel"
	RouteAdmin     = "/admin"
	RouteDashboard = "/dashboard/*"
)

func BookPath(id string) string {
	return RouteBooks + "/" + id
}

type access int

const (
	public access = iota
	customerOnly
	adminOnly
)

var routes = map[string]access{
	RouteHome:      public,
	RouteBooks:     public,
	RouteBook:      public,
	RouteCart:      public,
	RouteCheckout:  customerOnly,
	RouteOrders:    customerOnly,
	RouteFavorites: customerOnly,
	RouteLogin:     public,
	RouteRegister:  public,
	RouteSearch:    public,
	RouteSuccess:   customerOnly,
	RouteCancel:    customerOnly,
	RouteAdmin:     public,
	RouteDashboard: adminOnly,
}

// MatchRoute finds the route pattern serving path. The query string is
// ignored and a trailing slash is tolerated.
func MatchRoute(path string) (route string, ok bool) {
	if u, err := url.Parse(path); err == nil {
		path = u.Path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	if _, ok = routes[path]; ok && path != RouteBook && path != RouteDashboard {
		return path, true
	}
	if id, found := strings.CutPrefix(path, RouteBooks+"/"); found && id != "" && !strings.Contains(id, "/") {
		return RouteBook, true
	}
	if path == "/dashboard" || strings.HasPrefix(path, "/dashboard/") {
		return RouteDashboard, true
	}
	return "", false
}

// Resolve returns where a request for path should land given the session.
// Unknown paths go home, customer pages need a signed in customer and the
// dashboard needs a live admin token.
func Resolve(s *Session, path string) string {
	route, ok := MatchRoute(path)
	if !ok {
		log.Debug().Str("path", path).Msg("unknown route")
		return RouteHome
	}
	switch routes[route] {
	case customerOnly:
		if _, signedIn := s.User(); !signedIn {
			return RouteLogin
		}
	case adminOnly:
		if err := s.RequireAdmin(); err != nil {
			return RouteAdmin
		}
	}
	return path
}
