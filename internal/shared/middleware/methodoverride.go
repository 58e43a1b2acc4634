package middleware

import "net/http"

// MethodOverride lets HTML forms issue PUT and DELETE requests by POSTing a
// _method field, mirroring the common method-override convention.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// ParseForm populates r.PostForm; later FormValue calls in the
			// handlers read from the parsed form, not the drained body.
			if err := r.ParseForm(); err == nil {
				switch r.PostFormValue("_method") {
				case http.MethodPut:
					r.Method = http.MethodPut
				case http.MethodDelete:
					r.Method = http.MethodDelete
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}
