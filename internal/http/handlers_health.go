package httpx

import "net/http"

// healthHandler answers liveness probes. It reports process health only;
// database and redis connectivity are checked at startup, not per probe.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
