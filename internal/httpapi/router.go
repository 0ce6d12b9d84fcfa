package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Search pipeline + current result set
	sh := SearchHandler{CfgVal: d.CfgVal, Sessions: d.Sessions, Searcher: d.Searcher, Hub: d.Hub}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/results", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Results,
	}))
	mux.HandleFunc("/results/export.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.ExportCSV,
	}))
	mux.HandleFunc("/stats", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Stats,
	}))

	// Session lifecycle
	ssh := SessionHandler{Sessions: d.Sessions, Hub: d.Hub}
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: ssh.End,
	}))

	// Saved jobs
	svh := SavedHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  svh.List,
		http.MethodPost: svh.Save,
	}))
	mux.HandleFunc("/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: svh.DeleteByPath, // expects /saved/{id}
	}))
	mux.HandleFunc("/saved/export.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: svh.ExportCSV,
	}))

	// Config + quick-search presets
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/presets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Presets,
	}))

	// Secrets (use cfgVal, NOT a snapshot cfg)
	sech := SecretsHandler{CfgVal: d.CfgVal}
	mux.HandleFunc("/api/secrets/rapidapi", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sech.SetProviderKey,
	}))
	mux.HandleFunc("/api/secrets/smtp", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sech.SetSMTPPassword,
	}))

	// Email digest
	dh := DigestHandler{CfgVal: d.CfgVal, Sessions: d.Sessions, Hub: d.Hub}
	mux.HandleFunc("/digest/send", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Send,
	}))
	mux.HandleFunc("/digest/test", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Test,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: HealthHandler{}.Health,
	}))

	return mux
}
