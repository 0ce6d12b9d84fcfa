package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything a careful
// user would want flagged before the config is saved.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	trimList := func(xs []string) []string {
		seen := map[string]bool{}
		var ys []string
		for _, x := range xs {
			x = strings.TrimSpace(x)
			if x == "" {
				continue
			}
			key := strings.ToLower(x)
			if seen[key] {
				continue
			}
			seen[key] = true
			ys = append(ys, x)
		}
		return ys
	}

	out.Filters.RemoteIndicators = trimList(out.Filters.RemoteIndicators)
	for i := range out.Tagging.Rules {
		out.Tagging.Rules[i].Any = trimList(out.Tagging.Rules[i].Any)
	}

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if strings.TrimSpace(out.Provider.Host) == "" {
		res.addErr("provider.host is required")
	}
	if out.Provider.NumPages <= 0 {
		res.addErr("provider.num_pages must be > 0")
	}
	switch out.Provider.DatePosted {
	case "all", "today", "3days", "week", "month":
	default:
		res.addErr("provider.date_posted must be one of all/today/3days/week/month")
	}
	if out.Provider.RequestsPerSec <= 0 {
		res.addErr("provider.requests_per_sec must be > 0")
	} else if out.Provider.RequestsPerSec > 10 {
		res.addWarn("provider.requests_per_sec is high (%.0f); the provider may rate-limit you.", out.Provider.RequestsPerSec)
	}
	if out.Provider.Retries < 0 {
		res.addErr("provider.retries must be >= 0")
	}

	if out.Session.TTLMinutes <= 0 {
		res.addErr("session.ttl_minutes must be > 0")
	}

	if len(out.Filters.RemoteIndicators) == 0 {
		res.addWarn("filters.remote_indicators is empty; no listing will ever be marked remote.")
	}
	if out.Filters.MaxResults <= 0 {
		res.addErr("filters.max_results must be > 0")
	}

	for i, r := range out.Tagging.Rules {
		if r.Tag == "" {
			res.addErr("tagging.rules[%d].tag is required", i)
		}
		if len(r.Any) == 0 {
			res.addErr("tagging.rules[%d].any must have at least 1 term", i)
		}
	}
	if out.Tagging.MaxTags <= 0 {
		res.addErr("tagging.max_tags must be > 0")
	}

	if out.Digest.Enabled {
		if strings.TrimSpace(out.Digest.SMTPHost) == "" {
			res.addErr("digest.smtp_host is required when digest.enabled=true")
		}
		if out.Digest.SMTPPort == 0 {
			res.addErr("digest.smtp_port is required when digest.enabled=true")
		}
		if strings.TrimSpace(out.Digest.From) == "" {
			res.addErr("digest.from is required when digest.enabled=true")
		}
		if strings.TrimSpace(out.Digest.Username) == "" {
			res.addWarn("digest.username is empty; SMTP auth will use digest.from.")
		}
	}

	seenLabels := map[string]bool{}
	for i, p := range out.Presets {
		if strings.TrimSpace(p.Label) == "" {
			res.addErr("presets[%d].label is required", i)
		}
		key := strings.ToLower(strings.TrimSpace(p.Label))
		if seenLabels[key] {
			res.addWarn("duplicate preset label %q", p.Label)
		}
		seenLabels[key] = true
	}

	return out, res
}
