// Package geocode resolves coordinates into display addresses via a
// Nominatim-compatible reverse geocoding endpoint.
package geocode

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/t-cool/naturalist/internal/model"
)

// Resolver turns coordinates into a display address. Implementations never
// return an error; every failure mode degrades to model.AddressFailed. The
// distinct offline placeholder is the caller's job: Resolve must only be
// invoked when the connectivity gate reports online.
type Resolver interface {
	Resolve(ctx context.Context, lat, lng float64) string
}

// Nominatim issues single reverse lookups against a Nominatim endpoint.
// No retry, no backoff; callers re-invoke explicitly (the refresh action).
type Nominatim struct {
	client *resty.Client
	lang   string
	log    zerolog.Logger
}

func NewNominatim(baseURL, lang string, timeout time.Duration, log zerolog.Logger) *Nominatim {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", "naturalist/1.0").
		SetTimeout(timeout)
	return &Nominatim{client: c, lang: lang, log: log}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// Resolve performs one GET /reverse lookup. HTTP non-200, transport
// faults, malformed bodies and missing display names all degrade to
// model.AddressFailed.
func (n *Nominatim) Resolve(ctx context.Context, lat, lng float64) string {
	resp, err := n.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":             strconv.FormatFloat(lat, 'f', -1, 64),
			"lon":             strconv.FormatFloat(lng, 'f', -1, 64),
			"format":          "json",
			"accept-language": n.lang,
		}).
		Get("/reverse")
	if err != nil {
		n.log.Warn().Err(err).Msg("reverse geocoding request failed")
		return model.AddressFailed
	}
	if resp.StatusCode() != http.StatusOK {
		n.log.Warn().Int("status", resp.StatusCode()).Msg("reverse geocoding returned non-OK status")
		return model.AddressFailed
	}

	var rr reverseResponse
	if err := json.Unmarshal(resp.Body(), &rr); err != nil {
		n.log.Warn().Err(err).Msg("reverse geocoding response unparsable")
		return model.AddressFailed
	}
	if rr.DisplayName == "" {
		n.log.Warn().Msg("reverse geocoding response missing display_name")
		return model.AddressFailed
	}
	return FormatDisplayName(rr.DisplayName)
}

// FormatDisplayName rewrites Nominatim's comma-delimited display name into
// the compact address form stored on records. Nominatim lists components
// most-specific-first, trailing with postal code and country; with more
// than two components the last two are dropped and the rest concatenated
// in reverse with no separator, yielding a coarse-to-fine Japanese-style
// address. Shorter names pass through verbatim. This exact transform is
// load-bearing: stored addresses depend on it.
func FormatDisplayName(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) <= 2 {
		return name
	}
	parts = parts[:len(parts)-2]
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(strings.TrimSpace(parts[i]))
	}
	return b.String()
}
