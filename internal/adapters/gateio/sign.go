package gateio

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
)

// buildRequest resolves a named route into a fully signed wire request.
//
// The canonical string is five newline-joined parts: uppercase method, the
// full signature path (/api/v4/<section>/<path>), the query string, the
// SHA-512 hex of the body (of the empty string when there is none), and the
// epoch-seconds timestamp. The HMAC-SHA512 of that string goes into the SIGN
// header alongside KEY and Timestamp.
//
// GET and DELETE carry params as a sorted query string. POST serializes them
// as a JSON body, except futures and delivery paths whose second segment
// mentions "dual" or "positions": those endpoints want urlencoded params.
func (c *Client) buildRequest(name string, pathParams, query map[string]string, body map[string]any) (*shared.SignedRequest, error) {
	r, ok := routes[name]
	if !ok {
		return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("unknown route "+name))
	}
	base := c.settings.REST[string(r.Section)]
	if strings.TrimSpace(base) == "" {
		return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("no base url configured for "+string(r.Section)))
	}

	path, _ := shared.ImplodePath(r.Path, pathParams)
	entirePath := "/" + string(r.Section) + "/" + path
	url := strings.TrimRight(base, "/") + entirePath

	urlEncoded := r.Method == http.MethodGet || r.Method == http.MethodDelete
	if (r.Section == sectionFutures || r.Section == sectionDelivery) && r.Method == http.MethodPost {
		parts := strings.Split(path, "/")
		if len(parts) > 1 && (strings.Contains(parts[1], "dual") || strings.Contains(parts[1], "positions")) {
			urlEncoded = true
		}
	}

	queryString := ""
	var bodyBytes []byte
	if urlEncoded {
		queryString = shared.EncodeQuery(query)
		if queryString != "" {
			url += "?" + queryString
		}
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("encode request body"), errs.WithCause(err))
		}
		bodyBytes = encoded
	}

	headers := map[string]string{}
	if r.Private {
		creds := c.settings.Credentials
		if !creds.Configured() {
			return nil, errs.New(Venue, errs.CodeAuth, errs.WithMessage("credentials required for "+entirePath))
		}
		timestamp := strconv.FormatInt(c.now().Unix(), 10)
		bodyPayload := ""
		if bodyBytes != nil {
			bodyPayload = string(bodyBytes)
		}
		canonical := strings.Join([]string{
			r.Method,
			"/api/v4" + entirePath,
			queryString,
			shared.SHA512Hex(bodyPayload),
			timestamp,
		}, "\n")
		headers["KEY"] = creds.APIKey
		headers["Timestamp"] = timestamp
		headers["SIGN"] = shared.HMACSHA512Hex(canonical, creds.APISecret)
		headers["Content-Type"] = "application/json"
	} else if !urlEncoded {
		// public routes are all GET; keep the invariant explicit
		return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("public POST not supported for "+name))
	}

	return &shared.SignedRequest{
		Venue:   Venue,
		Route:   name,
		URL:     url,
		Method:  r.Method,
		Headers: headers,
		Body:    bodyBytes,
		Weight:  r.Weight,
	}, nil
}

// defaultNow supplies request timestamps; tests override Client.now.
func defaultNow() time.Time { return time.Now() }
