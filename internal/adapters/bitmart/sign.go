package bitmart

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
// GET and DELETE carry params as a sorted query string; POST serializes them
// as a JSON body. Private calls sign the canonical string
// timestamp + "#" + uid + "#" + queryStringOrBody with HMAC-SHA256 over the
// exact bytes that go on the wire.
func (c *Client) buildRequest(name string, params map[string]string, body map[string]any) (*shared.SignedRequest, error) {
	r, ok := routes[name]
	if !ok {
		return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("unknown route "+name))
	}
	base := c.settings.REST[string(r.Class)]
	if strings.TrimSpace(base) == "" {
		return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("no base url configured for "+string(r.Class)))
	}

	queryString := ""
	url := strings.TrimRight(base, "/") + "/" + r.Path
	getOrDelete := r.Method == http.MethodGet || r.Method == http.MethodDelete
	var bodyBytes []byte
	if getOrDelete {
		queryString = shared.EncodeQuery(params)
		if queryString != "" {
			url += "?" + queryString
		}
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errs.New(Venue, errs.CodeBadRequest, errs.WithMessage("encode request body"), errs.WithCause(err))
		}
		bodyBytes = encoded
		queryString = string(encoded)
	}

	headers := map[string]string{}
	if r.Private {
		creds := c.settings.Credentials
		if !creds.Configured() {
			return nil, errs.New(Venue, errs.CodeAuth, errs.WithMessage("credentials required for "+r.Path))
		}
		timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
		headers["X-BM-KEY"] = creds.APIKey
		headers["X-BM-TIMESTAMP"] = timestamp
		headers["X-BM-BROKER-ID"] = c.settings.BrokerID
		headers["Content-Type"] = "application/json"
		auth := timestamp + "#" + creds.UID + "#" + queryString
		headers["X-BM-SIGN"] = shared.HMACSHA256Hex(auth, creds.APISecret)
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
