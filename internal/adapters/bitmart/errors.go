package bitmart

import (
	"strings"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
)

// exactErrors maps venue error codes to unified codes. Keys match both the
// numeric "code" field and, for a handful of endpoints, the message itself.
var exactErrors = map[string]errs.Code{
	// general
	"30000": errs.CodeExchange,
	"30001": errs.CodeAuth,
	"30002": errs.CodeAuth,
	"30003": errs.CodeAccountSuspended,
	"30004": errs.CodeAuth,
	"30005": errs.CodeAuth,
	"30006": errs.CodeAuth,
	"30007": errs.CodeAuth,
	"30008": errs.CodeAuth,
	"30010": errs.CodePermission,
	"30011": errs.CodeAuth,
	"30012": errs.CodeAuth,
	"30013": errs.CodeRateLimited,
	"30014": errs.CodeUnavailable,
	"30016": errs.CodeUnavailable,
	"30017": errs.CodeRateLimited,
	"30018": errs.CodeBadRequest,
	"30019": errs.CodePermission,
	// funding account
	"60000": errs.CodeBadRequest,
	"60001": errs.CodeBadRequest,
	"60002": errs.CodeBadRequest,
	"60003": errs.CodeExchange,
	"60004": errs.CodeExchange,
	"60005": errs.CodeExchange,
	"60006": errs.CodeExchange,
	"60007": errs.CodeBadRequest,
	"60008": errs.CodeInsufficientFunds,
	"60009": errs.CodeExchange,
	"60010": errs.CodeExchange,
	"60011": errs.CodeBadRequest,
	"60012": errs.CodeExchange,
	"60020": errs.CodePermission,
	"60021": errs.CodePermission,
	"60022": errs.CodePermission,
	"60026": errs.CodePermission,
	"60027": errs.CodePermission,
	"60028": errs.CodeAccountSuspended,
	"60029": errs.CodeAccountSuspended,
	"60030": errs.CodeBadRequest,
	"60031": errs.CodeBadRequest,
	"60050": errs.CodeExchange,
	"60051": errs.CodeExchange,
	"61001": errs.CodeInsufficientFunds,
	"61003": errs.CodeBadRequest,
	"61004": errs.CodeBadRequest,
	"61005": errs.CodeBadRequest,
	"61006": errs.CodeNotSupported,
	"61007": errs.CodeExchange,
	"61008": errs.CodeExchange,
	// spot public
	"70000": errs.CodeExchange,
	"70001": errs.CodeBadRequest,
	"70002": errs.CodeBadSymbol,
	"70003": errs.CodeUnavailable,
	"71001": errs.CodeBadRequest,
	"71002": errs.CodeBadRequest,
	"71003": errs.CodeBadRequest,
	"71004": errs.CodeBadRequest,
	"71005": errs.CodeBadRequest,
	// spot and margin
	"50000": errs.CodeBadRequest,
	"50001": errs.CodeBadSymbol,
	"50002": errs.CodeBadRequest,
	"50003": errs.CodeBadRequest,
	"50004": errs.CodeBadRequest,
	"50005": errs.CodeOrderNotFound,
	"50006": errs.CodeInvalidOrder,
	"50007": errs.CodeInvalidOrder,
	"50008": errs.CodeInvalidOrder,
	"50009": errs.CodeInvalidOrder,
	"50010": errs.CodeInvalidOrder,
	"50011": errs.CodeInvalidOrder,
	"50012": errs.CodeInvalidOrder,
	"50013": errs.CodeInvalidOrder,
	"50014": errs.CodeBadRequest,
	"50015": errs.CodeBadRequest,
	"50016": errs.CodeBadRequest,
	"50017": errs.CodeBadRequest,
	"50018": errs.CodeBadRequest,
	"50019": errs.CodeExchange,
	"50020": errs.CodeInsufficientFunds,
	"50021": errs.CodeBadRequest,
	"50022": errs.CodeUnavailable,
	"50023": errs.CodeBadSymbol,
	"50024": errs.CodeBadRequest,
	"50025": errs.CodeBadRequest,
	"50026": errs.CodeBadRequest,
	"50027": errs.CodeBadRequest,
	"50028": errs.CodeBadRequest,
	"50029": errs.CodeInvalidOrder,
	"50030": errs.CodeOrderNotFound,
	"50031": errs.CodeOrderNotFound,
	"50032": errs.CodeOrderNotFound,
	"50033": errs.CodeInvalidOrder,
	"50034": errs.CodeInvalidOrder,
	"50035": errs.CodeInvalidOrder,
	"50036": errs.CodeExchange,
	"50037": errs.CodeBadRequest,
	"50038": errs.CodeBadRequest,
	"50039": errs.CodeBadRequest,
	"50040": errs.CodeBadSymbol,
	"50041": errs.CodeExchange,
	"50042": errs.CodeBadRequest,
	"51000": errs.CodeBadSymbol,
	"51001": errs.CodeExchange,
	"51002": errs.CodeExchange,
	"51003": errs.CodeExchange,
	"51004": errs.CodeInsufficientFunds,
	"51005": errs.CodeInvalidOrder,
	"51006": errs.CodeInvalidOrder,
	"51007": errs.CodeBadRequest,
	"51008": errs.CodeExchange,
	"51009": errs.CodeInvalidOrder,
	"51010": errs.CodeInvalidOrder,
	"51011": errs.CodeInvalidOrder,
	"51012": errs.CodeInvalidOrder,
	"51013": errs.CodeInvalidOrder,
	"51014": errs.CodeInvalidOrder,
	"51015": errs.CodeInvalidOrder,
	"52000": errs.CodeBadRequest,
	"52001": errs.CodeBadRequest,
	"52002": errs.CodeBadRequest,
	"52003": errs.CodeBadRequest,
	"52004": errs.CodeBadRequest,
	"53000": errs.CodeAccountSuspended,
	"53001": errs.CodeAccountSuspended,
	"53002": errs.CodePermission,
	"53003": errs.CodePermission,
	"53005": errs.CodePermission,
	"53006": errs.CodePermission,
	"53007": errs.CodePermission,
	"53008": errs.CodePermission,
	"53009": errs.CodePermission,
	"53010": errs.CodePermission,
	"57001": errs.CodeBadRequest,
	"58001": errs.CodeBadRequest,
	"59001": errs.CodeExchange,
	"59002": errs.CodeExchange,
	"59003": errs.CodeExchange,
	"59004": errs.CodeExchange,
	"59005": errs.CodePermission,
	"59006": errs.CodeExchange,
	"59007": errs.CodeExchange,
	"59008": errs.CodeExchange,
	"59009": errs.CodeExchange,
	"59010": errs.CodeInsufficientFunds,
	"59011": errs.CodeExchange,
	// contract
	"40001": errs.CodeExchange,
	"40002": errs.CodeExchange,
	"40003": errs.CodeExchange,
	"40004": errs.CodeExchange,
	"40005": errs.CodeExchange,
	"40006": errs.CodePermission,
	"40007": errs.CodeBadRequest,
	"40008": errs.CodeAuth,
	"40009": errs.CodeBadRequest,
	"40010": errs.CodeBadRequest,
	"40011": errs.CodeBadRequest,
	"40012": errs.CodeExchange,
	"40013": errs.CodeExchange,
	"40014": errs.CodeBadSymbol,
	"40015": errs.CodeBadSymbol,
	"40016": errs.CodeInvalidOrder,
	"40017": errs.CodeInvalidOrder,
	"40018": errs.CodeInvalidOrder,
	"40019": errs.CodeExchange,
	"40020": errs.CodeInvalidOrder,
	"40021": errs.CodeExchange,
	"40022": errs.CodeExchange,
	"40023": errs.CodeExchange,
	"40024": errs.CodeExchange,
	"40025": errs.CodeExchange,
	"40026": errs.CodeExchange,
	"40027": errs.CodeInsufficientFunds,
	"40028": errs.CodePermission,
	"40029": errs.CodeInvalidOrder,
	"40030": errs.CodeInvalidOrder,
	"40031": errs.CodeInvalidOrder,
	"40032": errs.CodeInvalidOrder,
	"40033": errs.CodeInvalidOrder,
	"40034": errs.CodeBadSymbol,
	"40035": errs.CodeOrderNotFound,
	"40036": errs.CodeInvalidOrder,
	"40037": errs.CodeOrderNotFound,
	"40038": errs.CodeBadRequest,
	"40039": errs.CodeBadRequest,
	"40040": errs.CodeInvalidOrder,
	"40041": errs.CodeInvalidOrder,
	"40042": errs.CodeInvalidOrder,
	"40043": errs.CodeInvalidOrder,
	"40044": errs.CodeInvalidOrder,
	"40045": errs.CodeInvalidOrder,
	"40046": errs.CodePermission,
	"40047": errs.CodePermission,
	"40048": errs.CodeInvalidOrder,
	"40049": errs.CodeInvalidOrder,
	"40050": errs.CodeInvalidOrder,
}

// broadErrors matches case-insensitive substrings of the message when no exact
// entry applied.
var broadErrors = []struct {
	Needle string
	Code   errs.Code
}{
	{"balance not enough", errs.CodeInsufficientFunds},
}

// classify inspects a decoded response envelope and returns nil for success or
// a structured error. Success means code 1000 and a message of "ok" or
// "success"; anything else goes through the exact table first (message, then
// code), the broad table second, and falls back to the generic exchange error.
func classify(status int, payload shared.Payload) error {
	message, hasMessage := payload.LowerString("message")
	code, hasCode := payload.String("code")
	messageIsError := hasMessage && message != "ok" && message != "success"
	codeIsError := hasCode && code != "1000"
	if !messageIsError && !codeIsError {
		return nil
	}

	opts := []errs.Option{
		errs.WithHTTP(status),
		errs.WithRawCode(code),
		errs.WithRawMessage(payload.StringOr("", "message")),
	}
	if unified, ok := exactErrors[message]; ok {
		return errs.New(Venue, unified, opts...)
	}
	if unified, ok := exactErrors[code]; ok {
		return errs.New(Venue, unified, opts...)
	}
	for _, entry := range broadErrors {
		if strings.Contains(message, entry.Needle) {
			return errs.New(Venue, entry.Code, opts...)
		}
	}
	return errs.New(Venue, errs.CodeExchange, opts...)
}
