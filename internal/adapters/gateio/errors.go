package gateio

import (
	"strings"

	"github.com/venuekit/venuekit/errs"
	"github.com/venuekit/venuekit/internal/adapters/shared"
)

// exactErrors maps the venue's symbolic error labels to unified codes. Gate
// reports failures as {"label": "...", "message"|"detail": "..."}; the label
// is stable while the message wording is not, so classification keys on the
// label alone and there is no broad-match tier.
var exactErrors = map[string]errs.Code{
	"INVALID_PARAM_VALUE":            errs.CodeBadRequest,
	"INVALID_PROTOCOL":               errs.CodeBadRequest,
	"INVALID_ARGUMENT":               errs.CodeBadRequest,
	"INVALID_REQUEST_BODY":           errs.CodeBadRequest,
	"MISSING_REQUIRED_PARAM":         errs.CodeBadRequest,
	"BAD_REQUEST":                    errs.CodeBadRequest,
	"INVALID_CONTENT_TYPE":           errs.CodeBadRequest,
	"NOT_ACCEPTABLE":                 errs.CodeBadRequest,
	"METHOD_NOT_ALLOWED":             errs.CodeBadRequest,
	"NOT_FOUND":                      errs.CodeExchange,
	"INVALID_CREDENTIALS":            errs.CodeAuth,
	"INVALID_KEY":                    errs.CodeAuth,
	"IP_FORBIDDEN":                   errs.CodeAuth,
	"READ_ONLY":                      errs.CodePermission,
	"INVALID_SIGNATURE":              errs.CodeAuth,
	"MISSING_REQUIRED_HEADER":        errs.CodeAuth,
	"REQUEST_EXPIRED":                errs.CodeAuth,
	"ACCOUNT_LOCKED":                 errs.CodeAccountSuspended,
	"FORBIDDEN":                      errs.CodePermission,
	"SUB_ACCOUNT_NOT_FOUND":          errs.CodeExchange,
	"SUB_ACCOUNT_LOCKED":             errs.CodeAccountSuspended,
	"MARGIN_BALANCE_EXCEPTION":       errs.CodeExchange,
	"MARGIN_TRANSFER_FAILED":         errs.CodeExchange,
	"TOO_MUCH_FUTURES_AVAILABLE":     errs.CodeExchange,
	"FUTURES_BALANCE_NOT_ENOUGH":     errs.CodeInsufficientFunds,
	"ACCOUNT_EXCEPTION":              errs.CodeExchange,
	"SUB_ACCOUNT_TRANSFER_FAILED":    errs.CodeExchange,
	"ADDRESS_NOT_USED":               errs.CodeExchange,
	"TOO_FAST":                       errs.CodeRateLimited,
	"WITHDRAWAL_OVER_LIMIT":          errs.CodeExchange,
	"API_WITHDRAW_DISABLED":          errs.CodeUnavailable,
	"INVALID_WITHDRAW_ID":            errs.CodeExchange,
	"INVALID_WITHDRAW_CANCEL_STATUS": errs.CodeExchange,
	"INVALID_PRECISION":              errs.CodeInvalidOrder,
	"INVALID_CURRENCY":               errs.CodeBadSymbol,
	"INVALID_CURRENCY_PAIR":          errs.CodeBadSymbol,
	"POC_FILL_IMMEDIATELY":           errs.CodeInvalidOrder,
	"ORDER_NOT_FOUND":                errs.CodeOrderNotFound,
	"CLIENT_ID_NOT_FOUND":            errs.CodeOrderNotFound,
	"ORDER_CLOSED":                   errs.CodeInvalidOrder,
	"ORDER_CANCELLED":                errs.CodeInvalidOrder,
	"QUANTITY_NOT_ENOUGH":            errs.CodeInvalidOrder,
	"BALANCE_NOT_ENOUGH":             errs.CodeInsufficientFunds,
	"MARGIN_NOT_SUPPORTED":           errs.CodeInvalidOrder,
	"MARGIN_BALANCE_NOT_ENOUGH":      errs.CodeInsufficientFunds,
	"AMOUNT_TOO_LITTLE":              errs.CodeInvalidOrder,
	"AMOUNT_TOO_MUCH":                errs.CodeInvalidOrder,
	"REPEATED_CREATION":              errs.CodeInvalidOrder,
	"LOAN_NOT_FOUND":                 errs.CodeOrderNotFound,
	"LOAN_RECORD_NOT_FOUND":          errs.CodeOrderNotFound,
	"NO_MATCHED_LOAN":                errs.CodeExchange,
	"NOT_MERGEABLE":                  errs.CodeExchange,
	"NO_CHANGE":                      errs.CodeExchange,
	"REPAY_TOO_MUCH":                 errs.CodeExchange,
	"TOO_MANY_CURRENCY_PAIRS":        errs.CodeInvalidOrder,
	"TOO_MANY_ORDERS":                errs.CodeInvalidOrder,
	"MIXED_ACCOUNT_TYPE":             errs.CodeInvalidOrder,
	"AUTO_BORROW_TOO_MUCH":           errs.CodeExchange,
	"TRADE_RESTRICTED":               errs.CodeInsufficientFunds,
	"USER_NOT_FOUND":                 errs.CodeAccountSuspended,
	"CONTRACT_NO_COUNTER":            errs.CodeExchange,
	"CONTRACT_NOT_FOUND":             errs.CodeBadSymbol,
	"RISK_LIMIT_EXCEEDED":            errs.CodeExchange,
	"INSUFFICIENT_AVAILABLE":         errs.CodeInsufficientFunds,
	"LIQUIDATE_IMMEDIATELY":          errs.CodeInvalidOrder,
	"LEVERAGE_TOO_HIGH":              errs.CodeInvalidOrder,
	"LEVERAGE_TOO_LOW":               errs.CodeInvalidOrder,
	"ORDER_NOT_OWNED":                errs.CodeExchange,
	"ORDER_FINISHED":                 errs.CodeExchange,
	"POSITION_CROSS_MARGIN":          errs.CodeExchange,
	"POSITION_IN_LIQUIDATION":        errs.CodeExchange,
	"POSITION_IN_CLOSE":              errs.CodeExchange,
	"POSITION_EMPTY":                 errs.CodeInvalidOrder,
	"REMOVE_TOO_MUCH":                errs.CodeExchange,
	"RISK_LIMIT_NOT_MULTIPLE":        errs.CodeExchange,
	"RISK_LIMIT_TOO_HIGH":            errs.CodeExchange,
	"RISK_LIMIT_TOO_LOW":             errs.CodeBadRequest,
	"PRICE_TOO_DEVIATED":             errs.CodeInvalidOrder,
	"SIZE_TOO_LARGE":                 errs.CodeInvalidOrder,
	"SIZE_TOO_SMALL":                 errs.CodeInvalidOrder,
	"PRICE_OVER_LIQUIDATION":         errs.CodeInvalidOrder,
	"PRICE_OVER_BANKRUPT":            errs.CodeInvalidOrder,
	"ORDER_POC_IMMEDIATE":            errs.CodeInvalidOrder,
	"INCREASE_POSITION":              errs.CodeInvalidOrder,
	"CONTRACT_IN_DELISTING":          errs.CodeExchange,
	"INTERNAL":                       errs.CodeUnavailable,
	"SERVER_ERROR":                   errs.CodeUnavailable,
	"TOO_BUSY":                       errs.CodeUnavailable,
	"CROSS_ACCOUNT_NOT_FOUND":        errs.CodeExchange,
	"AUTO_TRIGGER_PRICE_LESS_LAST":   errs.CodeInvalidOrder,
	"AUTO_TRIGGER_PRICE_GREATE_LAST": errs.CodeInvalidOrder,
}

// classify inspects one response and returns the unified error it carries, or
// nil for success. Gate signals failure through the HTTP status plus a label
// object; successful bodies are arrays or objects without a label.
func classify(status int, raw []byte) error {
	payload, decodeErr := shared.DecodeObject(raw)
	var label, message string
	if decodeErr == nil {
		label = payload.StringOr("", "label")
		message = payload.StringOr("", "message", "detail")
	}
	if status >= 200 && status < 300 && label == "" {
		return nil
	}
	if label == "" {
		return errs.New(Venue, errs.CodeExchange,
			errs.WithHTTP(status),
			errs.WithRawMessage(strings.TrimSpace(truncateRaw(raw))))
	}
	code, ok := exactErrors[label]
	if !ok {
		code = errs.CodeExchange
	}
	opts := []errs.Option{
		errs.WithHTTP(status),
		errs.WithRawCode(label),
		errs.WithRawMessage(message),
	}
	if message != "" {
		opts = append(opts, errs.WithMessage(message))
	}
	return errs.New(Venue, code, opts...)
}

func truncateRaw(raw []byte) string {
	const max = 512
	s := strings.TrimSpace(string(raw))
	if len(s) > max {
		return s[:max]
	}
	return s
}
