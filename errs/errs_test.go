package errs

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorFormattingIncludesVenueAndRawBody(t *testing.T) {
	err := New(
		"bitmart",
		CodeInsufficientFunds,
		WithHTTP(400),
		WithMessage("order rejected"),
		WithRawCode("50020"),
		WithRawMessage("Balance not enough"),
		WithCause(errors.New("bitmart http 400")),
	)

	out := err.Error()
	if !strings.Contains(out, "venue=bitmart") {
		t.Fatalf("expected venue marker in error string: %s", out)
	}
	if !strings.Contains(out, "code=insufficient_funds") {
		t.Fatalf("expected unified code in error string: %s", out)
	}
	if !strings.Contains(out, "http=400") {
		t.Fatalf("expected http status in error string: %s", out)
	}
	if !strings.Contains(out, `raw_code="50020"`) {
		t.Fatalf("expected raw code in error string: %s", out)
	}
	if !strings.Contains(out, `raw_msg="Balance not enough"`) {
		t.Fatalf("expected raw message in error string: %s", out)
	}
	if !strings.Contains(out, `cause="bitmart http 400"`) {
		t.Fatalf("expected wrapped cause in error string: %s", out)
	}
}

func TestErrorsIsMatchesOnCode(t *testing.T) {
	err := New("gateio", CodeOrderNotFound, WithRawCode("ORDER_NOT_FOUND"))
	if !errors.Is(err, New("", CodeOrderNotFound)) {
		t.Fatal("expected errors.Is to match on unified code")
	}
	if errors.Is(err, New("", CodeAuth)) {
		t.Fatal("errors.Is must not match a different code")
	}
}

func TestUnwrapReturnsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := New("gateio", CodeUnavailable, WithCause(cause))
	if !errors.Is(err, cause) {
		t.Fatal("expected the cause to be reachable via errors.Is")
	}
}

func TestCodeOfFallsBackToExchange(t *testing.T) {
	if CodeOf(errors.New("plain")) != CodeExchange {
		t.Fatal("plain errors classify as exchange_error")
	}
	if CodeOf(New("bitmart", CodeBadSymbol)) != CodeBadSymbol {
		t.Fatal("envelope code lost")
	}
}
