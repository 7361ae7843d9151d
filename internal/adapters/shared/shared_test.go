package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHMACDeterminism(t *testing.T) {
	msg := "1717131391671#uid-1#symbol=BTC_USDT"
	first := HMACSHA256Hex(msg, "secret")
	second := HMACSHA256Hex(msg, "secret")
	require.Equal(t, first, second)
	require.NotEqual(t, first, HMACSHA256Hex(msg+"x", "secret"))
	require.NotEqual(t, first, HMACSHA256Hex(msg, "secret2"))
	require.Len(t, first, 64)
	require.Len(t, HMACSHA512Hex(msg, "secret"), 128)
}

func TestSHA512HexOfEmptyBody(t *testing.T) {
	// Known digest of the empty string; Gate signs this for body-less calls.
	require.Equal(t,
		"cf83e1357eefb8bdf1542850d66d8007d620e4050b5715dc83f4a921d36ce9ce47d0d13c5d85f2b0ff8318d2877eec2f63b931bd47417a81a538327af927da3e",
		SHA512Hex(""))
}

func TestEncodeQueryOrdering(t *testing.T) {
	q := EncodeQuery(map[string]string{"symbol": "BTC_USDT", "limit": "10", "after": "5"})
	require.Equal(t, "after=5&limit=10&symbol=BTC_USDT", q)
	require.Equal(t, "", EncodeQuery(nil))
}

func TestImplodePath(t *testing.T) {
	path, rest := ImplodePath("futures/{settle}/orders/{order_id}", map[string]string{
		"settle":   "usdt",
		"order_id": "123",
		"contract": "BTC_USDT",
	})
	require.Equal(t, "futures/usdt/orders/123", path)
	require.Equal(t, map[string]string{"contract": "BTC_USDT"}, rest)
}

func TestPayloadOrderedFallback(t *testing.T) {
	p, err := DecodeObject([]byte(`{"fillPrice":"30000.5","price":null,"ts":1717131391671,"size":12}`))
	require.NoError(t, err)

	price, ok := p.String("price", "fillPrice")
	require.True(t, ok)
	require.Equal(t, "30000.5", price)

	size, ok := p.String("size")
	require.True(t, ok)
	require.Equal(t, "12", size)

	_, ok = p.String("absent")
	require.False(t, ok)

	require.Equal(t, int64(1717131391671), p.Timestamp("ts"))
	require.Equal(t, int64(0), p.Timestamp("absent"))
}

func TestPayloadPreservesLargeIntegers(t *testing.T) {
	p, err := DecodeObject([]byte(`{"order_id":231116359426639123}`))
	require.NoError(t, err)
	id, ok := p.String("order_id")
	require.True(t, ok)
	require.Equal(t, "231116359426639123", id)
}

func TestTimestampSecondsFractional(t *testing.T) {
	p, err := DecodeObject([]byte(`{"create_time":"1643950262.68","zero":0}`))
	require.NoError(t, err)
	require.Equal(t, int64(1643950262680), p.TimestampSeconds("create_time"))
	require.Equal(t, int64(0), p.TimestampSeconds("zero"))
}

func TestPositionalAccess(t *testing.T) {
	list, err := DecodeList([]byte(`["AFIN_USDT","0.001047","11110","11.632170",1717122550482]`))
	require.NoError(t, err)
	sym, ok := StringAt(list, 0)
	require.True(t, ok)
	require.Equal(t, "AFIN_USDT", sym)
	ts, ok := Int64At(list, 4)
	require.True(t, ok)
	require.Equal(t, int64(1717122550482), ts)
	_, ok = StringAt(list, 9)
	require.False(t, ok)
}
