// Package schema defines the venue-agnostic records returned by every adapter.
//
// All numeric fields are decimal strings; an empty string means the venue did
// not supply the value and nothing could be derived. Records are constructed
// fresh per response and never mutated afterwards.
package schema

// MarketType classifies a tradable instrument.
type MarketType string

const (
	// MarketSpot is a plain spot market.
	MarketSpot MarketType = "spot"
	// MarketMargin is a leveraged spot market.
	MarketMargin MarketType = "margin"
	// MarketSwap is a perpetual contract.
	MarketSwap MarketType = "swap"
	// MarketFuture is a dated contract.
	MarketFuture MarketType = "future"
	// MarketOption is an options contract.
	MarketOption MarketType = "option"
	// MarketFunding is not a tradable market type; it names the funding
	// wallet for balance routing.
	MarketFunding MarketType = "funding"
)

// OrderSide is the direction of an order or trade.
type OrderSide string

const (
	// SideBuy buys the base currency.
	SideBuy OrderSide = "buy"
	// SideSell sells the base currency.
	SideSell OrderSide = "sell"
)

// OrderType is the unified order type.
type OrderType string

const (
	// OrderLimit rests at a price.
	OrderLimit OrderType = "limit"
	// OrderMarket executes immediately at market.
	OrderMarket OrderType = "market"
)

// OrderStatus is one of the four canonical states every venue code maps into.
type OrderStatus string

const (
	// StatusOpen is live on the book or pending trigger.
	StatusOpen OrderStatus = "open"
	// StatusClosed is fully filled.
	StatusClosed OrderStatus = "closed"
	// StatusCanceled was withdrawn before completion.
	StatusCanceled OrderStatus = "canceled"
	// StatusRejected was refused by the venue.
	StatusRejected OrderStatus = "rejected"
)

// TimeInForce is the unified time-in-force flag.
type TimeInForce string

const (
	// TIFGoodTillCancel rests until canceled.
	TIFGoodTillCancel TimeInForce = "GTC"
	// TIFImmediateOrCancel fills what it can and cancels the rest.
	TIFImmediateOrCancel TimeInForce = "IOC"
	// TIFFillOrKill fills completely or not at all.
	TIFFillOrKill TimeInForce = "FOK"
	// TIFPostOnly rests or is rejected, never takes.
	TIFPostOnly TimeInForce = "PO"
)

// MarginMode selects the collateral model for leveraged trading.
type MarginMode string

const (
	// MarginCross shares one collateral pool across positions.
	MarginCross MarginMode = "cross"
	// MarginIsolated ring-fences collateral per position.
	MarginIsolated MarginMode = "isolated"
)

// PositionSide is the direction of an open contract position.
type PositionSide string

const (
	// PositionLong profits when price rises.
	PositionLong PositionSide = "long"
	// PositionShort profits when price falls.
	PositionShort PositionSide = "short"
)

// LiquidityRole records whether a fill made or took liquidity.
type LiquidityRole string

const (
	// RoleMaker provided liquidity.
	RoleMaker LiquidityRole = "maker"
	// RoleTaker removed liquidity.
	RoleTaker LiquidityRole = "taker"
)

// Fee describes a fee charge in a specific currency.
type Fee struct {
	Currency string `json:"currency"`
	Cost     string `json:"cost"`
	Rate     string `json:"rate,omitempty"`
}
