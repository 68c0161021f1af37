// Package payment models payment gateway transactions: the preference created for
// an order, and the canonical payment record later fetched from the gateway.
package payment
