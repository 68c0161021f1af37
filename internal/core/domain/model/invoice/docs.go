// Package invoice models the fiscal invoice generated once per paid order.
//
// An invoice snapshots the emitter and receiver identities at generation time and
// splits the order total into net and VAT amounts. Issuing it is a pipeline of
// independent steps (document, authority submission, PDF artifact); the invoice
// status is the durable checkpoint between them:
//
//	PendingIssue ──> Issued ──> Sent ──┬──> Accepted
//	                                  └──> Rejected
package invoice
