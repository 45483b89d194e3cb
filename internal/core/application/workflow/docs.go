// Package workflow is the single entry point to the order fulfillment core.
//
// The Facade bundles every command and query the HTTP adapter, the CLI and the
// scheduled jobs need. Identifiers cross it as strings and money as minor units,
// so callers never construct domain values themselves. Every failure leaves the
// Facade as a *workflow.Error carrying one of four codes:
//
//	NOT_FOUND      the order or packing session does not exist
//	INVALID_STATE  the status machine forbids the change, or a concurrent change won
//	VALIDATION     the input is malformed
//	STORE_ERROR    the store failed; the only retryable code
//
// A composite write that could not be confirmed as all-or-nothing is a
// STORE_ERROR with a PartialFailure detail.
package workflow
