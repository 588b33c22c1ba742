// Package service orchestrates the core components of the
// marketplace: listing registry, value ledger, WAL, outbox, and the
// external asset and value-transfer collaborators.
//
// MarketService is the ONLY write entry point. Every operation is an
// all-or-nothing transaction: precondition failures mutate nothing,
// and external calls run strictly after internal state is committed,
// so a reentrant call always observes settled state.
package service
