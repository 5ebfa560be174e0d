// Package models defines the core domain models for splitapp.
//
// # Models
//
//   - Group: a named set of members who share expenses
//   - Member: a participant identified by name, optionally with an email address
//   - Expense: money paid by one member on behalf of a subset of members
//   - ReceiptExtraction: structured receipt data returned by the extraction service
//
// Balances and settlements are derived values and live in the calculator package.
//
// # Design Principles
//
// 1. **Names as identity**: members are matched by name within a group; emails are
// only used for access checks and reminders
// 2. **Exact money**: amounts are shopspring/decimal values, never float64
// 3. **Immutable expenses**: there is no update path for an expense once stored
// 4. **Validate at the edge**: Validate methods reject bad input before it reaches the
// balance engine
package models
