// Package models defines the core domain models for Cash Crush.
//
// # Models
//
//   - User: an account, created on the first authenticated request
//   - Expense: an amount paid by one user and split among participants
//   - Split: one participant's share of an expense
//   - Settlement: a payment from one user to another that reduces what is owed
//   - Group: a named set of members whose expenses are tracked together
//
// # Conventions
//
//  1. Relationships are ID strings, never pointers or embedded values.
//  2. Money is decimal.Decimal, never float64.
//  3. Timestamps are Unix milliseconds.
//  4. An empty GroupID means the record is personal (between users, outside any group).
package models
