package api

import "github.com/shopspring/decimal"

type Split struct {
	UserID string          `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        int64           `json:"date"`
	PaidBy      string          `json:"paidBy"`
	SplitType   string          `json:"splitType"`
	Splits      []Split         `json:"splits"`
	GroupID     string          `json:"groupId,omitempty"`
	CreatedBy   string          `json:"createdBy"`
	CreatedAt   int64           `json:"createdAt"`
}

// Share is one participant's input to a percentage or exact split.
// Equal splits only need UserID.
type Share struct {
	UserID     string          `json:"userId"`
	Percentage decimal.Decimal `json:"percentage"`
	Amount     decimal.Decimal `json:"amount"`
}

type PreviewSplitRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	PaidBy    string          `json:"paidBy"`
	SplitType string          `json:"splitType"`
	Shares    []Share         `json:"shares"`
}

type PreviewSplitResponse struct {
	Splits []Split `json:"splits"`
}

// CreateExpenseRequest records an expense. Either Splits (concrete amounts) or
// Shares (computed from SplitType) must be given. Paid flags from the client
// are ignored.
type CreateExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category,omitempty"`
	Date        int64           `json:"date,omitempty"`
	PaidBy      string          `json:"paidBy,omitempty"`
	SplitType   string          `json:"splitType"`
	Splits      []Split         `json:"splits,omitempty"`
	Shares      []Share         `json:"shares,omitempty"`
	GroupID     string          `json:"groupId,omitempty"`
}

type CreateExpenseResponse struct {
	Expense Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type DeleteExpenseResponse struct{}

// ExpenseStanding is an expense with its settled state derived at read time.
type ExpenseStanding struct {
	Expense     Expense         `json:"expense"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Settled     bool            `json:"settled"`
}

type GetExpensesBetweenUsersRequest struct {
	UserID string `json:"userId"`
}

type GetExpensesBetweenUsersResponse struct {
	Counterpart User              `json:"counterpart"`
	Balance     Balance           `json:"balance"`
	Expenses    []ExpenseStanding `json:"expenses"`
	Settlements []Settlement      `json:"settlements"`
}

type ListGroupExpensesRequest struct {
	GroupID string `json:"groupId"`
}

type ListGroupExpensesResponse struct {
	Expenses []Expense `json:"expenses"`
}
