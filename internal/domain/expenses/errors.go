package expenses

import "errors"

var (
	ErrBudgetNotFound  = errors.New("budget not found")
	ErrExpenseNotFound = errors.New("expense not found")
)
