// Package ledger implements the savings goal ledger.
//
// All operations are pure: they take a Goal by value and return the
// updated Goal together with an outcome. Callers own loading and
// persisting the goal collection.
package ledger

import (
	"errors"
	"time"

	"github.com/coinkeeper/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTargetAmountNotPositive = errors.New("goal target amounts must be larger than zero")
	ErrAmountNotPositive       = errors.New("deposit amounts must be larger than zero")
	ErrEntryNotFound           = errors.New("there is no deposit matching your query")
	ErrExceedsTarget           = errors.New("the new amount would exceed the goal target")
)

// Goal is a single savings target.
//
// CurrentAmount always equals the sum of all history entries and never
// exceeds TargetAmount. IsCompleted is derived from the two amounts and
// recomputed on every mutation.
type Goal struct {
	ID            uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // UUID for the goal
	Name          string          `json:"name" example:"New TV"`                             // Name of the goal
	Icon          string          `json:"icon" example:"💰"`                                  // Icon shown next to the goal
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"750"`                        // How much money should be saved
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"120"`                       // How much money has been saved so far
	TargetDate    *types.Day      `json:"targetDate" example:"2024-12-24"`                   // Optional day the goal should be reached
	CreatedAt     time.Time       `json:"createdAt" example:"2024-04-02T19:28:44.491514Z"`   // Time the goal was created
	IsCompleted   bool            `json:"isCompleted" example:"false"`                       // Whether the goal has been reached
	History       []Entry         `json:"history"`                                           // Deposits, newest first
}

// Entry is one recorded deposit towards a goal.
type Entry struct {
	ID     uuid.UUID       `json:"id" example:"d576df3c-e0b1-452c-98cd-a5e1d8a4face"` // UUID for the deposit
	Day    types.Day       `json:"date" example:"2024-04-02"`                         // Day the deposit is attributed to
	Amount decimal.Decimal `json:"amount" example:"50"`                               // Deposited amount
}

// DepositResult reports what a Deposit call did.
type DepositResult struct {
	Applied       bool            // false when the deposit was a no-op
	Amount        decimal.Decimal // the amount actually added, after clamping
	JustCompleted bool            // true when this deposit completed the goal
}

// New returns a goal with no savings and an empty history.
func New(name, icon string, target decimal.Decimal, targetDate *types.Day, createdAt time.Time) (Goal, error) {
	if !target.IsPositive() {
		return Goal{}, ErrTargetAmountNotPositive
	}

	return Goal{
		ID:            uuid.New(),
		Name:          name,
		Icon:          icon,
		TargetAmount:  target,
		CurrentAmount: decimal.Zero,
		TargetDate:    targetDate,
		CreatedAt:     createdAt,
		History:       []Entry{},
	}, nil
}

// NewWithHistory returns a goal seeded with an existing deposit history.
// The current amount is recomputed from the history, it is not taken over
// from the caller. This is used when migrating legacy documents.
func NewWithHistory(name, icon string, target decimal.Decimal, targetDate *types.Day, createdAt time.Time, history []Entry) (Goal, error) {
	goal, err := New(name, icon, target, targetDate, createdAt)
	if err != nil {
		return Goal{}, err
	}

	goal.History = append([]Entry{}, history...)
	goal.CurrentAmount = sum(goal.History)
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	return goal, nil
}

// Deposit adds money to the goal.
//
// The amount is clamped so that the current amount never exceeds the
// target. When nothing remains to be saved or the amount is not positive,
// the goal is returned unchanged and the result reports Applied == false.
// JustCompleted is only true on the transition to the completed state, so
// callers can run one-time completion bookkeeping exactly once.
func Deposit(goal Goal, amount decimal.Decimal, day types.Day) (Goal, DepositResult) {
	applied := decimal.Min(amount, goal.TargetAmount.Sub(goal.CurrentAmount))
	if !applied.IsPositive() {
		return goal, DepositResult{Applied: false, Amount: decimal.Zero}
	}

	wasCompleted := goal.IsCompleted

	goal.CurrentAmount = goal.CurrentAmount.Add(applied)
	goal.History = append([]Entry{{
		ID:     uuid.New(),
		Day:    day,
		Amount: applied,
	}}, goal.History...)
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)

	return goal, DepositResult{
		Applied:       true,
		Amount:        applied,
		JustCompleted: !wasCompleted && goal.IsCompleted,
	}
}

// EditEntry replaces the amount of a recorded deposit.
//
// An edit that would push the current amount past the target is rejected
// and the goal is returned unchanged. This mirrors how deposits behave
// from the user's point of view, but note the asymmetry with
// EditParameters, which clamps instead of rejecting.
func EditEntry(goal Goal, entryID uuid.UUID, newAmount decimal.Decimal) (Goal, error) {
	if !newAmount.IsPositive() {
		return goal, ErrAmountNotPositive
	}

	idx := indexOf(goal.History, entryID)
	if idx < 0 {
		return goal, ErrEntryNotFound
	}

	delta := newAmount.Sub(goal.History[idx].Amount)
	if goal.CurrentAmount.Add(delta).GreaterThan(goal.TargetAmount) {
		return goal, ErrExceedsTarget
	}

	history := append([]Entry{}, goal.History...)
	history[idx].Amount = newAmount

	goal.History = history
	goal.CurrentAmount = goal.CurrentAmount.Add(delta)
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	return goal, nil
}

// DeleteEntry removes a recorded deposit and subtracts its amount.
func DeleteEntry(goal Goal, entryID uuid.UUID) (Goal, error) {
	idx := indexOf(goal.History, entryID)
	if idx < 0 {
		return goal, ErrEntryNotFound
	}

	history := append([]Entry{}, goal.History...)
	amount := history[idx].Amount
	history = append(history[:idx], history[idx+1:]...)

	goal.History = history
	goal.CurrentAmount = goal.CurrentAmount.Sub(amount)
	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	return goal, nil
}

// EditParameters replaces the goal metadata and target.
//
// When the new target is below the current amount, the current amount is
// clamped down to it. The clamped difference is not removed from the
// history; the history then sums to more than the current amount until
// entries are deleted, which matches the behavior users expect when they
// lower a target after saving.
func EditParameters(goal Goal, name string, target decimal.Decimal, icon string, targetDate *types.Day) (Goal, error) {
	if !target.IsPositive() {
		return goal, ErrTargetAmountNotPositive
	}

	goal.Name = name
	goal.TargetAmount = target
	goal.Icon = icon
	goal.TargetDate = targetDate

	if goal.CurrentAmount.GreaterThan(goal.TargetAmount) {
		goal.CurrentAmount = goal.TargetAmount
	}

	goal.IsCompleted = goal.CurrentAmount.GreaterThanOrEqual(goal.TargetAmount)
	return goal, nil
}

// RemainingAmount returns how much is still missing to reach the target.
func (g Goal) RemainingAmount() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// Progress returns the savings progress in the range [0, 1].
func (g Goal) Progress() float64 {
	if !g.TargetAmount.IsPositive() {
		return 0
	}

	f, _ := g.CurrentAmount.Div(g.TargetAmount).Float64()
	return f
}

// DaysLeft returns the number of days until the target date, evaluated
// against the day passed in. It is 0 once the target date has passed.
// The second return value is false when the goal has no target date.
//
// Since "today" moves, this must be recomputed per query and never cached.
func (g Goal) DaysLeft(today types.Day) (int, bool) {
	if g.TargetDate == nil {
		return 0, false
	}

	days := today.DaysUntil(*g.TargetDate)
	return max(0, days), true
}

func indexOf(history []Entry, id uuid.UUID) int {
	for i, entry := range history {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func sum(history []Entry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range history {
		total = total.Add(entry.Amount)
	}
	return total
}
