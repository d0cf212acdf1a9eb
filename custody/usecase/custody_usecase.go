package custodyusecase

import (
	"context"
	"sync"

	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/whetstoneresearch/doppler-sub006/custody/types"
	"github.com/whetstoneresearch/doppler-sub006/domain"
)

// LedgerImpl is an in-memory custody ledger keyed by token and account. The
// auction's outgoing transfers all debit one source account, funded up front
// with the auction supply.
type LedgerImpl struct {
	lock sync.RWMutex

	sourceAccount string

	// balances maps token to account to balance.
	balances map[string]map[string]osmomath.Int
}

var _ domain.TransferExecutor = &LedgerImpl{}

// New creates a new custody ledger whose transfers debit sourceAccount.
func New(sourceAccount string) *LedgerImpl {
	return &LedgerImpl{
		sourceAccount: sourceAccount,
		balances:      make(map[string]map[string]osmomath.Int),
	}
}

// Fund credits the account with the given amount of token.
func (l *LedgerImpl) Fund(token, account string, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.InvalidAmountError{Amount: amount}
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	l.credit(token, account, amount)
	return nil
}

// Transfer implements domain.TransferExecutor.
func (l *LedgerImpl) Transfer(ctx context.Context, token, to string, amount osmomath.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return types.InvalidAmountError{Amount: amount}
	}

	l.lock.Lock()
	defer l.lock.Unlock()

	available := l.balanceOf(token, l.sourceAccount)
	if available.LT(amount) {
		return types.InsufficientBalanceError{
			Token:     token,
			Account:   l.sourceAccount,
			Requested: amount,
			Available: available,
		}
	}

	l.balances[token][l.sourceAccount] = available.Sub(amount)
	l.credit(token, to, amount)

	return nil
}

// BalanceOf returns the account's balance of token, zero when unknown.
func (l *LedgerImpl) BalanceOf(token, account string) osmomath.Int {
	l.lock.RLock()
	defer l.lock.RUnlock()

	return l.balanceOf(token, account)
}

// TotalSupply returns the sum of all account balances of token. Transfers
// move value between accounts, so the total per token only changes through
// funding.
func (l *LedgerImpl) TotalSupply(token string) osmomath.Int {
	l.lock.RLock()
	defer l.lock.RUnlock()

	total := osmomath.ZeroInt()
	for _, balance := range l.balances[token] {
		total = total.Add(balance)
	}
	return total
}

func (l *LedgerImpl) balanceOf(token, account string) osmomath.Int {
	if accounts, ok := l.balances[token]; ok {
		if balance, ok := accounts[account]; ok {
			return balance
		}
	}
	return osmomath.ZeroInt()
}

func (l *LedgerImpl) credit(token, account string, amount osmomath.Int) {
	accounts, ok := l.balances[token]
	if !ok {
		accounts = make(map[string]osmomath.Int)
		l.balances[token] = accounts
	}

	balance, ok := accounts[account]
	if !ok {
		balance = osmomath.ZeroInt()
	}
	accounts[account] = balance.Add(amount)
}
