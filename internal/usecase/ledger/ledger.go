package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/txledger/internal/domain"
)

// Ledger replays transaction records against per-client accounts. It owns the
// transaction history (deposits and withdrawals, keyed by transaction id) and
// the account map (keyed by client id); nothing else reads or mutates them.
//
// Processing is strictly single-threaded: records are applied in arrival
// order and the maps are never shared, so no locking is needed.
type Ledger struct {
	transactions map[uint32]*domain.Transaction
	accounts     map[uint16]*domain.Account
	order        []uint16 // client ids in first-seen order, for deterministic output

	logger       *zap.SugaredLogger
	publisher    domain.EventPublisher
	enforceLocks bool
}

// NewLedger creates a Ledger instance. The publisher may be nil, in which
// case no events are emitted. When enforceLocks is true, deposits,
// withdrawals and disputes against a locked account are rejected; the default
// behavior records the lock without gating further mutations.
func NewLedger(logger *zap.SugaredLogger, publisher domain.EventPublisher, enforceLocks bool) *Ledger {
	return &Ledger{
		transactions: make(map[uint32]*domain.Transaction),
		accounts:     make(map[uint16]*domain.Account),
		logger:       logger,
		publisher:    publisher,
		enforceLocks: enforceLocks,
	}
}

// Process applies a single transaction record. Invalid or semantically
// rejected operations emit a diagnostic and leave state unchanged; Process
// never fails the run.
func (l *Ledger) Process(ctx context.Context, tx *domain.Transaction) {
	switch tx.Type {
	case domain.TypeDeposit:
		l.deposit(tx)
	case domain.TypeWithdrawal:
		l.withdraw(tx)
	case domain.TypeDispute:
		l.dispute(tx)
	case domain.TypeResolve:
		l.resolve(tx)
	case domain.TypeChargeback:
		l.chargeback(ctx, tx)
	default:
		l.logger.Warnw("skipping record with unknown transaction type",
			"type", tx.Type,
			"client", tx.ClientID,
			"tx", tx.TxID,
		)
	}
}

// GetAccount returns a snapshot of the client's account. The second return
// value is false if the client has never successfully deposited.
func (l *Ledger) GetAccount(clientID uint16) (domain.Account, bool) {
	account, ok := l.accounts[clientID]
	if !ok {
		return domain.Account{}, false
	}
	return *account, true
}

// Accounts returns snapshots of all known accounts in the order the accounts
// were first created.
func (l *Ledger) Accounts() []domain.Account {
	snapshots := make([]domain.Account, 0, len(l.order))
	for _, clientID := range l.order {
		snapshots = append(snapshots, *l.accounts[clientID])
	}
	return snapshots
}

// deposit credits the client's available funds, creating the account on the
// client's first deposit. Duplicate transaction ids overwrite the earlier
// history entry rather than being rejected.
func (l *Ledger) deposit(tx *domain.Transaction) {
	if l.rejectedByLock(tx) {
		return
	}

	l.record(tx)

	account, ok := l.accounts[tx.ClientID]
	if !ok {
		account = domain.NewAccount(tx.ClientID)
		l.accounts[tx.ClientID] = account
		l.order = append(l.order, tx.ClientID)
	}

	account.Available = account.Available.Add(tx.Amount)
	account.Total = account.Available.Add(account.Held)
}

// withdraw debits the client's available funds. The transaction is recorded
// in history even when rejected, preserving a reference for a later dispute.
func (l *Ledger) withdraw(tx *domain.Transaction) {
	if l.rejectedByLock(tx) {
		return
	}

	l.record(tx)

	account, ok := l.accounts[tx.ClientID]
	if !ok {
		return
	}

	if account.Available.LessThan(tx.Amount) {
		l.logger.Warnw("withdrawal rejected: insufficient available funds",
			"client", tx.ClientID,
			"amount", tx.Amount,
			"available", account.Available,
		)
		return
	}

	account.Available = account.Available.Sub(tx.Amount)
	account.Total = account.Total.Sub(tx.Amount)
}

// dispute freezes the referenced transaction's amount. The disputed flag is
// set before the funds check, so a dispute that fails for insufficient
// available funds still marks the transaction as disputed.
func (l *Ledger) dispute(tx *domain.Transaction) {
	recorded, ok := l.transactions[tx.TxID]
	if !ok {
		l.logger.Warnw("dispute references unknown transaction",
			"client", tx.ClientID,
			"tx", tx.TxID,
		)
		return
	}

	// Cross-client disputes are a silent no-op: one client must not be able
	// to freeze another client's funds.
	if recorded.ClientID != tx.ClientID {
		return
	}

	if l.rejectedByLock(tx) {
		return
	}

	account, ok := l.accounts[tx.ClientID]
	if !ok {
		return
	}

	recorded.Disputed = true

	if account.Available.GreaterThan(recorded.Amount) {
		account.Available = account.Available.Sub(recorded.Amount)
		account.Held = account.Held.Add(recorded.Amount)
		return
	}

	l.logger.Warnw("dispute rejected: insufficient available funds",
		"client", tx.ClientID,
		"tx", tx.TxID,
		"amount", recorded.Amount,
		"available", account.Available,
	)
}

// resolve releases held funds back to available. The disputed flag is cleared
// unconditionally once the transaction is found and owned by the client, so a
// second resolve of the same transaction is a no-op.
func (l *Ledger) resolve(tx *domain.Transaction) {
	recorded, ok := l.transactions[tx.TxID]
	if !ok {
		l.logger.Warnw("resolve references unknown transaction",
			"client", tx.ClientID,
			"tx", tx.TxID,
		)
		return
	}

	if recorded.ClientID != tx.ClientID {
		return
	}

	account, ok := l.accounts[tx.ClientID]
	if !ok {
		return
	}

	if recorded.Disputed && account.Held.GreaterThanOrEqual(recorded.Amount) {
		account.Available = account.Available.Add(recorded.Amount)
		account.Held = account.Held.Sub(recorded.Amount)
	} else {
		l.logger.Warnw("resolve rejected: transaction not disputed or insufficient held funds",
			"client", tx.ClientID,
			"tx", tx.TxID,
			"amount", recorded.Amount,
			"held", account.Held,
		)
	}

	recorded.Disputed = false
}

// chargeback removes held funds from the account entirely and locks it.
// Mirrors resolve: the disputed flag is cleared unconditionally once the
// transaction is found and owned.
func (l *Ledger) chargeback(ctx context.Context, tx *domain.Transaction) {
	recorded, ok := l.transactions[tx.TxID]
	if !ok {
		l.logger.Warnw("chargeback references unknown transaction",
			"client", tx.ClientID,
			"tx", tx.TxID,
		)
		return
	}

	if recorded.ClientID != tx.ClientID {
		return
	}

	account, ok := l.accounts[tx.ClientID]
	if !ok {
		return
	}

	if recorded.Disputed && account.Held.GreaterThanOrEqual(recorded.Amount) {
		account.Total = account.Total.Sub(recorded.Amount)
		account.Held = account.Held.Sub(recorded.Amount)
		account.Locked = true
		l.publishLocked(ctx, tx.ClientID, tx.TxID, recorded.Amount)
	} else {
		l.logger.Warnw("chargeback rejected: transaction not disputed or insufficient held funds",
			"client", tx.ClientID,
			"tx", tx.TxID,
			"amount", recorded.Amount,
			"held", account.Held,
		)
	}

	recorded.Disputed = false
}

// record stores a copy of the transaction in history. Only deposits and
// withdrawals reach this point; referencing records are never retained.
func (l *Ledger) record(tx *domain.Transaction) {
	recorded := *tx
	l.transactions[tx.TxID] = &recorded
}

// rejectedByLock rejects mutations of a locked account when lock enforcement
// is enabled. Resolve and chargeback are exempt: a dispute opened before the
// lock must still be able to settle.
func (l *Ledger) rejectedByLock(tx *domain.Transaction) bool {
	if !l.enforceLocks {
		return false
	}

	account, ok := l.accounts[tx.ClientID]
	if !ok || !account.Locked {
		return false
	}

	l.logger.Warnw("operation rejected: account is locked",
		"type", tx.Type,
		"client", tx.ClientID,
		"tx", tx.TxID,
	)
	return true
}

// publishLocked emits an AccountLocked event if a publisher is configured.
// Publish failures are diagnostics only; account state is already final.
func (l *Ledger) publishLocked(ctx context.Context, clientID uint16, txID uint32, amount decimal.Decimal) {
	if l.publisher == nil {
		return
	}

	event := domain.NewAccountLocked(clientID, txID, amount)
	if err := l.publisher.Publish(ctx, event); err != nil {
		l.logger.Warnw("failed to publish account locked event",
			"client", clientID,
			"tx", txID,
			"error", err,
		)
	}
}
