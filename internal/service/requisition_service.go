package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"stockledger/internal/model"
	"stockledger/internal/queuelock"
	"stockledger/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// History sort orders
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortItem   = "item"
)

// DTOs
type CartLine struct {
	Item string          `json:"item" validate:"required,max=255"`
	Qty  decimal.Decimal `json:"qty"`
}

// Batch is the Pending part of one submission as the supplier sees it.
type Batch struct {
	OrderID string            `json:"order_id"`
	From    string            `json:"from"`
	Date    string            `json:"date"`
	Lines   []model.OrderLine `json:"lines"`
}

type LineOutcome struct {
	LineID      string            `json:"line_id"`
	Item        string            `json:"item"`
	Sent        decimal.Decimal   `json:"sent"`
	Status      model.OrderStatus `json:"status"`
	BackorderID string            `json:"backorder_id,omitempty"`
	Error       string            `json:"error,omitempty"`
}

type DispatchResult struct {
	OrderID string        `json:"order_id"`
	Lines   []LineOutcome `json:"lines"`
	Applied int           `json:"applied"`
	Failed  int           `json:"failed"`
}

type HistoryFilter struct {
	Statuses []model.OrderStatus
	Item     string
	Sort     string
}

type RequisitionService interface {
	AddToCart(ctx context.Context, line CartLine) ([]CartLine, error)
	RemoveFromCart(ctx context.Context, index int) ([]CartLine, error)
	ClearCart(ctx context.Context)
	Cart(ctx context.Context) []CartLine
	SubmitCart(ctx context.Context) ([]model.OrderLine, error)
	Submit(ctx context.Context, lines []CartLine) ([]model.OrderLine, error)

	PendingBatches(ctx context.Context) ([]Batch, error)
	Dispatch(ctx context.Context, orderID string, send map[string]decimal.Decimal) (DispatchResult, error)

	Accept(ctx context.Context, lineID string) (model.OrderLine, error)
	RequestFollowUp(ctx context.Context, lineID string) (model.OrderLine, error)
	Outstanding(ctx context.Context) ([]model.OrderLine, error)
	History(ctx context.Context, filter HistoryFilter) ([]model.OrderLine, error)
}

type requisitionService struct {
	stock     StockService
	orders    repository.OrderRepository
	txManager repository.TransactionManager
	lock      queuelock.Locker
	clock     func() time.Time
	logger    logrus.FieldLogger

	cartMu sync.Mutex
	cart   []CartLine
}

func NewRequisitionService(
	stock StockService,
	orders repository.OrderRepository,
	txManager repository.TransactionManager,
	lock queuelock.Locker,
	clock func() time.Time,
	logger logrus.FieldLogger,
) RequisitionService {
	if clock == nil {
		clock = time.Now
	}
	return &requisitionService{
		stock:     stock,
		orders:    orders,
		txManager: txManager,
		lock:      lock,
		clock:     clock,
		logger:    logger.WithFields(logrus.Fields{"module": "requisition", "location": stock.Location()}),
	}
}

func newOrderID() string {
	return strings.ToUpper(strings.SplitN(uuid.NewString(), "-", 2)[0])
}

func (s *requisitionService) validateLine(ctx context.Context, line CartLine) (CartLine, error) {
	line.Item = strings.TrimSpace(line.Item)
	if err := validateStruct(line); err != nil {
		return line, err
	}
	if err := requirePositive("qty", line.Qty); err != nil {
		return line, err
	}
	if _, err := s.stock.Item(ctx, line.Item); err != nil {
		return line, err
	}
	return line, nil
}

func (s *requisitionService) AddToCart(ctx context.Context, line CartLine) ([]CartLine, error) {
	line, err := s.validateLine(ctx, line)
	if err != nil {
		return nil, err
	}
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	s.cart = append(s.cart, line)
	return append([]CartLine(nil), s.cart...), nil
}

func (s *requisitionService) RemoveFromCart(_ context.Context, index int) ([]CartLine, error) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	if index < 0 || index >= len(s.cart) {
		return nil, fmt.Errorf("%w: no cart line at %d", ErrValidation, index)
	}
	s.cart = append(s.cart[:index], s.cart[index+1:]...)
	return append([]CartLine(nil), s.cart...), nil
}

func (s *requisitionService) ClearCart(_ context.Context) {
	s.cartMu.Lock()
	s.cart = nil
	s.cartMu.Unlock()
}

func (s *requisitionService) Cart(_ context.Context) []CartLine {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()
	return append([]CartLine{}, s.cart...)
}

// SubmitCart sends the draft lines and clears the cart only once they are stored.
func (s *requisitionService) SubmitCart(ctx context.Context) ([]model.OrderLine, error) {
	s.cartMu.Lock()
	defer s.cartMu.Unlock()

	if len(s.cart) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	lines, err := s.Submit(ctx, s.cart)
	if err != nil {
		return nil, err
	}
	s.cart = nil
	return lines, nil
}

func (s *requisitionService) Submit(ctx context.Context, draft []CartLine) ([]model.OrderLine, error) {
	if len(draft) == 0 {
		return nil, fmt.Errorf("%w: at least one line is required", ErrValidation)
	}
	checked := make([]CartLine, 0, len(draft))
	for _, line := range draft {
		line, err := s.validateLine(ctx, line)
		if err != nil {
			return nil, err
		}
		checked = append(checked, line)
	}

	now := s.clock()
	orderID := newOrderID()
	created := make([]model.OrderLine, 0, len(checked))
	for _, line := range checked {
		created = append(created, model.OrderLine{
			LineID:    uuid.NewString(),
			OrderID:   orderID,
			Date:      now.Format(model.DateLayout),
			From:      s.stock.Location(),
			Item:      line.Item,
			Qty:       line.Qty,
			Status:    model.OrderStatusPending,
			UpdatedAt: now,
		})
	}

	err := s.withQueue(ctx, func(lines []model.OrderLine) ([]model.OrderLine, error) {
		return append(lines, created...), nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{"order_id": orderID, "lines": len(created)}).Info("requisition submitted")
	return created, nil
}

func (s *requisitionService) PendingBatches(ctx context.Context) ([]Batch, error) {
	lines, err := s.orders.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	index := make(map[string]int)
	var batches []Batch
	for _, l := range lines {
		if l.Status != model.OrderStatusPending {
			continue
		}
		key := l.OrderID + "\x00" + l.From + "\x00" + l.Date
		idx, ok := index[key]
		if !ok {
			idx = len(batches)
			index[key] = idx
			batches = append(batches, Batch{OrderID: l.OrderID, From: l.From, Date: l.Date})
		}
		batches[idx].Lines = append(batches[idx].Lines, l)
	}

	sort.SliceStable(batches, func(i, j int) bool {
		return batches[i].Date > batches[j].Date
	})
	return batches, nil
}

// Dispatch sends stock for the Pending lines of a batch. Quantities are checked
// before anything changes; after that each line is its own unit and a failing
// line does not roll back the ones already sent.
func (s *requisitionService) Dispatch(ctx context.Context, orderID string, send map[string]decimal.Decimal) (DispatchResult, error) {
	result := DispatchResult{OrderID: orderID}

	release, err := s.acquire(ctx)
	if err != nil {
		return result, err
	}
	defer release()

	lines, err := s.orders.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load orders: %w", err)
	}

	var pending []string
	for _, l := range lines {
		if l.OrderID == orderID && l.Status == model.OrderStatusPending {
			pending = append(pending, l.LineID)
		}
	}
	if len(pending) == 0 {
		return result, fmt.Errorf("%w: no pending lines for %s", ErrBatchNotFound, orderID)
	}

	for lineID, q := range send {
		idx := model.FindLine(lines, lineID)
		if idx < 0 || lines[idx].OrderID != orderID || lines[idx].Status != model.OrderStatusPending {
			return result, fmt.Errorf("%w: line %s is not a pending line of %s", ErrValidation, lineID, orderID)
		}
		if q.IsNegative() || q.GreaterThan(lines[idx].Qty) {
			return result, fmt.Errorf("%w: send quantity %s for %s must be between 0 and %s",
				ErrValidation, q.String(), lines[idx].Item, lines[idx].Qty.String())
		}
		if err := requireScale("send quantity", q, QuantityScale); err != nil {
			return result, err
		}
	}

	now := s.clock()
	for _, lineID := range pending {
		q, ok := send[lineID]
		if !ok || q.IsZero() {
			continue
		}

		idx := model.FindLine(lines, lineID)
		line := lines[idx]
		outcome := LineOutcome{LineID: lineID, Item: line.Item, Sent: q}

		next, backorderID := splitLine(lines, idx, q, now)
		err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
			_, _, err := s.stock.ApplyDelta(txCtx, Delta{
				Item:   line.Item,
				Day:    now.Day(),
				Qty:    q.Neg(),
				Type:   model.DispatchEntryType(line.From),
				Target: model.TargetConsumption,
			})
			if err != nil {
				return err
			}
			return s.orders.Replace(txCtx, next)
		})
		if err != nil {
			outcome.Status = line.Status
			outcome.Error = err.Error()
			result.Failed++
			s.logger.WithFields(logrus.Fields{
				"order_id": orderID,
				"line_id":  lineID,
				"item":     line.Item,
			}).Warn("dispatch line failed: " + err.Error())
		} else {
			lines = next
			outcome.Status = model.OrderStatusInTransit
			outcome.BackorderID = backorderID
			result.Applied++
		}
		result.Lines = append(result.Lines, outcome)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": orderID,
		"applied":  result.Applied,
		"failed":   result.Failed,
	}).Info("batch dispatched")

	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d lines failed", ErrPartialBatch, result.Failed, result.Failed+result.Applied)
	}
	return result, nil
}

// splitLine returns a copy of lines with lines[idx] moved to In Transit for q.
// When q is short of the ordered quantity the remainder becomes a new Pending
// line right after it, and its id is returned.
func splitLine(lines []model.OrderLine, idx int, q decimal.Decimal, now time.Time) ([]model.OrderLine, string) {
	next := make([]model.OrderLine, 0, len(lines)+1)
	next = append(next, lines[:idx+1]...)

	original := lines[idx]
	sent := original
	sent.Qty = q
	sent.Status = model.OrderStatusInTransit
	sent.UpdatedAt = now
	next[idx] = sent

	var backorderID string
	if q.LessThan(original.Qty) {
		backorder := original
		backorder.LineID = uuid.NewString()
		backorder.Qty = original.Qty.Sub(q)
		backorder.Status = model.OrderStatusPending
		backorder.UpdatedAt = now
		backorderID = backorder.LineID
		next = append(next, backorder)
	}
	return append(next, lines[idx+1:]...), backorderID
}

// Accept credits this location with an In Transit line addressed to it and completes the line.
func (s *requisitionService) Accept(ctx context.Context, lineID string) (model.OrderLine, error) {
	var accepted model.OrderLine
	err := s.withQueueTx(ctx, func(txCtx context.Context, lines []model.OrderLine) ([]model.OrderLine, error) {
		idx, err := s.ownLine(lines, lineID)
		if err != nil {
			return nil, err
		}
		line := lines[idx]
		if !line.Status.CanAdvanceTo(model.OrderStatusCompleted) {
			return nil, fmt.Errorf("%w: line %s is %s", ErrInvalidTransition, lineID, line.Status)
		}

		now := s.clock()
		if _, _, err := s.stock.ApplyDelta(txCtx, Delta{
			Item:   line.Item,
			Day:    now.Day(),
			Qty:    line.Qty,
			Type:   model.EntryStockAccepted,
			Target: model.TargetReceipt,
		}); err != nil {
			return nil, err
		}

		line.Status = model.OrderStatusCompleted
		line.UpdatedAt = now
		lines[idx] = line
		accepted = line
		return lines, nil
	})
	if err != nil {
		return model.OrderLine{}, err
	}

	s.logger.WithFields(logrus.Fields{"line_id": lineID, "item": accepted.Item}).Info("stock accepted")
	return accepted, nil
}

func (s *requisitionService) RequestFollowUp(ctx context.Context, lineID string) (model.OrderLine, error) {
	var flagged model.OrderLine
	err := s.withQueue(ctx, func(lines []model.OrderLine) ([]model.OrderLine, error) {
		idx, err := s.ownLine(lines, lineID)
		if err != nil {
			return nil, err
		}
		if lines[idx].Status != model.OrderStatusPending {
			return nil, fmt.Errorf("%w: follow-up needs a pending line, %s is %s", ErrInvalidTransition, lineID, lines[idx].Status)
		}
		flagged = lines[idx]
		if flagged.FollowUp {
			return nil, nil
		}
		flagged.FollowUp = true
		flagged.UpdatedAt = s.clock()
		lines[idx] = flagged
		return lines, nil
	})
	if err != nil {
		return model.OrderLine{}, err
	}
	return flagged, nil
}

func (s *requisitionService) Outstanding(ctx context.Context) ([]model.OrderLine, error) {
	return s.History(ctx, HistoryFilter{
		Statuses: []model.OrderStatus{model.OrderStatusPending, model.OrderStatusInTransit},
		Sort:     SortLatest,
	})
}

func (s *requisitionService) History(ctx context.Context, filter HistoryFilter) ([]model.OrderLine, error) {
	lines, err := s.orders.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	needle := strings.ToLower(strings.TrimSpace(filter.Item))
	out := make([]model.OrderLine, 0)
	for _, l := range lines {
		if l.From != s.stock.Location() {
			continue
		}
		if len(filter.Statuses) > 0 && !hasStatus(filter.Statuses, l.Status) {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(l.Item), needle) {
			continue
		}
		out = append(out, l)
	}

	switch filter.Sort {
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date < out[j].Date
			}
			return out[i].Seq < out[j].Seq
		})
	case SortItem:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Item) < strings.ToLower(out[j].Item)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Date != out[j].Date {
				return out[i].Date > out[j].Date
			}
			return out[i].Seq > out[j].Seq
		})
	}
	return out, nil
}

func hasStatus(statuses []model.OrderStatus, status model.OrderStatus) bool {
	for _, st := range statuses {
		if st == status {
			return true
		}
	}
	return false
}

// ownLine finds a line requested by this location.
func (s *requisitionService) ownLine(lines []model.OrderLine, lineID string) (int, error) {
	idx := model.FindLine(lines, lineID)
	if idx < 0 {
		return -1, fmt.Errorf("%w: %s", ErrLineNotFound, lineID)
	}
	if lines[idx].From != s.stock.Location() {
		return -1, fmt.Errorf("%w: line %s belongs to %s", ErrInvalidTransition, lineID, lines[idx].From)
	}
	return idx, nil
}

func (s *requisitionService) acquire(ctx context.Context) (func(), error) {
	release, err := s.lock.Acquire(ctx)
	if errors.Is(err, queuelock.ErrBusy) {
		return nil, fmt.Errorf("%w: %v", ErrQueueBusy, err)
	}
	if err != nil {
		return nil, err
	}
	return release, nil
}

// withQueue runs one locked read-modify-write of the order queue. fn returning
// nil lines means nothing to write.
func (s *requisitionService) withQueue(ctx context.Context, fn func(lines []model.OrderLine) ([]model.OrderLine, error)) error {
	return s.withQueueTx(ctx, func(_ context.Context, lines []model.OrderLine) ([]model.OrderLine, error) {
		return fn(lines)
	})
}

func (s *requisitionService) withQueueTx(ctx context.Context, fn func(txCtx context.Context, lines []model.OrderLine) ([]model.OrderLine, error)) error {
	release, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		lines, err := s.orders.Load(txCtx)
		if err != nil {
			return fmt.Errorf("load orders: %w", err)
		}
		next, err := fn(txCtx, lines)
		if err != nil || next == nil {
			return err
		}
		if err := s.orders.Replace(txCtx, next); err != nil {
			return fmt.Errorf("save orders: %w", err)
		}
		return nil
	})
}
