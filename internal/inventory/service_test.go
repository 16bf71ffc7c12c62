package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/tmachado/retailops/internal/inventory"
)

func TestService_Adjust(t *testing.T) {
	saleID := int64(7)

	type testCase struct {
		name      string
		policy    inventory.OversellPolicy
		params    inventory.AdjustParams
		setupMock func(store *inventory.MockStore, tx *inventory.MockAdjustTx)
		want      *inventory.Adjustment
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Decrement",
			params: inventory.AdjustParams{
				ProductID:     42,
				Delta:         -2,
				ReferenceType: inventory.RefSale,
				ReferenceID:   &saleID,
				Note:          "sale S-20260901-0001",
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(42)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(5), nil)
				tx.EXPECT().SetStock(gomock.Any(), int64(3)).Return(nil)
				tx.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *inventory.LedgerEntry) error {
						assert.Equal(t, int64(42), e.ProductID)
						assert.Equal(t, int64(5), e.PreviousStock)
						assert.Equal(t, int64(3), e.NewStock)
						assert.Equal(t, int64(-2), e.ChangeAmount)
						assert.Equal(t, inventory.RefSale, e.ReferenceType)
						require.NotNil(t, e.ReferenceID)
						assert.Equal(t, saleID, *e.ReferenceID)
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: &inventory.Adjustment{PreviousStock: 5, NewStock: 3, AppliedDelta: -2},
		},
		{
			name: "ClampedAtZero",
			params: inventory.AdjustParams{
				ProductID:     42,
				Delta:         -2,
				ReferenceType: inventory.RefSale,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(42)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(1), nil)
				tx.EXPECT().SetStock(gomock.Any(), int64(0)).Return(nil)
				tx.EXPECT().
					AppendEntry(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *inventory.LedgerEntry) error {
						// The recorded delta is what was applied, not requested.
						assert.Equal(t, int64(-1), e.ChangeAmount)
						assert.Equal(t, int64(0), e.NewStock)
						return nil
					})
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: &inventory.Adjustment{PreviousStock: 1, NewStock: 0, AppliedDelta: -1},
		},
		{
			name:   "RejectPolicyInsufficientStock",
			policy: inventory.OversellReject,
			params: inventory.AdjustParams{
				ProductID:     42,
				Delta:         -2,
				ReferenceType: inventory.RefSale,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(42)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(1), nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: inventory.ErrInsufficientStock,
		},
		{
			name: "Increment",
			params: inventory.AdjustParams{
				ProductID:     9,
				Delta:         10,
				ReferenceType: inventory.RefPurchase,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(9)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(3), nil)
				tx.EXPECT().SetStock(gomock.Any(), int64(13)).Return(nil)
				tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(nil)
				tx.EXPECT().Commit().Return(nil)
				tx.EXPECT().Rollback().Return(nil)
			},
			want: &inventory.Adjustment{PreviousStock: 3, NewStock: 13, AppliedDelta: 10},
		},
		{
			name: "ProductNotFound",
			params: inventory.AdjustParams{
				ProductID:     99,
				Delta:         -1,
				ReferenceType: inventory.RefSale,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(99)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(0), inventory.ErrProductNotFound)
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: inventory.ErrProductNotFound,
		},
		{
			name: "StockWriteFailureSkipsLedger",
			params: inventory.AdjustParams{
				ProductID:     42,
				Delta:         -1,
				ReferenceType: inventory.RefSale,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(42)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(5), nil)
				tx.EXPECT().SetStock(gomock.Any(), int64(4)).Return(errors.New("db error"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: nil, // plain error, no sentinel
		},
		{
			name: "LedgerAppendFailureRollsBack",
			params: inventory.AdjustParams{
				ProductID:     42,
				Delta:         -1,
				ReferenceType: inventory.RefSale,
			},
			setupMock: func(store *inventory.MockStore, tx *inventory.MockAdjustTx) {
				store.EXPECT().BeginAdjust(gomock.Any(), int64(42)).Return(tx, nil)
				tx.EXPECT().Stock(gomock.Any()).Return(int64(5), nil)
				tx.EXPECT().SetStock(gomock.Any(), int64(4)).Return(nil)
				tx.EXPECT().AppendEntry(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
				tx.EXPECT().Rollback().Return(nil)
			},
			wantErr: inventory.ErrLedgerAppend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := inventory.NewMockStore(ctrl)
			tx := inventory.NewMockAdjustTx(ctrl)

			if tt.setupMock != nil {
				tt.setupMock(store, tx)
			}

			svc := inventory.NewService(store, tt.policy)
			got, err := svc.Adjust(context.Background(), tt.params)

			if tt.want == nil {
				require.Error(t, err)

				if tt.wantErr != nil {
					assert.ErrorIs(t, err, tt.wantErr)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Adjust_BeginFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := inventory.NewMockStore(ctrl)
	store.EXPECT().BeginAdjust(gomock.Any(), int64(1)).Return(nil, errors.New("db down"))

	svc := inventory.NewService(store, inventory.OversellAllow)

	_, err := svc.Adjust(context.Background(), inventory.AdjustParams{
		ProductID:     1,
		Delta:         -1,
		ReferenceType: inventory.RefSale,
	})
	assert.Error(t, err)
}

// memStore is a single-product in-memory store honoring the BeginAdjust
// contract: the lock is held from BeginAdjust until Commit or Rollback.
type memStore struct {
	mu      sync.Mutex
	stock   int64
	entries []*inventory.LedgerEntry
}

func (m *memStore) BeginAdjust(_ context.Context, _ int64) (inventory.AdjustTx, error) {
	m.mu.Lock()
	return &memTx{store: m, stock: m.stock}, nil
}

func (m *memStore) GetStock(_ context.Context, _ int64) (int64, error) {
	return m.stock, nil
}

func (m *memStore) ListEntries(_ context.Context, _ inventory.LedgerFilter) ([]*inventory.LedgerEntry, error) {
	return m.entries, nil
}

type memTx struct {
	store *memStore
	stock int64
	entry *inventory.LedgerEntry
	done  bool
}

func (tx *memTx) Stock(_ context.Context) (int64, error) { return tx.stock, nil }

func (tx *memTx) SetStock(_ context.Context, stock int64) error {
	tx.stock = stock
	return nil
}

func (tx *memTx) AppendEntry(_ context.Context, e *inventory.LedgerEntry) error {
	tx.entry = e
	return nil
}

func (tx *memTx) Commit() error {
	tx.store.stock = tx.stock
	if tx.entry != nil {
		tx.store.entries = append(tx.store.entries, tx.entry)
	}

	tx.done = true
	tx.store.mu.Unlock()

	return nil
}

func (tx *memTx) Rollback() error {
	if !tx.done {
		tx.done = true
		tx.store.mu.Unlock()
	}

	return nil
}

func TestService_Adjust_ConcurrentNoLostUpdate(t *testing.T) {
	store := &memStore{stock: 10}
	svc := inventory.NewService(store, inventory.OversellAllow)

	var wg sync.WaitGroup

	for _, delta := range []int64{-3, -2} {
		delta := delta

		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := svc.Adjust(context.Background(), inventory.AdjustParams{
				ProductID:     1,
				Delta:         delta,
				ReferenceType: inventory.RefSale,
			})
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	// Both decrements must land: 10 - 3 - 2 = 5, never 7 or 8.
	assert.Equal(t, int64(5), store.stock)
	require.Len(t, store.entries, 2)

	// The ledger forms an unbroken chain over the stock value.
	for _, e := range store.entries {
		assert.Equal(t, e.PreviousStock+e.ChangeAmount, e.NewStock)
	}

	first, second := store.entries[0], store.entries[1]
	assert.Equal(t, int64(10), first.PreviousStock)
	assert.Equal(t, first.NewStock, second.PreviousStock)
	assert.Equal(t, int64(5), second.NewStock)
}

func TestService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	productID := int64(42)
	filter := inventory.LedgerFilter{ProductID: &productID}

	store := inventory.NewMockStore(ctrl)
	store.EXPECT().ListEntries(gomock.Any(), filter).Return([]*inventory.LedgerEntry{
		{ID: 2, ProductID: 42, PreviousStock: 3, NewStock: 1, ChangeAmount: -2},
		{ID: 1, ProductID: 42, PreviousStock: 5, NewStock: 3, ChangeAmount: -2},
	}, nil)

	svc := inventory.NewService(store, inventory.OversellAllow)

	entries, err := svc.History(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
