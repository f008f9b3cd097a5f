package models

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput() NewOperationInput {
	owner := uuid.New()
	ownerAccount := uuid.New()
	return NewOperationInput{
		RawValue:             1000,
		Fee:                  50,
		OwnerID:              &owner,
		OwnerWalletAccountID: &ownerAccount,
		CurrencyID:           uuid.New(),
		TransactionTypeID:    uuid.New(),
	}
}

func TestNewOperation(t *testing.T) {
	t.Run("value derived from raw value minus fee", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		assert.Equal(t, int64(950), op.Value)
		assert.Equal(t, int64(1000), op.RawValue)
		assert.Equal(t, int64(50), op.Fee)
		assert.Equal(t, OperationStatePending, op.State)
		assert.Equal(t, 1, op.Version)
	})

	tests := []struct {
		name    string
		mutate  func(*NewOperationInput)
		wantErr error
	}{
		{
			name:    "negative raw value",
			mutate:  func(in *NewOperationInput) { in.RawValue = -1 },
			wantErr: ErrValueNegative,
		},
		{
			name:    "negative fee",
			mutate:  func(in *NewOperationInput) { in.Fee = -1 },
			wantErr: ErrValueNegative,
		},
		{
			name:    "fee exceeds raw value",
			mutate:  func(in *NewOperationInput) { in.Fee = 2000 },
			wantErr: ErrFeeExceedsRawValue,
		},
		{
			name: "no side populated",
			mutate: func(in *NewOperationInput) {
				in.OwnerID = nil
				in.OwnerWalletAccountID = nil
			},
			wantErr: ErrNoSidePopulated,
		},
		{
			name:    "missing currency",
			mutate:  func(in *NewOperationInput) { in.CurrencyID = uuid.Nil },
			wantErr: ErrMissingCurrency,
		},
		{
			name:    "missing transaction type",
			mutate:  func(in *NewOperationInput) { in.TransactionTypeID = uuid.Nil },
			wantErr: ErrMissingTransactType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			op, err := NewOperation(uuid.New(), in)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, op)
		})
	}
}

func TestOperation_StateMachine(t *testing.T) {
	t.Run("pending can accept", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Accept())
		assert.Equal(t, OperationStateAccepted, op.State)
		assert.True(t, op.IsTerminal())
	})

	t.Run("accepted cannot accept again", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Accept())
		assert.ErrorIs(t, op.Accept(), ErrInvalidTransition)
	})

	t.Run("pending can revert", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Revert())
		assert.Equal(t, OperationStateReverted, op.State)
	})

	t.Run("accepted can revert", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Accept())
		require.NoError(t, op.Revert())
		assert.Equal(t, OperationStateReverted, op.State)
	})

	t.Run("reverting a reverted operation is a no-op", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Revert())
		require.NoError(t, op.Revert())
		assert.Equal(t, OperationStateReverted, op.State)
	})

	t.Run("reverted cannot accept", func(t *testing.T) {
		op, err := NewOperation(uuid.New(), validInput())
		require.NoError(t, err)
		require.NoError(t, op.Revert())
		err = op.Accept()
		assert.True(t, errors.Is(err, ErrInvalidTransition))
	})
}

func TestOperation_Tags(t *testing.T) {
	op, err := NewOperation(uuid.New(), validInput())
	require.NoError(t, err)
	op.AnalysisTags = []AnalysisTag{
		TagDailyIntervalLimitIncluded,
		TagMonthlyIntervalLimitIncluded,
	}

	assert.True(t, op.HasTag(TagDailyIntervalLimitIncluded))
	assert.False(t, op.HasTag(TagAnnualIntervalLimitIncluded))

	op.RemoveTag(TagDailyIntervalLimitIncluded)
	assert.False(t, op.HasTag(TagDailyIntervalLimitIncluded))
	assert.Equal(t, []AnalysisTag{TagMonthlyIntervalLimitIncluded}, op.AnalysisTags)

	// Removing an absent tag must stay a no-op.
	op.RemoveTag(TagDailyIntervalLimitIncluded)
	assert.Equal(t, []AnalysisTag{TagMonthlyIntervalLimitIncluded}, op.AnalysisTags)
}
