package service

import (
	"context"
	"testing"
	"time"

	"preorder-service/internal/dto"
	"preorder-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignBank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	payment, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)
	require.NotNil(t, payment.BankID)
	assert.Equal(t, "bank-bca", *payment.BankID)

	// the order mirrors the assignment
	order := env.loadOrder(t, agg.ID)
	require.NotNil(t, order.BankID)
	assert.Equal(t, "bank-bca", *order.BankID)
}

func TestAssignBank_RebindAllowedWhilePending(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)

	// rebinding is fine until verification, even after proof submission
	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	require.NoError(t, err)

	payment, err := env.payments.AssignBank(ctx, agg.ID, "bank-mandiri")
	require.NoError(t, err)
	assert.Equal(t, "bank-mandiri", *payment.BankID)
}

func TestAssignBank_InactiveBank(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)

	_, err = env.payments.AssignBank(ctx, agg.ID, "bank-retired")
	assert.ErrorIs(t, err, model.ErrInvalidBank)

	// the previous assignment is untouched
	payment := env.loadPayment(t, agg.Payment.ID)
	require.NotNil(t, payment.BankID)
	assert.Equal(t, "bank-bca", *payment.BankID)
}

func TestAssignBank_UnknownBank(t *testing.T) {
	env := newTestEnv(t)
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(context.Background(), agg.ID, "no-such-bank")
	assert.ErrorIs(t, err, model.ErrInvalidBank)

	payment := env.loadPayment(t, agg.Payment.ID)
	assert.Nil(t, payment.BankID)
}

func TestAssignBank_AfterVerification(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.verification.Verify(ctx, agg.Payment.ID, model.PaymentStatusPaid)
	require.NoError(t, err)

	_, err = env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	assert.ErrorIs(t, err, model.ErrPaymentClosed)
}

func TestSubmitProof(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)

	payment, err := env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	require.NoError(t, err)
	assert.Equal(t, proofReq().FileURL, payment.ProofURL)
	// submission never advances the status; verification is the admin's job
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
}

func TestSubmitProof_RequiresBank(t *testing.T) {
	env := newTestEnv(t)
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.SubmitProof(context.Background(), agg.Payment.ID, proofReq())
	assert.ErrorIs(t, err, model.ErrBankNotAssigned)
}

func TestSubmitProof_MetadataValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)

	tests := []struct {
		name    string
		req     *dto.SubmitProofRequest
		wantErr error
	}{
		{"executable", &dto.SubmitProofRequest{FileURL: "u", ContentType: "application/x-msdownload", SizeBytes: 100}, model.ErrInvalidProofType},
		{"empty type", &dto.SubmitProofRequest{FileURL: "u", ContentType: "", SizeBytes: 100}, model.ErrInvalidProofType},
		{"too large", &dto.SubmitProofRequest{FileURL: "u", ContentType: "image/png", SizeBytes: 6 << 20}, model.ErrProofTooLarge},
		{"zero size", &dto.SubmitProofRequest{FileURL: "u", ContentType: "image/png", SizeBytes: 0}, model.ErrProofTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.payments.SubmitProof(ctx, agg.Payment.ID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)

			// a rejected submission mutates nothing
			payment := env.loadPayment(t, agg.Payment.ID)
			assert.Empty(t, payment.ProofURL)
		})
	}

	// PDF passes the allow-list
	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, &dto.SubmitProofRequest{
		FileURL:     "https://cdn.example.com/proofs/tx-002.pdf",
		ContentType: "application/pdf",
		SizeBytes:   300 << 10,
	})
	assert.NoError(t, err)
}

func TestSubmitProof_ThenCancelThenResubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)
	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	require.NoError(t, err)

	// an unverified proof does not block cancellation
	_, err = env.orders.Cancel(ctx, agg.ID)
	require.NoError(t, err)

	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	assert.ErrorIs(t, err, model.ErrPaymentClosed)
}

func TestRetry_ResetsCleanly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	_, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)
	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	require.NoError(t, err)

	_, err = env.verification.Verify(ctx, agg.Payment.ID, model.PaymentStatusFailed)
	require.NoError(t, err)

	payment, err := env.payments.Retry(ctx, agg.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Empty(t, payment.ProofURL)
	// the customer keeps their bank pick
	require.NotNil(t, payment.BankID)
	assert.Equal(t, "bank-bca", *payment.BankID)

	// a fresh submission goes through under the normal preconditions
	_, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	assert.NoError(t, err)
}

func TestRetry_Rejections(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("pending payment", func(t *testing.T) {
		agg := env.placeOrder(t, 15000)
		_, err := env.payments.Retry(ctx, agg.Payment.ID)
		assert.ErrorIs(t, err, model.ErrInvalidTransition)
	})

	t.Run("paid payment", func(t *testing.T) {
		agg := env.placeOrder(t, 15000)
		_, err := env.verification.Verify(ctx, agg.Payment.ID, model.PaymentStatusPaid)
		require.NoError(t, err)

		_, err = env.payments.Retry(ctx, agg.Payment.ID)
		assert.ErrorIs(t, err, model.ErrAlreadyFinalized)
	})

	t.Run("cancelled order", func(t *testing.T) {
		agg := env.placeOrder(t, 15000)
		env.setPaymentStatus(t, agg.Payment.ID, model.PaymentStatusFailed)
		env.setOrderStatus(t, agg.ID, model.OrderStatusCancelled)

		_, err := env.payments.Retry(ctx, agg.Payment.ID)
		assert.ErrorIs(t, err, model.ErrOrderClosed)
	})
}

func TestListActiveBanks(t *testing.T) {
	env := newTestEnv(t)

	banks, err := env.banks.ListActiveBanks(context.Background())
	require.NoError(t, err)
	require.Len(t, banks, 2)
	// retired bank filtered out, active ones sorted by code
	assert.Equal(t, "bank-mandiri", banks[0].ID)
	assert.Equal(t, "bank-bca", banks[1].ID)
}

func TestPaymentMutations_ReturnPersistedRow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	agg := env.placeOrder(t, 15000)

	// Backdating updated_at before each call makes a stale in-memory
	// copy distinguishable from the committed row.
	backdate := func() time.Time {
		old := time.Now().Add(-time.Hour)
		require.NoError(t, env.db.Model(&model.Payment{}).Where("id = ?", agg.Payment.ID).Update("updated_at", old).Error)
		return old
	}

	old := backdate()
	payment, err := env.payments.AssignBank(ctx, agg.ID, "bank-bca")
	require.NoError(t, err)
	require.NotNil(t, payment.BankID)
	assert.Equal(t, "bank-bca", *payment.BankID)
	assert.True(t, payment.UpdatedAt.After(old))

	old = backdate()
	payment, err = env.payments.SubmitProof(ctx, agg.Payment.ID, proofReq())
	require.NoError(t, err)
	assert.Equal(t, proofReq().FileURL, payment.ProofURL)
	assert.True(t, payment.UpdatedAt.After(old))

	env.setPaymentStatus(t, agg.Payment.ID, model.PaymentStatusFailed)
	old = backdate()
	payment, err = env.payments.Retry(ctx, agg.Payment.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPending, payment.Status)
	assert.Empty(t, payment.ProofURL)
	assert.True(t, payment.UpdatedAt.After(old))
}
