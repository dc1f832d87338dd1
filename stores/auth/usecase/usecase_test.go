package usecase_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/domain"
	mDomain "github.com/auric-xyz/marketd/domain/mocks"
	"github.com/auric-xyz/marketd/stores/auth/usecase"
)

const signatureMsg = "Welcome to the marketplace!\n\nNonce: %s"

func TestSignAndParseToken(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), key)
	assert.NoError(t, err)

	mockNonceRepo := &mDomain.AccountNonceRepo{}
	mockNonceRepo.On("Get", mock.Anything, address).
		Return(&domain.AccountNonce{Address: address.ToLower(), Nonce: 12345}, nil).Once()
	mockNonceRepo.On("Set", mock.Anything, address, int32(-1)).Return(nil).Once()

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockNonceRepo)

	tkn, err := u.SignToken(ctx, address, hexutil.Encode(sig))
	assert.NoError(t, err)
	assert.NotEmpty(t, tkn)

	ads, err := u.ParseToken(ctx, tkn)
	assert.NoError(t, err)
	assert.Equal(t, strings.ToLower(string(address)), ads)

	mockNonceRepo.AssertExpectations(t)
}

func TestSignTokenRejectsWrongSigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	otherKey, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	msg := []byte(fmt.Sprintf(signatureMsg, "12345"))
	sig, err := crypto.Sign(accounts.TextHash(msg), otherKey)
	assert.NoError(t, err)

	mockNonceRepo := &mDomain.AccountNonceRepo{}
	mockNonceRepo.On("Get", mock.Anything, address).
		Return(&domain.AccountNonce{Address: address.ToLower(), Nonce: 12345}, nil).Once()
	mockNonceRepo.On("Set", mock.Anything, address, int32(-1)).Return(nil).Once()

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockNonceRepo)

	_, err = u.SignToken(ctx, address, hexutil.Encode(sig))
	assert.Equal(t, domain.ErrInvalidSignature, err)

	mockNonceRepo.AssertExpectations(t)
}

func TestSignTokenRejectsConsumedNonce(t *testing.T) {
	key, err := crypto.GenerateKey()
	assert.NoError(t, err)
	address := domain.Address(crypto.PubkeyToAddress(key.PublicKey).Hex())

	mockNonceRepo := &mDomain.AccountNonceRepo{}
	mockNonceRepo.On("Get", mock.Anything, address).
		Return(&domain.AccountNonce{Address: address.ToLower(), Nonce: -1}, nil).Once()

	ctx := ctx.Background()
	u := usecase.New("jwt-secret", signatureMsg, mockNonceRepo)

	_, err = u.SignToken(ctx, address, "0x00")
	assert.Equal(t, domain.ErrInvalidNonce, err)

	mockNonceRepo.AssertExpectations(t)
}
