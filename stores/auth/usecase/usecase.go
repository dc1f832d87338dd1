package usecase

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/auric-xyz/marketd/base/ctx"
	"github.com/auric-xyz/marketd/base/ethereum"
	"github.com/auric-xyz/marketd/domain"
)

const invalidNonce = int32(-1)

type impl struct {
	jwtSecret    []byte
	signatureMsg string
	nonceRepo    domain.AccountNonceRepo
}

func New(jwtSecret, signatureMsg string, nonceRepo domain.AccountNonceRepo) domain.AuthUsecase {
	return &impl{
		jwtSecret:    []byte(jwtSecret),
		signatureMsg: signatureMsg,
		nonceRepo:    nonceRepo,
	}
}

func (im *impl) GenerateNonce(ctx ctx.Ctx, address domain.Address) (int32, error) {
	nonce := rand.Int31()
	if err := im.nonceRepo.Set(ctx, address, nonce); err != nil {
		ctx.WithField("err", err).Error("nonceRepo.Set failed")
		return 0, err
	}
	return nonce, nil
}

func (im *impl) SignToken(ctx ctx.Ctx, address domain.Address, signature string) (string, error) {
	record, err := im.nonceRepo.Get(ctx, address)
	if err == domain.ErrNotFound {
		return "", domain.ErrInvalidNonce
	} else if err != nil {
		return "", err
	}
	if record.Nonce == invalidNonce {
		return "", domain.ErrInvalidNonce
	}

	// a nonce never survives its first signature check
	defer im.nonceRepo.Set(ctx, address, invalidNonce)

	msg := im.makeMessageWithNonce(strconv.Itoa(int(record.Nonce)))
	if isValid, err := ethereum.ValidateMsgSignature(msg, signature, string(address)); err != nil {
		ctx.WithField("err", err).Error("ethereum.ValidateMsgSignature failed")
		return "", err
	} else if !isValid {
		return "", domain.ErrInvalidSignature
	}

	claims := domain.JwtCustomClaims{
		Address: string(address.ToLower()),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	if ss, err := token.SignedString(im.jwtSecret); err != nil {
		ctx.WithField("err", err).Error("token.SignedString failed")
		return "", err
	} else {
		return ss, nil
	}
}

func (im *impl) ParseToken(ctx ctx.Ctx, str string) (string, error) {
	token, err := jwt.ParseWithClaims(str, &domain.JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("Unexpected signing method: %v", token.Header["alg"])
		}
		return im.jwtSecret, nil
	})

	if claims, ok := token.Claims.(*domain.JwtCustomClaims); ok && token.Valid {
		return claims.Address, nil
	}

	return "", err
}

func (im *impl) makeMessageWithNonce(nonce string) []byte {
	return []byte(fmt.Sprintf(im.signatureMsg, nonce))
}
