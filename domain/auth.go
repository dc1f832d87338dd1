package domain

import (
	"github.com/golang-jwt/jwt"
	"github.com/auric-xyz/marketd/base/ctx"
)

type JwtCustomClaims struct {
	Address string `json:"data"` // name data for backward compatibility
	jwt.StandardClaims
}

// AccountNonce is the one-shot signing nonce of a wallet. A nonce is
// consumed by the first SignToken call that presents a valid signature.
type AccountNonce struct {
	Address Address `json:"address" bson:"address"`
	Nonce   int32   `json:"nonce" bson:"nonce"`
}

type AccountNonceRepo interface {
	Get(ctx.Ctx, Address) (*AccountNonce, error)
	Set(ctx.Ctx, Address, int32) error
}

// AuthUsecase resolves the effective sender for every mutating market
// operation: wallet proves key ownership once, then acts through the token.
type AuthUsecase interface {
	GenerateNonce(ctx ctx.Ctx, address Address) (int32, error)
	SignToken(ctx ctx.Ctx, address Address, signature string) (string, error)
	ParseToken(ctx ctx.Ctx, token string) (address string, err error)
}
