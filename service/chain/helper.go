package chain

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/auric-xyz/marketd/domain"
)

func ToCommonAddress(a domain.Address) common.Address {
	return common.HexToAddress(string(a))
}
