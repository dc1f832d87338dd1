package abi

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var WETHTokenABI abi.ABI

var wethABI = `[{"type":"function","name":"deposit","constant":false,"stateMutability":"payable","payable":true,"inputs":[],"outputs":[]},{"type":"function","name":"withdraw","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"uint256","name":"wad"}],"outputs":[]},{"type":"function","name":"balanceOf","constant":true,"stateMutability":"view","payable":false,"inputs":[{"type":"address","name":"_owner"}],"outputs":[{"type":"uint256"}]},{"type":"function","name":"transfer","constant":false,"stateMutability":"nonpayable","payable":false,"inputs":[{"type":"address","name":"_to"},{"type":"uint256","name":"_value"}],"outputs":[{"type":"bool"}]}]`

func init() {
	_abi, err := abi.JSON(strings.NewReader(wethABI))
	if err != nil {
		panic("Failed to parse weth abi")
	}
	WETHTokenABI = _abi
}
