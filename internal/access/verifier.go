package access

import (
	"context"
	"errors"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/cocobridge/penguinhop/internal/apperrors"
)

const erc721ABI = `[{"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`

// Verifier answers whether a wallet holds at least one token of the
// gating collection.
type Verifier interface {
	OwnsToken(ctx context.Context, wallet string) (bool, error)
}

// ContractCaller is the slice of the Ethereum client the verifier needs,
// kept narrow so tests can fake the chain.
type ContractCaller interface {
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
}

type NFTVerifier struct {
	caller   ContractCaller
	contract common.Address
	abi      abi.ABI
}

func NewNFTVerifier(caller ContractCaller, contractAddress string) (*NFTVerifier, error) {
	if !common.IsHexAddress(contractAddress) {
		return nil, errors.New("invalid NFT contract address")
	}
	parsed, err := abi.JSON(strings.NewReader(erc721ABI))
	if err != nil {
		return nil, err
	}
	return &NFTVerifier{
		caller:   caller,
		contract: common.HexToAddress(contractAddress),
		abi:      parsed,
	}, nil
}

// DialVerifier connects to the chain RPC endpoint and returns a verifier
// bound to the gating contract.
func DialVerifier(ctx context.Context, rpcURL, contractAddress string) (*NFTVerifier, error) {
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, err
	}
	return NewNFTVerifier(client, contractAddress)
}

func (v *NFTVerifier) OwnsToken(ctx context.Context, wallet string) (bool, error) {
	if !common.IsHexAddress(wallet) {
		return false, apperrors.NewAppError(400, "Invalid wallet address", nil)
	}

	input, err := v.abi.Pack("balanceOf", common.HexToAddress(wallet))
	if err != nil {
		return false, apperrors.NewAppError(500, "Verification failed", err)
	}

	out, err := v.caller.CallContract(ctx, ethereum.CallMsg{To: &v.contract, Data: input}, nil)
	if err != nil {
		return false, apperrors.NewAppError(500, "Verification failed", err)
	}

	results, err := v.abi.Unpack("balanceOf", out)
	if err != nil {
		return false, apperrors.NewAppError(500, "Verification failed", err)
	}

	balance, ok := results[0].(*big.Int)
	if !ok {
		return false, apperrors.NewAppError(500, "Verification failed", errors.New("unexpected balanceOf result type"))
	}

	return balance.Sign() > 0, nil
}
