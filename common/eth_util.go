package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrInvalidAddress = errors.New("invalid contract address")
	ErrInvalidNetwork = errors.New("invalid network")
)

// ValidateAddress checks that address is a 20 bytes hex EVM address.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(strings.TrimSpace(address)) {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, address)
	}
	return nil
}

// NormalizeAddress returns the lowercased 0x prefixed form of address.
func NormalizeAddress(address string) string {
	return strings.ToLower(common.HexToAddress(strings.TrimSpace(address)).Hex())
}

// ShortAddress renders 0x1234...abcd style addresses for captions.
func ShortAddress(address string) string {
	if len(address) <= 12 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
