package reader

import (
	"context"
)

type EthereumNode interface {
	NodeName() string
	NodeURL() string
	GetCode(ctx context.Context, address string) (code []byte, err error)
}
