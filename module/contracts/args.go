package contracts

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ConvertArgs converts textual arguments into the Go values the abi packer
// expects for inputs. Supported types are string, address, bool, bytes,
// bytesN and (u)intN.
func ConvertArgs(inputs abi.Arguments, raw []string) ([]any, error) {
	if len(inputs) != len(raw) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(inputs), len(raw))
	}
	values := make([]any, 0, len(raw))
	for i, input := range inputs {
		v, err := convertArg(input.Type, raw[i])
		if err != nil {
			name := input.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("argument %s (%s): %w", name, input.Type.String(), err)
		}
		values = append(values, v)
	}
	return values, nil
}

// PackConstructorArgs returns the ABI encoding of the constructor arguments,
// which is what explorers compare against the creation input.
func PackConstructorArgs(contractABI abi.ABI, raw []string) ([]byte, error) {
	values, err := ConvertArgs(contractABI.Constructor.Inputs, raw)
	if err != nil {
		return nil, err
	}
	packed, err := contractABI.Pack("", values...)
	if err != nil {
		return nil, fmt.Errorf("could not pack constructor arguments: %w", err)
	}
	return packed, nil
}

func convertArg(t abi.Type, raw string) (any, error) {
	switch t.T {
	case abi.StringTy:
		return raw, nil

	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return nil, fmt.Errorf("invalid address %q", raw)
		}
		return common.HexToAddress(raw), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q", raw)
		}
		return b, nil

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return b, nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bytes%d %q: %w", t.Size, raw, err)
		}
		if len(b) != t.Size {
			return nil, fmt.Errorf("expected %d bytes, got %d", t.Size, len(b))
		}
		arr := reflect.New(t.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.UintTy, abi.IntTy:
		return convertInteger(t, raw)

	default:
		return nil, fmt.Errorf("unsupported type")
	}
}

// convertInteger parses decimal or 0x-prefixed integers. The abi packer wants
// the native Go type for 8, 16, 32 and 64 bit sizes and *big.Int otherwise.
func convertInteger(t abi.Type, raw string) (any, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", raw)
	}
	if !fits(t, n) {
		return nil, fmt.Errorf("value %s overflows %s", raw, t.String())
	}
	if t.GetType().Kind() == reflect.Ptr {
		return n, nil
	}

	v := reflect.New(t.GetType()).Elem()
	if t.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}

func fits(t abi.Type, n *big.Int) bool {
	if t.T == abi.UintTy {
		return n.Sign() >= 0 && n.BitLen() <= t.Size
	}
	if n.Sign() >= 0 {
		return n.BitLen() <= t.Size-1
	}
	// two's complement: -2^(size-1) is the smallest value
	abs := new(big.Int).Neg(n)
	abs.Sub(abs, big.NewInt(1))
	return abs.BitLen() <= t.Size-1
}
