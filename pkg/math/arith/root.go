package arith

import (
	"fmt"
	"math/big"
)

// FloorRoot returns ⌊x^(1/k)⌋ for x ⩾ 0 and k ⩾ 1, using Newton's method.
//
// The iteration starts from 2^⌈len(x)/k⌉, which is never below the root, and
// decreases monotonically until it reaches the floor.
func FloorRoot(x *big.Int, k int) *big.Int {
	if x.Sign() < 0 || k < 1 {
		panic(fmt.Sprintf("arith.FloorRoot: invalid arguments x=%s, k=%d", x, k))
	}
	if x.Sign() == 0 || k == 1 {
		return new(big.Int).Set(x)
	}
	// r ⩾ 2 gives rᵏ ⩾ 2ᵏ > x
	if x.BitLen() <= k {
		return big.NewInt(1)
	}

	kBig := big.NewInt(int64(k))
	kMinusOne := big.NewInt(int64(k - 1))

	r := new(big.Int).Lsh(one, uint((x.BitLen()+k-1)/k))
	y := new(big.Int)
	tmp := new(big.Int)
	for {
		// y = ((k-1)⋅r + x / r^(k-1)) / k
		tmp.Exp(r, kMinusOne, nil)
		y.Quo(x, tmp)
		y.Add(y, tmp.Mul(kMinusOne, r))
		y.Quo(y, kBig)
		if y.Cmp(r) >= 0 {
			return r
		}
		r.Set(y)
	}
}

// ExactRoot returns r such that rᵏ = x.
//
// It fails with ErrRootNotExact when x is not a perfect k-th power, so that a
// truncated root is never mistaken for the real one.
func ExactRoot(x *big.Int, k int) (*big.Int, error) {
	if x.Sign() < 0 {
		return nil, fmt.Errorf("arith: root of negative integer %s", x)
	}
	if k < 1 {
		return nil, fmt.Errorf("arith: invalid root degree %d", k)
	}
	r := FloorRoot(x, k)
	check := new(big.Int).Exp(r, big.NewInt(int64(k)), nil)
	if check.Cmp(x) != 0 {
		return nil, fmt.Errorf("%w: %d-th root of a %d-bit integer", ErrRootNotExact, k, x.BitLen())
	}
	return r, nil
}
