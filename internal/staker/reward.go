package staker

import "math/big"

// Accrue returns the reward earned between the checkpoint and now at rate per second.
// Nothing accrues when now is not after the checkpoint.
func Accrue(rate *big.Int, lastHarvest, now int64) *big.Int {
	if rate == nil || now <= lastHarvest {
		return new(big.Int)
	}
	elapsed := new(big.Int).SetInt64(now - lastHarvest)
	return elapsed.Mul(elapsed, rate)
}
