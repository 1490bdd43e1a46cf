// Copyright 2022-2026 The N42 Authors
// This file is part of the N42 library.
//
// The N42 library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The N42 library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the N42 library. If not, see <http://www.gnu.org/licenses/>.

package core

import "github.com/vertexchain/evmcore/params"

// capRefund applies EIP-3529's refund ceiling: the SSTORE/SELFDESTRUCT
// refund counter accumulated in IntraBlockState may not exceed gasUsed/5
// post-London (gasUsed/2 before it). params.Rules.MaxRefundQuotient already
// carries the fork switch; this just applies it to a concrete gasUsed.
func capRefund(gasUsed, refund uint64, rules *params.Rules) uint64 {
	max := gasUsed / rules.MaxRefundQuotient()
	if refund > max {
		return max
	}
	return refund
}
