package bn254

// BN254 implementation details: efficient Frobenius maps and tower arithmetic.
//
// The naive Frobenius (fp12Exp(f, p)) requires ~254 squarings and multiplications
// in F_p^12 which is very expensive. Instead, we use the algebraic structure:
//
//   For the tower F_p -> F_p^2 -> F_p^6 -> F_p^12:
//   - F_p^2 = F_p[i]/(i^2+1)
//   - F_p^6 = F_p^2[v]/(v^3-xi), xi = 9+i
//   - F_p^12 = F_p^6[w]/(w^2-v)
//
// The Frobenius endomorphism x -> x^p acts on each coefficient by conjugation
// (in F_p^2) and multiplication by precomputed constants (powers of xi).
//
// An F_p^12 element f = c00 + c01*v + c02*v^2 + (c10 + c11*v + c12*v^2)*w
// maps under pi (x -> x^p) as:
//
//   c00: conj(c00)
//   c01: conj(c01) * xi^((p-1)/3)
//   c02: conj(c02) * xi^(2(p-1)/3)
//   c10: conj(c10) * xi^((p-1)/6)
//   c11: conj(c11) * xi^((p-1)/2)     [= xi^((p-1)/6 + (p-1)/3)]
//   c12: conj(c12) * xi^(5(p-1)/6)    [= xi^((p-1)/6 + 2(p-1)/3)]
//
// For p^2 Frobenius, conjugation^2 = identity, so no conjugation is applied,
// and the constants are xi^((p^2-1)/d) for the same structure.
//
// For p^3 Frobenius, conjugation^3 = conjugation, same pattern with p^3 constants.

import "math/big"

// --- Frobenius p^1 constants ---
// Each constant is xi^(k*(p-1)/6) for k = 1..5.

var (
	// frobC1_1 = xi^((p-1)/6) -- for c10 (w coefficient, no v)
	frobC1_1 = &fp2{
		a0: bigFromStr("8376118865763821496583973867626364092589906065868298776909617916018768340080"),
		a1: bigFromStr("16469823323077808223889137241176536799009286646108169935659301613961712198316"),
	}

	// frobC1_2 = xi^((p-1)/3) -- for c01 (v coefficient, no w)
	frobC1_2 = &fp2{
		a0: bigFromStr("21575463638280843010398324269430826099269044274347216827212613867836435027261"),
		a1: bigFromStr("10307601595873709700152284273816112264069230130616436755625194854815875713954"),
	}

	// frobC1_3 = xi^((p-1)/2) -- for c11 (v*w coefficient)
	frobC1_3 = &fp2{
		a0: bigFromStr("2821565182194536844548159561693502659359617185244120367078079554186484126554"),
		a1: bigFromStr("3505843767911556378687030309984248845540243509899259641013678093033130930403"),
	}

	// frobC1_4 = xi^(2(p-1)/3) -- for c02 (v^2 coefficient, no w)
	frobC1_4 = &fp2{
		a0: bigFromStr("2581911344467009335267311115468803099551665605076196740867805258568234346338"),
		a1: bigFromStr("19937756971775647987995932169929341994314640652964949448313374472400716661030"),
	}

	// frobC1_5 = xi^(5(p-1)/6) -- for c12 (v^2*w coefficient)
	frobC1_5 = &fp2{
		a0: bigFromStr("685108087231508774477564247770172212460312782337200605669322048753928464687"),
		a1: bigFromStr("8447204650696766136447902020341177575205426561248465145919723016860428151883"),
	}
)

// --- Frobenius p^2 constants ---
// For p^2, conjugation^2 = identity, so constants are real (in F_p).

var (
	// frobC2_1 = xi^((p^2-1)/6) -- for c10
	frobC2_1 = &fp2{
		a0: bigFromStr("21888242871839275220042445260109153167277707414472061641714758635765020556617"),
		a1: new(big.Int),
	}

	// frobC2_2 = xi^((p^2-1)/3) -- for c01
	frobC2_2 = &fp2{
		a0: bigFromStr("21888242871839275220042445260109153167277707414472061641714758635765020556616"),
		a1: new(big.Int),
	}

	// frobC2_3 = xi^((p^2-1)/2) -- for c11
	frobC2_3 = &fp2{
		a0: bigFromStr("21888242871839275222246405745257275088696311157297823662689037894645226208582"),
		a1: new(big.Int),
	}

	// frobC2_4 = xi^(2(p^2-1)/3) -- for c02
	frobC2_4 = &fp2{
		a0: bigFromStr("2203960485148121921418603742825762020974279258880205651966"),
		a1: new(big.Int),
	}

	// frobC2_5 = xi^(5(p^2-1)/6) -- for c12
	frobC2_5 = &fp2{
		a0: bigFromStr("2203960485148121921418603742825762020974279258880205651967"),
		a1: new(big.Int),
	}
)

// --- Frobenius p^3 constants ---

var (
	// frobC3_1 = xi^((p^3-1)/6) -- for c10
	frobC3_1 = &fp2{
		a0: bigFromStr("11697423496358154304825782922584725312912383441159505038794027105778954184319"),
		a1: bigFromStr("303847389135065887422783454877609941456349188919719272345083954437860409601"),
	}

	// frobC3_2 = xi^((p^3-1)/3) -- for c01
	frobC3_2 = &fp2{
		a0: bigFromStr("3772000881919853776433695186713858239009073593817195771773381919316419345261"),
		a1: bigFromStr("2236595495967245188281701248203181795121068902605861227855261137820944008926"),
	}

	// frobC3_3 = xi^((p^3-1)/2) -- for c11
	frobC3_3 = &fp2{
		a0: bigFromStr("19066677689644738377698246183563772429336693972053703295610958340458742082029"),
		a1: bigFromStr("18382399103927718843559375435273026243156067647398564021675359801612095278180"),
	}

	// frobC3_4 = xi^(2(p^3-1)/3) -- for c02
	frobC3_4 = &fp2{
		a0: bigFromStr("5324479202449903542726783395506214481928257762400643279780343368557297135718"),
		a1: bigFromStr("16208900380737693084919495127334387981393726419856888799917914180988844123039"),
	}

	// frobC3_5 = xi^(5(p^3-1)/6) -- for c12
	frobC3_5 = &fp2{
		a0: bigFromStr("8941241848238582420466759817324047081148088512956452953208002715982955420483"),
		a1: bigFromStr("10338197737521362862238855242243140895517409139741313354160881284257516364953"),
	}
)

// bigFromStr parses a decimal string to *big.Int. Panics on invalid input.
func bigFromStr(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bn254_impl: invalid big.Int literal: " + s)
	}
	return v
}

// fp12FrobeniusEfficient computes the Frobenius endomorphism f^p on F_p^12
// using the tower structure, avoiding the expensive generic exponentiation.
func fp12FrobeniusEfficient(f *fp12) *fp12 {
	return &fp12{
		c0: &fp6{
			c0: fp2Conj(f.c0.c0),
			c1: fp2Mul(fp2Conj(f.c0.c1), frobC1_2),
			c2: fp2Mul(fp2Conj(f.c0.c2), frobC1_4),
		},
		c1: &fp6{
			c0: fp2Mul(fp2Conj(f.c1.c0), frobC1_1),
			c1: fp2Mul(fp2Conj(f.c1.c1), frobC1_3),
			c2: fp2Mul(fp2Conj(f.c1.c2), frobC1_5),
		},
	}
}

// fp12FrobeniusSqEfficient computes f^(p^2) on F_p^12.
// For p^2, conjugation composed with itself is the identity on F_p^2,
// so we just multiply each coefficient by the corresponding p^2 constant.
func fp12FrobeniusSqEfficient(f *fp12) *fp12 {
	return &fp12{
		c0: &fp6{
			c0: newFp2(f.c0.c0.a0, f.c0.c0.a1),
			c1: fp2Mul(f.c0.c1, frobC2_2),
			c2: fp2Mul(f.c0.c2, frobC2_4),
		},
		c1: &fp6{
			c0: fp2Mul(f.c1.c0, frobC2_1),
			c1: fp2Mul(f.c1.c1, frobC2_3),
			c2: fp2Mul(f.c1.c2, frobC2_5),
		},
	}
}

// fp12FrobeniusCubeEfficient computes f^(p^3) on F_p^12.
// Conjugation^3 = conjugation, so each F_p^2 coefficient is conjugated
// and multiplied by the corresponding p^3 constant.
func fp12FrobeniusCubeEfficient(f *fp12) *fp12 {
	return &fp12{
		c0: &fp6{
			c0: fp2Conj(f.c0.c0),
			c1: fp2Mul(fp2Conj(f.c0.c1), frobC3_2),
			c2: fp2Mul(fp2Conj(f.c0.c2), frobC3_4),
		},
		c1: &fp6{
			c0: fp2Mul(fp2Conj(f.c1.c0), frobC3_1),
			c1: fp2Mul(fp2Conj(f.c1.c1), frobC3_3),
			c2: fp2Mul(fp2Conj(f.c1.c2), frobC3_5),
		},
	}
}

// g2ScalarMul computes k*P for a G2 point using double-and-add.
func g2ScalarMul(p *G2Point, k *big.Int) *G2Point {
	if k.Sign() == 0 || p.g2IsInfinity() {
		return G2Infinity()
	}
	kMod := new(big.Int).Mod(k, bn254N)
	if kMod.Sign() == 0 {
		return G2Infinity()
	}

	r := G2Infinity()
	base := &G2Point{
		x: newFp2(p.x.a0, p.x.a1),
		y: newFp2(p.y.a0, p.y.a1),
		z: newFp2(p.z.a0, p.z.a1),
	}
	for i := kMod.BitLen() - 1; i >= 0; i-- {
		r = g2Double(r)
		if kMod.Bit(i) == 1 {
			r = g2Add(r, base)
		}
	}
	return r
}

// g2IsOnCurveSubgroup checks only that a G2 point is on the twist curve;
// membership in the order-n subgroup ([n]*P == 0) is not checked.
func g2IsOnCurveSubgroup(x, y *fp2) bool {
	return g2IsOnCurve(x, y)
}
