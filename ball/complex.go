package ball

// Complex is a rectangular complex ball: a pair of real balls.
type Complex struct {
	re, im Ball
}

// NewComplex returns the complex point 0 which computes with prec bits.
func NewComplex(prec uint) *Complex {
	var z Complex
	z.re.mid.SetPrec(prec)
	z.im.mid.SetPrec(prec)
	return &z
}

// SetBall sets z to the real ball x and returns z.
func (z *Complex) SetBall(x *Ball) *Complex {
	z.re.Set(x)
	z.im.prec(x)
	z.im.mid.SetInt64(0)
	z.im.rad = mag{}
	return z
}

// Real returns a copy of the real part of z.
func (z *Complex) Real() *Ball {
	return z.re.Clone()
}

// Imag returns a copy of the imaginary part of z.
func (z *Complex) Imag() *Ball {
	return z.im.Clone()
}

// Clone returns a new complex ball equal to z that shares no storage with it.
func (z *Complex) Clone() *Complex {
	c := &Complex{}
	c.re.Set(&z.re)
	c.im.Set(&z.im)
	return c
}

// Add sets z to x + y and returns z.
func (z *Complex) Add(x, y *Complex) *Complex {
	z.re.Add(&x.re, &y.re)
	z.im.Add(&x.im, &y.im)
	return z
}

// MulBall sets z to x × r for a real ball r and returns z.
func (z *Complex) MulBall(x *Complex, r *Ball) *Complex {
	z.re.Mul(&x.re, r)
	z.im.Mul(&x.im, r)
	return z
}

// MulI sets z to x × i and returns z.
func (z *Complex) MulI(x *Complex) *Complex {
	// (a + bi) i = -b + ai
	t := x.re.Clone()
	z.re.Neg(&x.im)
	z.im.Set(t)
	return z
}

// DivUint sets z to x / n and returns z. n must be nonzero.
func (z *Complex) DivUint(x *Complex, n uint64) *Complex {
	z.re.DivUint(&x.re, n)
	z.im.DivUint(&x.im, n)
	return z
}

// MagUpper returns a float64 not less than |re| + |im| for every element of z.
func (z *Complex) MagUpper() float64 {
	return z.re.MagUpper() + z.im.MagUpper()
}

// IsFinite reports whether both parts of z are finite.
func (z *Complex) IsFinite() bool {
	return z.re.IsFinite() && z.im.IsFinite()
}

// addErrorMag widens both parts of z by err.
func (z *Complex) addErrorMag(err mag) *Complex {
	z.re.rad = magAdd(z.re.rad, err)
	z.im.rad = magAdd(z.im.rad, err)
	return z
}
