package engine

import (
	"context"
	"errors"
	"math/big"
	"reflect"
	"testing"

	"github.com/agbru/bigcalc/internal/bigint"
)

func TestDefaultFactory(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()

	if got := f.List(); !reflect.DeepEqual(got, []string{"digits", "stdlib"}) {
		t.Errorf("List() = %v", got)
	}
	if !f.Has(DefaultEngineName) || f.Has("nope") {
		t.Error("Has() reports wrong membership")
	}

	e1, err := f.Get("digits")
	if err != nil {
		t.Fatal(err)
	}
	e2, _ := f.Get("digits")
	if e1 != e2 {
		t.Error("Get() should return the cached instance")
	}
	e3, err := f.Create("digits")
	if err != nil {
		t.Fatal(err)
	}
	if e3 == e1 {
		t.Error("Create() should return a fresh instance")
	}
	if _, err := f.Get("nope"); err == nil {
		t.Error("Get() of an unknown engine should fail")
	}
	if _, err := f.Create("nope"); err == nil {
		t.Error("Create() of an unknown engine should fail")
	}
	if got := len(f.GetAll()); got != 2 {
		t.Errorf("GetAll() returned %d engines, want 2", got)
	}
}

func TestDefaultFactory_RegisterReplaces(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	before, _ := f.Get("stdlib")
	if err := f.Register("stdlib", func() coreEngine { return DigitEngine{} }); err != nil {
		t.Fatal(err)
	}
	after, _ := f.Get("stdlib")
	if before == after || after.Name() != (DigitEngine{}).Name() {
		t.Error("Register should replace the engine and drop the cached instance")
	}
	if err := f.Register("", func() coreEngine { return DigitEngine{} }); err == nil {
		t.Error("Register with an empty name should fail")
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if !GlobalFactory().Has(DefaultEngineName) {
		t.Error("global factory should have the default engine")
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	mock := &MockEngine{Result: bigint.NewInt(3)}
	f := NewTestFactory(map[string]Engine{"m": mock})
	e, err := f.Get("m")
	if err != nil || e != mock {
		t.Fatalf("Get = %v, %v", e, err)
	}
	if _, err := f.Create("x"); err == nil {
		t.Error("unknown engine should fail")
	}
	if err := f.Register("x", nil); err == nil {
		t.Error("Register should be unsupported")
	}
	if got := f.List(); !reflect.DeepEqual(got, []string{"m"}) {
		t.Errorf("List() = %v", got)
	}
	got, _ := mock.Compute(context.Background(), Request{})
	if got.String() != "3" || mock.Name() != "mock" {
		t.Errorf("mock returned %s named %s", got, mock.Name())
	}
}

// TestEnginesAgree cross-checks the digit engine against math/big over a
// grid of operands that exercises carries, borrows and sign combinations.
func TestEnginesAgree(t *testing.T) {
	t.Parallel()
	digits := NewEngine(DigitEngine{})
	stdlib := NewEngine(StdlibEngine{})
	ctx := context.Background()

	operands := []string{"0", "1", "-1", "9", "-10", "99", "1000", "-123456789", "987654321987654321"}
	for _, op := range Ops() {
		for _, sa := range operands {
			for _, sb := range operands {
				a, b := bigint.MustParse(sa), bigint.MustParse(sb)
				if op == OpPower {
					if b.Len() > 2 {
						continue
					}
				}
				if op == OpFactorial && (a.Len() > 2 || sb != "0") {
					continue
				}
				req := Request{Op: op, A: a, B: b}
				got, errD := digits.Compute(ctx, req)
				want, errS := stdlib.Compute(ctx, req)
				if (errD == nil) != (errS == nil) {
					t.Errorf("%s: digits err=%v, stdlib err=%v", req, errD, errS)
					continue
				}
				if errD == nil && !got.Equal(want) {
					t.Errorf("%s: digits=%s stdlib=%s", req, got, want)
				}
			}
		}
	}
}

func TestStdlibEngine_FactorialTooLarge(t *testing.T) {
	t.Parallel()
	huge := bigint.FromBig(new(big.Int).Lsh(big.NewInt(1), 70))
	_, err := StdlibEngine{}.ComputeCore(context.Background(), Request{Op: OpFactorial, A: huge})
	if !errors.Is(err, ErrOperandTooLarge) {
		t.Errorf("error = %v, want ErrOperandTooLarge", err)
	}
}
