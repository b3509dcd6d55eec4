package outcome

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrUnknownVariant = errors.New("unknown_variant")
	ErrInvalidDraw    = errors.New("invalid_draw")
)

type Variant string

const (
	Dice       Variant = "dice"
	Basketball Variant = "basketball"
	Football   Variant = "football"
	Slot       Variant = "slot"
)

// Variants lists every playable variant in display order.
var Variants = []Variant{Dice, Basketball, Football, Slot}

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(s); v {
	case Dice, Basketball, Football, Slot:
		return v, nil
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownVariant)
}

// MaxDraw is the top of the 1-based draw domain reported by the randomness source.
func (v Variant) MaxDraw() int {
	switch v {
	case Dice:
		return 6
	case Basketball, Football:
		return 5
	case Slot:
		return 64
	}
	return 0
}

type Kind string

const (
	KindWin  Kind = "win"
	KindPush Kind = "push"
	KindLose Kind = "lose"
)

// Slot faces; the remaining 60 combinations lose.
const (
	SlotBar     = 1
	SlotGrapes  = 22
	SlotLemons  = 43
	SlotJackpot = 64
)

type Outcome struct {
	Variant    Variant
	Draw       int
	Multiplier decimal.Decimal
	Label      string
	Kind       Kind
}

// Payout is stake times the multiplier, truncated to whole units.
func (o Outcome) Payout(stake int64) int64 {
	if stake <= 0 || o.Multiplier.IsZero() {
		return 0
	}
	return decimal.NewFromInt(stake).Mul(o.Multiplier).Floor().IntPart()
}

var (
	zero      = decimal.Zero
	one       = decimal.NewFromInt(1)
	two       = decimal.NewFromInt(2)
	three     = decimal.NewFromInt(3)
	goal      = decimal.RequireFromString("2.5")
	slotTable = map[int]struct {
		mult  decimal.Decimal
		label string
	}{
		SlotJackpot: {decimal.NewFromInt(50), "jackpot"},
		SlotGrapes:  {decimal.NewFromInt(20), "grapes"},
		SlotLemons:  {decimal.NewFromInt(10), "lemons"},
		SlotBar:     {decimal.NewFromInt(5), "bar"},
	}
)

// Resolve maps a draw to its multiplier and label. It is pure and total over each
// variant's draw domain.
func Resolve(v Variant, draw int) (Outcome, error) {
	top := v.MaxDraw()
	if top == 0 {
		return Outcome{}, fmt.Errorf("%q: %w", v, ErrUnknownVariant)
	}
	if draw < 1 || draw > top {
		return Outcome{}, fmt.Errorf("%s draw %d: %w", v, draw, ErrInvalidDraw)
	}

	o := Outcome{Variant: v, Draw: draw, Multiplier: zero, Label: "lose", Kind: KindLose}
	switch v {
	case Slot:
		if hit, ok := slotTable[draw]; ok {
			o.Multiplier, o.Label, o.Kind = hit.mult, hit.label, KindWin
		}
	case Dice:
		switch draw {
		case 6:
			o.Multiplier, o.Label, o.Kind = three, "win", KindWin
		case 5:
			o.Multiplier, o.Label, o.Kind = two, "win", KindWin
		}
	case Basketball, Football:
		switch draw {
		case 5:
			o.Multiplier, o.Label, o.Kind = goal, "goal", KindWin
		case 4:
			o.Multiplier, o.Label, o.Kind = one, "near_miss", KindPush
		}
	}
	return o, nil
}
