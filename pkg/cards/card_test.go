package cards

import "testing"

func TestParseValidCard(t *testing.T) {
	tests := []struct {
		c    string
		want Card
	}{
		{"2c", Card{Two, Clubs}},
		{"tc", Card{Ten, Clubs}},
		{"Td", Card{Ten, Diamonds}},
		{"qs", Card{Queen, Spades}},
		{"TS", Card{Ten, Spades}},
		{"jH", Card{Jack, Hearts}},
		{"ad", Card{Ace, Diamonds}},
	}
	for _, tc := range tests {
		got, err := ParseCard(tc.c)
		if err != nil {
			t.Errorf("ParseCard(%s)=error(%s), want %s", tc.c, err, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseCard(%s)=%s, want %s", tc.c, got, tc.want)
		}
	}
}

func TestOrdinal(t *testing.T) {
	if Two.Ordinal() != 0 || Ace.Ordinal() != 12 || Ten.Ordinal() != 8 {
		t.Errorf("ordinals: 2=%d T=%d A=%d", Two.Ordinal(), Ten.Ordinal(), Ace.Ordinal())
	}
}

func TestLessThanOrdersBySuitGroup(t *testing.T) {
	hand := Cards{C2c, Cas, C3h, Ctd, C2s}
	hand.Sort()
	want := "3h 2s As Td 2c"
	if hand.String() != want {
		t.Errorf("Sort()=%s, want %s", hand, want)
	}
}

func TestInvalidCard(t *testing.T) {
	bad := Card{Value: Ace + 1, Suit: Suit(4)}
	if bad.Valid() {
		t.Errorf("%v reported valid", bad)
	}
	if bad.String() != "??" || Suit(-1).Name() != "Unknown" {
		t.Errorf("invalid card renders as %s", bad)
	}
	if !Cqs.Valid() || Cqs.Suit.Name() != "Spades" {
		t.Errorf("queen of spades invalid")
	}
}
